package campaign_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mockopening "github.com/KirkDiggler/mythweaver/internal/clients/opening/mock"
	mockdice "github.com/KirkDiggler/mythweaver/internal/dice/mock"
	domain "github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	"github.com/KirkDiggler/mythweaver/internal/domain/narrative"
	"github.com/KirkDiggler/mythweaver/internal/engine"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	mockcampaigns "github.com/KirkDiggler/mythweaver/internal/repositories/campaigns/mock"
	mockbestiary "github.com/KirkDiggler/mythweaver/internal/services/bestiary/mock"
	"github.com/KirkDiggler/mythweaver/internal/services/campaign"
	"github.com/KirkDiggler/mythweaver/internal/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// countingRecorder tallies metric events
type countingRecorder struct {
	actions   map[string]int
	combats   map[string]int
	fallbacks int
	saveFails int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{actions: map[string]int{}, combats: map[string]int{}}
}

func (r *countingRecorder) ActionProcessed(kind string) { r.actions[kind]++ }
func (r *countingRecorder) CombatEnded(result string) { r.combats[result]++ }
func (r *countingRecorder) OpeningFallback() { r.fallbacks++ }
func (r *countingRecorder) SaveFailed() { r.saveFails++ }

type ServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *mockcampaigns.MockRepository
	opening  *mockopening.MockClient
	bestiary *mockbestiary.MockService
	clock    *mockcampaigns.MockTimeProvider
	roller   *mockdice.ManualMockRoller
	metrics  *countingRecorder
	svc      campaign.Service
	ctx      context.Context
	now      time.Time
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mockcampaigns.NewMockRepository(s.ctrl)
	s.opening = mockopening.NewMockClient(s.ctrl)
	s.bestiary = mockbestiary.NewMockService(s.ctrl)
	s.clock = mockcampaigns.NewMockTimeProvider(s.ctrl)
	s.roller = mockdice.NewManualMockRoller()
	s.metrics = newCountingRecorder()
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s.clock.EXPECT().Now().Return(s.now).AnyTimes()

	s.svc = campaign.NewService(&campaign.ServiceConfig{
		Repository: s.repo,
		Engine: engine.New(&engine.Config{
			Roller:       s.roller,
			Source:       mockdice.NewFixedSource(0.9),
			CombatChance: narrative.DefaultCombatChance,
			Spawner:      s.bestiary,
		}),
		Bestiary:      s.bestiary,
		Opening:       s.opening,
		UUIDGenerator: &uuid.SequenceGenerator{Prefix: "adv-"},
		TimeProvider:  s.clock,
		Metrics:       s.metrics,
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func bandit() *domain.Enemy {
	return &domain.Enemy{Name: "Bandit", HP: 8, MaxHP: 8, Alive: true, AttackBonus: 3, DamageDie: 6, DamageBonus: 1, InitiativeBonus: 1}
}

func (s *ServiceTestSuite) input() *campaign.CreateInput {
	return &campaign.CreateInput{
		Owner:         "user-1",
		Name:          "Ashen Vows",
		Theme:         "grimdark",
		CharacterName: "Kestrel",
		Universe:      domain.Universe{Name: "Ashfall", Description: "A land of cinders."},
	}
}

func (s *ServiceTestSuite) session() *engine.Session {
	c := domain.New("adv-1", "Ashen Vows", "grimdark", domain.Universe{}, s.now)
	c.Enemies = append(c.Enemies, bandit())
	c.World.Described = true
	c.World.LastBeat = domain.BeatStart
	return &engine.Session{Campaign: c}
}

func (s *ServiceTestSuite) TestCreate() {
	input := s.input()
	s.opening.EXPECT().Opening(s.ctx, input.Universe).Return("The ash falls.", nil)
	s.bestiary.EXPECT().Starter().Return(bandit())

	var stored *domain.Campaign
	s.repo.EXPECT().Create(s.ctx, "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, c *domain.Campaign) error {
			stored = c
			return nil
		})

	session, err := s.svc.Create(s.ctx, input)
	s.Require().NoError(err)

	c := session.Campaign
	s.Same(c, stored)
	s.Equal("adv-1", c.ID)
	s.Equal("Ashen Vows", c.Name)
	s.Equal("Kestrel", c.Character.Name)
	s.Equal(s.now, c.CreatedAt)
	s.True(c.World.Described)
	s.Require().Len(c.Log, 1)
	s.Contains(c.Log[0], "The ash falls.")
	s.Contains(c.Log[0], "A land of cinders.")
	s.Require().Len(c.Enemies, 1)
	s.Equal("Bandit", c.Enemies[0].Name)
	s.Zero(s.metrics.fallbacks)
}

func (s *ServiceTestSuite) TestCreate_OpeningFailureFallsBack() {
	input := s.input()
	input.Name = "  "
	s.opening.EXPECT().Opening(s.ctx, input.Universe).Return("", errors.New("connection refused"))
	s.bestiary.EXPECT().Starter().Return(bandit())
	s.repo.EXPECT().Create(s.ctx, "user-1", gomock.Any()).Return(nil)

	session, err := s.svc.Create(s.ctx, input)
	s.Require().NoError(err)

	s.Equal(domain.DefaultName, session.Campaign.Name)
	s.Contains(session.Campaign.Log[0], narrative.FallbackOpening)
	s.Equal(1, s.metrics.fallbacks)
}

func (s *ServiceTestSuite) TestCreate_Validation() {
	_, err := s.svc.Create(s.ctx, nil)
	s.Equal(dnderr.CodeInvalidArgument, dnderr.GetCode(err))

	_, err = s.svc.Create(s.ctx, &campaign.CreateInput{})
	s.Equal(dnderr.CodeInvalidArgument, dnderr.GetCode(err))
}

func (s *ServiceTestSuite) TestCreate_RepositoryError() {
	input := s.input()
	s.opening.EXPECT().Opening(gomock.Any(), gomock.Any()).Return("Dusk.", nil)
	s.bestiary.EXPECT().Starter().Return(bandit())
	s.repo.EXPECT().Create(s.ctx, "user-1", gomock.Any()).
		Return(dnderr.AlreadyExistsf("campaign adv-1 already exists"))

	_, err := s.svc.Create(s.ctx, input)
	s.Equal(dnderr.CodeAlreadyExists, dnderr.GetCode(err))
}

func (s *ServiceTestSuite) TestOpen() {
	c := s.session().Campaign
	s.repo.EXPECT().Get(s.ctx, "user-1", "adv-1").Return(c, nil)

	session, err := s.svc.Open(s.ctx, "user-1", "adv-1")
	s.Require().NoError(err)
	s.Same(c, session.Campaign)

	s.repo.EXPECT().Get(s.ctx, "user-1", "adv-9").Return(nil, dnderr.NotFoundf("campaign adv-9 not found"))
	_, err = s.svc.Open(s.ctx, "user-1", "adv-9")
	s.True(dnderr.IsNotFound(err))

	_, err = s.svc.Open(s.ctx, "user-1", " ")
	s.Equal(dnderr.CodeInvalidArgument, dnderr.GetCode(err))
}

func (s *ServiceTestSuite) TestListAndDelete() {
	list := []*domain.Campaign{s.session().Campaign}
	s.repo.EXPECT().List(s.ctx, "user-1").Return(list)
	s.Equal(list, s.svc.List(s.ctx, "user-1"))

	s.repo.EXPECT().Delete(s.ctx, "user-1", "adv-1").Return(nil)
	s.NoError(s.svc.Delete(s.ctx, "user-1", "adv-1"))

	s.repo.EXPECT().Delete(s.ctx, "user-1", "adv-1").Return(dnderr.NotFoundf("campaign adv-1 not found"))
	s.True(dnderr.IsNotFound(s.svc.Delete(s.ctx, "user-1", "adv-1")))
}

func (s *ServiceTestSuite) TestAct_IgnoredIsNotSaved() {
	session := s.session()

	next, outcome, err := s.svc.Act(s.ctx, "user-1", session, "   ")
	s.Require().NoError(err)
	s.Same(session, next)
	s.Equal(engine.KindIgnored, outcome.Kind)
	s.Equal(1, s.metrics.actions["ignored"])
}

func (s *ServiceTestSuite) TestAct_RestIsSaved() {
	session := s.session()
	s.roller.SetRolls([]int{4})
	s.repo.EXPECT().Update(s.ctx, "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, c *domain.Campaign) error {
			s.Contains(c.Log, engine.RestLine)
			return nil
		})

	next, outcome, err := s.svc.Act(s.ctx, "user-1", session, "rest")
	s.Require().NoError(err)
	s.Equal(engine.KindRest, outcome.Kind)
	s.NotSame(session.Campaign, next.Campaign)
	s.Equal(1, s.metrics.actions["rest"])
}

func (s *ServiceTestSuite) TestAct_CombatVictoryCounted() {
	session := s.session()
	// initiative 15+1 vs 5+1, attack 18+2 hits, damage 6+2 kills the bandit
	s.roller.SetRolls([]int{15, 5, 18, 6})
	s.repo.EXPECT().Update(s.ctx, "user-1", gomock.Any()).Return(nil)

	next, outcome, err := s.svc.Act(s.ctx, "user-1", session, "attack")
	s.Require().NoError(err)
	s.Equal(engine.KindCombat, outcome.Kind)
	s.Nil(next.Campaign.Combat)
	s.Equal(1, s.metrics.combats["victory"])
}

func (s *ServiceTestSuite) TestAct_UpdateErrorIsSwallowed() {
	session := s.session()
	s.repo.EXPECT().Update(s.ctx, "user-1", gomock.Any()).Return(dnderr.InvalidArgument("invalid campaign"))

	next, outcome, err := s.svc.Act(s.ctx, "user-1", session, "look around")
	s.Require().NoError(err)
	s.NotNil(next)
	s.Equal(engine.KindNarrative, outcome.Kind)
}

func (s *ServiceTestSuite) TestAct_RollerFailure() {
	session := s.session()

	_, _, err := s.svc.Act(s.ctx, "user-1", session, "attack")
	s.Error(err)
}

func (s *ServiceTestSuite) TestNewService_RequiresDeps() {
	s.Panics(func() { campaign.NewService(&campaign.ServiceConfig{}) })
	s.Panics(func() { campaign.NewService(nil) })
}
