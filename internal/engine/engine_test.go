package engine_test

import (
	"strings"
	"testing"
	"time"

	mockdice "github.com/KirkDiggler/mythweaver/internal/dice/mock"
	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	"github.com/KirkDiggler/mythweaver/internal/domain/combat"
	"github.com/KirkDiggler/mythweaver/internal/domain/narrative"
	"github.com/KirkDiggler/mythweaver/internal/engine"
	mockengine "github.com/KirkDiggler/mythweaver/internal/engine/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EngineTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	roller  *mockdice.ManualMockRoller
	source  *mockdice.FixedSource
	spawner *mockengine.MockSpawner
	engine  *engine.Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.roller = mockdice.NewManualMockRoller()
	s.source = mockdice.NewFixedSource(0.9)
	s.spawner = mockengine.NewMockSpawner(s.ctrl)
	s.engine = engine.New(&engine.Config{
		Roller:       s.roller,
		Source:       s.source,
		CombatChance: narrative.DefaultCombatChance,
		Spawner:      s.spawner,
	})
}

func (s *EngineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func bandit() *campaign.Enemy {
	return &campaign.Enemy{Name: "Bandit", HP: 8, MaxHP: 8, Alive: true, AttackBonus: 3, DamageDie: 6, DamageBonus: 1, InitiativeBonus: 1}
}

func (s *EngineTestSuite) newSession() *engine.Session {
	c := campaign.New("adv-1", "", "grimdark",
		campaign.Universe{Name: "Vessa", Description: "A drowned kingdom of salt and ash."},
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c.Enemies = append(c.Enemies, bandit())
	return s.engine.Begin(c, "Cold rain falls. You are alone.")
}

func (s *EngineTestSuite) apply(session *engine.Session, action string) (*engine.Session, *engine.Outcome) {
	next, outcome, err := s.engine.ApplyAction(session, action)
	s.Require().NoError(err)
	return next, outcome
}

func (s *EngineTestSuite) TestEndToEnd_CreateAttackVictory() {
	session := s.newSession()

	s.Require().Len(session.Campaign.Log, 1)
	opening := session.Campaign.Log[0]
	s.Contains(opening, narrative.Flavor("grimdark"))
	s.Contains(opening, "Cold rain falls. You are alone.")
	s.Contains(opening, "A drowned kingdom of salt and ash.")

	// initiative 15+1 vs 5+1, player misses, bandit misses
	s.roller.SetRolls([]int{15, 5, 5, 2})
	session, outcome := s.apply(session, "attack")

	s.Equal(engine.KindCombat, outcome.Kind)
	s.Require().NotNil(session.Campaign.Combat)
	s.Contains(session.Campaign.RulesLog[0], "initiative")
	s.Equal("> attack", outcome.Lines[0])

	// hit for 6+2 kills the bandit
	s.roller.SetRolls([]int{12, 6})
	for i := 0; i < 10 && session.Campaign.Combat != nil; i++ {
		session, outcome = s.apply(session, "attack")
	}

	s.Nil(session.Campaign.Combat)
	s.True(outcome.Combat.Ended())
	s.Contains(strings.Join(session.Campaign.Log, "\n"), "The Bandit falls.")
	s.Equal(2, session.Campaign.World.Turn)
}

func (s *EngineTestSuite) TestBlankInputIsIgnored() {
	session := s.newSession()

	for _, input := range []string{"", "   ", "\t\n"} {
		next, outcome := s.apply(session, input)
		s.Equal(engine.KindIgnored, outcome.Kind)
		s.Same(session, next)
		s.Len(next.Campaign.Log, 1)
		s.Equal(0, next.Campaign.World.Turn)
	}
}

func (s *EngineTestSuite) TestDeadCharacter() {
	session := s.newSession()
	session.Campaign.Character.Alive = false

	next, outcome := s.apply(session, "attack")
	s.Equal(engine.KindDead, outcome.Kind)
	s.Equal([]string{engine.TaleEnded}, outcome.Lines)
	s.Equal(0, next.Campaign.World.Turn)
}

func (s *EngineTestSuite) TestRest() {
	session := s.newSession()
	session.Campaign.Character.HP = 5
	session.Campaign.Character.Exhaustion = 1

	s.roller.SetRolls([]int{4})
	next, outcome := s.apply(session, "rest")

	s.Equal(engine.KindRest, outcome.Kind)
	s.Equal(9, next.Campaign.Character.HP)
	s.Equal(0, next.Campaign.Character.Exhaustion)
	s.Equal(1, next.Campaign.World.TurnsSinceRest)
	s.Equal([]string{"> rest", engine.RestLine}, outcome.Lines)
	s.Contains(next.Campaign.RulesLog[len(next.Campaign.RulesLog)-1], "rest: 1d6 = 4")

	// input untouched
	s.Equal(5, session.Campaign.Character.HP)
	s.Len(session.Campaign.Log, 1)
}

func (s *EngineTestSuite) TestRestAndLootRefusedInCombat() {
	session := s.newSession()
	session.Campaign.Combat = &campaign.Encounter{Owner: campaign.TurnPlayer, Round: 1}

	next, outcome := s.apply(session, "rest")
	s.Equal(engine.KindRefused, outcome.Kind)
	s.Equal(engine.NoRestInCombat, outcome.Lines[1])

	next, outcome = s.apply(next, "loot")
	s.Equal(engine.KindRefused, outcome.Kind)
	s.Equal(0, next.Campaign.Gold)
	s.Equal(2, next.Campaign.World.Turn)
}

func (s *EngineTestSuite) TestLoot() {
	session := s.newSession()

	s.roller.SetRolls([]int{7, 2})
	next, outcome := s.apply(session, "loot")

	s.Equal(engine.KindLoot, outcome.Kind)
	s.Equal(7, next.Campaign.Gold)
	s.Require().Len(next.Campaign.Inventory, 1)
	s.Equal("Rope", next.Campaign.Inventory[0].Name)
	s.Equal(engine.LootLine, outcome.Lines[1])
}

func (s *EngineTestSuite) TestSocial() {
	session := s.newSession()

	s.roller.SetRolls([]int{15})
	next, outcome := s.apply(session, "lie to Mira about the bandits")

	s.Equal(engine.KindSocial, outcome.Kind)
	s.Require().NotNil(outcome.Social)
	s.Equal("Mira", outcome.Social.NPC)
	s.True(outcome.Social.Success)
	s.Equal(-1, next.Campaign.Character.Alignment)
}

func (s *EngineTestSuite) TestSocialInCombatGivesEnemyTheTurn() {
	session := s.newSession()
	session.Campaign.Combat = &campaign.Encounter{Owner: campaign.TurnPlayer, Round: 1}

	// social check, then the bandit hits for 2+1
	s.roller.SetRolls([]int{15, 15, 2})
	next, outcome := s.apply(session, "lie to Mira about the bandits")

	s.Equal(engine.KindSocial, outcome.Kind)
	s.Require().NotNil(outcome.Social)
	s.Require().NotNil(outcome.Combat)
	s.Equal(3, outcome.Combat.DamageTaken)
	s.Equal(session.Campaign.Character.HP-3, next.Campaign.Character.HP)
	s.Equal(2, next.Campaign.Combat.Round)
	s.Contains(outcome.Lines, "The Bandit hits you for 3.")
}

func (s *EngineTestSuite) TestNarrativeInCombatGivesEnemyTheTurn() {
	session := s.newSession()
	session.Campaign.Combat = &campaign.Encounter{Owner: campaign.TurnPlayer, Round: 1}

	s.roller.SetRolls([]int{1})
	next, outcome := s.apply(session, "look around")

	s.Equal(engine.KindNarrative, outcome.Kind)
	s.Require().NotNil(outcome.Combat)
	s.Equal(combat.StatusOngoing, outcome.Combat.Status)
	s.Equal(session.Campaign.Character.HP, next.Campaign.Character.HP)
	s.Equal(2, next.Campaign.Combat.Round)
	s.Equal("The Bandit misses.", outcome.Lines[len(outcome.Lines)-1])
}

func (s *EngineTestSuite) TestSocialOutsideCombatLeavesEnemyIdle() {
	session := s.newSession()

	s.roller.SetRolls([]int{15})
	next, outcome := s.apply(session, "persuade Mira to help")

	s.Equal(engine.KindSocial, outcome.Kind)
	s.Nil(outcome.Combat)
	s.Nil(next.Campaign.Combat)
	s.Equal(session.Campaign.Character.HP, next.Campaign.Character.HP)
}

func (s *EngineTestSuite) TestUnknownActionAdvancesNarrative() {
	session := s.newSession()

	next, outcome := s.apply(session, "look around")
	s.Equal(engine.KindNarrative, outcome.Kind)
	s.Equal(campaign.BeatExplore, outcome.Narrative.Beat)
	s.Equal([]string{"> look around", "The moment lingers."}, outcome.Lines)
	s.Equal(1, next.Campaign.World.Turn)
}

func (s *EngineTestSuite) TestEscalationSpawnsEnemyAndRollsInitiative() {
	session := s.newSession()
	session.Campaign.Enemies = nil
	session.Campaign.World.LastBeat = campaign.BeatConsequence
	s.source = mockdice.NewFixedSource(0.1)
	s.engine = engine.New(&engine.Config{
		Roller:       s.roller,
		Source:       s.source,
		CombatChance: narrative.DefaultCombatChance,
		Spawner:      s.spawner,
	})

	s.spawner.EXPECT().Spawn().Return(bandit())
	s.roller.SetRolls([]int{15, 3})

	next, outcome := s.apply(session, "press on")
	s.Equal(engine.KindNarrative, outcome.Kind)
	s.Equal(narrative.ModeCombat, outcome.Narrative.Mode)
	s.Require().NotNil(outcome.Combat)
	s.True(outcome.Combat.Started)
	s.Require().NotNil(next.Campaign.Combat)
	s.Len(next.Campaign.Enemies, 1)
	s.Contains(outcome.Lines, "A Bandit steps into your path.")
}

func (s *EngineTestSuite) TestEscalationWithoutSpawnerStaysNarrative() {
	eng := engine.New(&engine.Config{
		Roller:       s.roller,
		Source:       mockdice.NewFixedSource(0.1),
		CombatChance: narrative.DefaultCombatChance,
	})
	session := s.newSession()
	session.Campaign.Enemies = nil
	session.Campaign.World.LastBeat = campaign.BeatConsequence

	next, outcome, err := eng.ApplyAction(session, "press on")
	s.Require().NoError(err)
	s.Equal(narrative.ModeCombat, outcome.Narrative.Mode)
	s.Nil(next.Campaign.Combat)
}

func (s *EngineTestSuite) TestWorldEventsEveryThirdTurn() {
	session := s.newSession()

	for i := 0; i < 3; i++ {
		session, _ = s.apply(session, "wander")
	}
	s.Equal(3, session.Campaign.World.Turn)
	s.Len(session.Campaign.World.Events, 1)
}

func (s *EngineTestSuite) TestRollerFailureIsReturned() {
	session := s.newSession()

	_, _, err := s.engine.ApplyAction(session, "attack")
	s.Error(err)
}

func (s *EngineTestSuite) TestNilSession() {
	_, _, err := s.engine.ApplyAction(nil, "attack")
	s.Error(err)
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
