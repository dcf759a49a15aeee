package discord_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	"github.com/KirkDiggler/mythweaver/internal/engine"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/KirkDiggler/mythweaver/internal/handlers/discord"
	campaignService "github.com/KirkDiggler/mythweaver/internal/services/campaign"
	mockcampaign "github.com/KirkDiggler/mythweaver/internal/services/campaign/mock"
	"github.com/KirkDiggler/mythweaver/internal/testutils"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const user = "user-1"

type HandlerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mockcampaign.MockService
	handler *discord.Handler
	ctx     context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mockcampaign.NewMockService(s.ctrl)
	s.handler = discord.NewHandler(&discord.HandlerConfig{
		CampaignService: s.service,
		LogDisplayLines: 5,
	})
	s.ctx = context.Background()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) startCampaign(id string) *engine.Session {
	c := testutils.CreateTestCampaign(id, "Ashen Road")
	c.Narrate("Cold air settles over a nameless road.")
	session := &engine.Session{Campaign: c}

	s.service.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(session, nil)

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubNew})
	s.Require().False(reply.Ephemeral)
	return session
}

func (s *HandlerTestSuite) TestNew() {
	universe := campaign.Universe{Name: "Ashfall", Description: "A land of cinders under a red sky."}
	c := testutils.CreateTestCampaign("adv-1", "Ashen Road")
	c.Narrate("Cold air settles over a nameless road.")

	s.service.EXPECT().
		Create(s.ctx, &campaignService.CreateInput{
			Owner:         user,
			Name:          "Ashen Road",
			Theme:         "grimdark",
			CharacterName: "Vell",
			Universe:      universe,
		}).
		Return(&engine.Session{Campaign: c}, nil)

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name: discord.SubNew,
		Options: map[string]string{
			"name":        "Ashen Road",
			"theme":       "grimdark",
			"universe":    universe.Name,
			"description": universe.Description,
			"character":   "Vell",
		},
	})

	s.False(reply.Ephemeral)
	s.Equal("adv-1", reply.CampaignID)
	s.Contains(reply.Content, "**Ashen Road** begins. (`adv-1`)")
	s.Contains(reply.Content, "Cold air settles over a nameless road.")
}

func (s *HandlerTestSuite) TestNew_Error() {
	s.service.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, dnderr.InvalidArgument("owner is required"))

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubNew})

	s.True(reply.Ephemeral)
	s.Contains(reply.Content, "missing something")
}

func (s *HandlerTestSuite) TestAct_NoActiveCampaign() {
	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubAct,
		Options: map[string]string{"action": "attack"},
	})

	s.True(reply.Ephemeral)
	s.Equal(discord.NoActiveCampaign, reply.Content)
}

func (s *HandlerTestSuite) TestAct() {
	session := s.startCampaign("adv-1")
	next := &engine.Session{Campaign: session.Campaign.Clone()}

	s.service.EXPECT().
		Act(s.ctx, user, session, "rest").
		Return(next, &engine.Outcome{Kind: engine.KindRest, Lines: []string{engine.RestLine}}, nil)
	s.service.EXPECT().
		Act(s.ctx, user, next, "loot").
		Return(next, &engine.Outcome{Kind: engine.KindLoot, Lines: []string{engine.LootLine}}, nil)

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubAct,
		Options: map[string]string{"action": "rest"},
	})
	s.Equal(engine.RestLine, reply.Content)
	s.Equal("adv-1", reply.CampaignID)

	// the returned session becomes the active one
	reply = s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubAct,
		Options: map[string]string{"action": "loot"},
	})
	s.Equal(engine.LootLine, reply.Content)
}

func (s *HandlerTestSuite) TestAct_Ignored() {
	session := s.startCampaign("adv-1")

	s.service.EXPECT().
		Act(s.ctx, user, session, "").
		Return(session, &engine.Outcome{Kind: engine.KindIgnored}, nil)

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubAct})

	s.True(reply.Ephemeral)
	s.Contains(reply.Content, "Nothing happens")
}

func (s *HandlerTestSuite) TestAct_DeadCharacterHidesButtons() {
	session := s.startCampaign("adv-1")
	dead := session.Campaign.Clone()
	dead.Character.Alive = false

	s.service.EXPECT().
		Act(s.ctx, user, session, "attack").
		Return(&engine.Session{Campaign: dead}, &engine.Outcome{Kind: engine.KindDead, Lines: []string{engine.TaleEnded}}, nil)

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubAct,
		Options: map[string]string{"action": "attack"},
	})

	s.Equal(engine.TaleEnded, reply.Content)
	s.Empty(reply.CampaignID)
}

func (s *HandlerTestSuite) TestAct_Button() {
	session := s.startCampaign("adv-1")

	s.service.EXPECT().
		Act(s.ctx, user, session, "rest").
		Return(session, &engine.Outcome{Kind: engine.KindRest, Lines: []string{engine.RestLine}}, nil)

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubAct,
		Options: map[string]string{"action": "rest", "campaign": "adv-1"},
	})
	s.Equal(engine.RestLine, reply.Content)

	// a button from an older campaign's message never reaches the service
	reply = s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubAct,
		Options: map[string]string{"action": "attack", "campaign": "adv-0"},
	})
	s.True(reply.Ephemeral)
	s.Equal(discord.StaleButton, reply.Content)
}

func (s *HandlerTestSuite) TestAct_Error() {
	session := s.startCampaign("adv-1")

	s.service.EXPECT().
		Act(s.ctx, user, session, "attack").
		Return(nil, nil, errors.New("dice exploded"))

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubAct,
		Options: map[string]string{"action": "attack"},
	})

	s.True(reply.Ephemeral)
	s.Contains(reply.Content, "please try again")
}

func (s *HandlerTestSuite) TestStatus() {
	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubStatus})
	s.Equal(discord.NoActiveCampaign, reply.Content)

	s.startCampaign("adv-1")

	reply = s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubStatus})
	s.True(reply.Ephemeral)
	s.Contains(reply.Content, "Ashen Road (adv-1)")
	s.Contains(reply.Content, "Wanderer HP 12/12 (standing)")
}

func (s *HandlerTestSuite) TestList() {
	s.service.EXPECT().
		List(s.ctx, user).
		Return(nil)
	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubList})
	s.True(reply.Ephemeral)
	s.Contains(reply.Content, "no campaigns yet")

	session := s.startCampaign("adv-1")
	other := testutils.CreateTestCampaign("adv-2", "Salt Marsh")
	other.Character.Alive = false

	s.service.EXPECT().
		List(s.ctx, user).
		Return([]*campaign.Campaign{session.Campaign, other})
	reply = s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubList})

	s.Contains(reply.Content, "Your campaigns:")
	s.Contains(reply.Content, "`adv-1` **Ashen Road** (active): Wanderer, alive, last played 2024-03-01 12:00")
	s.Contains(reply.Content, "`adv-2` **Salt Marsh**: Wanderer, fallen")
}

func (s *HandlerTestSuite) TestOpen() {
	c := testutils.CreateTestCampaign("adv-2", "Salt Marsh")
	c.Narrate("The tide is out.")

	s.service.EXPECT().
		Open(s.ctx, user, "adv-2").
		Return(&engine.Session{Campaign: c}, nil)

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubOpen,
		Options: map[string]string{"id": " adv-2 "},
	})

	s.Contains(reply.Content, "**Salt Marsh** resumes. (`adv-2`)")
	s.Contains(reply.Content, "The tide is out.")

	reply = s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubStatus})
	s.Contains(reply.Content, "Salt Marsh (adv-2)")
}

func (s *HandlerTestSuite) TestOpen_NotFound() {
	s.service.EXPECT().
		Open(s.ctx, user, "nope").
		Return(nil, dnderr.NotFoundf("campaign %s not found", "nope"))

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubOpen,
		Options: map[string]string{"id": "nope"},
	})

	s.True(reply.Ephemeral)
	s.Contains(reply.Content, "no campaign with that ID")
}

func (s *HandlerTestSuite) TestDelete_ClearsActiveSession() {
	s.startCampaign("adv-1")

	s.service.EXPECT().
		Delete(s.ctx, user, "adv-1").
		Return(nil)

	reply := s.handler.Dispatch(s.ctx, user, &discord.Command{
		Name:    discord.SubDelete,
		Options: map[string]string{"id": "adv-1"},
	})
	s.Contains(reply.Content, "deleted")

	reply = s.handler.Dispatch(s.ctx, user, &discord.Command{Name: discord.SubStatus})
	s.Equal(discord.NoActiveCampaign, reply.Content)
}

func (s *HandlerTestSuite) TestDispatch_Unknown() {
	s.True(s.handler.Dispatch(s.ctx, user, &discord.Command{Name: "dance"}).Ephemeral)
	s.True(s.handler.Dispatch(s.ctx, user, nil).Ephemeral)
	s.Contains(s.handler.Dispatch(s.ctx, "", &discord.Command{Name: discord.SubList}).Content, "who sent")
}

func (s *HandlerTestSuite) TestNewHandler_Panics() {
	s.Panics(func() { discord.NewHandler(nil) })
	s.Panics(func() { discord.NewHandler(&discord.HandlerConfig{}) })
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestParseCommand(t *testing.T) {
	cmd := discord.ParseCommand([]*discordgo.ApplicationCommandInteractionDataOption{{
		Name: discord.SubAct,
		Type: discordgo.ApplicationCommandOptionSubCommand,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{{
			Name:  "action",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: "ask Mira about the road",
		}},
	}})

	assert.Equal(t, discord.SubAct, cmd.Name)
	assert.Equal(t, "ask Mira about the road", cmd.Options["action"])
}
