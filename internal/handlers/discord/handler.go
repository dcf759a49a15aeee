// Package discord adapts the campaign service to a Discord slash command.
// Each Discord user owns their own campaign list and active session.
package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/KirkDiggler/mythweaver/internal/handlers/discord/utils"
	"github.com/KirkDiggler/mythweaver/internal/logger"
	"github.com/KirkDiggler/mythweaver/internal/services"
	campaignService "github.com/KirkDiggler/mythweaver/internal/services/campaign"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// CommandName is the root slash command
const CommandName = "mythweaver"

// Subcommands of /mythweaver
const (
	SubNew    = "new"
	SubAct    = "act"
	SubStatus = "status"
	SubList   = "list"
	SubOpen   = "open"
	SubDelete = "delete"
)

const (
	// MaxMessageLength is Discord's limit for message content
	MaxMessageLength = 2000

	// DefaultDisplayLines is how much log a reply shows when unset
	DefaultDisplayLines = 30

	interactionTimeout = 10 * time.Second
)

// StaleButton is shown when a button from another campaign's message is pressed
const StaleButton = "That button belongs to a campaign that is no longer active."

// NoActiveCampaign is shown when a command needs a session the user does not have
const NoActiveCampaign = "You have no active campaign. Start one with `/mythweaver new` or resume one with `/mythweaver open`."

// Handler handles all Discord interactions
type Handler struct {
	campaigns    campaignService.Service
	sessions     *Sessions
	displayLines int
	log          *zap.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
	CampaignService campaignService.Service // overrides ServiceProvider when set
	LogDisplayLines int
	Logger          *zap.Logger
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil {
		panic("HandlerConfig cannot be nil")
	}

	svc := cfg.CampaignService
	if svc == nil && cfg.ServiceProvider != nil {
		svc = cfg.ServiceProvider.CampaignService
	}
	if svc == nil {
		panic("campaign service is required")
	}

	lines := cfg.LogDisplayLines
	if lines <= 0 {
		lines = DefaultDisplayLines
	}

	return &Handler{
		campaigns:    svc,
		sessions:     NewSessions(),
		displayLines: lines,
		log:          logger.OrNop(cfg.Logger).Named("discord"),
	}
}

// Commands returns the slash commands the bot registers
func Commands() []*discordgo.ApplicationCommand {
	idOption := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: desc,
			Required:    true,
		}
	}
	text := func(name, desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: desc,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Play a solo dark-fantasy campaign",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        SubNew,
					Description: "Start a new campaign",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						text("name", "Campaign name"),
						text("theme", "Theme, e.g. grimdark or cosmic horror"),
						text("universe", "Name of your world"),
						text("description", "Describe your world"),
						text("character", "Your character's name"),
					},
				},
				{
					Name:        SubAct,
					Description: "Do something",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "action",
						Description: "What you do, e.g. attack, rest, loot, ask Mira about the road",
						Required:    true,
					}},
				},
				{
					Name:        SubStatus,
					Description: "Show your character and surroundings",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        SubList,
					Description: "List your campaigns",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        SubOpen,
					Description: "Resume a campaign",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{idOption("Campaign ID from /mythweaver list")},
				},
				{
					Name:        SubDelete,
					Description: "Delete a campaign",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{idOption("Campaign ID to delete")},
				},
			},
		},
	}
}

// RegisterCommands registers the slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range Commands() {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
	}
	return nil
}

// HandleInteraction routes slash commands and action buttons
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var cmd *Command
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if data.Name != CommandName {
			return
		}
		cmd = ParseCommand(data.Options)
	case discordgo.InteractionMessageComponent:
		action, campaignID, ok := ButtonAction(i.MessageComponentData().CustomID)
		if !ok {
			return
		}
		cmd = &Command{Name: SubAct, Options: map[string]string{"action": action, "campaign": campaignID}}
	default:
		return
	}

	user := utils.UserID(i)
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	reply := h.Dispatch(ctx, user, cmd)
	if err := s.InteractionRespond(i.Interaction, reply.Response()); err != nil {
		h.log.Error("failed to respond to interaction",
			zap.String("user", user),
			zap.String("command", cmd.Name),
			zap.Error(err))
	}
}

// Command is a parsed /mythweaver invocation. Button presses become act
// commands whose "campaign" option names the campaign the button belongs to.
type Command struct {
	Name    string
	Options map[string]string
}

// ParseCommand reads the subcommand and its string options
func ParseCommand(options []*discordgo.ApplicationCommandInteractionDataOption) *Command {
	cmd := &Command{Options: utils.StringOptions(options)}
	if len(options) > 0 {
		cmd.Name = options[0].Name
	}
	return cmd
}

// Reply is what the bot sends back. Buttons are attached when CampaignID is set.
type Reply struct {
	Content    string
	Ephemeral  bool
	CampaignID string
}

// Response builds the Discord interaction response for the reply
func (r *Reply) Response() *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{Content: r.Content}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if r.CampaignID != "" {
		data.Components = ActionButtons(r.CampaignID)
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

func ephemeral(format string, args ...any) *Reply {
	return &Reply{Content: fmt.Sprintf(format, args...), Ephemeral: true}
}

// Dispatch runs one command for a user. It never fails: problems become
// ephemeral replies.
func (h *Handler) Dispatch(ctx context.Context, user string, cmd *Command) *Reply {
	if user == "" {
		return ephemeral("Could not tell who sent this command.")
	}
	if cmd == nil {
		return ephemeral("Unknown command.")
	}

	switch cmd.Name {
	case SubNew:
		return h.handleNew(ctx, user, cmd.Options)
	case SubAct:
		return h.handleAct(ctx, user, cmd.Options["action"], cmd.Options["campaign"])
	case SubStatus:
		return h.handleStatus(user)
	case SubList:
		return h.handleList(ctx, user)
	case SubOpen:
		return h.handleOpen(ctx, user, strings.TrimSpace(cmd.Options["id"]))
	case SubDelete:
		return h.handleDelete(ctx, user, strings.TrimSpace(cmd.Options["id"]))
	default:
		return ephemeral("Unknown command %q.", cmd.Name)
	}
}

func (h *Handler) handleNew(ctx context.Context, user string, opts map[string]string) *Reply {
	unlock := h.sessions.Lock(user)
	defer unlock()

	session, err := h.campaigns.Create(ctx, &campaignService.CreateInput{
		Owner:         user,
		Name:          opts["name"],
		Theme:         opts["theme"],
		CharacterName: opts["character"],
		Universe: campaign.Universe{
			Name:        opts["universe"],
			Description: opts["description"],
		},
	})
	if err != nil {
		h.log.Error("failed to create campaign", zap.String("user", user), zap.Error(err))
		return ephemeral("Could not start a campaign: %s", userMessage(err))
	}

	h.sessions.Set(user, session)
	c := session.Campaign
	header := fmt.Sprintf("**%s** begins. (`%s`)", c.Name, c.ID)
	return &Reply{Content: RenderLines(header, c.RecentLog(h.displayLines)), CampaignID: c.ID}
}

func (h *Handler) handleAct(ctx context.Context, user, action, campaignID string) *Reply {
	unlock := h.sessions.Lock(user)
	defer unlock()

	session := h.sessions.Get(user)
	if session == nil {
		return ephemeral(NoActiveCampaign)
	}
	if campaignID != "" && campaignID != session.Campaign.ID {
		return ephemeral(StaleButton)
	}

	next, outcome, err := h.campaigns.Act(ctx, user, session, action)
	if err != nil {
		h.log.Error("failed to apply action",
			zap.String("user", user),
			zap.String("campaign_id", session.Campaign.ID),
			zap.Error(err))
		return ephemeral("Something went wrong: %s", userMessage(err))
	}
	h.sessions.Set(user, next)

	if len(outcome.Lines) == 0 {
		return ephemeral("Nothing happens. Try `attack`, `rest`, `loot`, or talk to someone.")
	}
	return &Reply{Content: RenderLines("", outcome.Lines), CampaignID: buttonsFor(next.Campaign)}
}

func (h *Handler) handleStatus(user string) *Reply {
	session := h.sessions.Get(user)
	if session == nil {
		return ephemeral(NoActiveCampaign)
	}
	return &Reply{Content: RenderLines("", session.Campaign.Summary()), Ephemeral: true}
}

func (h *Handler) handleList(ctx context.Context, user string) *Reply {
	var activeID string
	if session := h.sessions.Get(user); session != nil {
		activeID = session.Campaign.ID
	}
	return &Reply{Content: RenderList(h.campaigns.List(ctx, user), activeID), Ephemeral: true}
}

func (h *Handler) handleOpen(ctx context.Context, user, id string) *Reply {
	unlock := h.sessions.Lock(user)
	defer unlock()

	session, err := h.campaigns.Open(ctx, user, id)
	if err != nil {
		return ephemeral("Could not open campaign: %s", userMessage(err))
	}

	h.sessions.Set(user, session)
	c := session.Campaign
	header := fmt.Sprintf("**%s** resumes. (`%s`)", c.Name, c.ID)
	return &Reply{Content: RenderLines(header, c.RecentLog(h.displayLines)), CampaignID: buttonsFor(c)}
}

func (h *Handler) handleDelete(ctx context.Context, user, id string) *Reply {
	unlock := h.sessions.Lock(user)
	defer unlock()

	if err := h.campaigns.Delete(ctx, user, id); err != nil {
		return ephemeral("Could not delete campaign: %s", userMessage(err))
	}
	h.sessions.Clear(user, id)
	return ephemeral("Campaign `%s` deleted.", id)
}

// buttonsFor hides the quick actions once the character has died
func buttonsFor(c *campaign.Campaign) string {
	if c.Character == nil || !c.Character.Alive {
		return ""
	}
	return c.ID
}

func userMessage(err error) string {
	switch dnderr.GetCode(err) {
	case dnderr.CodeNotFound:
		return "no campaign with that ID."
	case dnderr.CodeInvalidArgument:
		return "the command was missing something."
	case dnderr.CodeAlreadyExists:
		return "that campaign already exists."
	default:
		return "please try again."
	}
}
