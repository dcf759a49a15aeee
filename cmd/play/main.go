// Command play runs a campaign in the terminal. Lines starting with a colon
// are commands (:new, :list, :open, :status, :delete, :quit); anything else
// is an action.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/KirkDiggler/mythweaver/internal/clients/opening"
	"github.com/KirkDiggler/mythweaver/internal/config"
	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	"github.com/KirkDiggler/mythweaver/internal/engine"
	"github.com/KirkDiggler/mythweaver/internal/logger"
	"github.com/KirkDiggler/mythweaver/internal/repositories/campaigns"
	"github.com/KirkDiggler/mythweaver/internal/services"
	campaignService "github.com/KirkDiggler/mythweaver/internal/services/campaign"
)

const defaultOwner = "local"

type terminal struct {
	ctx       context.Context
	owner     string
	campaigns campaignService.Service
	session   *engine.Session
	lines     int
	in        *bufio.Scanner
	out       io.Writer
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logs go to stderr so they do not interleave with the story
	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding, OutputPath: "stderr"})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	opened, err := campaigns.OpenStore(ctx, cfg.Store)
	if err != nil {
		zl.Warn("Falling back to in-memory campaign store", zap.Error(err))
		opened, _ = campaigns.OpenStore(ctx, config.StoreConfig{Backend: "memory"})
	}
	defer func() { _ = opened.Close() }()

	var openingClient opening.Client = opening.NewPlaceholder()
	if cfg.Opening.URL != "" {
		if openingClient, err = opening.New(&opening.Config{BaseURL: cfg.Opening.URL, Timeout: cfg.Opening.Timeout}); err != nil {
			zl.Fatal("Failed to create opening client", zap.Error(err))
		}
	}

	provider, err := services.NewProvider(&services.ProviderConfig{
		Engine:     cfg.Engine,
		Repository: campaigns.NewRepository(&campaigns.RepositoryConfig{Store: opened.Store, Logger: zl}),
		Opening:    openingClient,
		Logger:     zl,
	})
	if err != nil {
		zl.Fatal("Failed to create services", zap.Error(err))
	}

	owner := os.Getenv("MYTHWEAVER_OWNER")
	if owner == "" {
		owner = defaultOwner
	}

	t := &terminal{
		ctx:       ctx,
		owner:     owner,
		campaigns: provider.CampaignService,
		lines:     cfg.Engine.LogDisplayLines,
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
	}
	t.run()
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) printLines(lines []string) {
	for _, line := range lines {
		t.printf("%s\n", line)
	}
}

func (t *terminal) prompt(label string) (string, bool) {
	t.printf("%s", label)
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *terminal) run() {
	t.printf("Mythweaver. Type :new to begin, :help for commands.\n")
	for {
		line, ok := t.prompt("> ")
		if !ok {
			return
		}
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			t.act(line)
			continue
		}

		cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "quit", "q":
			return
		case "help":
			t.printf(":new  :list  :open <id>  :status  :delete <id>  :quit\n")
		case "new":
			t.create()
		case "list":
			t.list()
		case "open":
			t.open(arg)
		case "status":
			t.status()
		case "delete":
			t.delete(arg)
		default:
			t.printf("Unknown command :%s\n", cmd)
		}
	}
}

func (t *terminal) create() {
	name, _ := t.prompt("Campaign name: ")
	theme, _ := t.prompt("Theme: ")
	world, _ := t.prompt("World name: ")
	desc, _ := t.prompt("Describe the world: ")
	hero, _ := t.prompt("Character name: ")

	session, err := t.campaigns.Create(t.ctx, &campaignService.CreateInput{
		Owner:         t.owner,
		Name:          name,
		Theme:         theme,
		CharacterName: hero,
		Universe:      campaign.Universe{Name: world, Description: desc},
	})
	if err != nil {
		t.printf("Could not start a campaign: %v\n", err)
		return
	}
	t.session = session
	t.printf("\n%s (%s)\n\n", session.Campaign.Name, session.Campaign.ID)
	t.printLines(session.Campaign.RecentLog(t.lines))
}

func (t *terminal) list() {
	list := t.campaigns.List(t.ctx, t.owner)
	if len(list) == 0 {
		t.printf("No campaigns yet.\n")
		return
	}
	for _, c := range list {
		t.printf("%s  %s  %s\n", c.ID, c.Name, c.Character.Status())
	}
}

func (t *terminal) open(id string) {
	session, err := t.campaigns.Open(t.ctx, t.owner, id)
	if err != nil {
		t.printf("Could not open campaign: %v\n", err)
		return
	}
	t.session = session
	t.printLines(session.Campaign.RecentLog(t.lines))
}

func (t *terminal) status() {
	if t.session == nil {
		t.printf("No active campaign.\n")
		return
	}
	t.printLines(t.session.Campaign.Summary())
}

func (t *terminal) delete(id string) {
	if err := t.campaigns.Delete(t.ctx, t.owner, id); err != nil {
		t.printf("Could not delete campaign: %v\n", err)
		return
	}
	if t.session != nil && t.session.Campaign.ID == id {
		t.session = nil
	}
	t.printf("Deleted %s\n", id)
}

func (t *terminal) act(action string) {
	if t.session == nil {
		t.printf("No active campaign. Use :new or :open <id>.\n")
		return
	}
	next, outcome, err := t.campaigns.Act(t.ctx, t.owner, t.session, action)
	if err != nil {
		t.printf("Something went wrong: %v\n", err)
		return
	}
	t.session = next
	t.printLines(outcome.Lines)
}
