package services

import (
	"time"

	"github.com/KirkDiggler/mythweaver/internal/clients/opening"
	"github.com/KirkDiggler/mythweaver/internal/config"
	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/domain/combat"
	"github.com/KirkDiggler/mythweaver/internal/domain/narrative"
	"github.com/KirkDiggler/mythweaver/internal/engine"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/KirkDiggler/mythweaver/internal/metrics"
	"github.com/KirkDiggler/mythweaver/internal/repositories/campaigns"
	"github.com/KirkDiggler/mythweaver/internal/services/bestiary"
	campaignService "github.com/KirkDiggler/mythweaver/internal/services/campaign"
	"go.uber.org/zap"
)

// Provider holds all service instances
type Provider struct {
	Engine          *engine.Engine
	Bestiary        bestiary.Service
	CampaignService campaignService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Engine     config.EngineConfig
	Repository campaigns.Repository // Optional, in-memory if nil
	Opening    opening.Client       // Optional, in-process placeholder if nil
	Bestiary   bestiary.Service     // Optional, static bestiary if nil
	Source     dice.Source          // Optional, time-seeded if nil
	Metrics    metrics.Recorder
	Logger     *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("provider config is required")
	}

	src := cfg.Source
	if src == nil {
		src = dice.NewSource(time.Now().UnixNano())
	}

	repo := cfg.Repository
	if repo == nil {
		repo = campaigns.NewRepository(&campaigns.RepositoryConfig{
			Store:   campaigns.NewInMemoryStore(),
			Logger:  cfg.Logger,
			Metrics: cfg.Metrics,
		})
	}

	openingClient := cfg.Opening
	if openingClient == nil {
		openingClient = opening.NewPlaceholder()
	}

	beasts := cfg.Bestiary
	if beasts == nil {
		beasts = bestiary.NewService(&bestiary.ServiceConfig{
			Source: src,
			Logger: cfg.Logger,
		})
	}

	narrator, err := narrative.NewNarrator(cfg.Engine.NarrationStrategy, src)
	if err != nil {
		return nil, err
	}
	targeting, err := combat.ParseTargeting(cfg.Engine.Targeting)
	if err != nil {
		return nil, err
	}

	eng := engine.New(&engine.Config{
		Roller:       dice.NewRoller(src),
		Source:       src,
		Narrator:     narrator,
		CombatChance: cfg.Engine.CombatTriggerChance,
		Targeting:    targeting,
		Spawner:      beasts,
	})

	return &Provider{
		Engine:   eng,
		Bestiary: beasts,
		CampaignService: campaignService.NewService(&campaignService.ServiceConfig{
			Repository: repo,
			Engine:     eng,
			Bestiary:   beasts,
			Opening:    openingClient,
			Metrics:    cfg.Metrics,
			Logger:     cfg.Logger,
		}),
	}, nil
}
