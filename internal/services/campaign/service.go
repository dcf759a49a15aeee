// Package campaign runs campaigns for an owner: creating them, reopening
// them and feeding player actions through the engine, persisting after
// every change.
package campaign

//go:generate mockgen -destination=mock/mock_service.go -package=mockcampaign -source=service.go

import (
	"context"
	"strings"

	"github.com/KirkDiggler/mythweaver/internal/clients/opening"
	domain "github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	"github.com/KirkDiggler/mythweaver/internal/domain/narrative"
	"github.com/KirkDiggler/mythweaver/internal/engine"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/KirkDiggler/mythweaver/internal/logger"
	"github.com/KirkDiggler/mythweaver/internal/metrics"
	"github.com/KirkDiggler/mythweaver/internal/repositories/campaigns"
	"github.com/KirkDiggler/mythweaver/internal/services/bestiary"
	"github.com/KirkDiggler/mythweaver/internal/uuid"
	"go.uber.org/zap"
)

// Service defines the campaign service interface
type Service interface {
	// Create starts a new campaign and stores it
	Create(ctx context.Context, input *CreateInput) (*engine.Session, error)

	// Open resumes a stored campaign
	Open(ctx context.Context, owner, id string) (*engine.Session, error)

	// List returns the owner's campaigns, most recently played first
	List(ctx context.Context, owner string) []*domain.Campaign

	// Delete removes a campaign
	Delete(ctx context.Context, owner, id string) error

	// Act applies one player action and persists the result
	Act(ctx context.Context, owner string, session *engine.Session, action string) (*engine.Session, *engine.Outcome, error)
}

// CreateInput contains data for creating a campaign
type CreateInput struct {
	Owner         string
	Name          string // defaults to domain.DefaultName
	Theme         string
	Universe      domain.Universe
	CharacterName string // defaults to the character model's default
}

type service struct {
	repository    campaigns.Repository
	engine        *engine.Engine
	opening       opening.Client
	bestiary      bestiary.Service
	uuidGenerator uuid.Generator
	clock         campaigns.TimeProvider
	metrics       metrics.Recorder
	log           *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    campaigns.Repository   // Required
	Engine        *engine.Engine         // Required
	Bestiary      bestiary.Service       // Required
	Opening       opening.Client         // Optional, the fallback opening is used if nil
	UUIDGenerator uuid.Generator         // Optional, defaults to adv-<uuid>
	TimeProvider  campaigns.TimeProvider // Optional
	Metrics       metrics.Recorder       // Optional
	Logger        *zap.Logger            // Optional
}

// NewService creates a new campaign service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Engine == nil {
		panic("engine is required")
	}
	if cfg.Bestiary == nil {
		panic("bestiary is required")
	}

	svc := &service{
		repository: cfg.Repository,
		engine:     cfg.Engine,
		opening:    cfg.Opening,
		bestiary:   cfg.Bestiary,
		clock:      cfg.TimeProvider,
		metrics:    cfg.Metrics,
		log:        logger.OrNop(cfg.Logger).Named("campaign"),
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewCampaignIDGenerator()
	}
	if svc.clock == nil {
		svc.clock = utcClock{}
	}
	if svc.metrics == nil {
		svc.metrics = (*metrics.Metrics)(nil)
	}

	return svc
}

// Create creates a new campaign
func (s *service) Create(ctx context.Context, input *CreateInput) (*engine.Session, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Owner) == "" {
		return nil, dnderr.InvalidArgument("owner is required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = domain.DefaultName
	}

	id := s.uuidGenerator.New()
	c := domain.New(id, name, strings.TrimSpace(input.Theme), input.Universe, s.clock.Now())
	c.Character = domain.NewCharacter(strings.TrimSpace(input.CharacterName))
	if starter := s.bestiary.Starter(); starter != nil {
		c.Enemies = append(c.Enemies, starter)
	}

	session := s.engine.Begin(c, s.openingFor(ctx, id, input.Universe))

	if err := s.repository.Create(ctx, input.Owner, session.Campaign); err != nil {
		return nil, dnderr.Wrap(err, "failed to create campaign").
			WithMeta("campaign_id", id).
			WithMeta("owner", input.Owner)
	}

	s.log.Info("campaign created",
		zap.String("owner", input.Owner),
		zap.String("campaign_id", id),
		zap.String("theme", c.Theme))

	return session, nil
}

// openingFor asks the narration service for a scene; any failure yields the fallback
func (s *service) openingFor(ctx context.Context, id string, universe domain.Universe) string {
	if s.opening == nil {
		s.metrics.OpeningFallback()
		return narrative.FallbackOpening
	}

	text, err := s.opening.Opening(ctx, universe)
	if err != nil || strings.TrimSpace(text) == "" {
		s.metrics.OpeningFallback()
		s.log.Warn("using fallback opening",
			zap.String("campaign_id", id),
			zap.Error(err))
		return narrative.FallbackOpening
	}

	return text
}

// Open resumes a campaign
func (s *service) Open(ctx context.Context, owner, id string) (*engine.Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dnderr.InvalidArgument("campaign ID is required")
	}

	c, err := s.repository.Get(ctx, owner, id)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to open campaign '%s'", id).
			WithMeta("owner", owner)
	}

	return &engine.Session{Campaign: c}, nil
}

// List lists an owner's campaigns
func (s *service) List(ctx context.Context, owner string) []*domain.Campaign {
	return s.repository.List(ctx, owner)
}

// Delete removes a campaign
func (s *service) Delete(ctx context.Context, owner, id string) error {
	if strings.TrimSpace(id) == "" {
		return dnderr.InvalidArgument("campaign ID is required")
	}

	if err := s.repository.Delete(ctx, owner, id); err != nil {
		return dnderr.Wrapf(err, "failed to delete campaign '%s'", id).
			WithMeta("owner", owner)
	}
	return nil
}

// Act applies an action and saves the new state. Save problems are logged,
// the new session is still returned.
func (s *service) Act(ctx context.Context, owner string, session *engine.Session, action string) (*engine.Session, *engine.Outcome, error) {
	next, outcome, err := s.engine.ApplyAction(session, action)
	if err != nil {
		return nil, nil, err
	}

	s.metrics.ActionProcessed(string(outcome.Kind))
	if outcome.Combat != nil && outcome.Combat.Ended() {
		s.metrics.CombatEnded(string(outcome.Combat.Status))
	}

	if outcome.Kind == engine.KindIgnored {
		return next, outcome, nil
	}

	if err := s.repository.Update(ctx, owner, next.Campaign); err != nil {
		s.log.Error("failed to persist campaign",
			zap.String("owner", owner),
			zap.String("campaign_id", next.Campaign.ID),
			zap.Error(err))
	}

	return next, outcome, nil
}
