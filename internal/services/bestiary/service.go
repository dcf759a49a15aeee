// Package bestiary supplies the enemies a campaign meets. It starts from a
// static list and can be refreshed from the D&D 5e API.
package bestiary

//go:generate mockgen -destination=mock/mock_service.go -package=mockbestiary -source=service.go

import (
	"context"
	"math"
	"sync"

	"github.com/KirkDiggler/mythweaver/internal/clients/dnd5e"
	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/KirkDiggler/mythweaver/internal/logger"
	"go.uber.org/zap"
)

// Service hands out enemies. It satisfies engine.Spawner.
type Service interface {
	// Starter returns the enemy every new campaign opens with
	Starter() *campaign.Enemy

	// Spawn returns a random enemy from the current templates
	Spawn() *campaign.Enemy

	// Templates returns a copy of the current templates
	Templates() []Template

	// LoadFromAPI replaces the templates with monsters in the CR range.
	// On any failure the current templates stay in place.
	LoadFromAPI(ctx context.Context, minCR, maxCR float32) error
}

// Template describes one kind of enemy
type Template struct {
	Key             string
	Name            string
	HP              int
	AttackBonus     int
	DamageDie       int
	DamageBonus     int
	InitiativeBonus int
}

// Enemy creates a fresh, living enemy from the template
func (t Template) Enemy() *campaign.Enemy {
	return &campaign.Enemy{
		Name:            t.Name,
		HP:              t.HP,
		MaxHP:           t.HP,
		Alive:           true,
		AttackBonus:     t.AttackBonus,
		DamageDie:       t.DamageDie,
		DamageBonus:     t.DamageBonus,
		InitiativeBonus: t.InitiativeBonus,
	}
}

// Bandit is the enemy waiting at the start of every campaign
var Bandit = Template{Key: "bandit", Name: "Bandit", HP: 8, AttackBonus: 3, DamageDie: 6, DamageBonus: 1, InitiativeBonus: 1}

// StaticTemplates is the built-in bestiary
func StaticTemplates() []Template {
	return []Template{
		Bandit,
		{Key: "goblin", Name: "Goblin", HP: 7, AttackBonus: 4, DamageDie: 6, DamageBonus: 2, InitiativeBonus: 2},
		{Key: "skeleton", Name: "Skeleton", HP: 13, AttackBonus: 4, DamageDie: 6, DamageBonus: 2, InitiativeBonus: 2},
		{Key: "wolf", Name: "Wolf", HP: 11, AttackBonus: 4, DamageDie: 8, DamageBonus: 2, InitiativeBonus: 2},
		{Key: "cultist", Name: "Cultist", HP: 9, AttackBonus: 3, DamageDie: 6, DamageBonus: 1, InitiativeBonus: 1},
		{Key: "zombie", Name: "Zombie", HP: 22, AttackBonus: 3, DamageDie: 6, DamageBonus: 1, InitiativeBonus: -2},
	}
}

type service struct {
	dndClient dnd5e.Client
	source    dice.Source
	log       *zap.Logger

	mu        sync.RWMutex
	templates []Template
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Source    dice.Source  // Required
	DNDClient dnd5e.Client // Optional: enables LoadFromAPI
	Logger    *zap.Logger
}

// NewService creates a bestiary seeded with the static templates
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Source == nil {
		panic("random source is required")
	}

	return &service{
		dndClient: cfg.DNDClient,
		source:    cfg.Source,
		log:       logger.OrNop(cfg.Logger).Named("bestiary"),
		templates: StaticTemplates(),
	}
}

func (s *service) Starter() *campaign.Enemy {
	return Bandit.Enemy()
}

func (s *service) Spawn() *campaign.Enemy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.templates[s.source.Intn(len(s.templates))].Enemy()
}

func (s *service) Templates() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Template, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *service) LoadFromAPI(ctx context.Context, minCR, maxCR float32) error {
	if s.dndClient == nil {
		return dnderr.InvalidArgument("no dnd5e client configured")
	}
	if minCR > maxCR {
		return dnderr.InvalidRangef("min CR %v is above max CR %v", minCR, maxCR)
	}

	monsters, err := s.dndClient.ListMonstersByCR(minCR, maxCR)
	if err != nil {
		s.log.Warn("keeping static bestiary", zap.Error(err))
		return dnderr.Wrap(err, "failed to list monsters")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var templates []Template
	for _, m := range monsters {
		if t, ok := FromMonster(m); ok {
			templates = append(templates, t)
		}
	}
	if len(templates) == 0 {
		s.log.Warn("no usable monsters, keeping static bestiary",
			zap.Float32("min_cr", minCR), zap.Float32("max_cr", maxCR))
		return dnderr.NotFoundf("no usable monsters between CR %v and %v", minCR, maxCR)
	}

	s.mu.Lock()
	s.templates = templates
	s.mu.Unlock()

	s.log.Info("loaded bestiary from dnd5e api", zap.Int("templates", len(templates)))
	return nil
}

// FromMonster converts a stat block into a template. Monsters without hit
// points or a damaging attack are rejected.
func FromMonster(m *dnd5e.MonsterTemplate) (Template, bool) {
	attack := m.PrimaryAttack()
	if attack == nil || m.HitPoints <= 0 {
		return Template{}, false
	}

	dmg := attack.Damage[0]
	die := dmg.DiceSize * max(dmg.DiceCount, 1)
	if die <= 0 {
		return Template{}, false
	}

	return Template{
		Key:             m.Key,
		Name:            m.Name,
		HP:              m.HitPoints,
		AttackBonus:     attack.AttackBonus,
		DamageDie:       die,
		DamageBonus:     dmg.Bonus,
		InitiativeBonus: int(math.Ceil(float64(m.ChallengeRating))),
	}, true
}
