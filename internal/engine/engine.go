// Package engine is the single entry point for player input. ApplyAction
// classifies an action, routes it to combat, the social resolver or the
// narrative engine, ticks the world timeline and returns the next session.
package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	"github.com/KirkDiggler/mythweaver/internal/domain/combat"
	"github.com/KirkDiggler/mythweaver/internal/domain/narrative"
	"github.com/KirkDiggler/mythweaver/internal/domain/social"
	"github.com/KirkDiggler/mythweaver/internal/domain/timeline"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
)

//go:generate mockgen -destination=mock/mock_spawner.go -package=mockengine -source=engine.go

// Spawner supplies a fresh enemy when the story turns violent
type Spawner interface {
	Spawn() *campaign.Enemy
}

// Kind is the category of an action's outcome
type Kind string

const (
	KindIgnored   Kind = "ignored"
	KindDead      Kind = "dead"
	KindCombat    Kind = "combat"
	KindNoTarget  Kind = "no_target"
	KindRest      Kind = "rest"
	KindLoot      Kind = "loot"
	KindRefused   Kind = "refused"
	KindSocial    Kind = "social"
	KindNarrative Kind = "narrative"
)

// Lines the engine writes itself
const (
	TaleEnded      = "Your tale has ended."
	RestLine       = "You rest briefly."
	LootLine       = "You scavenge supplies."
	NoRestInCombat = "There is no time to rest with enemies this close."
	NoLootInCombat = "You cannot search for anything in the middle of a fight."
)

var (
	attackVerbs = regexp.MustCompile(`(?i)\b(?:attack|fight|strike)\b`)
	restVerb    = regexp.MustCompile(`(?i)\brest\b`)
	lootVerb    = regexp.MustCompile(`(?i)\bloot\b`)
)

var supplies = []campaign.Item{
	{Name: "Rations", Weight: 2, Type: campaign.ItemTypeSupply},
	{Name: "Rope", Weight: 5, Type: campaign.ItemTypeSupply},
	{Name: "Torch", Weight: 1, Type: campaign.ItemTypeSupply},
	{Name: "Waterskin", Weight: 4, Type: campaign.ItemTypeSupply},
	{Name: "Bandages", Weight: 1, Type: campaign.ItemTypeSupply},
}

const (
	restDie = 6
	lootDie = 10
)

// Session carries the active campaign between actions
type Session struct {
	Campaign *campaign.Campaign
}

// Outcome reports what an action did
type Outcome struct {
	Kind      Kind
	Lines     []string // narrative lines added by this action
	Combat    *combat.Result
	Social    *social.Result
	Narrative *narrative.Result
	Timeline  *timeline.Result
}

// Config configures an Engine
type Config struct {
	Roller       dice.Roller
	Source       dice.Source
	Narrator     narrative.Narrator
	CombatChance float64
	Targeting    combat.Targeting
	Spawner      Spawner // optional
}

// Engine applies player actions to sessions
type Engine struct {
	roller    dice.Roller
	combat    *combat.Machine
	social    *social.Resolver
	narrative *narrative.Engine
	spawner   Spawner
}

// New creates an engine
func New(cfg *Config) *Engine {
	if cfg == nil {
		panic("engine config is required")
	}
	if cfg.Roller == nil {
		panic("engine roller is required")
	}
	if cfg.Source == nil {
		panic("engine source is required")
	}

	return &Engine{
		roller:  cfg.Roller,
		spawner: cfg.Spawner,
		combat: combat.NewMachine(&combat.Config{
			Roller:    cfg.Roller,
			Targeting: cfg.Targeting,
		}),
		social: social.NewResolver(&social.Config{Roller: cfg.Roller}),
		narrative: narrative.NewEngine(&narrative.Config{
			Source:       cfg.Source,
			Narrator:     cfg.Narrator,
			CombatChance: cfg.CombatChance,
		}),
	}
}

// Begin fires the opening beat of a new campaign
func (e *Engine) Begin(c *campaign.Campaign, opening string) *Session {
	next, _ := e.narrative.Start(c, opening)
	return &Session{Campaign: next}
}

// ApplyAction processes one line of player input. The given session is never
// modified. Errors only come from a failing dice roller.
func (e *Engine) ApplyAction(s *Session, action string) (*Session, *Outcome, error) {
	if s == nil || s.Campaign == nil {
		return nil, nil, dnderr.InvalidArgument("session has no campaign")
	}

	text := strings.TrimSpace(action)
	if text == "" {
		return s, &Outcome{Kind: KindIgnored}, nil
	}

	c := s.Campaign.Clone()
	before := len(c.Log)
	outcome := &Outcome{}

	if !c.Character.Alive {
		c.Narrate(TaleEnded)
		outcome.Kind = KindDead
		outcome.Lines = newLines(c, before)
		return &Session{Campaign: c}, outcome, nil
	}

	c.Narrate("> " + text)

	var err error
	switch {
	case attackVerbs.MatchString(text):
		c, err = e.attack(c, outcome)
	case restVerb.MatchString(text):
		c, err = e.rest(c, outcome)
	case lootVerb.MatchString(text):
		c, err = e.loot(c, outcome)
	default:
		inCombat := c.InCombat()
		if intent := social.Classify(text); intent != social.IntentNone {
			c, err = e.talk(c, intent, text, outcome)
		} else {
			c, err = e.narrate(c, outcome)
		}
		if err == nil && inCombat {
			c, err = e.yield(c, outcome)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	c, outcome.Timeline = timeline.Tick(c)
	outcome.Lines = newLines(c, before)
	return &Session{Campaign: c}, outcome, nil
}

func (e *Engine) attack(c *campaign.Campaign, outcome *Outcome) (*campaign.Campaign, error) {
	next, result, err := e.combat.Attack(c)
	if err != nil {
		return nil, err
	}

	outcome.Kind = KindCombat
	if result.Status == combat.StatusNoTarget {
		outcome.Kind = KindNoTarget
	}
	outcome.Combat = result
	return next, nil
}

func (e *Engine) rest(c *campaign.Campaign, outcome *Outcome) (*campaign.Campaign, error) {
	if c.InCombat() {
		c.Narrate(NoRestInCombat)
		outcome.Kind = KindRefused
		return c, nil
	}

	healed, err := dice.RollDie(e.roller, restDie)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll rest")
	}

	c = timeline.Rest(c)
	c.Character.Heal(healed)
	c.Rule(fmt.Sprintf("rest: 1d%d = %d, hp %d/%d, exhaustion %d",
		restDie, healed, c.Character.DisplayHP(), c.Character.MaxHP, c.Character.Exhaustion))
	c.Narrate(RestLine)

	outcome.Kind = KindRest
	return c, nil
}

func (e *Engine) loot(c *campaign.Campaign, outcome *Outcome) (*campaign.Campaign, error) {
	if c.InCombat() {
		c.Narrate(NoLootInCombat)
		outcome.Kind = KindRefused
		return c, nil
	}

	gold, err := dice.RollDie(e.roller, lootDie)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll loot")
	}
	pick, err := dice.RollDie(e.roller, len(supplies))
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll loot item")
	}

	item := supplies[pick-1]
	c.AddGold(gold)
	c.Inventory = append(c.Inventory, item)

	load := c.Encumbrance()
	c.Rule(fmt.Sprintf("loot: 1d%d = %d gold, found %s (weight %d), load %d/%d",
		lootDie, gold, item.Name, item.Weight, load.Load, load.Capacity))
	c.Narrate(LootLine)

	outcome.Kind = KindLoot
	return c, nil
}

func (e *Engine) talk(c *campaign.Campaign, intent social.Intent, text string, outcome *Outcome) (*campaign.Campaign, error) {
	next, result, err := e.social.Resolve(c, intent, text)
	if err != nil {
		return nil, err
	}

	outcome.Kind = KindSocial
	outcome.Social = result
	return next, nil
}

func (e *Engine) narrate(c *campaign.Campaign, outcome *Outcome) (*campaign.Campaign, error) {
	next, result := e.narrative.Advance(c)
	outcome.Kind = KindNarrative
	outcome.Narrative = result

	if result.Mode != narrative.ModeCombat || next.InCombat() {
		return next, nil
	}

	if !next.HasLivingEnemy() {
		if e.spawner == nil {
			return next, nil
		}
		enemy := e.spawner.Spawn()
		if enemy == nil {
			return next, nil
		}
		next.Enemies = append(next.Enemies, enemy)
		next.Narrate(fmt.Sprintf("A %s steps into your path.", enemy.Name))
	}

	next, begun, err := e.combat.Begin(next)
	if err != nil {
		return nil, err
	}
	outcome.Combat = begun
	return next, nil
}

// yield lets the enemies act after a non-attack action taken mid-fight.
func (e *Engine) yield(c *campaign.Campaign, outcome *Outcome) (*campaign.Campaign, error) {
	next, result, err := e.combat.Yield(c)
	if err != nil {
		return nil, err
	}
	if result.Status != combat.StatusNoTarget {
		outcome.Combat = result
	}
	return next, nil
}

func newLines(c *campaign.Campaign, before int) []string {
	added := c.Log[before:]
	out := make([]string, len(added))
	copy(out, added)
	return out
}
