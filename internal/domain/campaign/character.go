package campaign

import (
	"fmt"
	"sort"
)

// MaxDeathSaveFailures is the number of failures that ends a character's life
const MaxDeathSaveFailures = 3

// Skill names used by the social resolver
const (
	SkillDeception    = "deception"
	SkillPersuasion   = "persuasion"
	SkillIntimidation = "intimidation"
	SkillInsight      = "insight"
)

// Character is the player's adventurer
type Character struct {
	Name              string         `json:"name"`
	Str               int            `json:"str"`
	Dex               int            `json:"dex"`
	Con               int            `json:"con"`
	Int               int            `json:"int"`
	Wis               int            `json:"wis"`
	Cha               int            `json:"cha"`
	HP                int            `json:"hp"` // negative while dying
	MaxHP             int            `json:"max_hp"`
	DeathSaveFailures int            `json:"death_save_failures"`
	Alive             bool           `json:"alive"`
	Exhaustion        int            `json:"exhaustion"`
	SpellSlots        int            `json:"spell_slots"`
	Skills            map[string]int `json:"skills"`
	Alignment         int            `json:"alignment"`
	Influence         int            `json:"influence"`
	Traits            []string       `json:"traits"`
}

// DisplayHP is the hit points shown to the player, never negative
func (c *Character) DisplayHP() int {
	if c.HP < 0 {
		return 0
	}
	return c.HP
}

// IsDying reports whether the character is down but not yet dead
func (c *Character) IsDying() bool {
	return c.Alive && c.HP <= 0
}

// Skill returns the modifier for a skill, 0 when untrained
func (c *Character) Skill(name string) int {
	return c.Skills[name]
}

// TakeDamage subtracts n hit points. A hit that leaves the character at 0 or
// below records a death save failure; the third one kills. Returns true when
// a failure was recorded.
func (c *Character) TakeDamage(n int) bool {
	if !c.Alive || n <= 0 {
		return false
	}

	c.HP -= n
	if c.HP > 0 {
		return false
	}

	c.DeathSaveFailures++
	if c.DeathSaveFailures >= MaxDeathSaveFailures {
		c.DeathSaveFailures = MaxDeathSaveFailures
		c.Alive = false
	}
	return true
}

// Heal restores up to n hit points, capped at MaxHP. Climbing back above 0
// clears the death save failures.
func (c *Character) Heal(n int) {
	if !c.Alive || n <= 0 {
		return
	}

	c.HP += n
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	if c.HP > 0 {
		c.DeathSaveFailures = 0
	}
}

// HasTrait reports whether the character has earned a trait
func (c *Character) HasTrait(trait string) bool {
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// AddTrait records a trait once, keeping the set sorted
func (c *Character) AddTrait(trait string) {
	if c.HasTrait(trait) {
		return
	}
	c.Traits = append(c.Traits, trait)
	sort.Strings(c.Traits)
}

// ExhaustionPenalty is the flat penalty applied to every d20 total
func (c *Character) ExhaustionPenalty() int {
	return ExhaustionPenalty(c.Exhaustion)
}

// Status is a one-line summary for front-ends
func (c *Character) Status() string {
	state := "standing"
	switch {
	case !c.Alive:
		state = "dead"
	case c.HP <= 0:
		state = fmt.Sprintf("dying, %d/%d failures", c.DeathSaveFailures, MaxDeathSaveFailures)
	}
	return fmt.Sprintf("%s HP %d/%d (%s) exhaustion %d", c.Name, c.DisplayHP(), c.MaxHP, state, c.Exhaustion)
}

// NewCharacter returns the starting adventurer
func NewCharacter(name string) *Character {
	if name == "" {
		name = "Wanderer"
	}
	return &Character{
		Name:  name,
		Str:   14,
		Dex:   12,
		Con:   12,
		Int:   10,
		Wis:   11,
		Cha:   10,
		HP:    12,
		MaxHP: 12,
		Alive: true,
		Skills: map[string]int{
			SkillDeception:    0,
			SkillPersuasion:   1,
			SkillIntimidation: 2,
			SkillInsight:      1,
		},
		Traits: []string{},
	}
}
