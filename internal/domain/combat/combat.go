// Package combat runs the turn-based fight between the player and the
// campaign's enemies.
//
// The encounter moves NoCombat -> RollInitiative -> PlayerTurn <-> EnemyTurn
// -> CombatEnds -> NoCombat. A campaign with a nil Combat field is not
// fighting. One Attack call runs half-turns until control is back with the
// player or the fight is over.
package combat

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
)

const (
	// DC is the armor every attack must meet, for both sides
	DC = 12

	// PlayerDamageDie is the die the player's weapon deals
	PlayerDamageDie = 6

	// MinimumDamage is dealt by any hit, whatever the modifiers
	MinimumDamage = 1
)

// Targeting chooses which enemies a player attack strikes
type Targeting string

const (
	// TargetFirst attacks the first living enemy
	TargetFirst Targeting = "first"
	// TargetAll attacks every living enemy once
	TargetAll Targeting = "all"
)

// Status is how an Attack call left the encounter
type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusVictory  Status = "victory"
	StatusDefeat   Status = "defeat"
	StatusNoTarget Status = "no_target"
)

// NothingToAttack is logged when an attack finds no living enemy
const NothingToAttack = "There is nothing here to attack."

// Result summarizes one Attack call
type Result struct {
	Status      Status
	Started     bool // initiative was rolled by this call
	PlayerFirst bool
	HalfTurns   int
	Killed      []string
	DamageDealt int
	DamageTaken int
}

// Ended reports whether the encounter is over
func (r *Result) Ended() bool {
	return r.Status == StatusVictory || r.Status == StatusDefeat
}

// Config configures a Machine
type Config struct {
	Roller    dice.Roller
	Targeting Targeting
}

// Machine resolves combat for campaigns
type Machine struct {
	roller    dice.Roller
	targeting Targeting
}

// NewMachine creates a combat machine
func NewMachine(cfg *Config) *Machine {
	if cfg == nil {
		panic("combat config is required")
	}
	if cfg.Roller == nil {
		panic("combat roller is required")
	}

	targeting := cfg.Targeting
	if targeting != TargetAll {
		targeting = TargetFirst
	}

	return &Machine{
		roller:    cfg.Roller,
		targeting: targeting,
	}
}

// ParseTargeting maps a config value onto a Targeting, defaulting to TargetFirst
func ParseTargeting(s string) (Targeting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(TargetFirst):
		return TargetFirst, nil
	case string(TargetAll):
		return TargetAll, nil
	default:
		return TargetFirst, dnderr.InvalidArgument(fmt.Sprintf("unknown targeting %q", s))
	}
}

// Begin rolls initiative and opens an encounter. The input is not modified.
func (m *Machine) Begin(in *campaign.Campaign) (*campaign.Campaign, *Result, error) {
	c := in.Clone()
	result := &Result{Status: StatusOngoing}

	if !c.HasLivingEnemy() {
		c.Narrate(NothingToAttack)
		result.Status = StatusNoTarget
		return c, result, nil
	}
	if c.Combat != nil {
		result.PlayerFirst = c.Combat.Owner == campaign.TurnPlayer
		return c, result, nil
	}

	if err := m.rollInitiative(c, result); err != nil {
		return nil, nil, err
	}
	return c, result, nil
}

// Attack resolves a player attack, opening the encounter first if needed.
// Half-turns run until the player holds the turn again or the fight ends.
// The input is not modified.
func (m *Machine) Attack(in *campaign.Campaign) (*campaign.Campaign, *Result, error) {
	c := in.Clone()
	result := &Result{Status: StatusOngoing}

	if !c.HasLivingEnemy() {
		c.Combat = nil
		c.Narrate(NothingToAttack)
		result.Status = StatusNoTarget
		return c, result, nil
	}

	if c.Combat == nil {
		if err := m.rollInitiative(c, result); err != nil {
			return nil, nil, err
		}
	}

	if c.Combat.Owner == campaign.TurnEnemy {
		if err := m.enemyTurn(c, result); err != nil {
			return nil, nil, err
		}
		if result.Ended() {
			return c, result, nil
		}
	}

	if err := m.playerTurn(c, result); err != nil {
		return nil, nil, err
	}
	if result.Ended() {
		return c, result, nil
	}

	if err := m.enemyTurn(c, result); err != nil {
		return nil, nil, err
	}
	return c, result, nil
}

func (m *Machine) rollInitiative(c *campaign.Campaign, result *Result) error {
	char := c.Character
	leader := c.LivingEnemies()[0]

	playerMod := dice.AbilityModifier(char.Dex) + char.ExhaustionPenalty()
	playerRoll, err := m.roller.Roll(1, dice.D20, playerMod)
	if err != nil {
		return dnderr.Wrap(err, "failed to roll player initiative")
	}
	enemyRoll, err := m.roller.Roll(1, dice.D20, leader.InitiativeBonus)
	if err != nil {
		return dnderr.Wrap(err, "failed to roll enemy initiative")
	}

	// ties go to the player
	playerFirst := playerRoll.Total >= enemyRoll.Total
	owner := campaign.TurnEnemy
	first := leader.Name
	if playerFirst {
		owner = campaign.TurnPlayer
		first = char.Name
	}

	c.Combat = &campaign.Encounter{Owner: owner, Round: 1}
	c.Rule(fmt.Sprintf("initiative: %s %d (d20 %d %+d) vs %s %d (d20 %d %+d), %s acts first",
		char.Name, playerRoll.Total, playerRoll.RawTotal, playerMod,
		leader.Name, enemyRoll.Total, enemyRoll.RawTotal, leader.InitiativeBonus,
		first))

	if playerFirst {
		c.Narrate(fmt.Sprintf("The %s closes in. You move first.", leader.Name))
	} else {
		c.Narrate(fmt.Sprintf("The %s is on you before you can react.", leader.Name))
	}

	result.Started = true
	result.PlayerFirst = playerFirst
	return nil
}

// AttackModifier is the player's total attack modifier: Str plus exhaustion
// and encumbrance penalties
func AttackModifier(c *campaign.Campaign) int {
	mod := dice.AbilityModifier(c.Character.Str) + c.Character.ExhaustionPenalty()
	if c.Encumbrance().Encumbered {
		mod += campaign.EncumbrancePenalty
	}
	return mod
}

func (m *Machine) targets(c *campaign.Campaign) []*campaign.Enemy {
	living := c.LivingEnemies()
	if m.targeting == TargetAll {
		return living
	}
	return living[:1]
}

func (m *Machine) playerTurn(c *campaign.Campaign, result *Result) error {
	c.Combat.Owner = campaign.TurnPlayer
	result.HalfTurns++

	char := c.Character
	attackMod := AttackModifier(c)
	damageMod := dice.AbilityModifier(char.Str)

	var parts []string
	for _, target := range m.targets(c) {
		check, err := dice.Check(m.roller, attackMod, DC, dice.Normal)
		if err != nil {
			return dnderr.Wrap(err, "failed to roll player attack")
		}
		c.Rule(fmt.Sprintf("round %d: %s attacks %s: %s", c.Combat.Round, char.Name, target.Name, check))

		if !check.Success {
			parts = append(parts, fmt.Sprintf("You miss the %s.", target.Name))
			continue
		}

		dmg, err := m.damage(1, PlayerDamageDie, damageMod)
		if err != nil {
			return dnderr.Wrap(err, "failed to roll player damage")
		}
		killed := target.TakeDamage(dmg)
		result.DamageDealt += dmg
		c.Rule(fmt.Sprintf("round %d: damage 1d%d%+d = %d, %s hp %d/%d",
			c.Combat.Round, PlayerDamageDie, damageMod, dmg, target.Name, target.HP, target.MaxHP))

		part := fmt.Sprintf("You strike the %s for %d.", target.Name, dmg)
		if killed {
			part += fmt.Sprintf(" The %s falls.", target.Name)
			result.Killed = append(result.Killed, target.Name)
		}
		parts = append(parts, part)
	}

	if !c.HasLivingEnemy() {
		c.Combat = nil
		result.Status = StatusVictory
		parts = append(parts, "The fight is over.")
	}

	c.Narrate(strings.Join(parts, " "))
	return nil
}

func (m *Machine) enemyTurn(c *campaign.Campaign, result *Result) error {
	c.Combat.Owner = campaign.TurnEnemy
	result.HalfTurns++

	char := c.Character
	round := c.Combat.Round

	var parts []string
	for _, enemy := range c.LivingEnemies() {
		check, err := dice.Check(m.roller, enemy.AttackBonus, DC, dice.Normal)
		if err != nil {
			return dnderr.Wrap(err, "failed to roll enemy attack")
		}
		c.Rule(fmt.Sprintf("round %d: %s attacks %s: %s", round, enemy.Name, char.Name, check))

		if !check.Success {
			parts = append(parts, fmt.Sprintf("The %s misses.", enemy.Name))
			continue
		}

		dmg, err := m.damage(1, enemy.Die(), enemy.DamageBonus)
		if err != nil {
			return dnderr.Wrap(err, "failed to roll enemy damage")
		}
		failed := char.TakeDamage(dmg)
		result.DamageTaken += dmg
		c.Rule(fmt.Sprintf("round %d: damage %s = %d, %s hp %d/%d",
			round, enemy.DamageDice(), dmg, char.Name, char.HP, char.MaxHP))

		part := fmt.Sprintf("The %s hits you for %d.", enemy.Name, dmg)
		if failed {
			c.Rule(fmt.Sprintf("round %d: death save failure %d/%d",
				round, char.DeathSaveFailures, campaign.MaxDeathSaveFailures))
		}
		if !char.Alive {
			parts = append(parts, part+" You fall, and do not rise. Your tale ends here.")
			break
		}
		if failed {
			part += " You collapse, dying."
		}
		parts = append(parts, part)
	}

	c.Narrate(strings.Join(parts, " "))

	if !char.Alive {
		c.Combat = nil
		result.Status = StatusDefeat
		return nil
	}

	c.Combat.Owner = campaign.TurnPlayer
	c.Combat.Round++
	return nil
}

// Yield spends the player's half-turn on something other than an attack, so
// the enemies act. Outside an encounter nothing happens and the status is
// StatusNoTarget. The input is not modified.
func (m *Machine) Yield(in *campaign.Campaign) (*campaign.Campaign, *Result, error) {
	c := in.Clone()
	result := &Result{Status: StatusOngoing}

	if c.Combat == nil {
		result.Status = StatusNoTarget
		return c, result, nil
	}
	if !c.HasLivingEnemy() {
		c.Combat = nil
		result.Status = StatusNoTarget
		return c, result, nil
	}

	if c.Combat.Owner == campaign.TurnEnemy {
		if err := m.enemyTurn(c, result); err != nil {
			return nil, nil, err
		}
		if result.Ended() {
			return c, result, nil
		}
	}

	result.HalfTurns++
	if err := m.enemyTurn(c, result); err != nil {
		return nil, nil, err
	}
	return c, result, nil
}

func (m *Machine) damage(count, sides, bonus int) (int, error) {
	roll, err := m.roller.Roll(count, sides, bonus)
	if err != nil {
		return 0, err
	}
	if roll.Total < MinimumDamage {
		return MinimumDamage, nil
	}
	return roll.Total, nil
}
