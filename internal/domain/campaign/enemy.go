package campaign

import "fmt"

// Enemy is a hostile creature in the campaign
type Enemy struct {
	Name            string `json:"name"`
	HP              int    `json:"hp"`
	MaxHP           int    `json:"max_hp"`
	Alive           bool   `json:"alive"`
	AttackBonus     int    `json:"attack_bonus"`
	DamageDie       int    `json:"damage_die"`
	DamageBonus     int    `json:"damage_bonus"`
	InitiativeBonus int    `json:"initiative_bonus"`
}

// TakeDamage subtracts n hit points and returns true if this blow killed it
func (e *Enemy) TakeDamage(n int) bool {
	if !e.Alive || n <= 0 {
		return false
	}
	e.HP -= n
	if e.HP <= 0 {
		e.Alive = false
		return true
	}
	return false
}

// Die is the damage die actually rolled, never smaller than a d1
func (e *Enemy) Die() int {
	return max(e.DamageDie, 1)
}

// DamageDice renders the damage expression, e.g. "1d6+1"
func (e *Enemy) DamageDice() string {
	if e.DamageBonus == 0 {
		return fmt.Sprintf("1d%d", e.Die())
	}
	return fmt.Sprintf("1d%d%+d", e.Die(), e.DamageBonus)
}
