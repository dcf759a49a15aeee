package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e -source=interface.go

// Client reads monster stat blocks from the D&D 5e API
type Client interface {
	GetMonster(key string) (*MonsterTemplate, error)
	ListMonstersByCR(minCR, maxCR float32) ([]*MonsterTemplate, error)
}

// MonsterTemplate is the subset of a monster stat block the bestiary uses
type MonsterTemplate struct {
	Key             string
	Name            string
	ArmorClass      int
	HitPoints       int
	ChallengeRating float32
	Actions         []*MonsterAction
}

// MonsterAction is one attack or ability from a stat block
type MonsterAction struct {
	Name        string
	AttackBonus int
	Damage      []*Damage
}

// Damage is a parsed damage expression such as 2d6+3
type Damage struct {
	DiceCount int
	DiceSize  int
	Bonus     int
}

// PrimaryAttack returns the first action that carries an attack bonus and
// damage dice, or nil
func (m *MonsterTemplate) PrimaryAttack() *MonsterAction {
	if m == nil {
		return nil
	}
	for _, a := range m.Actions {
		if a != nil && a.AttackBonus > 0 && len(a.Damage) > 0 && a.Damage[0] != nil {
			return a
		}
	}
	return nil
}
