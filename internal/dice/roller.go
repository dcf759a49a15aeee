package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// RollResult is the audit trail of a single roll request
type RollResult struct {
	Total    int   // RawTotal + Bonus
	Rolls    []int // every die rolled, including the discarded one for advantage/disadvantage
	Bonus    int
	Count    int
	Sides    int
	RawTotal int // kept dice only
	IsCrit   bool
	IsFumble bool
}

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// RollWithAdvantage rolls with advantage (roll twice, take higher)
	RollWithAdvantage(sides, bonus int) (*RollResult, error)

	// RollWithDisadvantage rolls with disadvantage (roll twice, take lower)
	RollWithDisadvantage(sides, bonus int) (*RollResult, error)
}

// Source is the randomness behind a Roller and behind narrative draws.
// Implementations must be safe for concurrent use.
type Source interface {
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int

	// Float64 returns a value in [0, 1).
	Float64() float64
}
