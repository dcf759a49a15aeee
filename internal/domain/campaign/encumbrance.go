package campaign

const (
	// CapacityPerStrength is how much weight each point of Str carries
	CapacityPerStrength = 15

	// EncumbrancePenalty applies to attack totals while encumbered
	EncumbrancePenalty = -2

	// ExhaustionPenaltyPerLevel applies to every d20 total per exhaustion level
	ExhaustionPenaltyPerLevel = -2
)

// EncumbranceResult is the derived carrying state of a character
type EncumbranceResult struct {
	Load       int
	Capacity   int
	Encumbered bool
}

// Encumbrance sums the inventory weight against Str * 15. Carrying exactly
// the capacity is not encumbered.
func Encumbrance(c *Character, inventory []Item) EncumbranceResult {
	load := 0
	for _, item := range inventory {
		load += item.Weight
	}

	capacity := 0
	if c != nil {
		capacity = c.Str * CapacityPerStrength
	}

	return EncumbranceResult{
		Load:       load,
		Capacity:   capacity,
		Encumbered: load > capacity,
	}
}

// ExhaustionPenalty returns -2 per level, 0 when rested
func ExhaustionPenalty(level int) int {
	if level <= 0 {
		return 0
	}
	return ExhaustionPenaltyPerLevel * level
}
