package dice

import (
	"math/rand"
	"sync"
	"time"

	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
)

// lockedSource guards a *rand.Rand, which is not safe for concurrent use
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a Source seeded with seed
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// randomRoller implements Roller on top of a Source
type randomRoller struct {
	src Source
}

// NewRandomRoller creates a new random dice roller seeded from the clock
func NewRandomRoller() Roller {
	return NewRoller(NewSource(time.Now().UnixNano()))
}

// NewRoller creates a roller drawing from src
func NewRoller(src Source) Roller {
	return &randomRoller{src: src}
}

func (r *randomRoller) die(sides int) int {
	return r.src.Intn(sides) + 1
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, dnderr.InvalidRangef("invalid dice count %d", count)
	}
	if sides < 1 {
		return nil, dnderr.InvalidRangef("invalid dice size d%d", sides)
	}

	rolls := make([]int, count)
	rawTotal := 0
	for i := range rolls {
		rolls[i] = r.die(sides)
		rawTotal += rolls[i]
	}

	result := &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}

	// Check for crit/fumble on d20
	if count == 1 && sides == D20 {
		result.IsCrit = rolls[0] == D20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}

// RollWithAdvantage implements Roller.RollWithAdvantage
func (r *randomRoller) RollWithAdvantage(sides, bonus int) (*RollResult, error) {
	return r.rollPair(sides, bonus, SelectAdvantage)
}

// RollWithDisadvantage implements Roller.RollWithDisadvantage
func (r *randomRoller) RollWithDisadvantage(sides, bonus int) (*RollResult, error) {
	return r.rollPair(sides, bonus, SelectDisadvantage)
}

func (r *randomRoller) rollPair(sides, bonus int, pick func(a, b int) int) (*RollResult, error) {
	if sides < 1 {
		return nil, dnderr.InvalidRangef("invalid dice size d%d", sides)
	}

	roll1 := r.die(sides)
	roll2 := r.die(sides)

	return PairResult(sides, bonus, roll1, roll2, pick), nil
}

// PairResult builds the result of a two-dice roll keeping pick(roll1, roll2)
func PairResult(sides, bonus, roll1, roll2 int, pick func(a, b int) int) *RollResult {
	kept := pick(roll1, roll2)

	result := &RollResult{
		Total:    kept + bonus,
		Rolls:    []int{roll1, roll2},
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
		RawTotal: kept,
	}

	if sides == D20 {
		result.IsCrit = kept == D20
		result.IsFumble = kept == 1
	}

	return result
}
