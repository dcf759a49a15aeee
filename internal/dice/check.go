package dice

import (
	"fmt"
)

// D20 is the die every check is made with
const D20 = 20

// Mode selects how the d20 of a check is rolled
type Mode int

const (
	Normal Mode = iota
	Advantage
	Disadvantage
)

// CheckResult is the outcome of a d20 check against a DC
type CheckResult struct {
	Roll     int   // the kept d20
	Rolls    []int // both dice for advantage/disadvantage
	Modifier int
	Total    int
	DC       int
	Success  bool
}

// String renders the check for the rules log, e.g. "d20 14 +2 = 16 vs DC 12: success"
func (c *CheckResult) String() string {
	verdict := "failure"
	if c.Success {
		verdict = "success"
	}
	return fmt.Sprintf("d20 %d %+d = %d vs DC %d: %s", c.Roll, c.Modifier, c.Total, c.DC, verdict)
}

// AbilityModifier returns floor((score - 10) / 2)
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 && diff%2 != 0 {
		return diff/2 - 1
	}
	return diff / 2
}

// SelectAdvantage keeps the higher of two rolls
func SelectAdvantage(a, b int) int {
	if b > a {
		return b
	}
	return a
}

// SelectDisadvantage keeps the lower of two rolls
func SelectDisadvantage(a, b int) int {
	if b < a {
		return b
	}
	return a
}

// RollDie rolls a single die with the given number of sides
func RollDie(r Roller, sides int) (int, error) {
	result, err := r.Roll(1, sides, 0)
	if err != nil {
		return 0, err
	}
	return result.RawTotal, nil
}

// Check rolls a d20, adds modifier and compares against dc. Ties succeed.
func Check(r Roller, modifier, dc int, mode Mode) (*CheckResult, error) {
	var (
		result *RollResult
		err    error
	)

	switch mode {
	case Advantage:
		result, err = r.RollWithAdvantage(D20, modifier)
	case Disadvantage:
		result, err = r.RollWithDisadvantage(D20, modifier)
	default:
		result, err = r.Roll(1, D20, modifier)
	}
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		Roll:     result.RawTotal,
		Rolls:    result.Rolls,
		Modifier: modifier,
		Total:    result.Total,
		DC:       dc,
		Success:  result.Total >= dc,
	}, nil
}
