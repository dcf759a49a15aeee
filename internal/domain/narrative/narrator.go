package narrative

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
)

//go:generate mockgen -destination=mock/mock_narrator.go -package=mocknarrative -source=narrator.go

// Narrator supplies the line spoken for a beat after the opening
type Narrator interface {
	Line(beat campaign.Beat) string
}

// Strategy names a Narrator implementation
type Strategy string

const (
	StrategyFixed Strategy = "fixed"
	StrategyPool  Strategy = "pool"
)

// FixedNarrator says the same line every time a beat comes around
type FixedNarrator struct{}

// Line implements Narrator
func (FixedNarrator) Line(beat campaign.Beat) string {
	switch beat {
	case campaign.BeatExplore:
		return "The moment lingers."
	case campaign.BeatConsequence:
		return "Subtle consequences surface."
	case campaign.BeatEscalation:
		return "Events accelerate."
	default:
		return "The world considers your action."
	}
}

var (
	sensoryPool = []string{
		"Wet stone and woodsmoke hang in the air.",
		"Somewhere a crow calls, then falls silent.",
		"The wind carries the clink of distant harness.",
		"Your breath fogs; the light is thin and grey.",
	}
	developmentPool = []string{
		"Someone has noticed what you did.",
		"A door that was open is now shut.",
		"Fresh tracks cross your own.",
		"A stranger's glance lingers a moment too long.",
	}
	hookPool = []string{
		"Shouts rise from the road ahead.",
		"Steel scrapes on steel just out of sight.",
		"The undergrowth parts, and something steps out.",
		"A horn sounds twice, close by.",
	}
)

// PoolNarrator picks a random line: sensory when exploring, development on
// consequences and a hook on escalation
type PoolNarrator struct {
	src dice.Source
}

// NewPoolNarrator creates a PoolNarrator drawing from src
func NewPoolNarrator(src dice.Source) *PoolNarrator {
	if src == nil {
		panic("pool narrator source is required")
	}
	return &PoolNarrator{src: src}
}

// Line implements Narrator
func (p *PoolNarrator) Line(beat campaign.Beat) string {
	var pool []string
	switch beat {
	case campaign.BeatExplore:
		pool = sensoryPool
	case campaign.BeatConsequence:
		pool = developmentPool
	case campaign.BeatEscalation:
		pool = hookPool
	default:
		return FixedNarrator{}.Line(beat)
	}
	return pool[p.src.Intn(len(pool))]
}

// NewNarrator builds the narrator for a configured strategy
func NewNarrator(strategy string, src dice.Source) (Narrator, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(strategy))) {
	case "", StrategyFixed:
		return FixedNarrator{}, nil
	case StrategyPool:
		return NewPoolNarrator(src), nil
	default:
		return nil, dnderr.InvalidArgument(fmt.Sprintf("unknown narration strategy %q", strategy))
	}
}
