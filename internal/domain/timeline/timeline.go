// Package timeline moves world time forward one turn per player action and
// fires the events scheduled for that turn.
package timeline

import (
	"fmt"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
)

const (
	// EventInterval is how often, in turns, the world stirs on its own
	EventInterval = 3

	// RumorExhaustion is the exhaustion level at which rumors start to follow you
	RumorExhaustion = 2

	// TurnsPerExhaustion is how long the character can go without rest
	TurnsPerExhaustion = 8
)

var worldEvents = []string{
	"A bell tolls somewhere beyond the hills.",
	"Smoke rises from a farmstead to the east.",
	"A patrol of Roadwardens passes, eyes hard.",
	"The wind turns, carrying the smell of rain.",
	"Crows gather on a gibbet by the road.",
}

var rumors = []string{
	"They say a stranger is asking about you.",
	"Word is the Ash Circle pays well for information.",
	"Someone swears they saw lights in the old chapel.",
	"A merchant claims the north road is cursed.",
}

// Result lists what a tick produced
type Result struct {
	Turn      int
	Event     string
	Rumor     string
	Exhausted bool // exhaustion rose this turn
}

// Tick advances the turn counter and evaluates the scheduled events for the
// new turn. Events are echoed to the narrative log. The input is not modified.
func Tick(in *campaign.Campaign) (*campaign.Campaign, *Result) {
	c := in.Clone()
	w := &c.World

	w.Turn++
	w.TurnsSinceRest++
	result := &Result{Turn: w.Turn}

	if w.TurnsSinceRest > 0 && w.TurnsSinceRest%TurnsPerExhaustion == 0 {
		c.Character.Exhaustion++
		result.Exhausted = true
		c.Narrate(fmt.Sprintf("Weariness settles into your bones (exhaustion %d).", c.Character.Exhaustion))
	}

	if w.Turn%EventInterval == 0 {
		result.Event = worldEvents[(w.Turn/EventInterval-1)%len(worldEvents)]
		w.Events = append(w.Events, result.Event)
		c.Narrate(result.Event)
	}

	if c.Character.Exhaustion >= RumorExhaustion {
		result.Rumor = rumors[w.Turn%len(rumors)]
		w.Rumors = append(w.Rumors, result.Rumor)
	}

	return c, result
}

// Rest clears the time since the last rest and eases one level of exhaustion.
// The input is not modified.
func Rest(in *campaign.Campaign) *campaign.Campaign {
	c := in.Clone()
	c.World.TurnsSinceRest = 0
	if c.Character.Exhaustion > 0 {
		c.Character.Exhaustion--
	}
	return c
}
