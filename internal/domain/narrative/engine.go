// Package narrative advances the story one beat per player action.
//
// Beats cycle Start -> Explore -> Consequence -> Escalation -> Explore. Start
// fires exactly once and sets the world as described. Each Escalation draws a
// number in [0,1); below the combat chance the story turns into a fight.
package narrative

import (
	"strings"

	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultCombatChance is the Escalation draw threshold for combat
	DefaultCombatChance = 0.25

	// TensionPerBeat is added to world tension on every beat
	TensionPerBeat = 5

	// FallbackOpening replaces an opening the narration service could not supply
	FallbackOpening = "Cold air settles over a nameless road. Somewhere ahead, something waits."
)

// Mode is what the engine should do after a beat
type Mode string

const (
	ModeNarrative Mode = "narrative"
	ModeCombat    Mode = "combat"
)

var themeFlavor = map[string]string{
	"grimdark":          "Mud, iron and old grudges. Nothing here is clean.",
	"dark fantasy":      "Candles gutter in a world that has forgotten the sun.",
	"high fantasy":      "Banners snap above white towers, and the old songs are true.",
	"cosmic horror":     "The stars are wrong tonight, and you are the only one who noticed.",
	"sword and sorcery": "A sellsword's luck, a sorcerer's debt, and a long way to go.",
	"post-apocalyptic":  "Rust and ash stretch to the horizon.",
}

// Flavor returns the opening flavor line for a theme
func Flavor(theme string) string {
	key := strings.ToLower(strings.TrimSpace(theme))
	if line, ok := themeFlavor[key]; ok {
		return line
	}
	if key == "" {
		return "Your story begins."
	}
	return "A " + cases.Title(language.English).String(key) + " tale begins."
}

// Next returns the beat that follows last
func Next(last campaign.Beat) campaign.Beat {
	switch last {
	case campaign.BeatNone:
		return campaign.BeatStart
	case campaign.BeatStart, campaign.BeatEscalation:
		return campaign.BeatExplore
	case campaign.BeatExplore:
		return campaign.BeatConsequence
	case campaign.BeatConsequence:
		return campaign.BeatEscalation
	default:
		return campaign.BeatExplore
	}
}

// TensionGain is the tension added per beat, scaled up by negative alignment
func TensionGain(alignment int) int {
	if alignment >= 0 {
		return TensionPerBeat
	}
	return TensionPerBeat * (1 + (-alignment)/5)
}

// Result describes one beat
type Result struct {
	Beat        campaign.Beat
	Mode        Mode
	Line        string
	Draw        float64 // only set on Escalation
	TensionGain int
}

// Config configures an Engine
type Config struct {
	Source       dice.Source
	Narrator     Narrator
	CombatChance float64
}

// Engine advances the story of a campaign
type Engine struct {
	src          dice.Source
	narrator     Narrator
	combatChance float64
}

// NewEngine creates a narrative engine. A nil Narrator uses FixedNarrator.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		panic("narrative config is required")
	}
	if cfg.Source == nil {
		panic("narrative source is required")
	}

	narrator := cfg.Narrator
	if narrator == nil {
		narrator = FixedNarrator{}
	}

	return &Engine{
		src:          cfg.Source,
		narrator:     narrator,
		combatChance: cfg.CombatChance,
	}
}

// Start fires the opening beat with the given opening text. Once the world
// has been described it behaves like Advance. The input is not modified.
func (e *Engine) Start(in *campaign.Campaign, opening string) (*campaign.Campaign, *Result) {
	if in.World.Described {
		return e.Advance(in)
	}

	c := in.Clone()
	gain := TensionGain(c.Character.Alignment)
	c.World.Tension += gain

	if strings.TrimSpace(opening) == "" {
		opening = FallbackOpening
	}
	line := collapse(Flavor(c.Theme), opening, c.Universe.Description)

	c.Narrate(line)
	c.World.Described = true
	c.World.LastBeat = campaign.BeatStart

	return c, &Result{
		Beat:        campaign.BeatStart,
		Mode:        ModeNarrative,
		Line:        line,
		TensionGain: gain,
	}
}

// Advance moves the story to its next beat. The input is not modified.
func (e *Engine) Advance(in *campaign.Campaign) (*campaign.Campaign, *Result) {
	if !in.World.Described {
		return e.Start(in, FallbackOpening)
	}

	c := in.Clone()
	gain := TensionGain(c.Character.Alignment)
	c.World.Tension += gain

	beat := Next(c.World.LastBeat)
	result := &Result{
		Beat:        beat,
		Mode:        ModeNarrative,
		Line:        e.narrator.Line(beat),
		TensionGain: gain,
	}

	if beat == campaign.BeatEscalation {
		result.Draw = e.src.Float64()
		if result.Draw < e.combatChance {
			result.Mode = ModeCombat
		}
	}

	c.Narrate(result.Line)
	c.World.LastBeat = beat
	return c, result
}

// collapse joins the non-empty parts on one line with single spaces
func collapse(parts ...string) string {
	var fields []string
	for _, p := range parts {
		fields = append(fields, strings.Fields(p)...)
	}
	return strings.Join(fields, " ")
}
