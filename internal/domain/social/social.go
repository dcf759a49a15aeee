// Package social classifies what the player says to the people of the world
// and resolves the resulting skill check.
package social

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
)

// Intent is the social approach the player takes
type Intent string

const (
	IntentNone         Intent = ""
	IntentDeception    Intent = campaign.SkillDeception
	IntentPersuasion   Intent = campaign.SkillPersuasion
	IntentIntimidation Intent = campaign.SkillIntimidation
	IntentInsight      Intent = campaign.SkillInsight
)

const (
	// BaseDC is the difficulty against a neutral NPC
	BaseDC = 12

	// TraitFeared is earned by intimidating someone successfully
	TraitFeared = "Feared"

	// NoAudience is logged when there is nobody to talk to
	NoAudience = "There is no one here to listen."
)

// Pattern pairs a keyword matcher with the intent it signals
type Pattern struct {
	Intent Intent
	Match  *regexp.Regexp
}

func words(w ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(w, "|") + `)\b`)
}

// Patterns are evaluated top to bottom; the first match wins
var Patterns = []Pattern{
	{Intent: IntentDeception, Match: words("lie", "lies", "lied", "lying", "bluff", "bluffs", "bluffed", "bluffing", "deceive", "deceives", "deceived", "deceiving")},
	{Intent: IntentPersuasion, Match: words("convince", "convinces", "convinced", "convincing", "persuade", "persuades", "persuaded", "persuading", "ask", "asks", "asked", "asking")},
	{Intent: IntentIntimidation, Match: words("threaten", "threatens", "threatened", "threatening", "intimidate", "intimidates", "intimidated", "intimidating")},
	{Intent: IntentInsight, Match: words("observe", "observes", "observed", "observing", "watch", "watches", "watched", "watching", "sense", "senses", "sensed", "sensing", "read", "reads", "reading")},
}

// Classify returns the intent of the first matching pattern, or IntentNone
func Classify(text string) Intent {
	for _, p := range Patterns {
		if p.Match.MatchString(text) {
			return p.Intent
		}
	}
	return IntentNone
}

// Result describes a resolved social check
type Result struct {
	Intent   Intent
	NPC      string
	Check    *dice.CheckResult
	Success  bool
	Revealed string
	Audience bool // false when there was nobody to talk to
}

// Config configures a Resolver
type Config struct {
	Roller dice.Roller
}

// Resolver runs social checks against NPCs
type Resolver struct {
	roller dice.Roller
}

// NewResolver creates a social check resolver
func NewResolver(cfg *Config) *Resolver {
	if cfg == nil {
		panic("social config is required")
	}
	if cfg.Roller == nil {
		panic("social roller is required")
	}
	return &Resolver{roller: cfg.Roller}
}

// Target picks the NPC named in the text, else the first NPC by name
func Target(c *campaign.Campaign, text string) *campaign.NPC {
	names := c.NPCNames()
	if len(names) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	for _, name := range names {
		if strings.Contains(lower, strings.ToLower(name)) {
			return c.NPCs[name]
		}
	}
	return c.NPCs[names[0]]
}

// DC is the difficulty of a check against npc; friendlier NPCs are easier
func DC(npc *campaign.NPC) int {
	return BaseDC - npc.Disposition
}

// Resolve runs the check for intent against the NPC the text addresses.
// Success or failure, the NPC and every faction remember it. The input is
// not modified.
func (r *Resolver) Resolve(in *campaign.Campaign, intent Intent, text string) (*campaign.Campaign, *Result, error) {
	if intent == IntentNone {
		return nil, nil, dnderr.InvalidArgument("social intent is required")
	}

	c := in.Clone()
	result := &Result{Intent: intent}

	npc := Target(c, text)
	if npc == nil {
		c.Narrate(NoAudience)
		return c, result, nil
	}
	result.Audience = true
	result.NPC = npc.Name

	char := c.Character
	modifier := char.Skill(string(intent)) + char.ExhaustionPenalty()
	check, err := dice.Check(r.roller, modifier, DC(npc), dice.Normal)
	if err != nil {
		return nil, nil, dnderr.Wrapf(err, "failed to roll %s", intent)
	}
	result.Check = check
	result.Success = check.Success
	c.Rule(fmt.Sprintf("%s vs %s: %s", intent, npc.Name, check))

	drift := -1
	verdict := "failed"
	if check.Success {
		drift = 1
		verdict = "succeeded"
	}

	switch {
	case !check.Success:
		result.Revealed = npc.Public
	case intent == IntentInsight:
		result.Revealed = fmt.Sprintf("%s is hiding something.", npc.Name)
	default:
		result.Revealed = npc.Secret
	}
	c.Narrate(result.Revealed)

	npc.Disposition += drift
	npc.Remember(fmt.Sprintf("Turn %d: %s %s at %s.", c.World.Turn, char.Name, verdict, intent))
	for _, name := range c.FactionNames() {
		faction := c.Factions[name]
		faction.Attitude += drift
		faction.Remember(fmt.Sprintf("Turn %d: word spreads that %s %s at %s with %s.",
			c.World.Turn, char.Name, verdict, intent, npc.Name))
	}

	if check.Success {
		applyReputation(char, intent)
	}

	return c, result, nil
}

func applyReputation(char *campaign.Character, intent Intent) {
	switch intent {
	case IntentIntimidation:
		char.AddTrait(TraitFeared)
		char.Alignment--
	case IntentDeception:
		char.Alignment--
	case IntentPersuasion:
		char.Influence++
	}
}
