package campaign

import (
	"fmt"
	"strings"
)

// Summary describes the campaign's current state as plain lines for front-ends
func (c *Campaign) Summary() []string {
	lines := []string{
		fmt.Sprintf("%s (%s)", c.Name, c.ID),
		c.Character.Status(),
	}

	load := c.Encumbrance()
	carry := fmt.Sprintf("Gold %d, load %d/%d", c.Gold, load.Load, load.Capacity)
	if load.Encumbered {
		carry += " (encumbered)"
	}
	lines = append(lines, carry)

	if len(c.Character.Traits) > 0 {
		lines = append(lines, "Traits: "+strings.Join(c.Character.Traits, ", "))
	}

	if living := c.LivingEnemies(); len(living) > 0 {
		names := make([]string, len(living))
		for i, e := range living {
			names[i] = fmt.Sprintf("%s %d/%d", e.Name, e.HP, e.MaxHP)
		}
		state := "nearby"
		if c.InCombat() {
			state = fmt.Sprintf("in combat, round %d", c.Combat.Round)
		}
		lines = append(lines, fmt.Sprintf("Enemies (%s): %s", state, strings.Join(names, ", ")))
	}

	lines = append(lines, fmt.Sprintf("Turn %d, tension %d", c.World.Turn, c.World.Tension))
	return lines
}
