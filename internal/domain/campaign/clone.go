package campaign

// Clone returns a deep copy that shares no slices, maps or pointers with c
func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}

	out := *c
	out.Log = cloneStrings(c.Log)
	out.RulesLog = cloneStrings(c.RulesLog)
	out.Character = c.Character.Clone()

	if c.Enemies != nil {
		out.Enemies = make([]*Enemy, len(c.Enemies))
		for i, e := range c.Enemies {
			if e != nil {
				copied := *e
				out.Enemies[i] = &copied
			}
		}
	}

	if c.NPCs != nil {
		out.NPCs = make(map[string]*NPC, len(c.NPCs))
		for name, npc := range c.NPCs {
			copied := *npc
			copied.Memory = cloneStrings(npc.Memory)
			out.NPCs[name] = &copied
		}
	}

	if c.Factions != nil {
		out.Factions = make(map[string]*Faction, len(c.Factions))
		for name, f := range c.Factions {
			copied := *f
			copied.Memory = cloneStrings(f.Memory)
			out.Factions[name] = &copied
		}
	}

	out.World.Rumors = cloneStrings(c.World.Rumors)
	out.World.Events = cloneStrings(c.World.Events)

	if c.Inventory != nil {
		out.Inventory = make([]Item, len(c.Inventory))
		copy(out.Inventory, c.Inventory)
	}

	if c.Combat != nil {
		encounter := *c.Combat
		out.Combat = &encounter
	}

	return &out
}

// Clone returns a deep copy of the character
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	out := *c
	if c.Skills != nil {
		out.Skills = make(map[string]int, len(c.Skills))
		for k, v := range c.Skills {
			out.Skills[k] = v
		}
	}
	out.Traits = cloneStrings(c.Traits)
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
