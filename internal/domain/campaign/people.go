package campaign

// NPC is a named person the player can talk to
type NPC struct {
	Name        string   `json:"name"`
	Disposition int      `json:"disposition"`
	Public      string   `json:"public"`
	Secret      string   `json:"secret"`
	Memory      []string `json:"memory"`
}

// Remember appends an observation to the NPC's memory
func (n *NPC) Remember(line string) {
	n.Memory = append(n.Memory, line)
}

// Faction is a group whose attitude shifts with the player's conduct
type Faction struct {
	Name      string   `json:"name"`
	Attitude  int      `json:"attitude"`
	Influence int      `json:"influence"`
	Memory    []string `json:"memory"`
}

// Remember appends an observation to the faction's memory
func (f *Faction) Remember(line string) {
	f.Memory = append(f.Memory, line)
}

// DefaultNPCs are the people met on the road at the start of every campaign
func DefaultNPCs() map[string]*NPC {
	return map[string]*NPC{
		"Mira": {
			Name:        "Mira",
			Disposition: 1,
			Public:      "Mira says the road north is watched by bandits.",
			Secret:      "Mira admits she pays the bandits to leave her caravan alone.",
			Memory:      []string{},
		},
		"Old Tomas": {
			Name:        "Old Tomas",
			Disposition: -1,
			Public:      "Old Tomas grumbles about the rain and the price of bread.",
			Secret:      "Old Tomas whispers that the chapel crypt was opened last night.",
			Memory:      []string{},
		},
	}
}

// DefaultFactions are the powers that watch the player from the start
func DefaultFactions() map[string]*Faction {
	return map[string]*Faction{
		"Roadwardens": {Name: "Roadwardens", Attitude: 0, Influence: 2, Memory: []string{}},
		"Ash Circle":  {Name: "Ash Circle", Attitude: -1, Influence: 1, Memory: []string{}},
	}
}
