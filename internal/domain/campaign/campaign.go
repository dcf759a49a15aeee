// Package campaign holds the persistent state of a solo adventure: the
// character, the enemies and people of the world, and the running logs.
//
// Every value here is plain data so a campaign list can be written to any
// key-value store and read back without loss.
package campaign

import (
	"sort"
	"time"
)

// TurnOwner says who acts next in an encounter
type TurnOwner string

const (
	TurnPlayer TurnOwner = "player"
	TurnEnemy  TurnOwner = "enemy"
)

// Encounter is present while the campaign is in combat
type Encounter struct {
	Owner TurnOwner `json:"owner"`
	Round int       `json:"round"`
}

// Universe describes the world a campaign takes place in
type Universe struct {
	Name        string `json:"name"`
	Tone        string `json:"tone"`
	Themes      string `json:"themes"`
	Description string `json:"description"`
}

// ItemType categorizes inventory entries
type ItemType string

const (
	ItemTypeWeapon   ItemType = "weapon"
	ItemTypeArmor    ItemType = "armor"
	ItemTypeSupply   ItemType = "supply"
	ItemTypeTreasure ItemType = "treasure"
)

// Item is a single inventory entry
type Item struct {
	Name   string   `json:"name"`
	Weight int      `json:"weight"`
	Type   ItemType `json:"type"`
}

// Campaign is one adventure owned by one player
type Campaign struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Theme      string              `json:"theme"`
	Universe   Universe            `json:"universe"`
	Log        []string            `json:"log"`
	RulesLog   []string            `json:"rules_log"`
	Character  *Character          `json:"character"`
	Enemies    []*Enemy            `json:"enemies"`
	NPCs       map[string]*NPC     `json:"npcs"`
	Factions   map[string]*Faction `json:"factions"`
	World      WorldState          `json:"world"`
	Inventory  []Item              `json:"inventory"`
	Gold       int                 `json:"gold"`
	Combat     *Encounter          `json:"combat"`
	CreatedAt  time.Time           `json:"created_at"`
	LastPlayed time.Time           `json:"last_played"`
}

// Narrate appends lines to the player-facing log
func (c *Campaign) Narrate(lines ...string) {
	c.Log = append(c.Log, lines...)
}

// Rule appends roll details to the rules log
func (c *Campaign) Rule(lines ...string) {
	c.RulesLog = append(c.RulesLog, lines...)
}

// RecentLog returns at most the last n narrative lines. n <= 0 returns the whole log.
func (c *Campaign) RecentLog(n int) []string {
	if n <= 0 || len(c.Log) <= n {
		return c.Log
	}
	return c.Log[len(c.Log)-n:]
}

// InCombat reports whether an encounter is running
func (c *Campaign) InCombat() bool {
	return c.Combat != nil
}

// LivingEnemies returns the enemies still standing, in turn order
func (c *Campaign) LivingEnemies() []*Enemy {
	var living []*Enemy
	for _, e := range c.Enemies {
		if e.Alive {
			living = append(living, e)
		}
	}
	return living
}

// HasLivingEnemy reports whether anything is left to fight
func (c *Campaign) HasLivingEnemy() bool {
	for _, e := range c.Enemies {
		if e.Alive {
			return true
		}
	}
	return false
}

// NPCNames returns the NPC names in sorted order
func (c *Campaign) NPCNames() []string {
	names := make([]string, 0, len(c.NPCs))
	for name := range c.NPCs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FactionNames returns the faction names in sorted order
func (c *Campaign) FactionNames() []string {
	names := make([]string, 0, len(c.Factions))
	for name := range c.Factions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encumbrance computes the character's load against the campaign inventory
func (c *Campaign) Encumbrance() EncumbranceResult {
	return Encumbrance(c.Character, c.Inventory)
}

// AddGold adds amount to the purse, never letting it drop below zero
func (c *Campaign) AddGold(amount int) {
	c.Gold += amount
	if c.Gold < 0 {
		c.Gold = 0
	}
}

// DefaultName is used when a campaign is created without one
const DefaultName = "A Bleak Road"

// New creates an undescribed campaign with the starting character, people and
// factions. Enemies are added by the caller.
func New(id, name, theme string, universe Universe, now time.Time) *Campaign {
	if name == "" {
		name = DefaultName
	}
	return &Campaign{
		ID:         id,
		Name:       name,
		Theme:      theme,
		Universe:   universe,
		Log:        []string{},
		RulesLog:   []string{},
		Character:  NewCharacter(""),
		Enemies:    []*Enemy{},
		NPCs:       DefaultNPCs(),
		Factions:   DefaultFactions(),
		World:      WorldState{Rumors: []string{}, Events: []string{}},
		Inventory:  []Item{},
		CreatedAt:  now,
		LastPlayed: now,
	}
}
