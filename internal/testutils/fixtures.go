package testutils

import (
	"time"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
)

// FixedTime is a stable timestamp for fixtures
var FixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// CreateTestCampaign creates a fresh campaign with the default cast
func CreateTestCampaign(id, name string) *campaign.Campaign {
	return campaign.New(id, name, "grimdark", campaign.Universe{
		Name:        "Ashfall",
		Tone:        "bleak",
		Themes:      "survival, betrayal",
		Description: "A land of cinders under a red sky.",
	}, FixedTime)
}

// CreateTestEnemy creates a living enemy
func CreateTestEnemy(name string, hp int) *campaign.Enemy {
	return &campaign.Enemy{
		Name:            name,
		HP:              hp,
		MaxHP:           hp,
		Alive:           true,
		AttackBonus:     3,
		DamageDie:       6,
		DamageBonus:     1,
		InitiativeBonus: 1,
	}
}

// CreateCampaignInCombat creates a campaign already fighting one enemy
func CreateCampaignInCombat(id string, enemy *campaign.Enemy) *campaign.Campaign {
	c := CreateTestCampaign(id, campaign.DefaultName)
	c.Enemies = append(c.Enemies, enemy)
	c.Combat = &campaign.Encounter{Owner: campaign.TurnPlayer, Round: 1}
	return c
}
