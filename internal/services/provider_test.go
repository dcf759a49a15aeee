package services_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/mythweaver/internal/config"
	"github.com/KirkDiggler/mythweaver/internal/dice"
	"github.com/KirkDiggler/mythweaver/internal/engine"
	"github.com/KirkDiggler/mythweaver/internal/services"
	campaignService "github.com/KirkDiggler/mythweaver/internal/services/campaign"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineConfig() config.EngineConfig {
	return config.EngineConfig{
		CombatTriggerChance: 0.25,
		NarrationStrategy:   "pool",
		Targeting:           "first",
	}
}

func TestNewProvider_PlaysACampaign(t *testing.T) {
	p, err := services.NewProvider(&services.ProviderConfig{
		Engine: engineConfig(),
		Source: dice.NewSource(42),
	})
	require.NoError(t, err)

	ctx := context.Background()
	session, err := p.CampaignService.Create(ctx, &campaignService.CreateInput{
		Owner: "user-1",
		Theme: "cosmic horror",
	})
	require.NoError(t, err)
	require.Len(t, session.Campaign.Log, 1)

	for _, action := range []string{"look around", "attack", "rest", "loot", "ask Mira about the road"} {
		next, outcome, err := p.CampaignService.Act(ctx, "user-1", session, action)
		require.NoError(t, err, action)
		assert.NotEqual(t, engine.KindIgnored, outcome.Kind, action)
		session = next
	}

	list := p.CampaignService.List(ctx, "user-1")
	require.Len(t, list, 1)
	assert.Equal(t, session.Campaign.Log, list[0].Log)
}

func TestNewProvider_RejectsBadConfig(t *testing.T) {
	cfg := engineConfig()
	cfg.NarrationStrategy = "llm"
	_, err := services.NewProvider(&services.ProviderConfig{Engine: cfg})
	assert.Error(t, err)

	cfg = engineConfig()
	cfg.Targeting = "random"
	_, err = services.NewProvider(&services.ProviderConfig{Engine: cfg})
	assert.Error(t, err)

	_, err = services.NewProvider(nil)
	assert.Error(t, err)
}
