package config_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/mythweaver/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 0.25, cfg.Engine.CombatTriggerChance)
	assert.Equal(t, "fixed", cfg.Engine.NarrationStrategy)
	assert.Equal(t, "first", cfg.Engine.Targeting)
	assert.Equal(t, 30, cfg.Engine.LogDisplayLines)
	assert.Equal(t, 10*time.Second, cfg.Opening.Timeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("STORE_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("ENGINE_COMBAT_TRIGGER_CHANCE", "0.3")
	t.Setenv("ENGINE_NARRATION_STRATEGY", "pool")
	t.Setenv("OPENING_URL", "http://opening:8080")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis://cache:6379/2", cfg.Store.RedisURL)
	assert.Equal(t, 0.3, cfg.Engine.CombatTriggerChance)
	assert.Equal(t, "pool", cfg.Engine.NarrationStrategy)
	assert.Equal(t, "http://opening:8080", cfg.Opening.URL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown backend", key: "STORE_BACKEND", val: "mongo"},
		{name: "unknown strategy", key: "ENGINE_NARRATION_STRATEGY", val: "llm"},
		{name: "unknown targeting", key: "ENGINE_TARGETING", val: "random"},
		{name: "chance above one", key: "ENGINE_COMBAT_TRIGGER_CHANCE", val: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateDiscord(t *testing.T) {
	cfg := &config.Config{}
	assert.Error(t, cfg.ValidateDiscord())

	cfg.Discord.Token = "token"
	assert.Error(t, cfg.ValidateDiscord())

	cfg.Discord.AppID = "app"
	assert.NoError(t, cfg.ValidateDiscord())
}
