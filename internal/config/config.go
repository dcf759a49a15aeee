package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	Log     LogConfig
	Discord DiscordConfig
	Store   StoreConfig
	Opening OpeningConfig
	Engine  EngineConfig
	Metrics MetricsConfig
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level    string `envconfig:"LEVEL" default:"info"`
	Encoding string `envconfig:"ENCODING" default:"console"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `envconfig:"TOKEN"`
	AppID   string `envconfig:"APP_ID"`
	GuildID string `envconfig:"GUILD_ID"` // Optional: for guild-specific commands
}

// StoreConfig selects and configures the campaign list store
type StoreConfig struct {
	Backend    string `envconfig:"BACKEND" default:"memory"` // memory | redis | sqlite
	RedisURL   string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"mythweaver.db"`
}

// OpeningConfig configures the opening-narration service client and server
type OpeningConfig struct {
	URL     string        `envconfig:"URL"` // empty: use the in-process placeholder
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
	Addr    string        `envconfig:"ADDR" default:":8080"`
}

// EngineConfig tunes the rules and narrative engine
type EngineConfig struct {
	CombatTriggerChance float64 `envconfig:"COMBAT_TRIGGER_CHANCE" default:"0.25"`
	NarrationStrategy   string  `envconfig:"NARRATION_STRATEGY" default:"fixed"` // fixed | pool
	Targeting           string  `envconfig:"TARGETING" default:"first"`          // first | all
	UseDND5EBestiary    bool    `envconfig:"USE_DND5E_BESTIARY" default:"false"`
	LogDisplayLines     int     `envconfig:"LOG_DISPLAY_LINES" default:"30"`
}

// MetricsConfig configures the prometheus endpoint
type MetricsConfig struct {
	Addr string `envconfig:"ADDR" default:":9090"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateDiscord checks the fields the Discord bot cannot start without
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, redis, sqlite; got %q", c.Store.Backend)
	}

	switch c.Engine.NarrationStrategy {
	case "fixed", "pool":
	default:
		return fmt.Errorf("ENGINE_NARRATION_STRATEGY must be fixed or pool; got %q", c.Engine.NarrationStrategy)
	}

	switch c.Engine.Targeting {
	case "first", "all":
	default:
		return fmt.Errorf("ENGINE_TARGETING must be first or all; got %q", c.Engine.Targeting)
	}

	if c.Engine.CombatTriggerChance < 0 || c.Engine.CombatTriggerChance > 1 {
		return fmt.Errorf("ENGINE_COMBAT_TRIGGER_CHANCE must be within [0,1]; got %v", c.Engine.CombatTriggerChance)
	}

	return nil
}
