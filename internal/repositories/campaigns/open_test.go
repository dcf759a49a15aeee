package campaigns_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/mythweaver/internal/config"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/KirkDiggler/mythweaver/internal/repositories/campaigns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		opened, err := campaigns.OpenStore(ctx, config.StoreConfig{Backend: "memory"})
		require.NoError(t, err)
		defer opened.Close()

		assert.Equal(t, "memory", opened.Backend)
		require.NoError(t, opened.Store.Save(ctx, "alice", nil))
		owners, err := opened.Owners(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, owners)
	})

	t.Run("sqlite", func(t *testing.T) {
		opened, err := campaigns.OpenStore(ctx, config.StoreConfig{Backend: "sqlite", SQLitePath: ":memory:"})
		require.NoError(t, err)
		defer opened.Close()

		assert.Equal(t, "sqlite", opened.Backend)
		assert.IsType(t, &campaigns.SQLiteStore{}, opened.Store)
	})

	t.Run("bad redis url", func(t *testing.T) {
		_, err := campaigns.OpenStore(ctx, config.StoreConfig{Backend: "redis", RedisURL: "not a url"})
		require.Error(t, err)
		assert.True(t, dnderr.Is(err, dnderr.CodeInvalidArgument))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := campaigns.OpenStore(ctx, config.StoreConfig{Backend: "postgres"})
		require.Error(t, err)
		assert.True(t, dnderr.Is(err, dnderr.CodeInvalidArgument))
	})
}
