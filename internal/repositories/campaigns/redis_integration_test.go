//go:build integration
// +build integration

package campaigns_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/mythweaver/internal/repositories/campaigns"
	"github.com/KirkDiggler/mythweaver/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Integration(t *testing.T) {
	client := testutils.StartRedis(t)

	store := campaigns.NewRedisStore(&campaigns.RedisStoreConfig{
		Client: client,
	})
	repo := campaigns.NewRepository(&campaigns.RepositoryConfig{Store: store})

	ctx := context.Background()

	t.Run("create and retrieve campaign", func(t *testing.T) {
		c := testutils.CreateTestCampaign("adv-int-1", "Ashen Vows")

		require.NoError(t, repo.Create(ctx, "user-1", c))

		got, err := repo.Get(ctx, "user-1", "adv-int-1")
		require.NoError(t, err)
		assert.Equal(t, c.Name, got.Name)
		assert.Equal(t, c.Character, got.Character)
		assert.Equal(t, c.NPCs, got.NPCs)
	})

	t.Run("update persists state", func(t *testing.T) {
		c, err := repo.Get(ctx, "user-1", "adv-int-1")
		require.NoError(t, err)

		c.Gold = 42
		c.Narrate("You count your coins.")
		require.NoError(t, repo.Update(ctx, "user-1", c))

		got, err := repo.Get(ctx, "user-1", "adv-int-1")
		require.NoError(t, err)
		assert.Equal(t, 42, got.Gold)
		assert.Contains(t, got.Log, "You count your coins.")
	})

	t.Run("malformed list reads as empty", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, campaigns.ListKey("user-2"), "{nope", 0).Err())
		assert.Empty(t, repo.List(ctx, "user-2"))
	})

	t.Run("owners are tracked", func(t *testing.T) {
		owners, err := store.Owners(ctx)
		require.NoError(t, err)
		assert.Contains(t, owners, "user-1")
	})

	t.Run("delete removes campaign", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "user-1", "adv-int-1"))
		assert.Empty(t, repo.List(ctx, "user-1"))
	})
}
