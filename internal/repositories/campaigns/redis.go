package campaigns

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "mythweaver"
	ownersKey = keyPrefix + ":owners"
)

// RedisStoreConfig holds configuration for the Redis store
type RedisStoreConfig struct {
	Client redis.UniversalClient
}

// RedisStore implements Store with one JSON value per owner
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a new Redis-backed campaign store
func NewRedisStore(cfg *RedisStoreConfig) *RedisStore {
	if cfg == nil {
		panic("RedisStoreConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &RedisStore{client: cfg.Client}
}

// ListKey is where an owner's campaign list lives
func ListKey(owner string) string {
	return fmt.Sprintf("%s:%s:campaigns", keyPrefix, owner)
}

// Load implements Store
func (s *RedisStore) Load(ctx context.Context, owner string) ([]*campaign.Campaign, error) {
	data, err := s.client.Get(ctx, ListKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*campaign.Campaign{}, nil
	}
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get campaign list").
			WithMeta("owner", owner)
	}

	return campaign.UnmarshalList(data)
}

// Save implements Store
func (s *RedisStore) Save(ctx context.Context, owner string, list []*campaign.Campaign) error {
	data, err := campaign.MarshalList(list)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ListKey(owner), data, 0)
		pipe.SAdd(ctx, ownersKey, owner)
		return nil
	})
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to save campaign list").
			WithMeta("owner", owner)
	}
	return nil
}

// Owners implements OwnerLister
func (s *RedisStore) Owners(ctx context.Context) ([]string, error) {
	owners, err := s.client.SMembers(ctx, ownersKey).Result()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to list owners")
	}
	sort.Strings(owners)
	return owners, nil
}
