package campaigns

import (
	"context"
	"time"

	"github.com/KirkDiggler/mythweaver/internal/config"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// OpenedStore is a configured backend plus the function that releases it
type OpenedStore struct {
	Store   Store
	Backend string
	Close   func() error
}

// Owners lists the owners of the opened store when the backend supports it
func (o *OpenedStore) Owners(ctx context.Context) ([]string, error) {
	lister, ok := o.Store.(OwnerLister)
	if !ok {
		return nil, dnderr.Newf(dnderr.CodeInvalidArgument, "%s store cannot list owners", o.Backend)
	}
	return lister.Owners(ctx)
}

// OpenStore opens the backend named in the config. Redis connections are
// pinged so an unreachable server fails here rather than on first save.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (*OpenedStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return &OpenedStore{Store: NewInMemoryStore(), Backend: "memory", Close: func() error { return nil }}, nil

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to parse redis url")
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to connect to redis")
		}
		return &OpenedStore{
			Store:   NewRedisStore(&RedisStoreConfig{Client: client}),
			Backend: "redis",
			Close:   client.Close,
		}, nil

	case "sqlite":
		store, err := OpenSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to open sqlite store")
		}
		return &OpenedStore{Store: store, Backend: "sqlite", Close: store.Close}, nil

	default:
		return nil, dnderr.Newf(dnderr.CodeInvalidArgument, "unknown store backend %q", cfg.Backend)
	}
}
