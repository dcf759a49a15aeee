package campaigns

import (
	"context"
	"sort"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	"github.com/KirkDiggler/mythweaver/internal/logger"
	"github.com/KirkDiggler/mythweaver/internal/metrics"
	"go.uber.org/zap"
)

// RepositoryConfig holds the dependencies of a Repository
type RepositoryConfig struct {
	Store        Store
	Logger       *zap.Logger
	Metrics      metrics.Recorder
	TimeProvider TimeProvider
}

type repository struct {
	store   Store
	log     *zap.Logger
	metrics metrics.Recorder
	clock   TimeProvider
}

// NewRepository creates a campaign repository over a store. Saves are fire
// and forget: a failed save is logged and counted, never returned.
func NewRepository(cfg *RepositoryConfig) Repository {
	if cfg == nil {
		panic("RepositoryConfig cannot be nil")
	}
	if cfg.Store == nil {
		panic("store is required")
	}

	rec := cfg.Metrics
	if rec == nil {
		rec = (*metrics.Metrics)(nil)
	}
	clock := cfg.TimeProvider
	if clock == nil {
		clock = realTimeProvider{}
	}

	return &repository{
		store:   cfg.Store,
		log:     logger.OrNop(cfg.Logger).Named("campaigns"),
		metrics: rec,
		clock:   clock,
	}
}

// load reads the owner's list for a read-only listing. Unreadable state of
// any kind is replaced by an empty list.
func (r *repository) load(ctx context.Context, owner string) []*campaign.Campaign {
	list, err := r.loadStrict(ctx, owner)
	if err != nil {
		r.log.Error("failed to load campaign list", zap.String("owner", owner), zap.Error(err))
		return []*campaign.Campaign{}
	}
	return list
}

// loadStrict reads the owner's list before a lookup or mutation. Only
// malformed state becomes an empty list; any other store failure is returned
// as unavailable so the stored list is never overwritten.
func (r *repository) loadStrict(ctx context.Context, owner string) ([]*campaign.Campaign, error) {
	list, err := r.store.Load(ctx, owner)
	if err == nil {
		return list, nil
	}
	if dnderr.IsMalformedState(err) {
		r.log.Warn("discarding malformed campaign list", zap.String("owner", owner), zap.Error(err))
		return []*campaign.Campaign{}, nil
	}
	return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to load campaign list").
		WithMeta("owner", owner)
}

func (r *repository) save(ctx context.Context, owner string, list []*campaign.Campaign) {
	if err := r.store.Save(ctx, owner, list); err != nil {
		r.metrics.SaveFailed()
		r.log.Error("failed to save campaign list",
			zap.String("owner", owner),
			zap.Int("campaigns", len(list)),
			zap.Error(err))
	}
}

func indexOf(list []*campaign.Campaign, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// List implements Repository
func (r *repository) List(ctx context.Context, owner string) []*campaign.Campaign {
	list := r.load(ctx, owner)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].LastPlayed.After(list[j].LastPlayed)
	})
	return list
}

// Get implements Repository
func (r *repository) Get(ctx context.Context, owner, id string) (*campaign.Campaign, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("campaign id is required")
	}

	list, err := r.loadStrict(ctx, owner)
	if err != nil {
		return nil, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return nil, dnderr.NotFoundf("campaign %s not found", id).
		WithMeta("owner", owner)
}

// Create implements Repository
func (r *repository) Create(ctx context.Context, owner string, c *campaign.Campaign) error {
	if c == nil {
		return dnderr.InvalidArgument("campaign cannot be nil")
	}
	if err := c.Validate(); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "invalid campaign")
	}

	list, err := r.loadStrict(ctx, owner)
	if err != nil {
		return err
	}
	if indexOf(list, c.ID) >= 0 {
		return dnderr.AlreadyExistsf("campaign %s already exists", c.ID).
			WithMeta("owner", owner)
	}

	list = append(list, c)
	r.save(ctx, owner, list)
	return nil
}

// Update implements Repository. A campaign missing from the list (for
// example after a malformed list was discarded) is added back. The stored
// copy is stamped with LastPlayed; c itself is not modified.
func (r *repository) Update(ctx context.Context, owner string, c *campaign.Campaign) error {
	if c == nil {
		return dnderr.InvalidArgument("campaign cannot be nil")
	}
	if err := c.Validate(); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "invalid campaign")
	}

	list, err := r.loadStrict(ctx, owner)
	if err != nil {
		return err
	}

	c = c.Clone()
	c.LastPlayed = r.clock.Now()

	if i := indexOf(list, c.ID); i >= 0 {
		list[i] = c
	} else {
		r.log.Warn("updating campaign missing from list", zap.String("owner", owner), zap.String("campaign_id", c.ID))
		list = append(list, c)
	}

	r.save(ctx, owner, list)
	return nil
}

// Delete implements Repository
func (r *repository) Delete(ctx context.Context, owner, id string) error {
	list, err := r.loadStrict(ctx, owner)
	if err != nil {
		return err
	}
	i := indexOf(list, id)
	if i < 0 {
		return dnderr.NotFoundf("campaign %s not found", id).
			WithMeta("owner", owner)
	}

	list = append(list[:i], list[i+1:]...)
	r.save(ctx, owner, list)
	return nil
}
