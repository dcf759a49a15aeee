package campaigns

//go:generate mockgen -destination=mock/mock.go -package=mockcampaigns -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
)

// Store is the key-value backend holding one ordered campaign list per owner
type Store interface {
	// Load returns the owner's list; an owner with nothing saved gets an empty list
	Load(ctx context.Context, owner string) ([]*campaign.Campaign, error)

	// Save replaces the owner's list
	Save(ctx context.Context, owner string, list []*campaign.Campaign) error
}

// OwnerLister is implemented by stores that can enumerate their owners
type OwnerLister interface {
	Owners(ctx context.Context) ([]string, error)
}

// Repository finds and mutates single campaigns on top of a Store
type Repository interface {
	// List returns the owner's campaigns, most recently played first.
	// Unreadable data yields an empty list.
	List(ctx context.Context, owner string) []*campaign.Campaign

	// Get finds one campaign
	Get(ctx context.Context, owner, id string) (*campaign.Campaign, error)

	// Create adds a new campaign to the owner's list
	Create(ctx context.Context, owner string, c *campaign.Campaign) error

	// Update replaces a stored campaign and stamps LastPlayed
	Update(ctx context.Context, owner string, c *campaign.Campaign) error

	// Delete removes a campaign from the owner's list
	Delete(ctx context.Context, owner, id string) error
}

// TimeProvider supplies the current time
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
