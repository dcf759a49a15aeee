package campaigns

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
)

// InMemoryStore keeps each owner's list as encoded JSON, like the real backends
type InMemoryStore struct {
	mu    sync.RWMutex
	lists map[string][]byte
}

// NewInMemoryStore creates a new in-memory campaign store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		lists: make(map[string][]byte),
	}
}

// Load implements Store
func (s *InMemoryStore) Load(_ context.Context, owner string) ([]*campaign.Campaign, error) {
	s.mu.RLock()
	data, exists := s.lists[owner]
	s.mu.RUnlock()

	if !exists {
		return []*campaign.Campaign{}, nil
	}
	return campaign.UnmarshalList(data)
}

// Save implements Store
func (s *InMemoryStore) Save(_ context.Context, owner string, list []*campaign.Campaign) error {
	data, err := campaign.MarshalList(list)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[owner] = data
	return nil
}

// Owners implements OwnerLister
func (s *InMemoryStore) Owners(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make([]string, 0, len(s.lists))
	for owner := range s.lists {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners, nil
}

// SetRaw stores raw bytes for an owner, bypassing encoding
func (s *InMemoryStore) SetRaw(owner string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[owner] = data
}
