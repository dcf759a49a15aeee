// uuid simple generator that allows mocking
package uuid

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator is an interface for generating identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct {
	// Prefix is prepended to every generated id, e.g. "adv-"
	Prefix string
}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return g.Prefix + uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// NewCampaignIDGenerator creates a generator for campaign ids ("adv-<uuid>")
func NewCampaignIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{Prefix: "adv-"}
}

// SequenceGenerator returns predictable ids, for tests and tooling
type SequenceGenerator struct {
	Prefix string
	next   int
}

// New returns Prefix followed by an incrementing counter starting at 1
func (g *SequenceGenerator) New() string {
	g.next++
	return g.Prefix + strconv.Itoa(g.next)
}
