package opening

import (
	"context"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
)

// PlaceholderText is the scene the placeholder service writes for every universe
const PlaceholderText = `Cold air settles over a nameless road.

The land feels wrong here, too quiet and too patient.
Somewhere nearby, something waits, unseen.

Your journey begins without ceremony.`

// Generate validates a universe and returns the placeholder scene
func Generate(universe campaign.Universe) (string, error) {
	if universe.Description == "" {
		return "", dnderr.InvalidArgument("universe description required")
	}
	return PlaceholderText, nil
}

// Placeholder is an in-process Client used when no service URL is configured
type Placeholder struct{}

// NewPlaceholder creates the in-process client
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Opening implements Client
func (*Placeholder) Opening(ctx context.Context, universe campaign.Universe) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "opening request cancelled")
	}
	return Generate(universe)
}
