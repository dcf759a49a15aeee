package uuid_test

import (
	"strings"
	"testing"

	"github.com/KirkDiggler/mythweaver/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCampaignIDGenerator(t *testing.T) {
	gen := uuid.NewCampaignIDGenerator()

	first := gen.New()
	second := gen.New()

	assert.True(t, strings.HasPrefix(first, "adv-"))
	assert.Len(t, first, len("adv-")+36)
	assert.NotEqual(t, first, second)
}

func TestSequenceGenerator(t *testing.T) {
	gen := &uuid.SequenceGenerator{Prefix: "adv-"}

	assert.Equal(t, "adv-1", gen.New())
	assert.Equal(t, "adv-2", gen.New())
}
