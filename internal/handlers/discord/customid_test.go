package discord

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomID_Encode(t *testing.T) {
	tests := []struct {
		name     string
		customID *CustomID
		expected string
		wantErr  bool
	}{
		{
			name:     "action only",
			customID: NewCustomID("rest", ""),
			expected: "mythweaver:rest",
		},
		{
			name:     "with target",
			customID: NewCustomID("attack", "adv-123"),
			expected: "mythweaver:attack:adv-123",
		},
		{
			name:     "exceeds max length",
			customID: NewCustomID("attack", strings.Repeat("x", MaxCustomIDLength)),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.customID.Encode()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCustomID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *CustomID
		wantErr  bool
	}{
		{
			name:     "domain and action",
			input:    "mythweaver:loot",
			expected: &CustomID{Domain: "mythweaver", Action: "loot"},
		},
		{
			name:     "target keeps separators",
			input:    "mythweaver:attack:adv:with:colons",
			expected: &CustomID{Domain: "mythweaver", Action: "attack", Target: "adv:with:colons"},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "no action", input: "mythweaver", wantErr: true},
		{name: "blank action", input: "mythweaver::adv-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCustomID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
