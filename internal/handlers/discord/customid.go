package discord

import (
	"fmt"
	"strings"
)

const (
	// CustomIDSeparator is the character used to separate parts
	CustomIDSeparator = ":"

	// MaxCustomIDLength is Discord's limit for custom IDs
	MaxCustomIDLength = 100
)

// CustomID identifies a component as domain:action[:target]
type CustomID struct {
	// Domain is the top-level category, always CommandName for our buttons
	Domain string

	// Action is the action text the button sends
	Action string

	// Target is the campaign the button was rendered for
	Target string
}

// NewCustomID creates a new CustomID
func NewCustomID(action, target string) *CustomID {
	return &CustomID{Domain: CommandName, Action: action, Target: target}
}

// Encode converts the CustomID to a string
func (c *CustomID) Encode() (string, error) {
	parts := []string{c.Domain, c.Action}
	if c.Target != "" {
		parts = append(parts, c.Target)
	}

	result := strings.Join(parts, CustomIDSeparator)
	if len(result) > MaxCustomIDLength {
		return "", fmt.Errorf("custom ID exceeds maximum length of %d characters", MaxCustomIDLength)
	}
	return result, nil
}

// ParseCustomID parses a custom ID string. Targets may themselves contain
// the separator.
func ParseCustomID(customID string) (*CustomID, error) {
	if customID == "" {
		return nil, fmt.Errorf("empty custom ID")
	}

	parts := strings.SplitN(customID, CustomIDSeparator, 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid custom ID format: expected at least domain:action")
	}

	result := &CustomID{Domain: parts[0], Action: parts[1]}
	if len(parts) == 3 {
		result.Target = parts[2]
	}
	return result, nil
}
