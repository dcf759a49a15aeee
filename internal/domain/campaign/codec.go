package campaign

import (
	"bytes"
	"encoding/json"

	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
)

// MarshalList encodes a campaign list for storage
func MarshalList(list []*Campaign) ([]byte, error) {
	if list == nil {
		list = []*Campaign{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to marshal campaign list")
	}
	return data, nil
}

// UnmarshalList decodes a stored campaign list. Empty input is an empty list;
// anything that does not decode into valid campaigns is malformed state.
func UnmarshalList(data []byte) ([]*Campaign, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []*Campaign{}, nil
	}

	var list []*Campaign
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeMalformedState, "failed to unmarshal campaign list")
	}

	for i, c := range list {
		if err := c.Validate(); err != nil {
			return nil, dnderr.Wrapf(err, "campaign %d", i)
		}
	}

	if list == nil {
		list = []*Campaign{}
	}
	return list, nil
}

// Validate checks the structural invariants a stored campaign must satisfy
func (c *Campaign) Validate() error {
	if c == nil {
		return dnderr.New(dnderr.CodeMalformedState, "campaign is null")
	}
	if c.ID == "" {
		return dnderr.New(dnderr.CodeMalformedState, "campaign has no id")
	}
	if c.Character == nil {
		return dnderr.Newf(dnderr.CodeMalformedState, "campaign %s has no character", c.ID).
			WithMeta("campaign_id", c.ID)
	}
	if c.Character.MaxHP <= 0 {
		return dnderr.Newf(dnderr.CodeMalformedState, "campaign %s character has max hp %d", c.ID, c.Character.MaxHP).
			WithMeta("campaign_id", c.ID)
	}
	if c.Gold < 0 {
		return dnderr.Newf(dnderr.CodeMalformedState, "campaign %s has negative gold", c.ID).
			WithMeta("campaign_id", c.ID)
	}
	for i, e := range c.Enemies {
		if e == nil {
			return dnderr.Newf(dnderr.CodeMalformedState, "campaign %s enemy %d is null", c.ID, i)
		}
		if e.MaxHP <= 0 || e.DamageDie < 1 {
			return dnderr.Newf(dnderr.CodeMalformedState, "campaign %s enemy %q has max hp %d and damage die d%d",
				c.ID, e.Name, e.MaxHP, e.DamageDie).
				WithMeta("campaign_id", c.ID)
		}
	}
	for name, npc := range c.NPCs {
		if npc == nil {
			return dnderr.Newf(dnderr.CodeMalformedState, "campaign %s npc %q is null", c.ID, name)
		}
	}
	for name, f := range c.Factions {
		if f == nil {
			return dnderr.Newf(dnderr.CodeMalformedState, "campaign %s faction %q is null", c.ID, name)
		}
	}
	return nil
}
