package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	"github.com/bwmarrin/discordgo"
)

// quick actions offered under each reply, in display order
var buttons = []struct {
	Label  string
	Action string
	Style  discordgo.ButtonStyle
}{
	{Label: "Attack", Action: "attack", Style: discordgo.DangerButton},
	{Label: "Explore", Action: "explore", Style: discordgo.PrimaryButton},
	{Label: "Rest", Action: "rest", Style: discordgo.SecondaryButton},
	{Label: "Loot", Action: "loot", Style: discordgo.SecondaryButton},
}

// ActionButtons is the row of quick-action buttons for a campaign
func ActionButtons(campaignID string) []discordgo.MessageComponent {
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		id, err := NewCustomID(b.Action, campaignID).Encode()
		if err != nil {
			// campaign IDs too long for a custom ID get untargeted buttons
			id, _ = NewCustomID(b.Action, "").Encode()
		}
		row.Components = append(row.Components, discordgo.Button{
			Label:    b.Label,
			Style:    b.Style,
			CustomID: id,
		})
	}
	return []discordgo.MessageComponent{row}
}

// ButtonAction maps a button's custom ID back to the action text it sends
// and the campaign it was rendered for
func ButtonAction(customID string) (action, campaignID string, ok bool) {
	parsed, err := ParseCustomID(customID)
	if err != nil || parsed.Domain != CommandName {
		return "", "", false
	}
	for _, b := range buttons {
		if b.Action == parsed.Action {
			return parsed.Action, parsed.Target, true
		}
	}
	return "", "", false
}

// RenderLines joins an optional header and lines into one message. When the
// result is too long the oldest lines are dropped.
func RenderLines(header string, lines []string) string {
	budget := MaxMessageLength
	if header != "" {
		budget -= len(header) + 1
	}

	var kept []string
	used := 0
	for i := len(lines) - 1; i >= 0; i-- {
		cost := len(lines[i]) + 1
		if used+cost > budget {
			break
		}
		used += cost
		kept = append(kept, lines[i])
	}
	for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
		kept[l], kept[r] = kept[r], kept[l]
	}

	body := strings.Join(kept, "\n")
	if header == "" {
		return body
	}
	if body == "" {
		return header
	}
	return header + "\n" + body
}

// RenderList shows an owner's campaigns, marking the active one
func RenderList(list []*campaign.Campaign, activeID string) string {
	if len(list) == 0 {
		return "You have no campaigns yet. Start one with `/mythweaver new`."
	}

	lines := make([]string, 0, len(list))
	for _, c := range list {
		marker := ""
		if c.ID == activeID {
			marker = " (active)"
		}
		status := "alive"
		if !c.Character.Alive {
			status = "fallen"
		}
		lines = append(lines, fmt.Sprintf("`%s` **%s**%s: %s, %s, last played %s",
			c.ID, c.Name, marker, c.Character.Name, status, c.LastPlayed.Format("2006-01-02 15:04")))
	}
	return RenderLines("Your campaigns:", lines)
}
