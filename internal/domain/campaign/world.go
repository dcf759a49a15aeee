package campaign

// Beat is a stage of the narrative cycle
type Beat string

const (
	BeatNone        Beat = ""
	BeatStart       Beat = "start"
	BeatExplore     Beat = "explore"
	BeatConsequence Beat = "consequence"
	BeatEscalation  Beat = "escalation"
)

// WorldState is what the world remembers between turns
type WorldState struct {
	Turn           int      `json:"turn"`
	Tension        int      `json:"tension"`
	Described      bool     `json:"described"`
	LastBeat       Beat     `json:"last_beat"`
	Rumors         []string `json:"rumors"`
	Events         []string `json:"events"`
	TurnsSinceRest int      `json:"turns_since_rest"`
}
