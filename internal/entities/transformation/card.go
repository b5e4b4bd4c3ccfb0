package transformation

// Effect is a token delta tuple. Zero means no change; negative values are
// allowed and are floor-clamped at apply time.
type Effect struct {
	Awareness int `json:"awareness"`
	Pain      int `json:"pain"`
	Service   int `json:"service"`
}

// Card is narrative content produced for one triggered square. It is
// consumed once on acknowledgement and never stored in Progress.
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Effect      Effect `json:"effect"`
}

// CardSource is where a card is drawn from on Inspiration and Obstacle
// squares. The choice changes the narrative framing only.
type CardSource string

// Card sources
const (
	CardSourceEnvelope CardSource = "ENVELOPE"
	CardSourceDeck     CardSource = "DECK"
)

// IsValid reports whether s is a known source
func (s CardSource) IsValid() bool {
	return s == CardSourceEnvelope || s == CardSourceDeck
}

// DisplayName returns how the source is described to the player
func (s CardSource) DisplayName() string {
	switch s {
	case CardSourceEnvelope:
		return "subconscious envelope"
	case CardSourceDeck:
		return "common deck"
	default:
		return string(s)
	}
}
