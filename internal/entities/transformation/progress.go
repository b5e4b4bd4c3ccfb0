package transformation

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// Progress is the single mutable record of a player's journey. It is owned
// by one session and mutated only by the engine.
type Progress struct {
	Intention       string   `json:"intention"`
	CurrentLevel    Level    `json:"current_level"`
	Position        int      `json:"position"`
	AwarenessTokens int      `json:"awareness_tokens"`
	PainTokens      int      `json:"pain_tokens"`
	ServiceTokens   int      `json:"service_tokens"`
	Angels          []string `json:"angels"`
}

// NewProgress starts a journey at the beginning of the Physical level
func NewProgress(intention string) *Progress {
	return &Progress{
		Intention:    strings.TrimSpace(intention),
		CurrentLevel: LevelPhysical,
		Angels:       []string{},
	}
}

// Clone returns a deep copy
func (p *Progress) Clone() *Progress {
	if p == nil {
		return nil
	}
	c := *p
	c.Angels = slices.Clone(p.Angels)
	if c.Angels == nil {
		c.Angels = []string{}
	}
	return &c
}

// Validate checks the progress invariants
func (p *Progress) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("intention", p.Intention, vb)
	if !p.CurrentLevel.IsValid() {
		vb.InvalidField("current_level", string(p.CurrentLevel))
	}
	errors.ValidateRange("position", p.Position, 0, TrackLength, vb)
	if p.AwarenessTokens < 0 {
		vb.Field("awareness_tokens", "must not be negative")
	}
	if p.PainTokens < 0 {
		vb.Field("pain_tokens", "must not be negative")
	}
	if p.ServiceTokens < 0 {
		vb.Field("service_tokens", "must not be negative")
	}

	return vb.Build()
}

// CanClearPain reports whether one awareness token can be spent on one pain token
func (p *Progress) CanClearPain() bool {
	return p.AwarenessTokens >= 1 && p.PainTokens >= 1
}
