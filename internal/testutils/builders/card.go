package builders

import (
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

// CardBuilder provides a fluent interface for building test Card instances
type CardBuilder struct {
	card *transformation.Card
}

// NewCardBuilder creates a card with text and no effect
func NewCardBuilder() *CardBuilder {
	return &CardBuilder{
		card: &transformation.Card{
			Title:       "Courage",
			Description: "Courage walks beside you.",
			Action:      "Name one fear out loud.",
		},
	}
}

// WithTitle sets the title
func (b *CardBuilder) WithTitle(title string) *CardBuilder {
	b.card.Title = title
	return b
}

// WithEffect sets the token deltas
func (b *CardBuilder) WithEffect(awareness, pain, service int) *CardBuilder {
	b.card.Effect = transformation.Effect{Awareness: awareness, Pain: pain, Service: service}
	return b
}

// Build returns a copy of the built card
func (b *CardBuilder) Build() *transformation.Card {
	c := *b.card
	return &c
}
