// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/testutils"
)

// ProgressBuilder provides a fluent interface for building test Progress instances
type ProgressBuilder struct {
	progress *transformation.Progress
}

// NewProgressBuilder creates a new builder at the start of the Physical level
func NewProgressBuilder() *ProgressBuilder {
	return &ProgressBuilder{
		progress: transformation.NewProgress(testutils.TestIntention),
	}
}

// WithIntention sets the intention
func (b *ProgressBuilder) WithIntention(intention string) *ProgressBuilder {
	b.progress.Intention = intention
	return b
}

// WithLevel sets the current level
func (b *ProgressBuilder) WithLevel(level transformation.Level) *ProgressBuilder {
	b.progress.CurrentLevel = level
	return b
}

// WithPosition sets the track position
func (b *ProgressBuilder) WithPosition(position int) *ProgressBuilder {
	b.progress.Position = position
	return b
}

// WithAwareness sets the awareness tokens
func (b *ProgressBuilder) WithAwareness(n int) *ProgressBuilder {
	b.progress.AwarenessTokens = n
	return b
}

// WithPain sets the pain tokens
func (b *ProgressBuilder) WithPain(n int) *ProgressBuilder {
	b.progress.PainTokens = n
	return b
}

// WithService sets the service tokens
func (b *ProgressBuilder) WithService(n int) *ProgressBuilder {
	b.progress.ServiceTokens = n
	return b
}

// WithAngels replaces the collected angels
func (b *ProgressBuilder) WithAngels(angels ...string) *ProgressBuilder {
	b.progress.Angels = append([]string{}, angels...)
	return b
}

// Build returns a copy of the built progress
func (b *ProgressBuilder) Build() *transformation.Progress {
	return b.progress.Clone()
}
