// Package narrative is the client for the generative text provider that
// writes card content and level graduation messages.
package narrative

//go:generate mockgen -destination=mock/mock_client.go -package=narrativemock github.com/KirkDiggler/lumina-api/internal/clients/narrative Client

import (
	"context"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

// Client produces narrative content for the game
type Client interface {
	// GenerateCard writes a card for the square the player landed on
	GenerateCard(ctx context.Context, input *GenerateCardInput) (*GenerateCardOutput, error)

	// GenerateGraduationMessage writes a short congratulation for the level
	// the player just completed
	GenerateGraduationMessage(
		ctx context.Context,
		input *GenerateGraduationMessageInput,
	) (*GenerateGraduationMessageOutput, error)
}

// GenerateCardInput describes the landing that needs a card
type GenerateCardInput struct {
	Intention string
	Level     transformation.Level
	Square    transformation.SquareType
	// Source is empty for squares without a source choice
	Source transformation.CardSource
}

// GenerateCardOutput carries the generated card
type GenerateCardOutput struct {
	Card *transformation.Card
	// Fallback is true when the fixed fallback card was substituted
	Fallback bool
}

// GenerateGraduationMessageInput describes the completed level
type GenerateGraduationMessageInput struct {
	Intention string
	Level     transformation.Level
}

// GenerateGraduationMessageOutput carries the congratulation text
type GenerateGraduationMessageOutput struct {
	Message  string
	Fallback bool
}
