package game

import (
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

// Snapshot is everything a presentation layer can observe about a session
type Snapshot struct {
	SessionID  string                    `json:"session_id"`
	Phase      transformation.Phase      `json:"phase"`
	Suspension transformation.Suspension `json:"suspension"`
	// Progress holds the initial values until the journey starts
	Progress *transformation.Progress `json:"progress"`

	Loading        bool `json:"loading"`
	AwaitingSource bool `json:"awaiting_source"`
	CardReady      bool `json:"card_ready"`

	// PendingSquare is the narrative square being resolved, if any
	PendingSquare transformation.SquareType `json:"pending_square,omitempty"`
	// CurrentCard is set once a card is ready to acknowledge
	CurrentCard *transformation.Card `json:"current_card,omitempty"`

	Log []*transformation.LogEntry `json:"log"`
}

// CreateSessionInput is the input for CreateSession
type CreateSessionInput struct{}

// CreateSessionOutput is the output for CreateSession
type CreateSessionOutput struct {
	SessionID string    `json:"session_id"`
	Session   *Snapshot `json:"session"`
}

// StartSessionInput is the input for StartSession
type StartSessionInput struct {
	SessionID string
	Intention string
}

// StartSessionOutput is the output for StartSession
type StartSessionOutput struct {
	Session *Snapshot `json:"session"`
}

// RollDiceInput is the input for RollDice
type RollDiceInput struct {
	SessionID string
}

// RollDiceOutput is the output for RollDice
type RollDiceOutput struct {
	Roll     int  `json:"roll"`
	Movement int  `json:"movement"`
	Blocked  bool `json:"blocked"`
	// Square is the landed square; empty on a graduation attempt or block
	Square  transformation.SquareType `json:"square,omitempty"`
	Session *Snapshot                 `json:"session"`
}

// ChooseSourceInput is the input for ChooseSource
type ChooseSourceInput struct {
	SessionID string
	Source    transformation.CardSource
}

// ChooseSourceOutput is the output for ChooseSource
type ChooseSourceOutput struct {
	Session *Snapshot `json:"session"`
}

// AcknowledgeCardInput is the input for AcknowledgeCard
type AcknowledgeCardInput struct {
	SessionID string
}

// AcknowledgeCardOutput is the output for AcknowledgeCard
type AcknowledgeCardOutput struct {
	Card *transformation.Card `json:"card"`
	// LeveledUp is true when the angel condition forced a level-up
	LeveledUp bool      `json:"leveled_up"`
	Session   *Snapshot `json:"session"`
}

// ClearPainInput is the input for ClearPain
type ClearPainInput struct {
	SessionID string
}

// ClearPainOutput is the output for ClearPain
type ClearPainOutput struct {
	Session *Snapshot `json:"session"`
}

// ResetSessionInput is the input for ResetSession
type ResetSessionInput struct {
	SessionID string
	// Confirmed must be true; an unconfirmed reset leaves the session unchanged
	Confirmed bool
}

// ResetSessionOutput is the output for ResetSession
type ResetSessionOutput struct {
	Reset   bool      `json:"reset"`
	Session *Snapshot `json:"session"`
}

// GetSessionInput is the input for GetSession
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput is the output for GetSession
type GetSessionOutput struct {
	Session *Snapshot `json:"session"`
}

// DeleteSessionInput is the input for DeleteSession
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionOutput is the output for DeleteSession
type DeleteSessionOutput struct{}
