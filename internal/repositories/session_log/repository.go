// Package sessionlog provides the repository interface and backends for
// session log entries
package sessionlog

import (
	"context"
	"time"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionlogmock github.com/KirkDiggler/lumina-api/internal/repositories/session_log Repository

const (
	// DefaultTTL bounds how long a session log is kept by backends that expire data
	DefaultTTL = 24 * time.Hour

	errSessionIDEmpty = "session ID cannot be empty"
	errEntryNil       = "entry cannot be nil"
	errEntryIDEmpty   = "entry ID cannot be empty"
)

// AppendInput contains the entry to add to the end of a session's log
type AppendInput struct {
	SessionID string
	Entry     *transformation.LogEntry
}

// AppendOutput contains the result of an append
type AppendOutput struct {
	// Length is the number of entries in the log after the append
	Length int64
}

// ListInput contains parameters for reading a session's log
type ListInput struct {
	SessionID string
}

// ListOutput contains the entries in insertion order
type ListOutput struct {
	Entries []*transformation.LogEntry
}

// ClearInput contains parameters for clearing a session's log
type ClearInput struct {
	SessionID string
}

// ClearOutput contains the result of clearing a log
type ClearOutput struct {
	EntriesDeleted int64
}

// Repository stores append-only session logs. Insertion order is canonical
// and entries are never edited; Clear drops a whole log at once.
type Repository interface {
	// Append adds an entry to the end of the session's log
	Append(ctx context.Context, input *AppendInput) (*AppendOutput, error)

	// List returns every entry of the session's log in insertion order. An
	// unknown session has an empty log.
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Clear removes the session's log
	Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error)
}
