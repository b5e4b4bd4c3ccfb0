package sessionlog

import (
	"context"
	"sync"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]transformation.LogEntry
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]transformation.LogEntry),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Append adds an entry to the end of the session's log
func (r *InMemoryRepository) Append(_ context.Context, input *AppendInput) (*AppendOutput, error) {
	if err := validateAppend(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.SessionID] = append(r.store[input.SessionID], *input.Entry)

	return &AppendOutput{Length: int64(len(r.store[input.SessionID]))}, nil
}

// List returns copies of the session's entries in insertion order
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.store[input.SessionID]
	entries := make([]*transformation.LogEntry, len(stored))
	for i := range stored {
		entry := stored[i]
		entries[i] = &entry
	}

	return &ListOutput{Entries: entries}, nil
}

// Clear removes the session's log
func (r *InMemoryRepository) Clear(_ context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.store[input.SessionID]))
	delete(r.store, input.SessionID)

	return &ClearOutput{EntriesDeleted: deleted}, nil
}
