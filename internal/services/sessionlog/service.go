// Package sessionlog records the human readable session log. Entries get an
// ID and a timestamp here and are then appended to a repository; nothing in
// the rules ever reads them back.
package sessionlog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
	"github.com/KirkDiggler/lumina-api/internal/pkg/clock"
	"github.com/KirkDiggler/lumina-api/internal/pkg/idgen"
	sessionlogrepo "github.com/KirkDiggler/lumina-api/internal/repositories/session_log"
)

//go:generate mockgen -destination=mock/mock_service.go -package=sessionlogmock github.com/KirkDiggler/lumina-api/internal/services/sessionlog Service

// Service records and reads session logs
type Service interface {
	// Record stamps and appends one entry
	Record(ctx context.Context, input *RecordInput) (*RecordOutput, error)

	// Entries returns the session's log in insertion order
	Entries(ctx context.Context, input *EntriesInput) (*EntriesOutput, error)

	// Clear drops the session's log
	Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error)
}

// RecordInput is one log line to record
type RecordInput struct {
	SessionID string
	Category  transformation.LogCategory
	Message   string
	// Detail is optional
	Detail string
}

// RecordOutput contains the entry as stored
type RecordOutput struct {
	Entry *transformation.LogEntry
}

// EntriesInput selects a session's log
type EntriesInput struct {
	SessionID string
}

// EntriesOutput contains the session's log
type EntriesOutput struct {
	Entries []*transformation.LogEntry
}

// ClearInput selects the log to clear
type ClearInput struct {
	SessionID string
}

// ClearOutput reports how many entries were dropped
type ClearOutput struct {
	EntriesDeleted int64
}

// Config holds the dependencies of the recorder
type Config struct {
	Repository  sessionlogrepo.Repository
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

// Recorder implements Service
type Recorder struct {
	repo  sessionlogrepo.Repository
	clock clock.Clock
	idGen idgen.Generator
}

// NewRecorder creates a session log recorder
func NewRecorder(cfg *Config) (*Recorder, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Recorder{
		repo:  cfg.Repository,
		clock: cfg.Clock,
		idGen: cfg.IDGenerator,
	}, nil
}

// Ensure Recorder implements Service
var _ Service = (*Recorder)(nil)

// Record stamps and appends one entry
func (r *Recorder) Record(ctx context.Context, input *RecordInput) (*RecordOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("session_id", input.SessionID, vb)
	errors.ValidateRequired("message", input.Message, vb)
	if !input.Category.IsValid() {
		vb.InvalidField("category", string(input.Category))
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	entry := &transformation.LogEntry{
		ID:        r.idGen.Generate(),
		Category:  input.Category,
		Message:   strings.TrimSpace(input.Message),
		Detail:    strings.TrimSpace(input.Detail),
		Timestamp: r.clock.Now(),
	}

	if _, err := r.repo.Append(ctx, &sessionlogrepo.AppendInput{
		SessionID: input.SessionID,
		Entry:     entry,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to record %s entry", input.Category)
	}

	slog.Debug("Session log entry recorded",
		"session_id", input.SessionID,
		"entry_id", entry.ID,
		"category", entry.Category,
		"message", entry.Message,
	)

	return &RecordOutput{Entry: entry}, nil
}

// Entries returns the session's log in insertion order
func (r *Recorder) Entries(ctx context.Context, input *EntriesInput) (*EntriesOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := r.repo.List(ctx, &sessionlogrepo.ListInput{SessionID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list session log")
	}

	return &EntriesOutput{Entries: out.Entries}, nil
}

// Clear drops the session's log
func (r *Recorder) Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := r.repo.Clear(ctx, &sessionlogrepo.ClearInput{SessionID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear session log")
	}

	return &ClearOutput{EntriesDeleted: out.EntriesDeleted}, nil
}
