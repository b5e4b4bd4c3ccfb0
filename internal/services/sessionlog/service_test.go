package sessionlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
	"github.com/KirkDiggler/lumina-api/internal/pkg/clock"
	"github.com/KirkDiggler/lumina-api/internal/pkg/idgen"
	sessionlogrepo "github.com/KirkDiggler/lumina-api/internal/repositories/session_log"
	"github.com/KirkDiggler/lumina-api/internal/services/sessionlog"
)

type RecorderTestSuite struct {
	suite.Suite
	ctx      context.Context
	start    time.Time
	repo     *sessionlogrepo.InMemoryRepository
	recorder *sessionlog.Recorder
}

func (s *RecorderTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.start = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.repo = sessionlogrepo.NewInMemory()

	recorder, err := sessionlog.NewRecorder(&sessionlog.Config{
		Repository:  s.repo,
		Clock:       clock.NewStepping(s.start, time.Second),
		IDGenerator: idgen.NewSequential("log"),
	})
	s.Require().NoError(err)
	s.recorder = recorder
}

func (s *RecorderTestSuite) TestNewRecorderRequiresDependencies() {
	_, err := sessionlog.NewRecorder(&sessionlog.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = sessionlog.NewRecorder(nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RecorderTestSuite) TestRecordStampsEntries() {
	first, err := s.recorder.Record(s.ctx, &sessionlog.RecordInput{
		SessionID: "session_1",
		Category:  transformation.LogCategorySystem,
		Message:   "Journey started",
		Detail:    "Intention: open my heart",
	})
	s.Require().NoError(err)

	second, err := s.recorder.Record(s.ctx, &sessionlog.RecordInput{
		SessionID: "session_1",
		Category:  transformation.LogCategoryMove,
		Message:   "  Moved 3 steps  ",
	})
	s.Require().NoError(err)

	s.Equal("log_1", first.Entry.ID)
	s.Equal("log_2", second.Entry.ID)
	s.Equal(s.start, first.Entry.Timestamp)
	s.Equal(s.start.Add(time.Second), second.Entry.Timestamp)
	s.Equal("Moved 3 steps", second.Entry.Message)
	s.Empty(second.Entry.Detail)

	out, err := s.recorder.Entries(s.ctx, &sessionlog.EntriesInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)
	s.Equal("Journey started", out.Entries[0].Message)
	s.Equal(transformation.LogCategoryMove, out.Entries[1].Category)
}

func (s *RecorderTestSuite) TestRecordValidatesInput() {
	testCases := []struct {
		name  string
		input *sessionlog.RecordInput
	}{
		{name: "nil input", input: nil},
		{
			name:  "missing session",
			input: &sessionlog.RecordInput{Category: transformation.LogCategoryMove, Message: "m"},
		},
		{
			name:  "missing message",
			input: &sessionlog.RecordInput{SessionID: "s", Category: transformation.LogCategoryMove},
		},
		{
			name:  "unknown category",
			input: &sessionlog.RecordInput{SessionID: "s", Category: "DANCE", Message: "m"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.recorder.Record(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RecorderTestSuite) TestClearIsolatesSessions() {
	for _, id := range []string{"a", "a", "b"} {
		_, err := s.recorder.Record(s.ctx, &sessionlog.RecordInput{
			SessionID: id,
			Category:  transformation.LogCategoryCard,
			Message:   "Drew Courage",
		})
		s.Require().NoError(err)
	}

	cleared, err := s.recorder.Clear(s.ctx, &sessionlog.ClearInput{SessionID: "a"})
	s.Require().NoError(err)
	s.Equal(int64(2), cleared.EntriesDeleted)

	a, err := s.recorder.Entries(s.ctx, &sessionlog.EntriesInput{SessionID: "a"})
	s.Require().NoError(err)
	s.Empty(a.Entries)

	b, err := s.recorder.Entries(s.ctx, &sessionlog.EntriesInput{SessionID: "b"})
	s.Require().NoError(err)
	s.Len(b.Entries, 1)
}

func TestRecorderTestSuite(t *testing.T) {
	suite.Run(t, new(RecorderTestSuite))
}
