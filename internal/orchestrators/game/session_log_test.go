package game

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	narrativemock "github.com/KirkDiggler/lumina-api/internal/clients/narrative/mock"
	"github.com/KirkDiggler/lumina-api/internal/engine"
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
	"github.com/KirkDiggler/lumina-api/internal/pkg/idgen"
	"github.com/KirkDiggler/lumina-api/internal/services/sessionlog"
	sessionlogmock "github.com/KirkDiggler/lumina-api/internal/services/sessionlog/mock"
	"github.com/KirkDiggler/lumina-api/internal/testutils"
)

type SessionLogFailureTestSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	mockLog      *sessionlogmock.MockService
	roller       *testutils.ScriptedRoller
	orchestrator *Orchestrator
}

func TestSessionLogFailureTestSuite(t *testing.T) {
	suite.Run(t, new(SessionLogFailureTestSuite))
}

func (s *SessionLogFailureTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockLog = sessionlogmock.NewMockService(s.ctrl)
	s.roller = testutils.NewScriptedRoller()

	o, err := NewOrchestrator(&Config{
		Narrative:   narrativemock.NewMockClient(s.ctrl),
		SessionLog:  s.mockLog,
		Roller:      s.roller,
		EventBus:    events.NewBus(),
		IDGenerator: idgen.NewSequential("session"),
	})
	s.Require().NoError(err)
	s.orchestrator = o
}

func (s *SessionLogFailureTestSuite) TearDownTest() {
	s.orchestrator.Close()
	s.ctrl.Finish()
}

func (s *SessionLogFailureTestSuite) emptyLog() {
	s.mockLog.EXPECT().
		Entries(gomock.Any(), gomock.Any()).
		Return(&sessionlog.EntriesOutput{}, nil).
		AnyTimes()
}

func (s *SessionLogFailureTestSuite) TestRecordFailureKeepsStateChange() {
	s.emptyLog()
	s.mockLog.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("log store down")).
		AnyTimes()

	created, err := s.orchestrator.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)

	started, err := s.orchestrator.StartSession(s.ctx, &StartSessionInput{
		SessionID: created.SessionID,
		Intention: testutils.TestIntention,
	})
	s.Require().NoError(err)
	s.Equal(transformation.PhasePlaying, started.Session.Phase)

	// Square 8 is a tear, handled without the narrative provider
	sess, err := s.orchestrator.lookup(created.SessionID)
	s.Require().NoError(err)
	sess.mu.Lock()
	sess.progress.Position = 2
	sess.mu.Unlock()

	s.roller.Push(6)
	rolled, err := s.orchestrator.RollDice(s.ctx, &RollDiceInput{SessionID: created.SessionID})
	s.Require().NoError(err)

	s.Equal(8, rolled.Session.Progress.Position)
	s.Equal(engine.TearPain, rolled.Session.Progress.PainTokens)
	s.Equal(transformation.SuspensionIdle, rolled.Session.Suspension)
}

func (s *SessionLogFailureTestSuite) TestReadFailureSurfacesError() {
	s.mockLog.EXPECT().
		Entries(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("log store down"))

	_, err := s.orchestrator.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *SessionLogFailureTestSuite) TestClearFailureStillResets() {
	s.emptyLog()
	s.mockLog.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		Return(&sessionlog.RecordOutput{}, nil).
		AnyTimes()
	s.mockLog.EXPECT().
		Clear(gomock.Any(), &sessionlog.ClearInput{SessionID: "session_1"}).
		Return(nil, errors.Unavailable("log store down")).
		Times(2)

	created, err := s.orchestrator.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)
	_, err = s.orchestrator.StartSession(s.ctx, &StartSessionInput{
		SessionID: created.SessionID,
		Intention: testutils.TestIntention,
	})
	s.Require().NoError(err)

	reset, err := s.orchestrator.ResetSession(s.ctx, &ResetSessionInput{
		SessionID: created.SessionID,
		Confirmed: true,
	})
	s.Require().NoError(err)
	s.True(reset.Reset)
	s.Equal(transformation.PhaseSetup, reset.Session.Phase)
	s.Equal(transformation.SuspensionIdle, reset.Session.Suspension)

	_, err = s.orchestrator.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: created.SessionID})
	s.Require().NoError(err)

	_, err = s.orchestrator.GetSession(s.ctx, &GetSessionInput{SessionID: created.SessionID})
	s.True(errors.IsNotFound(err))
}

func (s *SessionLogFailureTestSuite) TestCancelledRequestStillRecords() {
	s.emptyLog()

	var recorded []string
	s.mockLog.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *sessionlog.RecordInput) (*sessionlog.RecordOutput, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			recorded = append(recorded, input.Message)
			return &sessionlog.RecordOutput{}, nil
		}).
		AnyTimes()

	created, err := s.orchestrator.CreateSession(s.ctx, &CreateSessionInput{})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err = s.orchestrator.StartSession(ctx, &StartSessionInput{
		SessionID: created.SessionID,
		Intention: testutils.TestIntention,
	})
	s.Require().NoError(err)

	sess, err := s.orchestrator.lookup(created.SessionID)
	s.Require().NoError(err)
	sess.mu.Lock()
	sess.progress.Position = 2
	sess.mu.Unlock()

	s.roller.Push(6)
	_, err = s.orchestrator.RollDice(ctx, &RollDiceInput{SessionID: created.SessionID})
	s.Require().NoError(err)

	s.Require().Len(recorded, 4)
	s.Equal(MessageJourneyStarted, recorded[0])
	s.Equal("Moved 6 steps", recorded[2])
	s.Equal("Tear square", recorded[3])
}
