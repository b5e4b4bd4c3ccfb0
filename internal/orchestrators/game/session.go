package game

import (
	"context"
	"sync"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// session is one game instance. All fields are guarded by mu; turns and
// async completions for the same session never interleave.
type session struct {
	mu sync.Mutex

	id     string
	player *player

	phase      transformation.Phase
	suspension transformation.Suspension
	progress   *transformation.Progress

	pendingSquare transformation.SquareType
	pendingSource transformation.CardSource
	card          *transformation.Card

	// generation increments on every reset. Background work captures it at
	// start and drops its result when it no longer matches.
	generation uint64
	// workCtx parents all background work of the current generation
	workCtx    context.Context
	cancelWork context.CancelFunc

	deleted bool
}

func newSession(parent context.Context, id string) *session {
	s := &session{
		id:     id,
		player: &player{sessionID: id},
	}
	s.workCtx, s.cancelWork = context.WithCancel(parent)
	s.clear()
	return s
}

// clear puts the session back to SETUP with initial progress
func (s *session) clear() {
	s.phase = transformation.PhaseSetup
	s.progress = transformation.NewProgress("")
	s.clearSuspension()
}

func (s *session) clearSuspension() {
	s.suspension = transformation.SuspensionIdle
	s.pendingSquare = ""
	s.pendingSource = ""
	s.card = nil
}

// abandonWork cancels every in-flight fetch and starts a new generation
func (s *session) abandonWork(parent context.Context) {
	s.cancelWork()
	s.generation++
	s.workCtx, s.cancelWork = context.WithCancel(parent)
}

// isCurrent reports whether background work started at gen may still
// touch the session
func (s *session) isCurrent(gen uint64) bool {
	return !s.deleted && s.generation == gen
}

func (s *session) requireAlive() error {
	if s.deleted {
		return errors.NotFoundf("session %s not found", s.id)
	}
	return nil
}

func (s *session) requirePhase(phase transformation.Phase) error {
	if err := s.requireAlive(); err != nil {
		return err
	}
	if s.phase != phase {
		return errors.FailedPreconditionf("session is %s, expected %s", s.phase, phase).
			WithMeta("phase", string(s.phase))
	}
	return nil
}

func (s *session) requireSuspension(suspension transformation.Suspension) error {
	if err := s.requirePhase(transformation.PhasePlaying); err != nil {
		return err
	}
	if s.suspension != suspension {
		return errors.FailedPreconditionf("turn is %s, expected %s", s.suspension, suspension).
			WithMeta("suspension", string(s.suspension))
	}
	return nil
}
