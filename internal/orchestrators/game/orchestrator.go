// Package game runs Lumina sessions. Each session owns its Player Progress
// and moves through an explicit suspension state while cards are pending;
// rules are delegated to the engine package.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/lumina-api/internal/orchestrators/game Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/lumina-api/internal/clients/narrative"
	"github.com/KirkDiggler/lumina-api/internal/engine"
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
	"github.com/KirkDiggler/lumina-api/internal/pkg/idgen"
	"github.com/KirkDiggler/lumina-api/internal/services/sessionlog"
)

// DefaultNarrativeTimeout bounds every narrative provider call
const DefaultNarrativeTimeout = 20 * time.Second

// Log messages shared with tests and adapters
const (
	MessageJourneyStarted = "Journey started"
	MessageClearedTear    = "Cleared a tear"
	MessageOracleFailed   = "Consulting the oracle failed."
)

// Service defines the commands and observables of a game session
type Service interface {
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	ChooseSource(ctx context.Context, input *ChooseSourceInput) (*ChooseSourceOutput, error)
	AcknowledgeCard(ctx context.Context, input *AcknowledgeCardInput) (*AcknowledgeCardOutput, error)
	ClearPain(ctx context.Context, input *ClearPainInput) (*ClearPainOutput, error)
	ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Narrative   narrative.Client
	SessionLog  sessionlog.Service
	Roller      dice.Roller
	EventBus    events.EventBus
	IDGenerator idgen.Generator

	// NarrativeTimeout defaults to DefaultNarrativeTimeout
	NarrativeTimeout time.Duration
	// Locale selects the graduation fallback text; defaults to English
	Locale string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Narrative == nil {
		vb.RequiredField("Narrative")
	}
	if c.SessionLog == nil {
		vb.RequiredField("SessionLog")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.NarrativeTimeout < 0 {
		vb.Field("NarrativeTimeout", "must not be negative")
	}
	if c.NarrativeTimeout == 0 {
		c.NarrativeTimeout = DefaultNarrativeTimeout
	}
	if c.Locale == "" {
		c.Locale = "en"
	}

	return vb.Build()
}

// Orchestrator implements Service over an in-process session registry
type Orchestrator struct {
	narrative narrative.Client
	log       sessionlog.Service
	roller    dice.Roller
	eventBus  events.EventBus
	idGen     idgen.Generator
	timeout   time.Duration
	locale    string

	mu       sync.RWMutex
	sessions map[string]*session

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		narrative: cfg.Narrative,
		log:       cfg.SessionLog,
		roller:    cfg.Roller,
		eventBus:  cfg.EventBus,
		idGen:     cfg.IDGenerator,
		timeout:   cfg.NarrativeTimeout,
		locale:    cfg.Locale,
		sessions:  make(map[string]*session),
		baseCtx:   baseCtx,
		cancel:    cancel,
	}, nil
}

// Ensure Orchestrator implements Service
var _ Service = (*Orchestrator)(nil)

// Wait blocks until all in-flight narrative calls have settled
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Close cancels in-flight narrative calls and waits for them to settle
func (o *Orchestrator) Close() {
	o.cancel()
	o.wg.Wait()
}

func (o *Orchestrator) lookup(id string) (*session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	s, ok := o.sessions[id]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", id).WithMeta("session_id", id)
	}
	return s, nil
}

// CreateSession registers a new session in SETUP
func (o *Orchestrator) CreateSession(ctx context.Context, _ *CreateSessionInput) (*CreateSessionOutput, error) {
	s := newSession(o.baseCtx, o.idGen.Generate())

	o.mu.Lock()
	o.sessions[s.id] = s
	o.mu.Unlock()

	slog.Info("Session created", "session_id", s.id)

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := o.snapshot(ctx, s)
	if err != nil {
		return nil, err
	}
	return &CreateSessionOutput{SessionID: s.id, Session: snap}, nil
}

// StartSession begins the journey with the player's intention
func (o *Orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	intention := strings.TrimSpace(input.Intention)
	if intention == "" {
		return nil, errors.InvalidArgument("intention is required")
	}

	s, err := o.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePhase(transformation.PhaseSetup); err != nil {
		return nil, err
	}

	s.progress = transformation.NewProgress(intention)
	s.phase = transformation.PhasePlaying
	s.clearSuspension()

	o.record(ctx, s, transformation.LogCategorySystem, MessageJourneyStarted, "Intention: "+intention)
	o.record(ctx, s, transformation.LogCategorySystem,
		fmt.Sprintf("Entered the %s level", s.progress.CurrentLevel.DisplayName()),
		s.progress.CurrentLevel.Description())
	o.publish(ctx, s, EventSessionStarted, map[string]any{
		EventKeyLevel: string(s.progress.CurrentLevel),
	})

	slog.Info("Session started", "session_id", s.id)

	snap, err := o.snapshot(ctx, s)
	if err != nil {
		return nil, err
	}
	return &StartSessionOutput{Session: snap}, nil
}

// RollDice plays one turn
func (o *Orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSuspension(transformation.SuspensionIdle); err != nil {
		return nil, err
	}

	roll, err := engine.RollDie(o.roller)
	if err != nil {
		return nil, err
	}

	turn, err := engine.ResolveTurn(s.progress, roll)
	if err != nil {
		return nil, err
	}
	s.progress = turn.Progress

	o.record(ctx, s, transformation.LogCategoryMove, turn.Message, turn.Detail)
	o.publish(ctx, s, EventTurnResolved, map[string]any{
		EventKeyRoll:     roll,
		EventKeyPosition: s.progress.Position,
		EventKeyLevel:    string(s.progress.CurrentLevel),
	})

	output := &RollDiceOutput{
		Roll:     turn.Roll,
		Movement: turn.Movement,
		Blocked:  turn.Blocked,
	}

	switch {
	case turn.Blocked:
	case turn.GraduationAttempt:
		if err := o.attemptGraduation(ctx, s); err != nil {
			return nil, err
		}
	case turn.HasSquare:
		output.Square = turn.Square
		if err := o.resolveSquare(ctx, s, turn.Square); err != nil {
			return nil, err
		}
	}

	output.Session, err = o.snapshot(ctx, s)
	if err != nil {
		return nil, err
	}
	return output, nil
}

func (o *Orchestrator) attemptGraduation(ctx context.Context, s *session) error {
	grad, err := engine.AttemptGraduation(s.progress)
	if err != nil {
		return err
	}

	if grad.Blocked {
		s.progress = grad.Progress
		o.record(ctx, s, transformation.LogCategorySystem, grad.Message, grad.Detail)
		o.publish(ctx, s, EventGraduationBlocked, map[string]any{
			EventKeyPain:     grad.PendingPain,
			EventKeyPosition: s.progress.Position,
			EventKeyLevel:    string(s.progress.CurrentLevel),
		})
		return nil
	}

	o.applyLevelUp(ctx, s, grad.LevelUp)
	return nil
}

func (o *Orchestrator) resolveSquare(ctx context.Context, s *session, sq transformation.SquareType) error {
	switch {
	case engine.IsDeterministic(sq):
		outcome, err := engine.ApplySquare(s.progress, sq)
		if err != nil {
			return err
		}
		s.progress = outcome.Progress
		if outcome.Message != "" {
			o.record(ctx, s, transformation.LogCategorySystem, outcome.Message, outcome.Detail)
		}
		if outcome.ForceLevelUp {
			return o.forceLevelUp(ctx, s)
		}
		return nil

	case engine.NeedsSourceChoice(sq):
		s.suspension = transformation.SuspensionAwaitingSourceChoice
		s.pendingSquare = sq
		return nil

	case engine.NeedsNarrative(sq):
		s.pendingSquare = sq
		o.startCardFetch(s)
		return nil

	default:
		return errors.Internalf("no rule resolves square %s", sq)
	}
}

func (o *Orchestrator) forceLevelUp(ctx context.Context, s *session) error {
	outcome, err := engine.LevelUp(s.progress)
	if err != nil {
		return err
	}
	o.applyLevelUp(ctx, s, outcome)
	return nil
}

// applyLevelUp commits a level transition immediately; the congratulation
// arrives later as its own log entry.
func (o *Orchestrator) applyLevelUp(ctx context.Context, s *session, outcome *engine.LevelUpOutcome) {
	s.progress = outcome.Progress

	if outcome.Completed {
		s.phase = transformation.PhaseComplete
		s.clearSuspension()
		o.record(ctx, s, transformation.LogCategorySystem, outcome.Message, outcome.Detail)
		o.publish(ctx, s, EventSessionCompleted, map[string]any{
			EventKeyLevel: string(outcome.From),
		})
		slog.Info("Session completed", "session_id", s.id)
		return
	}

	o.record(ctx, s, transformation.LogCategorySystem, outcome.Message, outcome.To.Description())
	o.publish(ctx, s, EventLevelUp, map[string]any{
		EventKeyFromLevel: string(outcome.From),
		EventKeyToLevel:   string(outcome.To),
		EventKeyLevel:     string(outcome.To),
	})
	o.requestGraduationMessage(s, outcome.From)
}

// ChooseSource picks the card source for a pending Inspiration or Obstacle
func (o *Orchestrator) ChooseSource(ctx context.Context, input *ChooseSourceInput) (*ChooseSourceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Source.IsValid() {
		return nil, errors.InvalidArgumentf("unknown card source %q", input.Source).
			WithMeta("source", string(input.Source))
	}

	s, err := o.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSuspension(transformation.SuspensionAwaitingSourceChoice); err != nil {
		return nil, err
	}

	s.pendingSource = input.Source
	o.record(ctx, s, transformation.LogCategorySystem,
		s.pendingSquare.DisplayName(),
		fmt.Sprintf("Drawing a card from the %s...", input.Source.DisplayName()))
	o.startCardFetch(s)

	snap, err := o.snapshot(ctx, s)
	if err != nil {
		return nil, err
	}
	return &ChooseSourceOutput{Session: snap}, nil
}

// AcknowledgeCard applies the displayed card
func (o *Orchestrator) AcknowledgeCard(ctx context.Context, input *AcknowledgeCardInput) (*AcknowledgeCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSuspension(transformation.SuspensionCardReady); err != nil {
		return nil, err
	}

	card := s.card
	outcome, err := engine.ApplyCard(s.progress, s.pendingSquare, card)
	if err != nil {
		return nil, err
	}

	s.progress = outcome.Progress
	s.clearSuspension()

	o.record(ctx, s, transformation.LogCategoryCard, outcome.Message, outcome.Detail)
	o.publish(ctx, s, EventCardApplied, map[string]any{
		EventKeySquare:    string(outcome.Square),
		EventKeyCardTitle: card.Title,
		EventKeyLevel:     string(s.progress.CurrentLevel),
	})

	output := &AcknowledgeCardOutput{Card: card}
	if outcome.AngelGraduation {
		if err := o.forceLevelUp(ctx, s); err != nil {
			return nil, err
		}
		output.LeveledUp = true
	}

	output.Session, err = o.snapshot(ctx, s)
	if err != nil {
		return nil, err
	}
	return output, nil
}

// ClearPain spends one awareness token to clear one tear
func (o *Orchestrator) ClearPain(ctx context.Context, input *ClearPainInput) (*ClearPainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSuspension(transformation.SuspensionIdle); err != nil {
		return nil, err
	}

	next, err := engine.ClearPain(s.progress)
	if err != nil {
		return nil, err
	}
	s.progress = next

	o.record(ctx, s, transformation.LogCategorySystem, MessageClearedTear,
		"Spent 1 awareness token to clear 1 tear.")

	snap, err := o.snapshot(ctx, s)
	if err != nil {
		return nil, err
	}
	return &ClearPainOutput{Session: snap}, nil
}

// ResetSession abandons pending work and returns the session to SETUP. An
// unconfirmed reset changes nothing.
func (o *Orchestrator) ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAlive(); err != nil {
		return nil, err
	}

	if input.Confirmed {
		o.resetLocked(ctx, s)
		o.publish(ctx, s, EventSessionReset, nil)
		slog.Info("Session reset", "session_id", s.id)
	}

	snap, err := o.snapshot(ctx, s)
	if err != nil {
		return nil, err
	}
	return &ResetSessionOutput{Reset: input.Confirmed, Session: snap}, nil
}

// resetLocked returns s to SETUP. The state change stands even when the log
// cannot be cleared. Called with s.mu held.
func (o *Orchestrator) resetLocked(ctx context.Context, s *session) {
	s.abandonWork(o.baseCtx)
	s.clear()

	if _, err := o.log.Clear(context.WithoutCancel(ctx), &sessionlog.ClearInput{SessionID: s.id}); err != nil {
		slog.Error("Failed to clear session log",
			"session_id", s.id,
			"error", err,
		)
	}
}

// GetSession returns a snapshot of the session
func (o *Orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAlive(); err != nil {
		return nil, err
	}

	snap, err := o.snapshot(ctx, s)
	if err != nil {
		return nil, err
	}
	return &GetSessionOutput{Session: snap}, nil
}

// DeleteSession resets the session and drops it from the registry
func (o *Orchestrator) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.lookup(input.SessionID)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	delete(o.sessions, s.id)
	o.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAlive(); err != nil {
		return nil, err
	}

	o.resetLocked(ctx, s)
	s.deleted = true
	s.cancelWork()

	slog.Info("Session deleted", "session_id", s.id)
	return &DeleteSessionOutput{}, nil
}

// startCardFetch suspends the turn until the narrative provider answers.
// Called with s.mu held.
func (o *Orchestrator) startCardFetch(s *session) {
	s.suspension = transformation.SuspensionAwaitingCard

	gen := s.generation
	input := &narrative.GenerateCardInput{
		Intention: s.progress.Intention,
		Level:     s.progress.CurrentLevel,
		Square:    s.pendingSquare,
		Source:    s.pendingSource,
	}
	ctx, cancel := context.WithTimeout(s.workCtx, o.timeout)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer cancel()

		out, err := o.narrative.GenerateCard(ctx, input)
		o.finishCardFetch(s, gen, out, err)
	}()
}

func (o *Orchestrator) finishCardFetch(s *session, gen uint64, out *narrative.GenerateCardOutput, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isCurrent(gen) || s.suspension != transformation.SuspensionAwaitingCard {
		slog.Debug("Dropping stale card", "session_id", s.id)
		return
	}

	// Background completions are not tied to any request context
	ctx := o.baseCtx

	if err == nil && (out == nil || out.Card == nil) {
		err = errors.Internal("narrative provider returned no card")
	}
	if err != nil {
		slog.Error("Card fetch failed",
			"session_id", s.id,
			"square", s.pendingSquare,
			"error", err,
		)
		s.clearSuspension()
		o.record(ctx, s, transformation.LogCategoryError, MessageOracleFailed, errors.GetMessage(err))
		return
	}

	card := *out.Card
	s.card = &card
	s.suspension = transformation.SuspensionCardReady

	slog.Debug("Card ready",
		"session_id", s.id,
		"square", s.pendingSquare,
		"title", card.Title,
		"fallback", out.Fallback,
	)
}

// requestGraduationMessage fetches the congratulation for completing level
// without holding up the transition. Called with s.mu held.
func (o *Orchestrator) requestGraduationMessage(s *session, level transformation.Level) {
	gen := s.generation
	input := &narrative.GenerateGraduationMessageInput{
		Intention: s.progress.Intention,
		Level:     level,
	}
	ctx, cancel := context.WithTimeout(s.workCtx, o.timeout)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer cancel()

		message := ""
		out, err := o.narrative.GenerateGraduationMessage(ctx, input)
		switch {
		case err != nil:
			slog.Warn("Graduation message failed, using fallback",
				"session_id", s.id,
				"level", level,
				"error", err,
			)
		case out != nil:
			message = strings.TrimSpace(out.Message)
		}
		if message == "" {
			message = narrative.FallbackGraduationMessage(o.locale)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.isCurrent(gen) {
			return
		}
		o.record(o.baseCtx, s, transformation.LogCategorySystem,
			fmt.Sprintf("Completed the %s level", level.DisplayName()), message)
	}()
}

// record appends to the session log. Log failures never roll back game
// state; they are reported through slog. The entry belongs to a committed
// transition, so a cancelled caller does not stop it.
func (o *Orchestrator) record(
	ctx context.Context,
	s *session,
	category transformation.LogCategory,
	message, detail string,
) {
	if _, err := o.log.Record(context.WithoutCancel(ctx), &sessionlog.RecordInput{
		SessionID: s.id,
		Category:  category,
		Message:   message,
		Detail:    detail,
	}); err != nil {
		slog.Error("Failed to record session log entry",
			"session_id", s.id,
			"category", category,
			"message", message,
			"error", err,
		)
	}
}

// snapshot copies the observable state. Called with s.mu held.
func (o *Orchestrator) snapshot(ctx context.Context, s *session) (*Snapshot, error) {
	entries, err := o.log.Entries(ctx, &sessionlog.EntriesInput{SessionID: s.id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read log for session %s", s.id)
	}

	snap := &Snapshot{
		SessionID:      s.id,
		Phase:          s.phase,
		Suspension:     s.suspension,
		Progress:       s.progress.Clone(),
		Loading:        s.suspension == transformation.SuspensionAwaitingCard,
		AwaitingSource: s.suspension == transformation.SuspensionAwaitingSourceChoice,
		CardReady:      s.suspension == transformation.SuspensionCardReady,
		PendingSquare:  s.pendingSquare,
		Log:            entries.Entries,
	}
	if s.card != nil {
		card := *s.card
		snap.CurrentCard = &card
	}
	return snap, nil
}
