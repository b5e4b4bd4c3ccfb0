package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Domain event types published on the event bus
const (
	EventSessionStarted    = "lumina.session.started"
	EventTurnResolved      = "lumina.turn.resolved"
	EventCardApplied       = "lumina.card.applied"
	EventLevelUp           = "lumina.level.up"
	EventGraduationBlocked = "lumina.graduation.blocked"
	EventSessionCompleted  = "lumina.session.completed"
	EventSessionReset      = "lumina.session.reset"
)

// EventTypes lists every event the orchestrator publishes
var EventTypes = []string{
	EventSessionStarted,
	EventTurnResolved,
	EventCardApplied,
	EventLevelUp,
	EventGraduationBlocked,
	EventSessionCompleted,
	EventSessionReset,
}

// Event context keys
const (
	EventKeySessionID = "session_id"
	EventKeyLevel     = "level"
	EventKeyPosition  = "position"
	EventKeyRoll      = "roll"
	EventKeySquare    = "square"
	EventKeyCardTitle = "card_title"
	EventKeyFromLevel = "from_level"
	EventKeyToLevel   = "to_level"
	EventKeyPain      = "pain_tokens"
)

// PlayerEntityType is the entity type of event sources
const PlayerEntityType = "player"

// player is the session's participant as seen by the event bus
type player struct {
	sessionID string
}

func (p *player) GetID() string   { return p.sessionID }
func (p *player) GetType() string { return PlayerEntityType }

var _ core.Entity = (*player)(nil)

// publish sends an event sourced by the session's player. Publish failures
// never affect game state.
func (o *Orchestrator) publish(ctx context.Context, s *session, eventType string, fields map[string]any) {
	ev := events.NewGameEvent(eventType, s.player, nil)
	ev.Context().Set(EventKeySessionID, s.id)
	for k, v := range fields {
		ev.Context().Set(k, v)
	}

	if err := o.eventBus.Publish(ctx, ev); err != nil {
		slog.Warn("Failed to publish game event",
			"session_id", s.id,
			"event_type", eventType,
			"error", err,
		)
	}
}

// SubscribeAudit registers a handler on bus that logs every game event at
// info level. It returns the subscription IDs.
func SubscribeAudit(bus events.EventBus) []string {
	ids := make([]string, 0, len(EventTypes))
	for _, eventType := range EventTypes {
		ids = append(ids, bus.SubscribeFunc(eventType, 0, auditEvent))
	}
	return ids
}

func auditEvent(_ context.Context, ev events.Event) error {
	attrs := []any{"event_type", ev.Type()}
	if src := ev.Source(); src != nil {
		attrs = append(attrs, "player", src.GetID())
	}
	for _, key := range []string{EventKeyLevel, EventKeyPosition, EventKeyRoll, EventKeySquare, EventKeyToLevel} {
		if v, ok := ev.Context().Get(key); ok {
			attrs = append(attrs, key, v)
		}
	}
	slog.Info("Game event", attrs...)
	return nil
}
