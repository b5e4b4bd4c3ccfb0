package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
	"github.com/KirkDiggler/lumina-api/internal/orchestrators/game"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	GameService game.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.GameService == nil {
		return errors.InvalidArgument("game service is required")
	}
	return nil
}

// Handler implements GameServiceServer
type Handler struct {
	gameService game.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{gameService: cfg.GameService}, nil
}

var _ GameServiceServer = (*Handler)(nil)

// respond encodes out or maps err to a gRPC status
func respond(out any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	st, err := toStruct(out)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return st, nil
}

// CreateSession registers a new session
func (h *Handler) CreateSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return respond(h.gameService.CreateSession(ctx, &game.CreateSessionInput{}))
}

// StartSession starts the journey with an intention
func (h *Handler) StartSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(h.gameService.StartSession(ctx, &game.StartSessionInput{
		SessionID: id,
		Intention: stringField(req, FieldIntention),
	}))
}

// RollDice plays one turn
func (h *Handler) RollDice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(h.gameService.RollDice(ctx, &game.RollDiceInput{SessionID: id}))
}

// ChooseSource picks the card source for a pending choice
func (h *Handler) ChooseSource(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(h.gameService.ChooseSource(ctx, &game.ChooseSourceInput{
		SessionID: id,
		Source:    transformation.CardSource(stringField(req, FieldSource)),
	}))
}

// AcknowledgeCard applies the displayed card
func (h *Handler) AcknowledgeCard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(h.gameService.AcknowledgeCard(ctx, &game.AcknowledgeCardInput{SessionID: id}))
}

// ClearPain trades one awareness token for one tear
func (h *Handler) ClearPain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(h.gameService.ClearPain(ctx, &game.ClearPainInput{SessionID: id}))
}

// ResetSession resets the session when confirmed is true
func (h *Handler) ResetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(h.gameService.ResetSession(ctx, &game.ResetSessionInput{
		SessionID: id,
		Confirmed: boolField(req, FieldConfirmed),
	}))
}

// GetSession returns the session snapshot
func (h *Handler) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(h.gameService.GetSession(ctx, &game.GetSessionInput{SessionID: id}))
}

// DeleteSession drops the session
func (h *Handler) DeleteSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireSessionID(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(h.gameService.DeleteSession(ctx, &game.DeleteSessionInput{SessionID: id}))
}
