package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/lumina-api/internal/errors"
	"github.com/KirkDiggler/lumina-api/internal/orchestrators/game"
)

// Client calls GameService over a gRPC connection and decodes responses
// into orchestrator output types
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a gRPC connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, fields map[string]any, out any) error {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	resp := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, FullMethod(method), req, resp); err != nil {
		return errors.FromGRPCError(err)
	}
	return fromStruct(resp, out)
}

// CreateSession registers a new session
func (c *Client) CreateSession(ctx context.Context) (*game.CreateSessionOutput, error) {
	out := &game.CreateSessionOutput{}
	if err := c.invoke(ctx, MethodCreateSession, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// StartSession starts the journey with an intention
func (c *Client) StartSession(ctx context.Context, sessionID, intention string) (*game.StartSessionOutput, error) {
	out := &game.StartSessionOutput{}
	err := c.invoke(ctx, MethodStartSession, map[string]any{
		FieldSessionID: sessionID,
		FieldIntention: intention,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RollDice plays one turn
func (c *Client) RollDice(ctx context.Context, sessionID string) (*game.RollDiceOutput, error) {
	out := &game.RollDiceOutput{}
	if err := c.invoke(ctx, MethodRollDice, map[string]any{FieldSessionID: sessionID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChooseSource picks ENVELOPE or DECK for a pending choice
func (c *Client) ChooseSource(ctx context.Context, sessionID, source string) (*game.ChooseSourceOutput, error) {
	out := &game.ChooseSourceOutput{}
	err := c.invoke(ctx, MethodChooseSource, map[string]any{
		FieldSessionID: sessionID,
		FieldSource:    source,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AcknowledgeCard applies the displayed card
func (c *Client) AcknowledgeCard(ctx context.Context, sessionID string) (*game.AcknowledgeCardOutput, error) {
	out := &game.AcknowledgeCardOutput{}
	if err := c.invoke(ctx, MethodAcknowledgeCard, map[string]any{FieldSessionID: sessionID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClearPain trades one awareness token for one tear
func (c *Client) ClearPain(ctx context.Context, sessionID string) (*game.ClearPainOutput, error) {
	out := &game.ClearPainOutput{}
	if err := c.invoke(ctx, MethodClearPain, map[string]any{FieldSessionID: sessionID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResetSession resets the session when confirmed is true
func (c *Client) ResetSession(ctx context.Context, sessionID string, confirmed bool) (*game.ResetSessionOutput, error) {
	out := &game.ResetSessionOutput{}
	err := c.invoke(ctx, MethodResetSession, map[string]any{
		FieldSessionID: sessionID,
		FieldConfirmed: confirmed,
	}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetSession returns the session snapshot
func (c *Client) GetSession(ctx context.Context, sessionID string) (*game.GetSessionOutput, error) {
	out := &game.GetSessionOutput{}
	if err := c.invoke(ctx, MethodGetSession, map[string]any{FieldSessionID: sessionID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSession drops the session
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.invoke(ctx, MethodDeleteSession, map[string]any{FieldSessionID: sessionID}, &game.DeleteSessionOutput{})
}
