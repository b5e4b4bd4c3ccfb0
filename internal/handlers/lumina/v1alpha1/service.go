// Package v1alpha1 exposes the game orchestrator as the
// lumina.api.v1alpha1.GameService gRPC service. Requests and responses are
// google.protobuf.Struct messages, so no generated stubs are involved.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "lumina.api.v1alpha1.GameService"

// Method names
const (
	MethodCreateSession   = "CreateSession"
	MethodStartSession    = "StartSession"
	MethodRollDice        = "RollDice"
	MethodChooseSource    = "ChooseSource"
	MethodAcknowledgeCard = "AcknowledgeCard"
	MethodClearPain       = "ClearPain"
	MethodResetSession    = "ResetSession"
	MethodGetSession      = "GetSession"
	MethodDeleteSession   = "DeleteSession"
)

// Request field names
const (
	FieldSessionID = "session_id"
	FieldIntention = "intention"
	FieldSource    = "source"
	FieldConfirmed = "confirmed"
)

// GameServiceServer is the server side of GameService
type GameServiceServer interface {
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollDice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChooseSource(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AcknowledgeCard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearPain(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// FullMethod returns the invoke path of a GameService method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GameServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// GameServiceDesc describes GameService for grpc.Server.RegisterService
var GameServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(MethodCreateSession, GameServiceServer.CreateSession),
		methodDesc(MethodStartSession, GameServiceServer.StartSession),
		methodDesc(MethodRollDice, GameServiceServer.RollDice),
		methodDesc(MethodChooseSource, GameServiceServer.ChooseSource),
		methodDesc(MethodAcknowledgeCard, GameServiceServer.AcknowledgeCard),
		methodDesc(MethodClearPain, GameServiceServer.ClearPain),
		methodDesc(MethodResetSession, GameServiceServer.ResetSession),
		methodDesc(MethodGetSession, GameServiceServer.GetSession),
		methodDesc(MethodDeleteSession, GameServiceServer.DeleteSession),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lumina/api/v1alpha1/game.proto",
}

// RegisterGameServiceServer registers srv on s
func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameServiceDesc, srv)
}
