package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
	"github.com/KirkDiggler/lumina-api/internal/handlers/lumina/v1alpha1"
	"github.com/KirkDiggler/lumina-api/internal/orchestrators/game"
	gamemock "github.com/KirkDiggler/lumina-api/internal/orchestrators/game/mock"
	"github.com/KirkDiggler/lumina-api/internal/testutils/builders"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	mockGame *gamemock.MockService
	server   *grpc.Server
	conn     *grpc.ClientConn
	client   *v1alpha1.Client
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockGame = gamemock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{GameService: s.mockGame})
	s.Require().NoError(err)

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterGameServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = v1alpha1.NewClient(conn)
}

func (s *HandlerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) snapshot() *game.Snapshot {
	return &game.Snapshot{
		SessionID:  "session_1",
		Phase:      transformation.PhasePlaying,
		Suspension: transformation.SuspensionIdle,
		Progress: builders.NewProgressBuilder().
			WithPosition(7).
			WithPain(4).
			WithAngels("Courage").
			Build(),
		Log: []*transformation.LogEntry{
			{
				ID:        "log_1",
				Category:  transformation.LogCategoryMove,
				Message:   "Moved 6 steps",
				Detail:    "Reached position 7",
				Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		},
	}
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestCreateSession() {
	s.mockGame.EXPECT().
		CreateSession(gomock.Any(), &game.CreateSessionInput{}).
		Return(&game.CreateSessionOutput{SessionID: "session_1", Session: s.snapshot()}, nil)

	out, err := s.client.CreateSession(s.ctx)
	s.Require().NoError(err)
	s.Equal("session_1", out.SessionID)
	s.Equal(transformation.PhasePlaying, out.Session.Phase)
}

func (s *HandlerTestSuite) TestRollDiceRoundTripsSnapshot() {
	s.mockGame.EXPECT().
		RollDice(gomock.Any(), &game.RollDiceInput{SessionID: "session_1"}).
		Return(&game.RollDiceOutput{
			Roll:     6,
			Movement: 6,
			Square:   transformation.SquareTear,
			Session:  s.snapshot(),
		}, nil)

	out, err := s.client.RollDice(s.ctx, "session_1")
	s.Require().NoError(err)

	s.Equal(6, out.Roll)
	s.Equal(6, out.Movement)
	s.False(out.Blocked)
	s.Equal(transformation.SquareTear, out.Square)

	progress := out.Session.Progress
	s.Equal(7, progress.Position)
	s.Equal(4, progress.PainTokens)
	s.Equal([]string{"Courage"}, progress.Angels)
	s.Equal(transformation.LevelPhysical, progress.CurrentLevel)

	s.Require().Len(out.Session.Log, 1)
	entry := out.Session.Log[0]
	s.Equal("Moved 6 steps", entry.Message)
	s.Equal(transformation.LogCategoryMove, entry.Category)
	s.True(entry.Timestamp.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
}

func (s *HandlerTestSuite) TestRequestFieldsReachTheService() {
	s.mockGame.EXPECT().
		StartSession(gomock.Any(), &game.StartSessionInput{SessionID: "session_1", Intention: "be brave"}).
		Return(&game.StartSessionOutput{Session: s.snapshot()}, nil)
	s.mockGame.EXPECT().
		ChooseSource(gomock.Any(), &game.ChooseSourceInput{
			SessionID: "session_1",
			Source:    transformation.CardSourceDeck,
		}).
		Return(&game.ChooseSourceOutput{Session: s.snapshot()}, nil)
	s.mockGame.EXPECT().
		ResetSession(gomock.Any(), &game.ResetSessionInput{SessionID: "session_1", Confirmed: true}).
		Return(&game.ResetSessionOutput{Reset: true, Session: s.snapshot()}, nil)

	_, err := s.client.StartSession(s.ctx, "session_1", "be brave")
	s.Require().NoError(err)

	_, err = s.client.ChooseSource(s.ctx, "session_1", "DECK")
	s.Require().NoError(err)

	reset, err := s.client.ResetSession(s.ctx, "session_1", true)
	s.Require().NoError(err)
	s.True(reset.Reset)
}

func (s *HandlerTestSuite) TestAcknowledgeCard() {
	card := builders.NewCardBuilder().WithTitle("Joy").WithEffect(1, 0, 2).Build()
	s.mockGame.EXPECT().
		AcknowledgeCard(gomock.Any(), &game.AcknowledgeCardInput{SessionID: "session_1"}).
		Return(&game.AcknowledgeCardOutput{Card: card, LeveledUp: true, Session: s.snapshot()}, nil)

	out, err := s.client.AcknowledgeCard(s.ctx, "session_1")
	s.Require().NoError(err)
	s.True(out.LeveledUp)
	s.Equal(*card, *out.Card)
}

func (s *HandlerTestSuite) TestMissingSessionID() {
	_, err := s.client.RollDice(s.ctx, "")
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestErrorsKeepCodeAndMeta() {
	s.mockGame.EXPECT().
		ClearPain(gomock.Any(), &game.ClearPainInput{SessionID: "session_1"}).
		Return(nil, errors.FailedPrecondition("turn is CARD_READY, expected IDLE").
			WithMeta("suspension", "CARD_READY"))

	_, err := s.client.ClearPain(s.ctx, "session_1")
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal("CARD_READY", errors.GetMeta(err)["suspension"])
}

func (s *HandlerTestSuite) TestNotFoundStatus() {
	s.mockGame.EXPECT().
		GetSession(gomock.Any(), &game.GetSessionInput{SessionID: "session_404"}).
		Return(nil, errors.NotFound("session session_404 not found"))

	req, err := structpb.NewStruct(map[string]any{v1alpha1.FieldSessionID: "session_404"})
	s.Require().NoError(err)

	err = s.conn.Invoke(s.ctx, v1alpha1.FullMethod(v1alpha1.MethodGetSession), req, &structpb.Struct{})
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestDeleteSession() {
	s.mockGame.EXPECT().
		DeleteSession(gomock.Any(), &game.DeleteSessionInput{SessionID: "session_1"}).
		Return(&game.DeleteSessionOutput{}, nil)

	s.NoError(s.client.DeleteSession(s.ctx, "session_1"))
}
