package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/lumina-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNew() {
	err := errors.New(errors.CodeNotFound, "session not found")

	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("session not found", err.Message)
	s.Assert().Nil(err.Cause)
	s.Assert().Equal("NOT_FOUND: session not found", err.Error())
}

func (s *ErrorsTestSuite) TestNewf() {
	err := errors.Newf(errors.CodeInvalidArgument, "invalid dice value: %d", 7)

	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().Equal("invalid dice value: 7", err.Message)
}

func (s *ErrorsTestSuite) TestWrap() {
	s.Run("wraps standard error as internal", func() {
		base := fmt.Errorf("connection refused")
		err := errors.Wrap(base, "failed to append entry")

		s.Assert().Equal(errors.CodeInternal, err.Code)
		s.Assert().Equal("failed to append entry", err.Message)
		s.Assert().ErrorIs(err, base)
	})

	s.Run("preserves code and meta of custom error", func() {
		base := errors.NotFound("session not found").WithMeta("session_id", "sess_1")
		err := errors.Wrap(base, "failed to get session")

		s.Assert().Equal(errors.CodeNotFound, err.Code)
		s.Assert().Equal("sess_1", err.Meta["session_id"])
	})

	s.Run("nil stays nil", func() {
		s.Assert().Nil(errors.Wrap(nil, "nothing"))
	})
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	base := errors.Internal("boom").WithMeta("attempt", 2)
	err := errors.WrapWithCode(base, errors.CodeUnavailable, "narrative provider down")

	s.Assert().Equal(errors.CodeUnavailable, err.Code)
	s.Assert().Equal(2, err.Meta["attempt"])
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeInternal, "x"))
}

func (s *ErrorsTestSuite) TestErrorIsComparesCodes() {
	err := errors.Wrap(errors.FailedPrecondition("not idle"), "roll rejected")

	s.Assert().True(stderrors.Is(err, errors.FailedPrecondition("anything")))
	s.Assert().False(stderrors.Is(err, errors.NotFound("anything")))
}

func (s *ErrorsTestSuite) TestPredicates() {
	s.Assert().True(errors.IsNotFound(errors.NotFoundf("session %s", "a")))
	s.Assert().True(errors.IsInvalidArgument(errors.InvalidArgumentf("bad %s", "b")))
	s.Assert().True(errors.IsFailedPrecondition(errors.FailedPreconditionf("phase %s", "c")))
	s.Assert().True(errors.IsInternal(errors.Internalf("oops %d", 1)))
	s.Assert().True(errors.IsUnavailable(errors.Unavailablef("down %d", 1)))
	s.Assert().True(errors.IsCanceled(errors.Canceled("stop")))
	s.Assert().True(errors.IsDeadlineExceeded(errors.DeadlineExceeded("slow")))
	s.Assert().False(errors.IsNotFound(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeCanceled, errors.GetCode(context.Canceled))
	s.Assert().Equal(errors.CodeDeadlineExceeded, errors.GetCode(fmt.Errorf("fetch: %w", context.DeadlineExceeded)))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.NotFound("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
	s.Assert().Equal("", errors.GetMessage(nil))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeNotFound, 404},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeAlreadyExists, 409},
		{errors.CodeFailedPrecondition, 409},
		{errors.CodeDeadlineExceeded, 504},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	err := errors.NotFound("session not found").
		WithMeta("session_id", "sess_123")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.NotFound, st.Code())
	s.Assert().Equal("session not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(back))
	s.Assert().Equal("session not found", errors.GetMessage(back))
	s.Assert().Equal("sess_123", errors.GetMeta(back)["session_id"])

	plain := errors.FromGRPCError(status.Error(codes.InvalidArgument, "invalid input"))
	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(plain))
	s.Assert().Equal("invalid input", errors.GetMessage(plain))
}

func (s *ErrorsTestSuite) TestToGRPCErrorPassesThroughStatus() {
	original := status.Error(codes.Aborted, "already aborted")
	s.Assert().Equal(original, errors.ToGRPCError(original))
	s.Assert().Nil(errors.ToGRPCError(nil))

	st, ok := status.FromError(errors.ToGRPCError(context.DeadlineExceeded))
	s.Require().True(ok)
	s.Assert().Equal(codes.DeadlineExceeded, st.Code())
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.CodeCanceled, codes.Canceled},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
