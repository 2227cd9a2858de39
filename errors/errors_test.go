package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestReasonOf(t *testing.T) {
	tests := []struct {
		err    error
		reason Reason
	}{
		{err: fmt.Errorf("%w: alice has no ticket", ErrNoTicket), reason: ReasonTicket},
		{err: ErrProfileNotPublic, reason: ReasonProfile},
		{err: ErrNotParticipant, reason: ReasonNotParticipant},
		{err: ErrNotMessageSender, reason: ReasonNotSender},
		{err: ErrConversationNotFound, reason: ReasonNotFound},
		{err: ErrMessageNotFound, reason: ReasonNotFound},
		{err: ErrParticipantNotFound, reason: ReasonNotFound},
		{err: ErrSameUser, reason: ReasonInvalid},
		{err: ErrContentTooLong, reason: ReasonInvalid},
		{err: ErrConversationConflict, reason: ReasonConflict},
		{err: ErrUnauthenticated, reason: ReasonUnauthenticated},
		{err: fmt.Errorf("%w: 5s", ErrStoreTimeout), reason: ReasonUnavailable},
		{err: context.DeadlineExceeded, reason: ReasonUnavailable},
		{err: stderrors.New("disk on fire"), reason: ReasonInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			require.Equal(t, tt.reason, ReasonOf(tt.err))
		})
	}
	require.Equal(t, Reason(""), ReasonOf(nil))
}

func TestIsDomain(t *testing.T) {
	require.True(t, IsDomain(ErrNoTicket))
	require.False(t, IsDomain(ErrStoreTimeout))
	require.False(t, IsDomain(stderrors.New("boom")))
	require.False(t, IsDomain(nil))
}

func TestMapToGRPCError(t *testing.T) {
	req := require.New(t)

	st, ok := status.FromError(MapToGRPCError(fmt.Errorf("%w: bob", ErrProfileNotPublic)))
	req.True(ok)
	req.Equal(codes.PermissionDenied, st.Code())
	req.Contains(st.Message(), "bob")
	req.Len(st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	req.True(ok)
	req.Equal(string(ReasonProfile), info.GetReason())
	req.Equal(ErrorDomain, info.GetDomain())

	// Infrastructure failures do not leak their cause
	st, _ = status.FromError(MapToGRPCError(stderrors.New("badger: value log corrupted")))
	req.Equal(codes.Internal, st.Code())
	req.NotContains(st.Message(), "badger")

	st, _ = status.FromError(MapToGRPCError(ErrStoreTimeout))
	req.Equal(codes.Unavailable, st.Code())

	// Status errors pass through
	original := status.Error(codes.ResourceExhausted, "slow down")
	req.Equal(original, MapToGRPCError(original))

	req.NoError(MapToGRPCError(nil))
}

func TestReasonFromGRPC(t *testing.T) {
	require.Equal(t, ReasonTicket, ReasonFromGRPC(MapToGRPCError(ErrNoTicket)))
	require.Equal(t, ReasonConflict, ReasonFromGRPC(MapToGRPCError(ErrConversationConflict)))
	require.Equal(t, Reason(""), ReasonFromGRPC(status.Error(codes.Internal, "no details")))
	require.Equal(t, Reason(""), ReasonFromGRPC(nil))
}
