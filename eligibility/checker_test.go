package eligibility_test

import (
	"context"
	stderrors "errors"
	"testing"
	"ticket-chat/eligibility"
	"ticket-chat/errors"
	"ticket-chat/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const event = "100"

func newChecker(t *testing.T) (eligibility.Checker, *mocks.MockAttendanceOracle, *mocks.MockProfileOracle) {
	ctrl := gomock.NewController(t)
	attendance := mocks.NewMockAttendanceOracle(ctrl)
	profiles := mocks.NewMockProfileOracle(ctrl)
	return eligibility.NewChecker(attendance, profiles), attendance, profiles
}

func Test_Both_Ticket_Holders_With_Public_Profiles_Can_Converse(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	checker, attendance, profiles := newChecker(t)
	attendance.EXPECT().HasTicket(gomock.Any(), gomock.Any(), event).Return(true, nil).Times(2)
	profiles.EXPECT().IsPublic(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	verdict, err := checker.CanConverse(ctx, event, "alice", "bob")
	req.NoError(err)
	req.True(verdict.OK)
	req.NoError(verdict.Err())
}

func Test_Missing_Ticket_Wins_Over_Private_Profile(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	checker, attendance, _ := newChecker(t)
	attendance.EXPECT().HasTicket(gomock.Any(), "alice", event).Return(true, nil)
	attendance.EXPECT().HasTicket(gomock.Any(), "bob", event).Return(false, nil)

	// Profiles are not even consulted
	verdict, err := checker.CanConverse(ctx, event, "alice", "bob")
	req.NoError(err)
	req.False(verdict.OK)
	req.Equal(errors.ReasonTicket, verdict.Reason)
	req.Equal("bob", verdict.UserID)
	req.ErrorIs(verdict.Err(), errors.ErrNoTicket)
}

func Test_Private_Profile_Is_Denied(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	checker, attendance, profiles := newChecker(t)
	attendance.EXPECT().HasTicket(gomock.Any(), gomock.Any(), event).Return(true, nil).Times(2)
	profiles.EXPECT().IsPublic(gomock.Any(), "alice").Return(false, nil)

	verdict, err := checker.CanConverse(ctx, event, "alice", "bob")
	req.NoError(err)
	req.False(verdict.OK)
	req.Equal(errors.ReasonProfile, verdict.Reason)
	req.Equal("alice", verdict.UserID)
	req.ErrorIs(verdict.Err(), errors.ErrProfileNotPublic)
}

func Test_Oracle_Failure_Is_An_Error_Not_A_Denial(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	checker, attendance, _ := newChecker(t)
	outage := stderrors.New("ticketing platform unreachable")
	attendance.EXPECT().HasTicket(gomock.Any(), "alice", event).Return(false, outage)

	_, err := checker.CanConverse(ctx, event, "alice", "bob")
	req.ErrorIs(err, outage)
}

func Test_Invalid_Pairs_Are_Rejected_Before_Any_Lookup(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	checker, _, _ := newChecker(t)

	_, err := checker.CanConverse(ctx, event, "alice", "alice")
	req.ErrorIs(err, errors.ErrSameUser)

	_, err = checker.CanConverse(ctx, event, "", "bob")
	req.ErrorIs(err, errors.ErrInvalidArgument)

	_, err = checker.CanConverse(ctx, "", "alice", "bob")
	req.ErrorIs(err, errors.ErrInvalidArgument)
}
