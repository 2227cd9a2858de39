package repositories

import (
	"context"
	"testing"
	"ticket-chat/domain"
	"ticket-chat/errors"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_Directory_Tickets(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.attendee(t, "alice", domain.VisibilityPublic)
	req.NoError(f.directory.RecordAttendance(ctx, domain.Attendance{UserID: "bob", EventID: event}))

	ok, err := f.directory.HasTicket(ctx, "alice", event)
	req.NoError(err)
	req.True(ok)

	ok, err = f.directory.HasTicket(ctx, "bob", event)
	req.NoError(err)
	req.False(ok)

	ok, err = f.directory.HasTicket(ctx, "alice", "200")
	req.NoError(err)
	req.False(ok)

	holders, err := f.directory.TicketHolders(ctx, event)
	req.NoError(err)
	req.Equal([]string{"alice"}, holders)

	// Given bob buys a ticket afterwards
	req.NoError(f.directory.RecordAttendance(ctx, domain.Attendance{UserID: "bob", EventID: event, TicketID: lo.ToPtr("t-2")}))
	holders, err = f.directory.TicketHolders(ctx, event)
	req.NoError(err)
	req.ElementsMatch([]string{"alice", "bob"}, holders)
}

func Test_Directory_Profiles(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	req.NoError(f.directory.SaveProfile(ctx, domain.Profile{
		UserID:      "alice",
		DisplayName: "Alice",
		AvatarRef:   "avatars/alice.png",
		Bio:         lo.ToPtr("Front row"),
		Visibility:  domain.VisibilityPublic,
	}))
	f.profile(t, "bob", domain.VisibilityPrivate)

	summary, err := f.directory.GetPublicSummary(ctx, "alice")
	req.NoError(err)
	req.Equal(domain.PublicSummary{ID: "alice", DisplayName: "Alice", AvatarRef: "avatars/alice.png", Bio: lo.ToPtr("Front row")}, summary)

	_, err = f.directory.GetPublicSummary(ctx, "bob")
	req.ErrorIs(err, errors.ErrProfileNotPublic)

	_, err = f.directory.GetPublicSummary(ctx, "nobody")
	req.ErrorIs(err, errors.ErrProfileNotFound)

	public, err := f.directory.IsPublic(ctx, "alice")
	req.NoError(err)
	req.True(public)

	public, err = f.directory.IsPublic(ctx, "bob")
	req.NoError(err)
	req.False(public)

	public, err = f.directory.IsPublic(ctx, "nobody")
	req.NoError(err)
	req.False(public)

	err = f.directory.SaveProfile(ctx, domain.Profile{UserID: "carol", Visibility: "friends"})
	req.ErrorIs(err, errors.ErrInvalidArgument)
}
