package repositories

import (
	"context"
	"sync"
	"testing"
	"ticket-chat/domain"
	"ticket-chat/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_Find_Conversation_Ignores_Pair_Order(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	created := f.conversation(t, "alice", "bob")
	req.Len(created.Participants, domain.ParticipantsPerConversation)

	found, err := f.conversations.FindConversation(ctx, event, "bob", "alice")
	req.NoError(err)
	req.NotNil(found)
	req.Equal(created.ID, found.ID)
	req.Equal(event, found.EventID)
	req.True(found.IsActiveParticipant("alice"))
	req.True(found.IsActiveParticipant("bob"))

	missing, err := f.conversations.FindConversation(ctx, event, "alice", "carol")
	req.NoError(err)
	req.Nil(missing)

	otherEvent, err := f.conversations.FindConversation(ctx, "200", "alice", "bob")
	req.NoError(err)
	req.Nil(otherEvent)
}

func Test_Create_Conversation_Twice_Conflicts(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.conversation(t, "alice", "bob")

	_, err := f.conversations.CreateConversation(ctx, event, "bob", "alice")
	req.ErrorIs(err, errors.ErrConversationConflict)

	// The same pair may talk in another event
	_, err = f.conversations.CreateConversation(ctx, "200", "alice", "bob")
	req.NoError(err)
}

func Test_Concurrent_Creations_Store_A_Single_Conversation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := "alice", "bob"
			if i%2 == 1 {
				a, b = b, a
			}
			_, results[i] = f.conversations.CreateConversation(ctx, event, a, b)
		}(i)
	}
	wg.Wait()

	successes := lo.CountBy(results, func(err error) bool { return err == nil })
	req.Equal(1, successes)
	for _, err := range results {
		if err != nil {
			req.ErrorIs(err, errors.ErrConversationConflict)
		}
	}
	conversations, err := f.conversations.ListEventConversations(ctx, event)
	req.NoError(err)
	req.Len(conversations, 1)
}

func Test_Deactivate_And_Reactivate_Participant(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.attendee(t, "alice", domain.VisibilityPublic)
	f.attendee(t, "bob", domain.VisibilityPublic)
	conversation := f.conversation(t, "alice", "bob")

	req.NoError(f.conversations.DeactivateParticipant(ctx, conversation.ID, "alice"))
	req.NoError(f.conversations.DeactivateParticipant(ctx, conversation.ID, "alice"))

	stored, err := f.conversations.GetConversation(ctx, conversation.ID)
	req.NoError(err)
	req.False(stored.IsActiveParticipant("alice"))
	req.True(stored.IsActiveParticipant("bob"))

	summaries, err := f.conversations.ListConversationsForUser(ctx, event, "alice")
	req.NoError(err)
	req.Empty(summaries)
	summaries, err = f.conversations.ListConversationsForUser(ctx, event, "bob")
	req.NoError(err)
	req.Len(summaries, 1)

	req.NoError(f.conversations.ReactivateParticipant(ctx, conversation.ID, "alice"))
	summaries, err = f.conversations.ListConversationsForUser(ctx, event, "alice")
	req.NoError(err)
	req.Len(summaries, 1)

	err = f.conversations.DeactivateParticipant(ctx, conversation.ID, "carol")
	req.ErrorIs(err, errors.ErrParticipantNotFound)

	err = f.conversations.DeactivateParticipant(ctx, uuid.New(), "alice")
	req.ErrorIs(err, errors.ErrConversationNotFound)

	_, err = f.conversations.GetConversation(ctx, uuid.New())
	req.ErrorIs(err, errors.ErrConversationNotFound)
}

func Test_Advance_Read_Cursor_Is_Monotonic(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	conversation := f.conversation(t, "alice", "bob")

	later := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)
	req.NoError(f.conversations.AdvanceReadCursor(ctx, conversation.ID, "bob", later))
	req.NoError(f.conversations.AdvanceReadCursor(ctx, conversation.ID, "bob", earlier))

	stored, err := f.conversations.GetConversation(ctx, conversation.ID)
	req.NoError(err)
	bob, ok := stored.Participant("bob")
	req.True(ok)
	req.True(bob.LastReadAt.Equal(later))
}

func Test_List_Conversations_For_User(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	for _, user := range []string{"alice", "bob", "carol"} {
		f.attendee(t, user, domain.VisibilityPublic)
	}
	withBob := f.conversation(t, "alice", "bob")
	withCarol := f.conversation(t, "alice", "carol")

	// Given no message yet, the newest conversation comes first
	summaries, err := f.conversations.ListConversationsForUser(ctx, event, "alice")
	req.NoError(err)
	req.Len(summaries, 2)
	req.Equal(withCarol.ID, summaries[0].Conversation.ID)
	req.Nil(summaries[0].LastMessage)
	req.Zero(summaries[0].UnreadCount)

	// When bob writes, his conversation moves up
	f.send(t, withBob, "bob", "Hey Alice")
	f.send(t, withBob, "bob", "Are you there?")
	summaries, err = f.conversations.ListConversationsForUser(ctx, event, "alice")
	req.NoError(err)
	req.Equal(withBob.ID, summaries[0].Conversation.ID)
	req.NotNil(summaries[0].LastMessage)
	req.Equal("Are you there?", summaries[0].LastMessage.Content)
	req.Equal(2, summaries[0].UnreadCount)

	// Preview skips messages of a sender now private
	f.profile(t, "bob", domain.VisibilityPrivate)
	summaries, err = f.conversations.ListConversationsForUser(ctx, event, "alice")
	req.NoError(err)
	preview, ok := lo.Find(summaries, func(s domain.ConversationSummary) bool {
		return s.Conversation.ID == withBob.ID
	})
	req.True(ok)
	req.Nil(preview.LastMessage)

	others, err := f.conversations.ListConversationsForUser(ctx, "200", "alice")
	req.NoError(err)
	req.Empty(others)
}

func Test_List_Candidate_Users(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	f.attendee(t, "alice", domain.VisibilityPublic)
	f.attendee(t, "erin", domain.VisibilityPublic)
	f.attendee(t, "bob", domain.VisibilityPublic)
	f.attendee(t, "carol", domain.VisibilityPrivate)
	// dave registered without a ticket
	req.NoError(f.directory.RecordAttendance(ctx, domain.Attendance{UserID: "dave", EventID: event}))
	f.profile(t, "dave", domain.VisibilityPublic)
	f.conversation(t, "alice", "bob")

	candidates, err := f.conversations.ListCandidateUsers(ctx, event, "alice")
	req.NoError(err)
	req.Equal([]domain.Candidate{
		{UserID: "bob", HasConversation: true},
		{UserID: "erin", HasConversation: false},
	}, candidates)

	none, err := f.conversations.ListCandidateUsers(ctx, "200", "alice")
	req.NoError(err)
	req.Empty(none)
}

func Test_List_Event_Conversations_Includes_Inactive(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	first := f.conversation(t, "alice", "bob")
	f.conversation(t, "alice", "carol")
	req.NoError(f.conversations.DeactivateParticipant(ctx, first.ID, "alice"))
	req.NoError(f.conversations.DeactivateParticipant(ctx, first.ID, "bob"))

	conversations, err := f.conversations.ListEventConversations(ctx, event)
	req.NoError(err)
	req.Len(conversations, 2)
	ids := lo.Map(conversations, func(c domain.Conversation, _ int) uuid.UUID { return c.ID })
	req.Contains(ids, first.ID)
}

func Test_List_Conversations_For_User_Breaks_Timestamp_Ties_By_Sequence(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.clock.step = 0
	for _, user := range []string{"alice", "bob", "carol"} {
		f.attendee(t, user, domain.VisibilityPublic)
	}
	withBob := f.conversation(t, "alice", "bob")
	withCarol := f.conversation(t, "alice", "carol")
	f.send(t, withCarol, "carol", "first")
	f.send(t, withBob, "bob", "second")

	summaries, err := f.conversations.ListConversationsForUser(context.Background(), event, "alice")
	req.NoError(err)
	req.Len(summaries, 2)
	req.Equal(withBob.ID, summaries[0].Conversation.ID)
	req.Equal(withCarol.ID, summaries[1].Conversation.ID)
}

func Test_Get_Conversation_With_A_Missing_Participant_Row(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	conversation := f.conversation(t, "alice", "bob")
	req.NoError(f.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(participantKey(conversation.ID, "bob"))
	}))

	_, err := f.conversations.GetConversation(context.Background(), conversation.ID)
	req.Error(err)
	req.Contains(err.Error(), "corrupted conversation")
}
