package repositories

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"ticket-chat/domain"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const event = "100"

// stepClock moves forward by step on every reading, so each record gets a distinct time.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC), step: time.Second}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

type fixture struct {
	db            *badger.DB
	log           *slog.Logger
	clock         *stepClock
	directory     DirectoryRepository
	conversations ConversationRepository
	messages      *MessageRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clock := newStepClock()
	opts := Options{Timeout: 5 * time.Second, Now: clock.Now}
	directory := NewDirectoryRepository(db, log, opts)
	messages, err := NewMessageRepository(db, log, directory, opts)
	req.NoError(err)
	t.Cleanup(func() {
		_ = messages.Close()
		_ = db.Close()
	})
	return &fixture{
		db:            db,
		log:           log,
		clock:         clock,
		directory:     directory,
		conversations: NewConversationRepository(db, log, directory, directory, opts),
		messages:      messages,
	}
}

// attendee registers a ticket holder with the given visibility.
func (f *fixture) attendee(t *testing.T, userID string, visibility domain.Visibility) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.directory.RecordAttendance(ctx, domain.Attendance{
		UserID: userID, EventID: event, TicketID: lo.ToPtr("ticket-" + userID),
	}))
	f.profile(t, userID, visibility)
}

func (f *fixture) profile(t *testing.T, userID string, visibility domain.Visibility) {
	t.Helper()
	require.NoError(t, f.directory.SaveProfile(context.Background(), domain.Profile{
		UserID:      userID,
		DisplayName: "User " + userID,
		AvatarRef:   "avatars/" + userID + ".png",
		Visibility:  visibility,
	}))
}

func (f *fixture) conversation(t *testing.T, userA, userB string) domain.Conversation {
	t.Helper()
	conversation, err := f.conversations.CreateConversation(context.Background(), event, userA, userB)
	require.NoError(t, err)
	return conversation
}

func (f *fixture) send(t *testing.T, conversation domain.Conversation, senderID, content string) domain.Message {
	t.Helper()
	message, err := f.messages.AppendMessage(context.Background(), conversation.ID, senderID, content)
	require.NoError(t, err)
	return message
}

func contents(messages []domain.Message) []string {
	return lo.Map(messages, func(m domain.Message, _ int) string {
		return m.Content
	})
}
