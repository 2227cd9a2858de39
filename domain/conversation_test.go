package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPairKey_IgnoresOrder(t *testing.T) {
	require.Equal(t, "42:alice:bob", PairKey("42", "alice", "bob"))
	require.Equal(t, PairKey("42", "alice", "bob"), PairKey("42", "bob", "alice"))
	require.NotEqual(t, PairKey("42", "alice", "bob"), PairKey("43", "alice", "bob"))
}

func TestConversation_Participants(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	conversation := NewConversation("42", "alice", "bob", at)

	req.Len(conversation.Participants, ParticipantsPerConversation)
	req.True(conversation.HasPair("bob", "alice"))
	req.False(conversation.HasPair("alice", "carol"))
	req.True(conversation.IsActiveParticipant("alice"))
	req.False(conversation.IsActiveParticipant("carol"))

	peer, ok := conversation.Peer("alice")
	req.True(ok)
	req.Equal("bob", peer.UserID)

	// A participant who left is still part of the pair
	conversation.Participants[0].IsActive = false
	req.False(conversation.IsActiveParticipant("alice"))
	req.True(conversation.HasPair("alice", "bob"))
}

func TestParticipant_Advance_NeverMovesBackward(t *testing.T) {
	req := require.New(t)
	t0 := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	p := Participant{UserID: "alice", IsActive: true}
	req.True(p.ReadSince().IsZero())

	p, changed := p.Advance(t0)
	req.True(changed)
	req.Equal(t0, p.ReadSince())

	p, changed = p.Advance(t0.Add(-time.Minute))
	req.False(changed)
	req.Equal(t0, *p.LastReadAt)

	p, changed = p.Advance(t0)
	req.False(changed)

	p, changed = p.Advance(t0.Add(time.Minute))
	req.True(changed)
	req.Equal(t0.Add(time.Minute), *p.LastReadAt)
}

func TestMessage_Before_BreaksTiesWithSequence(t *testing.T) {
	at := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	first := Message{Seq: 1, CreatedAt: at}
	second := Message{Seq: 2, CreatedAt: at}
	later := Message{Seq: 0, CreatedAt: at.Add(time.Nanosecond)}

	require.True(t, first.Before(second))
	require.False(t, second.Before(first))
	require.True(t, second.Before(later))
}
