package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParticipantsPerConversation is fixed: conversations are strictly pairwise.
const ParticipantsPerConversation = 2

type Conversation struct {
	ID           uuid.UUID
	EventID      string
	CreatedAt    time.Time
	Participants []Participant
}

func NewConversation(eventID, userA, userB string, at time.Time) Conversation {
	return Conversation{
		ID:        uuid.New(),
		EventID:   eventID,
		CreatedAt: at.UTC(),
		Participants: []Participant{
			{UserID: userA, IsActive: true},
			{UserID: userB, IsActive: true},
		},
	}
}

// Participant returns the participant record of userID, active or not.
func (c Conversation) Participant(userID string) (Participant, bool) {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return p, true
		}
	}
	return Participant{}, false
}

// IsActiveParticipant reports whether userID takes part and has not left.
func (c Conversation) IsActiveParticipant(userID string) bool {
	p, ok := c.Participant(userID)
	return ok && p.IsActive
}

// HasPair reports whether both users are participants, in any order.
func (c Conversation) HasPair(userA, userB string) bool {
	_, okA := c.Participant(userA)
	_, okB := c.Participant(userB)
	return okA && okB
}

// Peer returns the other participant of a pairwise conversation.
func (c Conversation) Peer(userID string) (Participant, bool) {
	for _, p := range c.Participants {
		if p.UserID != userID {
			return p, true
		}
	}
	return Participant{}, false
}

// PairKey is the order-insensitive identity of a conversation within an event.
func PairKey(eventID, userA, userB string) string {
	lo, hi := SortPair(userA, userB)
	return strings.Join([]string{eventID, lo, hi}, ":")
}

func SortPair(userA, userB string) (string, string) {
	if userA <= userB {
		return userA, userB
	}
	return userB, userA
}

// ConversationSummary is a conversation as listed for one of its participants.
type ConversationSummary struct {
	Conversation Conversation
	LastMessage  *Message
	UnreadCount  int
}

// Candidate is a ticket holder the requester may message.
type Candidate struct {
	UserID          string
	HasConversation bool
}
