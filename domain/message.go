// Package domain contains core concepts of the messaging system.
// This file defines Message records and related rules.
// Messages are never edited: the only mutation is a soft delete.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a line of a conversation.
// Seq is a store-wide insertion sequence used to order messages sharing a timestamp.
type Message struct {
	ID             uuid.UUID
	Seq            uint64
	ConversationID uuid.UUID
	SenderID       string
	Content        string
	CreatedAt      time.Time
	IsDeleted      bool
}

// Before reports whether m is displayed before other.
func (m Message) Before(other Message) bool {
	if m.CreatedAt.Equal(other.CreatedAt) {
		return m.Seq < other.Seq
	}
	return m.CreatedAt.Before(other.CreatedAt)
}

// MessagePage is one page of visible messages, oldest first.
type MessagePage struct {
	Messages   []Message
	TotalCount int
}
