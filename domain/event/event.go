package event

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	ConversationOpenedKind  Kind = "conversation_opened"
	ParticipantRejoinedKind Kind = "participant_rejoined"
	ParticipantLeftKind     Kind = "participant_left"
	MessageSentKind         Kind = "message_sent"
	MessageCensoredKind     Kind = "message_censored"
	MessageDeletedKind      Kind = "message_deleted"
)

// DomainEvent is something that happened in a conversation, published after the store committed it.
type DomainEvent interface {
	Kind() Kind
}

type ConversationOpened struct {
	ConversationID uuid.UUID
	EventID        string
	At             time.Time
}

func (ConversationOpened) Kind() Kind { return ConversationOpenedKind }

type ParticipantRejoined struct {
	ConversationID uuid.UUID
	UserID         string
	At             time.Time
}

func (ParticipantRejoined) Kind() Kind { return ParticipantRejoinedKind }

type ParticipantLeft struct {
	ConversationID uuid.UUID
	UserID         string
	At             time.Time
}

func (ParticipantLeft) Kind() Kind { return ParticipantLeftKind }

type MessageSent struct {
	MessageID      uuid.UUID
	ConversationID uuid.UUID
	SenderID       string
	At             time.Time
}

func (MessageSent) Kind() Kind { return MessageSentKind }

// MessageCensored carries the dictionary words matched in a message, never the original text.
type MessageCensored struct {
	MessageID      uuid.UUID
	ConversationID uuid.UUID
	Words          []string
	At             time.Time
}

func (MessageCensored) Kind() Kind { return MessageCensoredKind }

type MessageDeleted struct {
	MessageID   uuid.UUID
	RequesterID string
	At          time.Time
}

func (MessageDeleted) Kind() Kind { return MessageDeletedKind }
