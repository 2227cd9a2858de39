package domain

// Identifiers end up inside storage keys where ':' is the separator.
// The validate tags are enforced at the service boundary.

type CreateConversationCommand struct {
	EventID string `validate:"required,max=128,excludesall=:"`
	UserA   string `validate:"required,max=128,excludesall=:"`
	UserB   string `validate:"required,max=128,excludesall=:"`
}

type ListConversationsCommand struct {
	EventID string `validate:"required,max=128,excludesall=:"`
	UserID  string `validate:"required,max=128,excludesall=:"`
}

type SendMessageCommand struct {
	ConversationID string `validate:"required,uuid"`
	SenderID       string `validate:"required,max=128,excludesall=:"`
	Content        string
}

// GetMessagesCommand reads one page of a conversation.
// RequesterID is optional: when set, the requester must take part in the conversation.
type GetMessagesCommand struct {
	ConversationID string `validate:"required,uuid"`
	RequesterID    string `validate:"omitempty,max=128,excludesall=:"`
	Page           int    `validate:"gte=1"`
	PageSize       int    `validate:"gte=0"`
}

type DeleteMessageCommand struct {
	MessageID   string `validate:"required,uuid"`
	RequesterID string `validate:"required,max=128,excludesall=:"`
}

// ParticipantCommand addresses one participant of a conversation:
// leave, mark as read and unread count share it.
type ParticipantCommand struct {
	ConversationID string `validate:"required,uuid"`
	UserID         string `validate:"required,max=128,excludesall=:"`
}
