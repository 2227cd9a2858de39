// Package messaging holds the wire types and the gRPC service descriptor of
// ticketchat.v1.MessagingService. Messages travel as CBOR.
package messaging

import "time"

type Summary struct {
	ID          string  `cbor:"id"`
	DisplayName string  `cbor:"display_name,omitempty"`
	AvatarRef   string  `cbor:"avatar_ref,omitempty"`
	Bio         *string `cbor:"bio,omitempty"`
}

type Participant struct {
	UserID     string     `cbor:"user_id"`
	IsActive   bool       `cbor:"is_active"`
	LastReadAt *time.Time `cbor:"last_read_at,omitempty"`
	Profile    Summary    `cbor:"profile"`
}

type Conversation struct {
	ID           string        `cbor:"id"`
	EventID      string        `cbor:"event_id"`
	CreatedAt    time.Time     `cbor:"created_at"`
	Participants []Participant `cbor:"participants"`
}

type Message struct {
	ID             string    `cbor:"id"`
	ConversationID string    `cbor:"conversation_id"`
	SenderID       string    `cbor:"sender_id"`
	Content        string    `cbor:"content"`
	CreatedAt      time.Time `cbor:"created_at"`
	Sender         *Summary  `cbor:"sender,omitempty"`
}

type ConversationItem struct {
	ID          string    `cbor:"id"`
	EventID     string    `cbor:"event_id"`
	CreatedAt   time.Time `cbor:"created_at"`
	Peer        Summary   `cbor:"peer"`
	LastMessage *Message  `cbor:"last_message,omitempty"`
	UnreadCount int       `cbor:"unread_count"`
}

type MessageableUser struct {
	User            Summary `cbor:"user"`
	HasConversation bool    `cbor:"has_conversation"`
}

type CreateConversationRequest struct {
	EventID string `cbor:"event_id"`
	PeerID  string `cbor:"peer_id"`
}

type EventRequest struct {
	EventID string `cbor:"event_id"`
}

type ListConversationsResponse struct {
	Conversations []ConversationItem `cbor:"conversations"`
}

type ListMessageableUsersResponse struct {
	Users []MessageableUser `cbor:"users"`
}

// ConversationRequest addresses the caller's side of a conversation.
type ConversationRequest struct {
	ConversationID string `cbor:"conversation_id"`
}

type SendMessageRequest struct {
	ConversationID string `cbor:"conversation_id"`
	Content        string `cbor:"content"`
}

type GetMessagesRequest struct {
	ConversationID string `cbor:"conversation_id"`
	Page           int    `cbor:"page"`
	PageSize       int    `cbor:"page_size,omitempty"`
}

type GetMessagesResponse struct {
	Messages   []Message `cbor:"messages"`
	Page       int       `cbor:"page"`
	PageSize   int       `cbor:"page_size"`
	TotalCount int       `cbor:"total_count"`
	TotalPages int       `cbor:"total_pages"`
}

type DeleteMessageRequest struct {
	MessageID string `cbor:"message_id"`
}

type UnreadCountResponse struct {
	Count int `cbor:"count"`
}

type Empty struct{}
