//go:generate go run go.uber.org/mock/mockgen -source=messaging_service.go -destination=../mocks/mock_messaging_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"ticket-chat/contract"
	"ticket-chat/domain"
	"ticket-chat/domain/event"
	"ticket-chat/eligibility"
	"ticket-chat/errors"
	"ticket-chat/repositories"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IMessagingService interface {
	CreateOrGetConversation(ctx context.Context, cmd domain.CreateConversationCommand) (ConversationView, error)
	GetConversationsForUser(ctx context.Context, cmd domain.ListConversationsCommand) ([]ConversationListItem, error)
	ListMessageableUsers(ctx context.Context, cmd domain.ListConversationsCommand) ([]MessageableUser, error)
	LeaveConversation(ctx context.Context, cmd domain.ParticipantCommand) error
	SendMessage(ctx context.Context, cmd domain.SendMessageCommand) (MessageView, error)
	GetMessages(ctx context.Context, cmd domain.GetMessagesCommand) (MessagesView, error)
	DeleteMessage(ctx context.Context, cmd domain.DeleteMessageCommand) error
	MarkRead(ctx context.Context, cmd domain.ParticipantCommand) error
	GetUnreadCount(ctx context.Context, cmd domain.ParticipantCommand) (int, error)
}

// ContentFilter rewrites message content before it is stored.
type ContentFilter interface {
	Censor(content string) (string, []string)
}

type Settings struct {
	DefaultPageSize  int
	MaxPageSize      int
	MaxContentLength int
}

type ParticipantView struct {
	domain.Participant
	Profile domain.PublicSummary
}

type ConversationView struct {
	ID           uuid.UUID
	EventID      string
	CreatedAt    time.Time
	Participants []ParticipantView
}

type ConversationListItem struct {
	Conversation domain.Conversation
	Peer         domain.PublicSummary
	LastMessage  *domain.Message
	UnreadCount  int
}

type MessageView struct {
	domain.Message
	Sender domain.PublicSummary
}

type MessagesView struct {
	Messages   []domain.Message
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

type MessageableUser struct {
	User            domain.PublicSummary
	HasConversation bool
}

type MessagingService struct {
	log           *slog.Logger
	checker       eligibility.IChecker
	conversations repositories.IConversationRepository
	messages      repositories.IMessageRepository
	profiles      contract.ProfileOracle
	locker        contract.Locker
	filter        ContentFilter
	settings      Settings
	events        contract.EventPublisher
}

func NewMessagingService(log *slog.Logger, checker eligibility.IChecker,
	conversations repositories.IConversationRepository, messages repositories.IMessageRepository,
	profiles contract.ProfileOracle, locker contract.Locker, filter ContentFilter, settings Settings) *MessagingService {
	return &MessagingService{
		log:           log,
		checker:       checker,
		conversations: conversations,
		messages:      messages,
		profiles:      profiles,
		locker:        locker,
		filter:        filter,
		settings:      settings,
	}
}

// WithEvents publishes an event after every committed change.
func (s *MessagingService) WithEvents(events contract.EventPublisher) *MessagingService {
	s.events = events
	return s
}

func (s *MessagingService) publish(evt event.DomainEvent) {
	if s.events != nil {
		s.events.Publish(evt)
	}
}

// CreateOrGetConversation returns the conversation of the pair for the event,
// creating it when needed. Both users must pass the eligibility gate every time.
//
// Find-then-create runs under a lock on (event, sorted pair). Instances that do not
// share the lock are caught by the store's pair index: the loser gets
// ErrConversationConflict and re-fetches the winner's conversation, once.
// A participant who left is reactivated rather than given a second conversation.
func (s *MessagingService) CreateOrGetConversation(ctx context.Context, cmd domain.CreateConversationCommand) (ConversationView, error) {
	if err := validateCommand(cmd); err != nil {
		return ConversationView{}, err
	}
	if cmd.UserA == cmd.UserB {
		return ConversationView{}, errors.ErrSameUser
	}

	verdict, err := s.checker.CanConverse(ctx, cmd.EventID, cmd.UserA, cmd.UserB)
	if err != nil {
		return ConversationView{}, err
	}
	if !verdict.OK {
		s.log.Debug("Conversation refused",
			"event_id", cmd.EventID, "user_id", verdict.UserID, "reason", verdict.Reason)
		return ConversationView{}, verdict.Err()
	}

	release, err := s.locker.Lock(ctx, domain.PairKey(cmd.EventID, cmd.UserA, cmd.UserB))
	if err != nil {
		return ConversationView{}, err
	}
	defer release()

	conversation, err := s.findOrCreate(ctx, cmd)
	if err != nil {
		return ConversationView{}, err
	}
	return s.conversationView(ctx, conversation)
}

func (s *MessagingService) findOrCreate(ctx context.Context, cmd domain.CreateConversationCommand) (domain.Conversation, error) {
	existing, err := s.conversations.FindConversation(ctx, cmd.EventID, cmd.UserA, cmd.UserB)
	if err != nil {
		return domain.Conversation{}, err
	}
	if existing != nil {
		return s.rejoin(ctx, *existing, cmd.UserA, cmd.UserB)
	}

	created, err := s.conversations.CreateConversation(ctx, cmd.EventID, cmd.UserA, cmd.UserB)
	if err == nil {
		s.log.Info("Conversation created", "conversation_id", created.ID, "event_id", cmd.EventID)
		s.publish(event.ConversationOpened{ConversationID: created.ID, EventID: cmd.EventID, At: created.CreatedAt})
		return created, nil
	}
	if !errors.Is(err, errors.ErrConversationConflict) {
		return domain.Conversation{}, err
	}

	s.log.Warn("Conversation created concurrently, fetching it", "event_id", cmd.EventID)
	existing, err = s.conversations.FindConversation(ctx, cmd.EventID, cmd.UserA, cmd.UserB)
	if err != nil {
		return domain.Conversation{}, err
	}
	if existing == nil {
		return domain.Conversation{}, fmt.Errorf("%w: pair %s still missing after retry",
			errors.ErrConversationConflict, domain.PairKey(cmd.EventID, cmd.UserA, cmd.UserB))
	}
	return s.rejoin(ctx, *existing, cmd.UserA, cmd.UserB)
}

// rejoin reactivates the given users when they had left the conversation.
func (s *MessagingService) rejoin(ctx context.Context, conversation domain.Conversation, userIDs ...string) (domain.Conversation, error) {
	for i, p := range conversation.Participants {
		if p.IsActive || !lo.Contains(userIDs, p.UserID) {
			continue
		}
		if err := s.conversations.ReactivateParticipant(ctx, conversation.ID, p.UserID); err != nil {
			return domain.Conversation{}, err
		}
		conversation.Participants[i].IsActive = true
		s.log.Info("Participant rejoined", "conversation_id", conversation.ID, "user_id", p.UserID)
		s.publish(event.ParticipantRejoined{ConversationID: conversation.ID, UserID: p.UserID, At: time.Now().UTC()})
	}
	return conversation, nil
}

func (s *MessagingService) conversationView(ctx context.Context, conversation domain.Conversation) (ConversationView, error) {
	view := ConversationView{
		ID:        conversation.ID,
		EventID:   conversation.EventID,
		CreatedAt: conversation.CreatedAt,
	}
	for _, p := range conversation.Participants {
		summary, err := s.summary(ctx, p.UserID)
		if err != nil {
			return ConversationView{}, err
		}
		view.Participants = append(view.Participants, ParticipantView{Participant: p, Profile: summary})
	}
	return view, nil
}

// summary returns the public summary of a user, reduced to the id when the
// profile is private or unknown.
func (s *MessagingService) summary(ctx context.Context, userID string) (domain.PublicSummary, error) {
	summary, err := s.profiles.GetPublicSummary(ctx, userID)
	if errors.Is(err, errors.ErrProfileNotPublic) || errors.Is(err, errors.ErrProfileNotFound) {
		return domain.PublicSummary{ID: userID}, nil
	}
	return summary, err
}

func (s *MessagingService) GetConversationsForUser(ctx context.Context, cmd domain.ListConversationsCommand) ([]ConversationListItem, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	summaries, err := s.conversations.ListConversationsForUser(ctx, cmd.EventID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	items := make([]ConversationListItem, 0, len(summaries))
	for _, summary := range summaries {
		item := ConversationListItem{
			Conversation: summary.Conversation,
			LastMessage:  summary.LastMessage,
			UnreadCount:  summary.UnreadCount,
		}
		if peer, ok := summary.Conversation.Peer(cmd.UserID); ok {
			if item.Peer, err = s.summary(ctx, peer.UserID); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// ListMessageableUsers lists the public ticket holders of the event the requester can write to.
func (s *MessagingService) ListMessageableUsers(ctx context.Context, cmd domain.ListConversationsCommand) ([]MessageableUser, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	candidates, err := s.conversations.ListCandidateUsers(ctx, cmd.EventID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	users := make([]MessageableUser, 0, len(candidates))
	for _, candidate := range candidates {
		summary, err := s.profiles.GetPublicSummary(ctx, candidate.UserID)
		if errors.Is(err, errors.ErrProfileNotPublic) || errors.Is(err, errors.ErrProfileNotFound) {
			// went private since the candidate list was read
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, MessageableUser{User: summary, HasConversation: candidate.HasConversation})
	}
	return users, nil
}

// LeaveConversation deactivates the participant. History stays readable for the other side.
func (s *MessagingService) LeaveConversation(ctx context.Context, cmd domain.ParticipantCommand) error {
	conversationID, err := parseParticipantCommand(cmd)
	if err != nil {
		return err
	}
	if err = s.conversations.DeactivateParticipant(ctx, conversationID, cmd.UserID); err != nil {
		return err
	}
	s.log.Info("Participant left", "conversation_id", conversationID, "user_id", cmd.UserID)
	s.publish(event.ParticipantLeft{ConversationID: conversationID, UserID: cmd.UserID, At: time.Now().UTC()})
	return nil
}

// SendMessage stores the message and echoes it back with the sender's public fields.
func (s *MessagingService) SendMessage(ctx context.Context, cmd domain.SendMessageCommand) (MessageView, error) {
	if err := validateCommand(cmd); err != nil {
		return MessageView{}, err
	}
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return MessageView{}, errors.ErrEmptyContent
	}
	if s.settings.MaxContentLength > 0 && utf8.RuneCountInString(content) > s.settings.MaxContentLength {
		return MessageView{}, fmt.Errorf("%w: %d characters allowed", errors.ErrContentTooLong, s.settings.MaxContentLength)
	}
	var censored []string
	if s.filter != nil {
		if content, censored = s.filter.Censor(content); len(censored) > 0 {
			s.log.Info("Message content censored",
				"conversation_id", cmd.ConversationID, "sender_id", cmd.SenderID, "words", len(censored))
		}
	}

	conversationID, err := parseID(cmd.ConversationID)
	if err != nil {
		return MessageView{}, err
	}
	message, err := s.messages.AppendMessage(ctx, conversationID, cmd.SenderID, content)
	if err != nil {
		return MessageView{}, err
	}
	s.publish(event.MessageSent{MessageID: message.ID, ConversationID: conversationID, SenderID: cmd.SenderID, At: message.CreatedAt})
	if len(censored) > 0 {
		s.publish(event.MessageCensored{MessageID: message.ID, ConversationID: conversationID, Words: censored, At: message.CreatedAt})
	}

	sender, err := s.summary(ctx, cmd.SenderID)
	if err != nil {
		// the message is stored, an echo without profile fields beats a retry that duplicates it
		s.log.Warn("Sender summary unavailable", "message_id", message.ID, "error", err)
		sender = domain.PublicSummary{ID: cmd.SenderID}
	}
	return MessageView{Message: message, Sender: sender}, nil
}

// GetMessages returns a page of the conversation, oldest message first.
// A zero page size falls back to the default; larger sizes are capped.
func (s *MessagingService) GetMessages(ctx context.Context, cmd domain.GetMessagesCommand) (MessagesView, error) {
	if err := validateCommand(cmd); err != nil {
		return MessagesView{}, err
	}
	conversationID, err := parseID(cmd.ConversationID)
	if err != nil {
		return MessagesView{}, err
	}
	if cmd.RequesterID != "" {
		conversation, err := s.conversations.GetConversation(ctx, conversationID)
		if err != nil {
			return MessagesView{}, err
		}
		if _, ok := conversation.Participant(cmd.RequesterID); !ok {
			return MessagesView{}, fmt.Errorf("%w: %s", errors.ErrNotParticipant, cmd.RequesterID)
		}
	}

	pageSize := s.pageSize(cmd.PageSize)
	if cmd.Page > math.MaxInt/pageSize {
		return MessagesView{}, fmt.Errorf("%w: page %d is out of range", errors.ErrInvalidArgument, cmd.Page)
	}
	page, err := s.messages.ListMessages(ctx, conversationID, cmd.Page, pageSize)
	if err != nil {
		return MessagesView{}, err
	}
	return MessagesView{
		Messages:   page.Messages,
		Page:       cmd.Page,
		PageSize:   pageSize,
		TotalCount: page.TotalCount,
		TotalPages: (page.TotalCount + pageSize - 1) / pageSize,
	}, nil
}

func (s *MessagingService) pageSize(requested int) int {
	size := requested
	if size <= 0 {
		size = s.settings.DefaultPageSize
	}
	if s.settings.MaxPageSize > 0 && size > s.settings.MaxPageSize {
		size = s.settings.MaxPageSize
	}
	return max(size, 1)
}

func (s *MessagingService) DeleteMessage(ctx context.Context, cmd domain.DeleteMessageCommand) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}
	messageID, err := parseID(cmd.MessageID)
	if err != nil {
		return err
	}
	if err = s.messages.SoftDeleteMessage(ctx, messageID, cmd.RequesterID); err != nil {
		return err
	}
	s.publish(event.MessageDeleted{MessageID: messageID, RequesterID: cmd.RequesterID, At: time.Now().UTC()})
	return nil
}

func (s *MessagingService) MarkRead(ctx context.Context, cmd domain.ParticipantCommand) error {
	conversationID, err := parseParticipantCommand(cmd)
	if err != nil {
		return err
	}
	return s.messages.MarkRead(ctx, conversationID, cmd.UserID)
}

func (s *MessagingService) GetUnreadCount(ctx context.Context, cmd domain.ParticipantCommand) (int, error) {
	conversationID, err := parseParticipantCommand(cmd)
	if err != nil {
		return 0, err
	}
	return s.messages.CountUnread(ctx, conversationID, cmd.UserID)
}

func parseParticipantCommand(cmd domain.ParticipantCommand) (uuid.UUID, error) {
	if err := validateCommand(cmd); err != nil {
		return uuid.Nil, err
	}
	return parseID(cmd.ConversationID)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err)
	}
	return id, nil
}
