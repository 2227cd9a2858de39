package server

import (
	"context"
	"log/slog"
	"ticket-chat/auth"
	"ticket-chat/domain"
	"ticket-chat/errors"
	pb "ticket-chat/proto/messaging"
	"ticket-chat/services"

	"github.com/samber/lo"
)

// MessagingServer exposes the messaging service over gRPC.
// The acting user is always the authenticated caller.
type MessagingServer struct {
	service services.IMessagingService
	log     *slog.Logger
}

var _ pb.MessagingServiceServer = (*MessagingServer)(nil)

func NewMessagingServer(log *slog.Logger, service services.IMessagingService) *MessagingServer {
	return &MessagingServer{service: service, log: log}
}

func (s *MessagingServer) CreateOrGetConversation(ctx context.Context, req *pb.CreateConversationRequest) (*pb.Conversation, error) {
	caller, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, "CreateOrGetConversation", err)
	}
	view, err := s.service.CreateOrGetConversation(ctx, domain.CreateConversationCommand{
		EventID: req.EventID,
		UserA:   caller,
		UserB:   req.PeerID,
	})
	if err != nil {
		return nil, s.fail(ctx, "CreateOrGetConversation", err)
	}
	return toConversation(view), nil
}

func (s *MessagingServer) GetConversations(ctx context.Context, req *pb.EventRequest) (*pb.ListConversationsResponse, error) {
	caller, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetConversations", err)
	}
	items, err := s.service.GetConversationsForUser(ctx, domain.ListConversationsCommand{EventID: req.EventID, UserID: caller})
	if err != nil {
		return nil, s.fail(ctx, "GetConversations", err)
	}
	return &pb.ListConversationsResponse{
		Conversations: lo.Map(items, func(item services.ConversationListItem, _ int) pb.ConversationItem {
			return toConversationItem(item)
		}),
	}, nil
}

func (s *MessagingServer) ListMessageableUsers(ctx context.Context, req *pb.EventRequest) (*pb.ListMessageableUsersResponse, error) {
	caller, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, "ListMessageableUsers", err)
	}
	users, err := s.service.ListMessageableUsers(ctx, domain.ListConversationsCommand{EventID: req.EventID, UserID: caller})
	if err != nil {
		return nil, s.fail(ctx, "ListMessageableUsers", err)
	}
	return &pb.ListMessageableUsersResponse{
		Users: lo.Map(users, func(user services.MessageableUser, _ int) pb.MessageableUser {
			return pb.MessageableUser{User: toSummary(user.User), HasConversation: user.HasConversation}
		}),
	}, nil
}

func (s *MessagingServer) LeaveConversation(ctx context.Context, req *pb.ConversationRequest) (*pb.Empty, error) {
	return s.onParticipant(ctx, "LeaveConversation", req, s.service.LeaveConversation)
}

func (s *MessagingServer) MarkRead(ctx context.Context, req *pb.ConversationRequest) (*pb.Empty, error) {
	return s.onParticipant(ctx, "MarkRead", req, s.service.MarkRead)
}

func (s *MessagingServer) onParticipant(ctx context.Context, method string, req *pb.ConversationRequest,
	call func(context.Context, domain.ParticipantCommand) error) (*pb.Empty, error) {
	caller, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, method, err)
	}
	if err = call(ctx, domain.ParticipantCommand{ConversationID: req.ConversationID, UserID: caller}); err != nil {
		return nil, s.fail(ctx, method, err)
	}
	return &pb.Empty{}, nil
}

func (s *MessagingServer) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.Message, error) {
	caller, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, "SendMessage", err)
	}
	view, err := s.service.SendMessage(ctx, domain.SendMessageCommand{
		ConversationID: req.ConversationID,
		SenderID:       caller,
		Content:        req.Content,
	})
	if err != nil {
		return nil, s.fail(ctx, "SendMessage", err)
	}
	message := toMessage(view.Message)
	message.Sender = lo.ToPtr(toSummary(view.Sender))
	return &message, nil
}

func (s *MessagingServer) GetMessages(ctx context.Context, req *pb.GetMessagesRequest) (*pb.GetMessagesResponse, error) {
	caller, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetMessages", err)
	}
	view, err := s.service.GetMessages(ctx, domain.GetMessagesCommand{
		ConversationID: req.ConversationID,
		RequesterID:    caller,
		Page:           req.Page,
		PageSize:       req.PageSize,
	})
	if err != nil {
		return nil, s.fail(ctx, "GetMessages", err)
	}
	return &pb.GetMessagesResponse{
		Messages: lo.Map(view.Messages, func(m domain.Message, _ int) pb.Message {
			return toMessage(m)
		}),
		Page:       view.Page,
		PageSize:   view.PageSize,
		TotalCount: view.TotalCount,
		TotalPages: view.TotalPages,
	}, nil
}

func (s *MessagingServer) DeleteMessage(ctx context.Context, req *pb.DeleteMessageRequest) (*pb.Empty, error) {
	caller, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, "DeleteMessage", err)
	}
	if err = s.service.DeleteMessage(ctx, domain.DeleteMessageCommand{MessageID: req.MessageID, RequesterID: caller}); err != nil {
		return nil, s.fail(ctx, "DeleteMessage", err)
	}
	return &pb.Empty{}, nil
}

func (s *MessagingServer) GetUnreadCount(ctx context.Context, req *pb.ConversationRequest) (*pb.UnreadCountResponse, error) {
	caller, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetUnreadCount", err)
	}
	count, err := s.service.GetUnreadCount(ctx, domain.ParticipantCommand{ConversationID: req.ConversationID, UserID: caller})
	if err != nil {
		return nil, s.fail(ctx, "GetUnreadCount", err)
	}
	return &pb.UnreadCountResponse{Count: count}, nil
}

// fail logs infrastructure failures, which the status hides from the caller.
func (s *MessagingServer) fail(ctx context.Context, method string, err error) error {
	if !errors.IsDomain(err) {
		s.log.ErrorContext(ctx, "Messaging call failed", "method", method, "error", err)
	}
	return errors.MapToGRPCError(err)
}

func toSummary(summary domain.PublicSummary) pb.Summary {
	return pb.Summary{
		ID:          summary.ID,
		DisplayName: summary.DisplayName,
		AvatarRef:   summary.AvatarRef,
		Bio:         summary.Bio,
	}
}

func toMessage(m domain.Message) pb.Message {
	return pb.Message{
		ID:             m.ID.String(),
		ConversationID: m.ConversationID.String(),
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func toConversation(view services.ConversationView) *pb.Conversation {
	return &pb.Conversation{
		ID:        view.ID.String(),
		EventID:   view.EventID,
		CreatedAt: view.CreatedAt,
		Participants: lo.Map(view.Participants, func(p services.ParticipantView, _ int) pb.Participant {
			return pb.Participant{
				UserID:     p.UserID,
				IsActive:   p.IsActive,
				LastReadAt: p.LastReadAt,
				Profile:    toSummary(p.Profile),
			}
		}),
	}
}

func toConversationItem(item services.ConversationListItem) pb.ConversationItem {
	result := pb.ConversationItem{
		ID:          item.Conversation.ID.String(),
		EventID:     item.Conversation.EventID,
		CreatedAt:   item.Conversation.CreatedAt,
		Peer:        toSummary(item.Peer),
		UnreadCount: item.UnreadCount,
	}
	if item.LastMessage != nil {
		result.LastMessage = lo.ToPtr(toMessage(*item.LastMessage))
	}
	return result
}
