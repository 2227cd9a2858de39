package server_test

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"ticket-chat/auth"
	"ticket-chat/domain"
	"ticket-chat/eligibility"
	"ticket-chat/errors"
	"ticket-chat/infrastructure/grpc/server"
	"ticket-chat/locker"
	pb "ticket-chat/proto/messaging"
	"ticket-chat/repositories"
	"ticket-chat/services"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const (
	event  = "100"
	secret = "bufconn-secret-long-enough-for-hs256-signing"
)

type harness struct {
	listener *bufconn.Listener
	tokens   auth.Tokens
}

func newHarness(t *testing.T) harness {
	t.Helper()
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	opts := repositories.Options{Timeout: 5 * time.Second}
	directory := repositories.NewDirectoryRepository(db, log, opts)
	messages, err := repositories.NewMessageRepository(db, log, directory, opts)
	req.NoError(err)
	for _, userID := range []string{"1", "2"} {
		req.NoError(directory.RecordAttendance(ctx, domain.Attendance{UserID: userID, EventID: event, TicketID: lo.ToPtr("T" + userID)}))
		req.NoError(directory.SaveProfile(ctx, domain.Profile{UserID: userID, DisplayName: "User " + userID, Visibility: domain.VisibilityPublic}))
	}
	req.NoError(directory.SaveProfile(ctx, domain.Profile{UserID: "3", DisplayName: "User 3", Visibility: domain.VisibilityPublic}))

	service := services.NewMessagingService(log, eligibility.NewChecker(directory, directory),
		repositories.NewConversationRepository(db, log, directory, directory, opts), messages, directory,
		locker.NewKeyedMutex(), nil, services.Settings{DefaultPageSize: 20, MaxPageSize: 100, MaxContentLength: 2000})

	tokens, err := auth.NewTokens(secret)
	req.NoError(err)
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(auth.UnaryAuthInterceptor(tokens)))
	pb.RegisterMessagingServiceServer(s, server.NewMessagingServer(log, service))

	listener := bufconn.Listen(1 << 20)
	go func() {
		_ = s.Serve(listener)
	}()
	t.Cleanup(func() {
		s.Stop()
		_ = messages.Close()
		_ = db.Close()
	})
	return harness{listener: listener, tokens: tokens}
}

// clientAs connects as userID; an empty userID sends no token.
func (h harness) clientAs(t *testing.T, userID string) pb.MessagingServiceClient {
	t.Helper()
	options := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return h.listener.DialContext(ctx)
		}),
	}
	if userID != "" {
		token, err := h.tokens.GenerateToken(userID, time.Hour)
		require.NoError(t, err)
		options = append(options, grpc.WithUnaryInterceptor(auth.BearerToken(token)))
	}
	conn, err := grpc.NewClient("passthrough:///bufnet", options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return pb.NewMessagingServiceClient(conn)
}

func TestMessagingServer_Conversation_Flow(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newHarness(t)
	alice, bob := h.clientAs(t, "1"), h.clientAs(t, "2")

	conversation, err := alice.CreateOrGetConversation(ctx, &pb.CreateConversationRequest{EventID: event, PeerID: "2"})
	req.NoError(err)
	req.Equal(event, conversation.EventID)
	req.Len(conversation.Participants, 2)
	req.Equal("User 2", conversation.Participants[1].Profile.DisplayName)

	same, err := bob.CreateOrGetConversation(ctx, &pb.CreateConversationRequest{EventID: event, PeerID: "1"})
	req.NoError(err)
	req.Equal(conversation.ID, same.ID)

	sent, err := alice.SendMessage(ctx, &pb.SendMessageRequest{ConversationID: conversation.ID, Content: "hi"})
	req.NoError(err)
	req.Equal("1", sent.SenderID)
	req.NotNil(sent.Sender)
	req.Equal("User 1", sent.Sender.DisplayName)

	unread, err := bob.GetUnreadCount(ctx, &pb.ConversationRequest{ConversationID: conversation.ID})
	req.NoError(err)
	req.Equal(1, unread.Count)

	page, err := bob.GetMessages(ctx, &pb.GetMessagesRequest{ConversationID: conversation.ID, Page: 1})
	req.NoError(err)
	req.Equal(1, page.TotalCount)
	req.Equal(1, page.TotalPages)
	req.Equal(20, page.PageSize)
	req.Len(page.Messages, 1)
	req.Equal("hi", page.Messages[0].Content)
	req.True(sent.CreatedAt.Equal(page.Messages[0].CreatedAt))

	_, err = bob.MarkRead(ctx, &pb.ConversationRequest{ConversationID: conversation.ID})
	req.NoError(err)
	unread, err = bob.GetUnreadCount(ctx, &pb.ConversationRequest{ConversationID: conversation.ID})
	req.NoError(err)
	req.Zero(unread.Count)

	listed, err := bob.GetConversations(ctx, &pb.EventRequest{EventID: event})
	req.NoError(err)
	req.Len(listed.Conversations, 1)
	req.Equal("1", listed.Conversations[0].Peer.ID)
	req.Equal("hi", listed.Conversations[0].LastMessage.Content)

	users, err := bob.ListMessageableUsers(ctx, &pb.EventRequest{EventID: event})
	req.NoError(err)
	req.Len(users.Users, 1)
	req.True(users.Users[0].HasConversation)

	// Only the sender may delete
	_, err = bob.DeleteMessage(ctx, &pb.DeleteMessageRequest{MessageID: sent.ID})
	req.Equal(codes.PermissionDenied, status.Code(err))
	req.Equal(errors.ReasonNotSender, errors.ReasonFromGRPC(err))

	_, err = alice.DeleteMessage(ctx, &pb.DeleteMessageRequest{MessageID: sent.ID})
	req.NoError(err)

	_, err = bob.LeaveConversation(ctx, &pb.ConversationRequest{ConversationID: conversation.ID})
	req.NoError(err)
	listed, err = bob.GetConversations(ctx, &pb.EventRequest{EventID: event})
	req.NoError(err)
	req.Empty(listed.Conversations)
}

func TestMessagingServer_Errors(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newHarness(t)
	alice := h.clientAs(t, "1")

	_, err := h.clientAs(t, "").GetConversations(ctx, &pb.EventRequest{EventID: event})
	req.Equal(codes.Unauthenticated, status.Code(err))

	_, err = alice.CreateOrGetConversation(ctx, &pb.CreateConversationRequest{EventID: event, PeerID: "3"})
	req.Equal(codes.PermissionDenied, status.Code(err))
	req.Equal(errors.ReasonTicket, errors.ReasonFromGRPC(err))

	_, err = alice.GetMessages(ctx, &pb.GetMessagesRequest{ConversationID: "not-a-uuid", Page: 1})
	req.Equal(codes.InvalidArgument, status.Code(err))
	req.Equal(errors.ReasonInvalid, errors.ReasonFromGRPC(err))

	_, err = alice.DeleteMessage(ctx, &pb.DeleteMessageRequest{MessageID: "6f1c1f5e-8f8e-4b8e-9d8e-2a7d3c1b0a99"})
	req.Equal(codes.NotFound, status.Code(err))

	conversation, err := alice.CreateOrGetConversation(ctx, &pb.CreateConversationRequest{EventID: event, PeerID: "2"})
	req.NoError(err)
	_, err = alice.SendMessage(ctx, &pb.SendMessageRequest{ConversationID: conversation.ID, Content: "   "})
	req.Equal(codes.InvalidArgument, status.Code(err))
}
