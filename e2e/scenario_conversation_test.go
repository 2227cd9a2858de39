package e2e

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	pb "ticket-chat/proto/messaging"
)

type testConversationSuite struct {
	BaseGrpcSuite
}

func TestConversationSuite(t *testing.T) {
	suite.Run(t, &testConversationSuite{})
}

func (s *testConversationSuite) TestFullConversationFlow() {
	var conversationID string
	content := "e2e " + uuid.NewString()

	// --- STEP 1: OPEN ---
	s.Run("Step 1: Both sides reach the same conversation", func() {
		s.WithUser("Open conversation", s.Config.UserA, func(ctx context.Context, client pb.MessagingServiceClient) {
			conversation, err := client.CreateOrGetConversation(ctx, &pb.CreateConversationRequest{EventID: s.Config.EventID, PeerID: s.Config.UserB})
			s.Require().NoError(err)
			s.Require().Len(conversation.Participants, 2)
			conversationID = conversation.ID
		})
		s.WithUser("Open from the other side", s.Config.UserB, func(ctx context.Context, client pb.MessagingServiceClient) {
			conversation, err := client.CreateOrGetConversation(ctx, &pb.CreateConversationRequest{EventID: s.Config.EventID, PeerID: s.Config.UserA})
			s.Require().NoError(err)
			s.Require().Equal(conversationID, conversation.ID)
		})
	})

	// --- STEP 2: SEND ---
	s.Run("Step 2: A writes, B sees it unread", func() {
		s.WithUser("Send", s.Config.UserA, func(ctx context.Context, client pb.MessagingServiceClient) {
			msg, err := client.SendMessage(ctx, &pb.SendMessageRequest{ConversationID: conversationID, Content: content})
			s.Require().NoError(err)
			s.Require().Equal(content, msg.Content)
		})
		s.WithUser("Unread", s.Config.UserB, func(ctx context.Context, client pb.MessagingServiceClient) {
			unread, err := client.GetUnreadCount(ctx, &pb.ConversationRequest{ConversationID: conversationID})
			s.Require().NoError(err)
			s.Require().GreaterOrEqual(unread.Count, 1)
		})
	})

	// --- STEP 3: READ ---
	s.Run("Step 3: B reads the history and clears the counter", func() {
		s.WithUser("Read", s.Config.UserB, func(ctx context.Context, client pb.MessagingServiceClient) {
			page, err := client.GetMessages(ctx, &pb.GetMessagesRequest{ConversationID: conversationID, Page: 1})
			s.Require().NoError(err)
			s.Require().True(lo.ContainsBy(page.Messages, func(m pb.Message) bool { return m.Content == content }))

			_, err = client.MarkRead(ctx, &pb.ConversationRequest{ConversationID: conversationID})
			s.Require().NoError(err)
			unread, err := client.GetUnreadCount(ctx, &pb.ConversationRequest{ConversationID: conversationID})
			s.Require().NoError(err)
			s.Require().Zero(unread.Count)
		})
	})
}
