package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"ticket-chat/auth"
	chaterrors "ticket-chat/errors"
	pb "ticket-chat/proto/messaging"
	"time"

	"github.com/Netflix/go-env"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string        `env:"CHAT_SERVER_ADDR,default=localhost:8080"`
	Token         string        `env:"CHAT_TOKEN,required=true"`
	EventID       string        `env:"CHAT_EVENT_ID,required=true"`
	Timeout       time.Duration `env:"CHAT_TIMEOUT,default=10s"`
	LogLevel      string        `env:"LOG_LEVEL,default=INFO"`
}

const usage = `usage: client <command>
  conversations                  list my conversations for the event
  users                          list ticket holders I can message
  open <peer id>                 create or get the conversation with a peer
  history <conversation> [page]  show a page of messages, newest page first
  send <conversation> <text>     send a message
  delete <message>               delete one of my messages
  read <conversation>            mark a conversation as read
  leave <conversation>           leave a conversation`

var errUsage = errors.New(usage)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %s\n", describe(err))
	}
	os.Exit(code)
}

// describe prefixes server errors with the reason code the server attached.
func describe(err error) string {
	if reason := chaterrors.ReasonFromGRPC(err); reason != "" {
		return fmt.Sprintf("[%s] %v", reason, err)
	}
	return err.Error()
}

// run loads the configuration, dials the server with the bearer token and executes one command.
func run(args []string) (int, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if len(args) == 0 {
		return exitConfig, errUsage
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	conn, err := grpc.NewClient(config.ServerAddress,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(auth.BearerToken(config.Token)))
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() { _ = conn.Close() }()

	cli := commands{client: pb.NewMessagingServiceClient(conn), eventID: config.EventID, log: log}
	if err := cli.execute(ctx, args[0], args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			return exitConfig, err
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

type commands struct {
	client  pb.MessagingServiceClient
	eventID string
	log     *slog.Logger
}

func (c commands) execute(ctx context.Context, name string, args []string) error {
	switch {
	case name == "conversations":
		resp, err := c.client.GetConversations(ctx, &pb.EventRequest{EventID: c.eventID})
		if err != nil {
			return err
		}
		for _, item := range resp.Conversations {
			preview := ""
			if item.LastMessage != nil {
				preview = item.LastMessage.Content
			}
			fmt.Printf("%s  %-20s unread=%d  %s\n", item.ID, item.Peer.DisplayName, item.UnreadCount, preview)
		}
	case name == "users":
		resp, err := c.client.ListMessageableUsers(ctx, &pb.EventRequest{EventID: c.eventID})
		if err != nil {
			return err
		}
		for _, user := range resp.Users {
			fmt.Printf("%s  %-20s conversation=%t\n", user.User.ID, user.User.DisplayName, user.HasConversation)
		}
	case name == "open" && len(args) == 1:
		conversation, err := c.client.CreateOrGetConversation(ctx, &pb.CreateConversationRequest{EventID: c.eventID, PeerID: args[0]})
		if err != nil {
			return err
		}
		fmt.Println(conversation.ID)
	case name == "history" && (len(args) == 1 || len(args) == 2):
		page := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("page %q: %w", args[1], errUsage)
			}
			page = n
		}
		resp, err := c.client.GetMessages(ctx, &pb.GetMessagesRequest{ConversationID: args[0], Page: page})
		if err != nil {
			return err
		}
		for _, msg := range resp.Messages {
			author := msg.SenderID
			if msg.Sender != nil && msg.Sender.DisplayName != "" {
				author = msg.Sender.DisplayName
			}
			fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Local().Format(time.DateTime), author, msg.Content)
		}
		fmt.Printf("page %d/%d, %d message(s)\n", resp.Page, resp.TotalPages, resp.TotalCount)
	case name == "send" && len(args) >= 2:
		msg, err := c.client.SendMessage(ctx, &pb.SendMessageRequest{ConversationID: args[0], Content: strings.Join(args[1:], " ")})
		if err != nil {
			return err
		}
		c.log.Info("Message sent", "id", msg.ID, "content", msg.Content)
	case name == "delete" && len(args) == 1:
		if _, err := c.client.DeleteMessage(ctx, &pb.DeleteMessageRequest{MessageID: args[0]}); err != nil {
			return err
		}
	case name == "read" && len(args) == 1:
		if _, err := c.client.MarkRead(ctx, &pb.ConversationRequest{ConversationID: args[0]}); err != nil {
			return err
		}
	case name == "leave" && len(args) == 1:
		if _, err := c.client.LeaveConversation(ctx, &pb.ConversationRequest{ConversationID: args[0]}); err != nil {
			return err
		}
	default:
		return errUsage
	}
	return nil
}
