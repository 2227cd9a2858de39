package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"ticket-chat/auth"
	pb "ticket-chat/proto/messaging"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
	tokens auth.Tokens
}

// SetupSuite loads the environment configuration and skips when no server is configured
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if !s.Config.Ready() {
		s.T().Skip("MESSAGING_ADDR, JWT_SECRET, E2E_EVENT_ID, E2E_USER_A and E2E_USER_B are required")
	}
	s.tokens, err = auth.NewTokens(s.Config.JWTSecret)
	s.Require().NoError(err)
}

// GrpcConn initializes a gRPC connection authenticated as userID, with logging, colors, and JSON debugging
func (s *BaseGrpcSuite) GrpcConn(t *testing.T, name, addr, userID string) *grpc.ClientConn {
	// 1. Print a colorized header for the connection step in logs
	header := fmt.Sprintf("  ====== %s (as %s) ======", name, userID)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	token, err := s.tokens.GenerateToken(userID, time.Hour)
	s.Require().NoError(err)

	// 2. Create the client with a logging interceptor in front of the bearer token
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
				start := time.Now()
				err := invoker(ctx, method, req, reply, cc, opts...)

				logBuilder := strings.Builder{}
				fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))

				// Log full JSON request/response bodies if E2E_DEBUG_JSON is enabled
				if s.Config.DebugJSON {
					fmt.Fprintln(&logBuilder, "\nREQUEST:")
					fmt.Fprintln(&logBuilder, dump(req))
					if err != nil {
						fmt.Fprintln(&logBuilder, "ERROR:", err)
					} else {
						fmt.Fprintln(&logBuilder, "RESPONSE:")
						fmt.Fprintln(&logBuilder, dump(reply))
					}
				}
				t.Log(logBuilder.String())
				return err
			},
			auth.BearerToken(token),
		),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+addr)
	return conn
}

// WithUser provides a MessagingService client acting as userID within a contextual test step
func (s *BaseGrpcSuite) WithUser(name, userID string, fn func(ctx context.Context, client pb.MessagingServiceClient)) {
	conn := s.GrpcConn(s.T(), name, s.Config.MessagingAddr, userID)
	defer conn.Close()

	client := pb.NewMessagingServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fn(ctx, client)
}

func dump(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
