package auth

import (
	"context"
	"fmt"
	"strings"
	"ticket-chat/errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type contextKey string

const UserIDKey contextKey = "user_id"

const authorizationHeader = "authorization"

// TokenValidator is satisfied by Tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// UnaryAuthInterceptor rejects calls without a valid bearer token and
// injects the caller's user id into the context of the others.
// Methods listed in public skip the check.
func UnaryAuthInterceptor(tokens TokenValidator, public ...string) grpc.UnaryServerInterceptor {
	skip := make(map[string]struct{}, len(public))
	for _, method := range public {
		skip[method] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := skip[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, errors.MapToGRPCError(fmt.Errorf("%w: metadata is missing", errors.ErrUnauthenticated))
		}
		values := md.Get(authorizationHeader)
		if len(values) == 0 {
			return nil, errors.MapToGRPCError(fmt.Errorf("%w: authorization token is missing", errors.ErrUnauthenticated))
		}
		claims, err := tokens.ValidateToken(strings.TrimPrefix(values[0], "Bearer "))
		if err != nil {
			return nil, errors.MapToGRPCError(fmt.Errorf("%w: invalid or expired token", errors.ErrUnauthenticated))
		}
		return handler(WithUserID(ctx, claims.UserID), req)
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext returns the caller set by UnaryAuthInterceptor.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		return "", errors.ErrUnauthenticated
	}
	return userID, nil
}

// BearerToken attaches token to every outgoing unary call.
func BearerToken(token string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, authorizationHeader, "Bearer "+token)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
