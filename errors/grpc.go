package errors

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ErrorDomain = "ticket-chat"

var reasonCodes = map[Reason]codes.Code{
	ReasonInvalid:         codes.InvalidArgument,
	ReasonTicket:          codes.PermissionDenied,
	ReasonProfile:         codes.PermissionDenied,
	ReasonNotParticipant:  codes.PermissionDenied,
	ReasonNotSender:       codes.PermissionDenied,
	ReasonNotFound:        codes.NotFound,
	ReasonConflict:        codes.Aborted,
	ReasonUnauthenticated: codes.Unauthenticated,
	ReasonUnavailable:     codes.Unavailable,
	ReasonInternal:        codes.Internal,
}

// MapToGRPCError converts a service error into a gRPC status.
// Domain errors keep their message, infrastructure errors are masked.
// The reason code travels as an ErrorInfo detail so clients can branch on it.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	reason := ReasonOf(err)
	message := err.Error()
	switch reason {
	case ReasonInternal:
		message = "internal error"
	case ReasonUnavailable:
		message = "service unavailable, try again"
	}
	st := status.New(reasonCodes[reason], message)
	detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(reason),
		Domain: ErrorDomain,
	})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ReasonFromGRPC extracts the reason code set by MapToGRPCError.
func ReasonFromGRPC(err error) Reason {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok && info.Domain == ErrorDomain {
			return Reason(info.Reason)
		}
	}
	return ""
}
