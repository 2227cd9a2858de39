package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// Validation
var (
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrEmptyContent    = fmt.Errorf("message content is empty")
	ErrContentTooLong  = fmt.Errorf("message content is too long")
	ErrSameUser        = fmt.Errorf("a conversation needs two distinct users")
)

// Eligibility and authorization
var (
	ErrNoTicket         = fmt.Errorf("both users must hold a ticket for the event")
	ErrProfileNotPublic = fmt.Errorf("profile is not public")
	ErrNotParticipant   = fmt.Errorf("user is not an active participant of the conversation")
	ErrNotMessageSender = fmt.Errorf("only the sender can delete a message")
	ErrUnauthenticated  = fmt.Errorf("caller is not authenticated")
)

// Not found
var (
	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrMessageNotFound      = fmt.Errorf("message not found")
	ErrParticipantNotFound  = fmt.Errorf("participant not found")
	ErrProfileNotFound      = fmt.Errorf("profile not found")
)

// Conflict and infrastructure
var (
	ErrConversationConflict = fmt.Errorf("conversation was created concurrently")
	ErrStoreTimeout         = fmt.Errorf("store operation timed out")
	ErrLockNotAcquired      = fmt.Errorf("lock could not be acquired")
)

// Runtime
var (
	ErrWorkerPanic    = fmt.Errorf("worker panicked")
	ErrInvalidPayload = fmt.Errorf("event payload does not match its kind")
)

// Reason is the closed set of codes the messaging boundary exposes to callers.
type Reason string

const (
	ReasonTicket          Reason = "ticket"
	ReasonProfile         Reason = "profile"
	ReasonNotParticipant  Reason = "not_participant"
	ReasonNotSender       Reason = "not_sender"
	ReasonNotFound        Reason = "not_found"
	ReasonInvalid         Reason = "invalid"
	ReasonConflict        Reason = "conflict"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonUnavailable     Reason = "unavailable"
	ReasonInternal        Reason = "internal"
)

// ReasonOf classifies err. Anything not recognised is an infrastructure
// failure and reported as internal.
func ReasonOf(err error) Reason {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrInvalidArgument), Is(err, ErrEmptyContent),
		Is(err, ErrContentTooLong), Is(err, ErrSameUser):
		return ReasonInvalid
	case Is(err, ErrNoTicket):
		return ReasonTicket
	case Is(err, ErrProfileNotPublic):
		return ReasonProfile
	case Is(err, ErrNotParticipant):
		return ReasonNotParticipant
	case Is(err, ErrNotMessageSender):
		return ReasonNotSender
	case Is(err, ErrConversationNotFound), Is(err, ErrMessageNotFound),
		Is(err, ErrParticipantNotFound), Is(err, ErrProfileNotFound):
		return ReasonNotFound
	case Is(err, ErrConversationConflict):
		return ReasonConflict
	case Is(err, ErrUnauthenticated):
		return ReasonUnauthenticated
	case Is(err, ErrStoreTimeout), Is(err, ErrLockNotAcquired),
		Is(err, context.DeadlineExceeded):
		return ReasonUnavailable
	default:
		return ReasonInternal
	}
}

// IsDomain reports whether err is a domain outcome rather than an infrastructure failure.
func IsDomain(err error) bool {
	switch ReasonOf(err) {
	case "", ReasonInternal, ReasonUnavailable:
		return false
	default:
		return true
	}
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}
