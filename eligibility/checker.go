//go:generate go run go.uber.org/mock/mockgen -source=checker.go -destination=../mocks/mock_checker.go -package=mocks
package eligibility

import (
	"context"
	"fmt"
	"ticket-chat/contract"
	"ticket-chat/errors"
)

type IChecker interface {
	CanConverse(ctx context.Context, eventID, userA, userB string) (Verdict, error)
}

// Verdict is the outcome of the gate. A denial is not an error:
// errors are reserved for oracles that could not answer.
type Verdict struct {
	OK     bool
	Reason errors.Reason
	// UserID is the first user who failed the gate.
	UserID string
}

func allowed() Verdict {
	return Verdict{OK: true}
}

func denied(reason errors.Reason, userID string) Verdict {
	return Verdict{Reason: reason, UserID: userID}
}

// Err converts a denial into the matching domain error, nil when allowed.
func (v Verdict) Err() error {
	switch {
	case v.OK:
		return nil
	case v.Reason == errors.ReasonTicket:
		return fmt.Errorf("%w: %s has no ticket", errors.ErrNoTicket, v.UserID)
	default:
		return fmt.Errorf("%w: %s", errors.ErrProfileNotPublic, v.UserID)
	}
}

type Checker struct {
	attendance contract.AttendanceOracle
	profiles   contract.ProfileOracle
}

func NewChecker(attendance contract.AttendanceOracle, profiles contract.ProfileOracle) Checker {
	return Checker{attendance: attendance, profiles: profiles}
}

// CanConverse lets two distinct users talk about an event when both hold a ticket
// and both profiles are public. Tickets are checked first and the first failure wins.
func (c Checker) CanConverse(ctx context.Context, eventID, userA, userB string) (Verdict, error) {
	if userA == "" || userB == "" || eventID == "" {
		return Verdict{}, fmt.Errorf("%w: event and both users are required", errors.ErrInvalidArgument)
	}
	if userA == userB {
		return Verdict{}, errors.ErrSameUser
	}
	for _, userID := range []string{userA, userB} {
		ok, err := c.attendance.HasTicket(ctx, userID, eventID)
		if err != nil {
			return Verdict{}, fmt.Errorf("attendance of %s: %w", userID, err)
		}
		if !ok {
			return denied(errors.ReasonTicket, userID), nil
		}
	}
	for _, userID := range []string{userA, userB} {
		ok, err := c.profiles.IsPublic(ctx, userID)
		if err != nil {
			return Verdict{}, fmt.Errorf("profile of %s: %w", userID, err)
		}
		if !ok {
			return denied(errors.ReasonProfile, userID), nil
		}
	}
	return allowed(), nil
}
