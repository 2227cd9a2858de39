//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"ticket-chat/domain"
	"ticket-chat/domain/event"
)

// AttendanceOracle answers ticket questions from the ticketing platform.
type AttendanceOracle interface {
	// HasTicket reports whether userID holds a non-null ticket for eventID.
	HasTicket(ctx context.Context, userID, eventID string) (bool, error)
	// TicketHolders lists every user holding a ticket for eventID.
	TicketHolders(ctx context.Context, eventID string) ([]string, error)
}

// ProfileOracle exposes profile visibility and the public projection of a user.
type ProfileOracle interface {
	IsPublic(ctx context.Context, userID string) (bool, error)
	// GetPublicSummary fails with ErrProfileNotFound for unknown users
	// and ErrProfileNotPublic for private ones.
	GetPublicSummary(ctx context.Context, userID string) (domain.PublicSummary, error)
}

// Locker serializes critical sections sharing the same key.
// The returned release function must always be called.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// EventPublisher hands domain events over to the background sinks.
type EventPublisher interface {
	Publish(evt event.DomainEvent)
}

// EventSink consumes the events the fanout worker broadcasts.
type EventSink interface {
	Consume(ctx context.Context, evt event.DomainEvent) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself, the supervisor restarts it after a failure
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName returns the type name of the worker, for logging purposes.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
