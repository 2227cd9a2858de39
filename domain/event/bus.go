package event

import "log/slog"

// Bus is a bounded in-process queue of domain events.
// Publishing never blocks: when the queue is full the event is dropped.
type Bus struct {
	log    *slog.Logger
	events chan DomainEvent
}

func NewBus(log *slog.Logger, capacity int) *Bus {
	return &Bus{log: log, events: make(chan DomainEvent, capacity)}
}

func (b *Bus) Publish(evt DomainEvent) {
	select {
	case b.events <- evt:
	default:
		b.log.Debug("Domain event lost, bus is full", "kind", evt.Kind())
	}
}

func (b *Bus) Events() <-chan DomainEvent {
	return b.events
}
