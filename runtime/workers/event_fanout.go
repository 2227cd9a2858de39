package workers

import (
	"context"
	"log/slog"
	"ticket-chat/contract"
	"ticket-chat/domain/event"
	"time"
)

// EventFanout broadcasts domain events to in-process sinks.
//
// Delivery is best effort: no ordering across sinks, no durability, no retries.
// Sinks serve observability (counters, logs), never the messaging semantics.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent, sinkTimeout time.Duration, sinks ...contract.EventSink) EventFanout {
	return EventFanout{log: log, events: events, sinks: sinks, sinkTimeout: sinkTimeout}
}

func (w EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}

// Fanout hands the event to every sink, each one bounded by the sink timeout.
func (w EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event", "kind", evt.Kind(), "error", err)
		}
		cancel()
	}
}
