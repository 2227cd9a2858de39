package event

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"ticket-chat/errors"
)

// Counter keeps a count per key and is safe for concurrent use.
type Counter struct {
	mu     sync.Mutex
	counts map[string]uint64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]uint64)}
}

func (c *Counter) Increment(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
}

func (c *Counter) Get(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}

func (c *Counter) Snapshot() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.counts)
}

// ActivitySink counts every event by kind.
type ActivitySink struct {
	counter *Counter
}

func NewActivitySink(counter *Counter) ActivitySink {
	return ActivitySink{counter: counter}
}

func (s ActivitySink) Consume(_ context.Context, evt DomainEvent) error {
	s.counter.Increment(string(evt.Kind()))
	return nil
}

// CensorshipSink counts how often each dictionary word was masked.
type CensorshipSink struct {
	log     *slog.Logger
	counter *Counter
}

func NewCensorshipSink(log *slog.Logger, counter *Counter) CensorshipSink {
	return CensorshipSink{log: log, counter: counter}
}

func (s CensorshipSink) Consume(_ context.Context, evt DomainEvent) error {
	if evt.Kind() != MessageCensoredKind {
		return nil
	}
	payload, ok := evt.(MessageCensored)
	if !ok {
		return errors.ErrInvalidPayload
	}
	for _, word := range payload.Words {
		s.counter.Increment(word)
	}
	s.log.Debug("Censorship hit", "message_id", payload.MessageID, "words", len(payload.Words))
	return nil
}
