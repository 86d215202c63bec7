package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/commandhandler/pkg/eventbus"
)

// MemoryBus is an in-process topic log. Every subscriber reads a topic from
// its first message, so it behaves like a fresh consumer group.
type MemoryBus struct {
	mu      sync.Mutex
	topics  map[string][]eventbus.Message
	changed chan struct{}
	policy  RetryPolicy
	logger  *slog.Logger
}

// NewWithMemory creates a new in-memory bus.
func NewWithMemory(logger *slog.Logger) *MemoryBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryBus{
		topics:  make(map[string][]eventbus.Message),
		changed: make(chan struct{}),
		policy:  RetryPolicy{Initial: DefaultRetryPolicy().Initial, Max: DefaultRetryPolicy().Initial},
		logger:  logger.With("bus", "memory"),
	}
}

// Publish appends msgs to their topics and wakes subscribers.
func (b *MemoryBus) Publish(ctx context.Context, msgs ...eventbus.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range msgs {
		m.Partition = 0
		m.Offset = int64(len(b.topics[m.Topic]))
		b.topics[m.Topic] = append(b.topics[m.Topic], m)
	}
	close(b.changed)
	b.changed = make(chan struct{})
	return nil
}

// Subscribe delivers topic messages to handler in order until ctx ends.
func (b *MemoryBus) Subscribe(ctx context.Context, topic string, handler eventbus.HandlerFunc) error {
	var offset int
	for {
		b.mu.Lock()
		if offset < len(b.topics[topic]) {
			msg := b.topics[topic][offset]
			b.mu.Unlock()
			if err := deliver(ctx, b.logger, b.policy, msg, handler, nil); err != nil {
				return nil
			}
			offset++
			continue
		}
		changed := b.changed
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil
		case <-changed:
		}
	}
}

// Published returns a copy of every message written to topic.
func (b *MemoryBus) Published(topic string) []eventbus.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.Message(nil), b.topics[topic]...)
}

var (
	_ eventbus.Publisher  = (*MemoryBus)(nil)
	_ eventbus.Subscriber = (*MemoryBus)(nil)
)
