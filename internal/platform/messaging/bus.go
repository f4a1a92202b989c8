package messaging

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	contractsv1 "simpleq/contracts/gen/events/v1"
)

// ErrBusClosed is returned by Publish and Subscribe after Close.
var ErrBusClosed = errors.New("event bus closed")

// ErrSubscriberGone is returned by Publish when a subscriber stopped before
// accepting the event.
var ErrSubscriberGone = errors.New("event bus subscriber stopped")

// Bus is the event bus adapter used by the worker outbox relay and consumers.
// Delivery is in-process publish/subscribe behind the broker-shaped
// Publish/Subscribe contract. Publish blocks until every subscriber has
// accepted the event, so a nil error means the event was handed over.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]*subscription
	closed      bool
	wg          sync.WaitGroup
	logger      *slog.Logger
}

type subscription struct {
	ch     chan contractsv1.Envelope
	done   <-chan struct{}
	cancel context.CancelFunc
}

func NewBus(brokers []string, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("event bus started",
		"event", "bus_started",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"brokers", brokers,
	)
	return &Bus{
		subscribers: make(map[string][]*subscription),
		logger:      logger,
	}, nil
}

func (b *Bus) Publish(ctx context.Context, topic string, event contractsv1.Envelope) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	subs := append([]*subscription(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sub.done:
			return ErrSubscriberGone
		case sub.ch <- event:
		}
	}

	b.logger.Info("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"subscribers", len(subs),
	)
	return nil
}

// Subscribe registers handler for topic. The consumer goroutine stops when ctx
// is cancelled or the bus is closed.
func (b *Bus) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, contractsv1.Envelope) error,
) error {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{
		ch:     make(chan contractsv1.Envelope, 128),
		done:   subCtx.Done(),
		cancel: cancel,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		cancel()
		return ErrBusClosed
	}
	b.subscribers[topic] = append(b.subscribers[topic], sub)
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		defer b.removeSubscriber(topic, sub)
		for {
			select {
			case <-subCtx.Done():
				return
			case event := <-sub.ch:
				if err := handler(subCtx, event); err != nil {
					b.logger.Error("consumer handler failed",
						"event", "bus_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

// Close stops all consumers and waits for their goroutines to exit.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	var subs []*subscription
	for _, items := range b.subscribers {
		subs = append(subs, items...)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		sub.cancel()
	}
	b.wg.Wait()
	return nil
}

func (b *Bus) removeSubscriber(topic string, target *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]*subscription, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[topic] = filtered
}
