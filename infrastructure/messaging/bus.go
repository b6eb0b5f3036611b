// Package messaging implements the in-process change notification bus.
package messaging

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"etherlink/application/ports"
	"etherlink/domain/events"
	"etherlink/pkg/observability"
)

type subscription struct {
	handler func(events.Topic)
}

// Bus fans a topic out to its subscribers. Handlers run synchronously on the
// publishing goroutine in subscription order; a panicking handler is
// recovered and logged so the remaining handlers still run.
type Bus struct {
	mu       sync.RWMutex
	handlers map[events.Topic][]*subscription

	logger  *zap.Logger
	metrics *observability.Collector
}

// NewBus creates an empty bus. metrics may be nil.
func NewBus(logger *zap.Logger, metrics *observability.Collector) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[events.Topic][]*subscription),
		logger:   logger,
		metrics:  metrics,
	}
}

// Publish notifies every subscriber of topic
func (b *Bus) Publish(topic events.Topic) {
	b.publish(topic, events.OriginLocal)
}

// Subscribe registers handler for topic. The returned function removes the
// subscription and is safe to call more than once.
func (b *Bus) Subscribe(topic events.Topic, handler func(events.Topic)) func() {
	sub := &subscription{handler: handler}

	b.mu.Lock()
	b.handlers[topic] = append(b.handlers[topic], sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, sub) })
	}
}

// SubscribeAll registers handler for every store topic
func (b *Bus) SubscribeAll(handler func(events.Topic)) func() {
	topics := events.StoreTopics()
	unsubscribers := make([]func(), 0, len(topics))
	for _, topic := range topics {
		unsubscribers = append(unsubscribers, b.Subscribe(topic, handler))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

// Subscribers returns the number of handlers registered for topic
func (b *Bus) Subscribers(topic events.Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[topic])
}

// RelayExternal republishes keys changed by other processes on their topics.
// Keys without a topic are ignored. It blocks until ctx is done.
func (b *Bus) RelayExternal(ctx context.Context, source ports.ChangeSource) error {
	b.logger.Info("Relaying external changes")
	err := source.Watch(ctx, func(key string) {
		topic, ok := events.TopicForKey(key)
		if !ok {
			b.logger.Debug("Ignoring change to unknown key", zap.String("key", key))
			return
		}
		b.logger.Debug("External change", zap.String("key", key), zap.String("topic", topic.String()))
		b.publish(topic, events.OriginExternal)
	})
	if err != nil {
		return fmt.Errorf("external change relay: %w", err)
	}
	return nil
}

func (b *Bus) publish(topic events.Topic, origin events.Origin) {
	b.mu.RLock()
	subs := make([]*subscription, len(b.handlers[topic]))
	copy(subs, b.handlers[topic])
	b.mu.RUnlock()

	b.metrics.ObservePublish(topic.String(), string(origin))

	for _, sub := range subs {
		b.dispatch(topic, sub)
	}
}

func (b *Bus) dispatch(topic events.Topic, sub *subscription) {
	defer func() {
		if r := recover(); r != nil {
			b.metrics.ObserveHandlerPanic()
			b.logger.Error("Subscriber panicked",
				zap.String("topic", topic.String()),
				zap.Any("panic", r),
			)
		}
	}()
	sub.handler(topic)
}

func (b *Bus) remove(topic events.Topic, target *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[topic]
	for i, sub := range subs {
		if sub == target {
			// copy so publishers iterating an older slice are unaffected
			next := make([]*subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.handlers[topic] = next
			break
		}
	}
	if len(b.handlers[topic]) == 0 {
		delete(b.handlers, topic)
	}
}
