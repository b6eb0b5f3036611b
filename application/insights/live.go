package insights

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"etherlink/application/ports"
	"etherlink/domain/events"
)

// Live keeps the latest snapshot current by recomputing on every change
// notification for any store topic.
type Live struct {
	aggregator *Aggregator
	bus        ports.ChangeBus
	logger     *zap.Logger

	mu          sync.RWMutex
	current     Snapshot
	listeners   map[int]func(Snapshot)
	nextID      int
	unsubscribe []func()

	// issued stamps each recompute; applied is the newest stamp stored.
	issued  uint64
	applied uint64
}

// NewLive creates a live view. Call Start to begin tracking changes.
func NewLive(aggregator *Aggregator, bus ports.ChangeBus, logger *zap.Logger) *Live {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Live{
		aggregator: aggregator,
		bus:        bus,
		logger:     logger,
		listeners:  make(map[int]func(Snapshot)),
	}
}

// Start computes the initial snapshot and subscribes to every store topic.
// Calling Start again is a no-op.
func (l *Live) Start(ctx context.Context) Snapshot {
	ctx = context.WithoutCancel(ctx)

	l.mu.Lock()
	if l.unsubscribe != nil {
		current := l.current
		l.mu.Unlock()
		return current
	}
	l.current = l.aggregator.Compute(ctx)
	for _, topic := range events.StoreTopics() {
		l.unsubscribe = append(l.unsubscribe, l.bus.Subscribe(topic, func(topic events.Topic) {
			l.refresh(ctx, topic)
		}))
	}
	current := l.current
	l.mu.Unlock()

	return current
}

// Current returns the latest snapshot
func (l *Live) Current() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers fn to receive every recomputed snapshot. The returned
// function removes it.
func (l *Live) OnChange(fn func(Snapshot)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

// Close drops every bus subscription. The last snapshot stays readable.
func (l *Live) Close() {
	l.mu.Lock()
	unsubscribe := l.unsubscribe
	l.unsubscribe = nil
	l.mu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
}

func (l *Live) refresh(ctx context.Context, topic events.Topic) {
	l.mu.Lock()
	l.issued++
	seq := l.issued
	l.mu.Unlock()

	snapshot := l.aggregator.Compute(ctx)

	listeners, ok := l.apply(seq, snapshot)
	if !ok {
		l.logger.Debug("Dropped stale insights snapshot", zap.String("topic", topic.String()))
		return
	}

	l.logger.Debug("Insights recomputed", zap.String("topic", topic.String()))
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// apply stores snapshot unless a later recompute already landed and
// returns the listeners to notify.
func (l *Live) apply(seq uint64, snapshot Snapshot) ([]func(Snapshot), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seq <= l.applied {
		return nil, false
	}
	l.applied = seq
	l.current = snapshot

	listeners := make([]func(Snapshot), 0, len(l.listeners))
	for _, fn := range l.listeners {
		listeners = append(listeners, fn)
	}
	return listeners, true
}
