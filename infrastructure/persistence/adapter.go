// Package persistence stores each feature's state as one JSON document per
// key and announces every durable write on the change bus.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"etherlink/application/ports"
	"etherlink/domain/events"
	pkgerrors "etherlink/pkg/errors"
	"etherlink/pkg/observability"
)

var _ ports.DocumentStore = (*Adapter)(nil)

// Adapter is the JSON persistence adapter over a durable backend
type Adapter struct {
	store   ports.KeyValueStore
	bus     ports.Publisher
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewAdapter creates an adapter writing to store and publishing on bus.
// metrics may be nil.
func NewAdapter(store ports.KeyValueStore, bus ports.Publisher, logger *zap.Logger, metrics *observability.Collector) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		store:   store,
		bus:     bus,
		logger:  logger,
		metrics: metrics,
	}
}

// Decode loads the document stored under key into v. It reports false when
// nothing usable is stored; unreadable values are logged, never returned.
func (a *Adapter) Decode(ctx context.Context, key string, v any) bool {
	start := time.Now()

	data, err := a.store.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		a.metrics.ObserveStore("load", key, observability.ResultAbsent, time.Since(start))
		return false
	}
	if err != nil {
		a.readFailed(key, err, start)
		return false
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		a.metrics.ObserveStore("load", key, observability.ResultAbsent, time.Since(start))
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		a.readFailed(key, err, start)
		return false
	}
	a.metrics.ObserveStore("load", key, observability.ResultOK, time.Since(start))
	return true
}

// Save writes value under key and, once the write landed, publishes the
// key's topic. A failed write is logged and returned; nothing is published.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	start := time.Now()

	data, err := json.Marshal(value)
	if err != nil {
		return a.writeFailed(key, err, start)
	}
	if err := a.store.Set(ctx, key, data); err != nil {
		return a.writeFailed(key, err, start)
	}
	a.metrics.ObserveStore("save", key, observability.ResultOK, time.Since(start))

	if topic, ok := events.TopicForKey(key); ok && a.bus != nil {
		a.bus.Publish(topic)
	}
	return nil
}

// Raw returns the bytes stored under key
func (a *Adapter) Raw(ctx context.Context, key string) ([]byte, error) {
	return a.store.Get(ctx, key)
}

func (a *Adapter) readFailed(key string, err error, start time.Time) {
	a.metrics.ObserveStore("load", key, observability.ResultError, time.Since(start))
	appErr := pkgerrors.NewPersistenceReadError(key, err)
	a.logger.Warn("Stored value unreadable, using default",
		zap.String("key", key),
		zap.String("error_type", string(appErr.Type)),
		zap.Error(err),
	)
}

func (a *Adapter) writeFailed(key string, err error, start time.Time) error {
	a.metrics.ObserveStore("save", key, observability.ResultError, time.Since(start))
	appErr := pkgerrors.NewPersistenceWriteError(key, err)
	a.logger.Error("Value not persisted",
		zap.String("key", key),
		zap.String("error_type", string(appErr.Type)),
		zap.Error(err),
	)
	return appErr
}
