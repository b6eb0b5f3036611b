package ports

import (
	"context"
	"errors"

	"etherlink/domain/events"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when nothing is stored
// under the key. It is the only "absent" signal; every other error is a
// read failure.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore defines the durable storage the persistence adapter writes to.
// This is a port in hexagonal architecture - the stores don't know about the backend
type KeyValueStore interface {
	// Get returns the raw bytes stored under key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the bytes stored under key
	Set(ctx context.Context, key string, value []byte) error
}

// ChangeSource reports keys modified by other processes sharing the backend
type ChangeSource interface {
	// Watch calls onChange for every externally modified key and blocks until
	// ctx is done. Writes made through this process are not reported.
	Watch(ctx context.Context, onChange func(key string)) error
}

// Backend is a durable store that can also report external changes
type Backend interface {
	KeyValueStore
	ChangeSource
}

// Publisher publishes change notifications
type Publisher interface {
	Publish(topic events.Topic)
}

// ChangeBus defines the in-process change notification bus
type ChangeBus interface {
	Publisher

	// Subscribe registers handler for topic and returns its unsubscribe function
	Subscribe(topic events.Topic, handler func(events.Topic)) (unsubscribe func())
}

// DocumentStore persists one JSON document per key
type DocumentStore interface {
	// Decode loads the document under key into v. It reports false when the
	// caller should use its default: nothing stored, or the stored value
	// could not be read.
	Decode(ctx context.Context, key string, v any) bool

	// Save writes v under key and announces the change once it is durable
	Save(ctx context.Context, key string, v any) error
}

// Load returns the document stored under key, or def
func Load[T any](ctx context.Context, docs DocumentStore, key string, def T) T {
	var value T
	if !docs.Decode(ctx, key, &value) {
		return def
	}
	return value
}
