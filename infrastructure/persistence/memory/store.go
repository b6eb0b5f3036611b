// Package memory provides a map-backed key-value backend for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"etherlink/application/ports"
)

// Store is an in-process Backend. Writes through Set are local; writes
// through SimulateExternalWrite are reported to watchers as if another
// process had made them.
type Store struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[int]func(string)
	nextID   int

	readErr  error
	writeErr error
}

// New creates an empty store
func New() *Store {
	return &Store{
		data:     make(map[string][]byte),
		watchers: make(map[int]func(string)),
	}
}

// Get returns a copy of the bytes stored under key
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.readErr != nil {
		return nil, s.readErr
	}
	value, ok := s.data[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set stores a copy of value under key
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return s.writeErr
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Watch registers onChange for external writes until ctx is done
func (s *Store) Watch(ctx context.Context, onChange func(key string)) error {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = onChange
	s.mu.Unlock()

	<-ctx.Done()

	s.mu.Lock()
	delete(s.watchers, id)
	s.mu.Unlock()
	return nil
}

// SimulateExternalWrite stores value and notifies every watcher synchronously
func (s *Store) SimulateExternalWrite(key string, value []byte) {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	watchers := make([]func(string), 0, len(s.watchers))
	for _, w := range s.watchers {
		watchers = append(watchers, w)
	}
	s.mu.Unlock()

	for _, w := range watchers {
		w(key)
	}
}

// Watchers returns the number of active watchers
func (s *Store) Watchers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watchers)
}

// FailReads makes every Get return err until cleared with nil
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	s.readErr = err
	s.mu.Unlock()
}

// FailWrites makes every Set return err until cleared with nil
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	s.writeErr = err
	s.mu.Unlock()
}
