// Package filestore keeps one JSON document per key in a data directory and
// reports changes made by other processes through fsnotify.
package filestore

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"etherlink/application/ports"
)

const extension = ".json"

// Store is a directory-backed Backend
type Store struct {
	dir      string
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	written map[string][sha256.Size]byte // digest of the last document this process wrote per key
}

// New creates the data directory if needed and returns a store over it
func New(dir string, debounce time.Duration, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:      dir,
		debounce: debounce,
		logger:   logger,
		written:  make(map[string][sha256.Size]byte),
	}, nil
}

// Dir returns the data directory
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+extension)
}

// Get reads the document stored under key
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the document under key. The write goes to a temp file that is
// renamed into place, so readers never observe a partial document.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", key, err)
	}

	s.mu.Lock()
	s.written[key] = sha256.Sum256(value)
	s.mu.Unlock()

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Watch reports keys whose documents were changed by another process.
// Bursts of filesystem events for one key collapse into one report after the
// debounce window. Watch blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func(key string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}
	s.logger.Debug("Watching data directory", zap.String("dir", s.dir))

	d := newDebouncer(ctx, s.debounce)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			key, ok := keyOf(event.Name)
			if !ok || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			d.touch(key)

		case f := <-d.fire:
			if !d.settle(f) {
				continue
			}
			if s.external(f.key) {
				onChange(f.key)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// external reports whether the current document differs from the last one
// this process wrote
func (s *Store) external(key string) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Failed to read changed document", zap.String("key", key), zap.Error(err))
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.written[key]
	if ok && err == nil && last == sha256.Sum256(data) {
		return false
	}
	// The document moved on, so a later identical external write must be reported.
	delete(s.written, key)
	return true
}

// firing is a debounce timer expiry. gen identifies the timer that fired.
type firing struct {
	key string
	gen uint64
}

type pendingTimer struct {
	timer *time.Timer
	gen   uint64
}

// debouncer collapses bursts per key. It is owned by the Watch loop; only
// timer callbacks touch fire.
type debouncer struct {
	ctx     context.Context
	window  time.Duration
	fire    chan firing
	pending map[string]pendingTimer
	gen     uint64
}

func newDebouncer(ctx context.Context, window time.Duration) *debouncer {
	return &debouncer{
		ctx:     ctx,
		window:  window,
		fire:    make(chan firing),
		pending: make(map[string]pendingTimer),
	}
}

// touch restarts the window for key
func (d *debouncer) touch(key string) {
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}
	d.gen++
	f := firing{key: key, gen: d.gen}
	d.pending[key] = pendingTimer{
		gen: f.gen,
		timer: time.AfterFunc(d.window, func() {
			select {
			case d.fire <- f:
			case <-d.ctx.Done():
			}
		}),
	}
}

// settle reports whether f is the current timer for its key. A timer that
// fired before being replaced is stale and ignored.
func (d *debouncer) settle(f firing) bool {
	p, ok := d.pending[f.key]
	if !ok || p.gen != f.gen {
		return false
	}
	delete(d.pending, f.key)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

func keyOf(name string) (string, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, extension) {
		return "", false
	}
	return strings.TrimSuffix(base, extension), true
}
