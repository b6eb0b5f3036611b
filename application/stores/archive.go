package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"etherlink/application/ports"
	"etherlink/domain/config"
	"etherlink/domain/core/entities"
	"etherlink/domain/core/valueobjects"
)

// RuneFilter selects runes. Zero values match everything.
type RuneFilter struct {
	// Tag must appear verbatim in the rune's tags
	Tag string
	// Query is matched case-insensitively against title and content
	Query string
}

// ArchiveStore keeps runes most-recent-first
type ArchiveStore struct {
	docs ports.DocumentStore
	cfg  *config.DomainConfig
	opts options

	writeMu sync.Mutex
	mu      sync.RWMutex
	runes   []entities.Rune
}

// NewArchiveStore creates the store and loads its persisted runes
func NewArchiveStore(ctx context.Context, docs ports.DocumentStore, cfg *config.DomainConfig, opts ...Option) *ArchiveStore {
	s := &ArchiveStore{docs: docs, cfg: cfg, opts: buildOptions(opts)}
	s.runes = s.load(ctx)
	return s
}

func (s *ArchiveStore) load(ctx context.Context) []entities.Rune {
	return ports.Load(ctx, s.docs, s.cfg.ArchiveKey, []entities.Rune{})
}

// Create validates input and inserts the new rune at the head
func (s *ArchiveStore) Create(ctx context.Context, input entities.RuneInput) (entities.Rune, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	r, err := entities.NewRune(input, s.cfg.PlaceholderRuneTitle, s.opts.now())
	if err != nil {
		return entities.Rune{}, err
	}

	s.mu.Lock()
	next := make([]entities.Rune, 0, len(s.runes)+1)
	next = append(next, r)
	next = append(next, s.runes...)
	s.runes = next
	s.mu.Unlock()

	s.persist(ctx, next)
	s.opts.logger.Debug("Rune created", zap.String("id", r.ID.String()))
	return r.Clone(), nil
}

// Delete removes the rune with id. It reports false, without writing, when
// no such rune exists.
func (s *ArchiveStore) Delete(ctx context.Context, id valueobjects.EntryID) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := slices.IndexFunc(s.runes, func(r entities.Rune) bool { return r.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	next := slices.Delete(slices.Clone(s.runes), i, i+1)
	s.runes = next
	s.mu.Unlock()

	s.persist(ctx, next)
	return true
}

// List yields the runes matching filter in most-recent-first order. Each
// iteration reads the state current at its start.
func (s *ArchiveStore) List(filter RuneFilter) iter.Seq[entities.Rune] {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	return func(yield func(entities.Rune) bool) {
		for _, r := range s.snapshot() {
			if filter.Tag != "" && !r.Tags.Contains(filter.Tag) {
				continue
			}
			if !r.Matches(query) {
				continue
			}
			if !yield(r.Clone()) {
				return
			}
		}
	}
}

// All returns every rune in canonical order
func (s *ArchiveStore) All() []entities.Rune {
	return slices.Collect(s.List(RuneFilter{}))
}

// Len returns the number of runes
func (s *ArchiveStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runes)
}

// Tags returns every distinct tag in sorted order
func (s *ArchiveStore) Tags() []string {
	seen := make(map[string]struct{})
	for _, r := range s.snapshot() {
		for _, tag := range r.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Export writes the whole archive as indented JSON
func (s *ArchiveStore) Export(w io.Writer) error {
	data, err := json.MarshalIndent(s.snapshot(), "", s.cfg.ExportIndent)
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// ExportFilename is the suggested name of an exported archive
func (s *ArchiveStore) ExportFilename() string {
	return s.cfg.ExportFilename
}

// Reload replaces the in-memory runes with the persisted ones
func (s *ArchiveStore) Reload(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	runes := s.load(ctx)
	s.mu.Lock()
	s.runes = runes
	s.mu.Unlock()
}

func (s *ArchiveStore) snapshot() []entities.Rune {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runes
}

func (s *ArchiveStore) persist(ctx context.Context, runes []entities.Rune) {
	if err := s.docs.Save(ctx, s.cfg.ArchiveKey, runes); err != nil {
		s.opts.logger.Warn("Archive change kept in memory only", zap.Error(err))
	}
}
