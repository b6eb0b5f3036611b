package stores

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"etherlink/application/ports"
	"etherlink/domain/config"
	"etherlink/domain/core/entities"
)

// SynthesisStore owns the synthesis singleton
type SynthesisStore struct {
	docs ports.DocumentStore
	cfg  *config.DomainConfig
	opts options

	writeMu sync.Mutex
	mu      sync.RWMutex
	state   entities.SynthState
}

// NewSynthesisStore creates the store and loads its persisted state
func NewSynthesisStore(ctx context.Context, docs ports.DocumentStore, cfg *config.DomainConfig, opts ...Option) *SynthesisStore {
	s := &SynthesisStore{docs: docs, cfg: cfg, opts: buildOptions(opts)}
	s.state = s.load(ctx)
	return s
}

func (s *SynthesisStore) load(ctx context.Context) entities.SynthState {
	state := ports.Load(ctx, s.docs, s.cfg.SynthesisKey, entities.NewSynthState())
	if state.Palettes == nil {
		state.Palettes = []entities.Palette{}
	}
	return state
}

// State returns a copy of the current state
func (s *SynthesisStore) State() entities.SynthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// SavePalette validates colors and appends them as a new palette
func (s *SynthesisStore) SavePalette(ctx context.Context, colors []string) (entities.Palette, error) {
	palette, err := entities.NewPalette(colors)
	if err != nil {
		return nil, err
	}

	s.mutate(ctx, func(state *entities.SynthState) bool {
		state.Palettes = append(state.Palettes, palette)
		return true
	})
	return slices.Clone(palette), nil
}

// DeletePalette removes the palette at index. Out of range indexes are a
// no-op and report false.
func (s *SynthesisStore) DeletePalette(ctx context.Context, index int) bool {
	return s.mutate(ctx, func(state *entities.SynthState) bool {
		if index < 0 || index >= len(state.Palettes) {
			return false
		}
		state.Palettes = slices.Delete(state.Palettes, index, index+1)
		return true
	})
}

// SaveNotes overwrites the notes and stamps the save time
func (s *SynthesisStore) SaveNotes(ctx context.Context, notes string) time.Time {
	at := s.opts.now()
	s.mutate(ctx, func(state *entities.SynthState) bool {
		state.Notes = notes
		state.LastNoteAt = &at
		return true
	})
	return at
}

// RecordConversion increments the conversion counter and returns its new value
func (s *SynthesisStore) RecordConversion(ctx context.Context) int {
	var count int
	s.mutate(ctx, func(state *entities.SynthState) bool {
		state.ConversionCount++
		count = state.ConversionCount
		return true
	})
	return count
}

// Reload replaces the in-memory state with the persisted one
func (s *SynthesisStore) Reload(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	state := s.load(ctx)
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// mutate applies fn to a copy of the state; when fn reports a change the
// copy replaces the state and is persisted
func (s *SynthesisStore) mutate(ctx context.Context, fn func(*entities.SynthState) bool) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	next := s.state.Clone()
	s.mu.RUnlock()

	if !fn(&next) {
		return false
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	if err := s.docs.Save(ctx, s.cfg.SynthesisKey, next); err != nil {
		s.opts.logger.Warn("Synthesis change kept in memory only", zap.Error(err))
	}
	return true
}
