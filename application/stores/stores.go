package stores

import (
	"context"

	"go.uber.org/zap"

	"etherlink/application/ports"
	"etherlink/domain/config"
)

// Stores groups the three feature stores of one application instance
type Stores struct {
	Archive   *ArchiveStore
	Schedule  *ScheduleStore
	Synthesis *SynthesisStore

	cfg    *config.DomainConfig
	logger *zap.Logger
}

// New constructs every store over docs
func New(ctx context.Context, docs ports.DocumentStore, cfg *config.DomainConfig, opts ...Option) *Stores {
	o := buildOptions(opts)
	return &Stores{
		Archive:   NewArchiveStore(ctx, docs, cfg, opts...),
		Schedule:  NewScheduleStore(ctx, docs, cfg, opts...),
		Synthesis: NewSynthesisStore(ctx, docs, cfg, opts...),
		cfg:       cfg,
		logger:    o.logger,
	}
}

// Reload refreshes the store persisted under key. It reports false for keys
// no store owns.
func (s *Stores) Reload(ctx context.Context, key string) bool {
	switch key {
	case s.cfg.ArchiveKey:
		s.Archive.Reload(ctx)
	case s.cfg.ScheduleKey:
		s.Schedule.Reload(ctx)
	case s.cfg.SynthesisKey:
		s.Synthesis.Reload(ctx)
	default:
		return false
	}
	s.logger.Debug("Store reloaded after external change", zap.String("key", key))
	return true
}

// Reloading wraps source so that each externally changed store is reloaded
// before the change is reported. Later local mutations then build on the
// external state instead of overwriting it.
func (s *Stores) Reloading(source ports.ChangeSource) ports.ChangeSource {
	return reloadingSource{source: source, stores: s}
}

type reloadingSource struct {
	source ports.ChangeSource
	stores *Stores
}

func (r reloadingSource) Watch(ctx context.Context, onChange func(key string)) error {
	return r.source.Watch(ctx, func(key string) {
		r.stores.Reload(ctx, key)
		onChange(key)
	})
}
