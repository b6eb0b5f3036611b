// Package insights derives the desktop summary from the persisted state of
// all three feature stores.
package insights

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"etherlink/application/ports"
	"etherlink/domain/config"
	"etherlink/domain/core/entities"
	"etherlink/pkg/observability"
)

// HelixInsights summarises the archive
type HelixInsights struct {
	TotalRunes int        `json:"totalRunes"`
	TotalTags  int        `json:"totalTags"`
	LastRuneAt *time.Time `json:"lastRuneAt"`
}

// UpcomingTask is the pending task with the earliest start
type UpcomingTask struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
}

// SchedulerInsights summarises the schedule
type SchedulerInsights struct {
	TotalTasks     int           `json:"totalTasks"`
	CompletedTasks int           `json:"completedTasks"`
	UpcomingTask   *UpcomingTask `json:"upcomingTask"`
}

// SynthInsights summarises the synthesis tools
type SynthInsights struct {
	PaletteCount    int        `json:"paletteCount"`
	ConversionCount int        `json:"conversionCount"`
	LastNoteAt      *time.Time `json:"lastNoteAt"`
}

// Snapshot is the full derived summary
type Snapshot struct {
	Helix     HelixInsights     `json:"helix"`
	Scheduler SchedulerInsights `json:"scheduler"`
	Synth     SynthInsights     `json:"synth"`
}

// Aggregator computes snapshots from persisted state. It never reads the
// in-memory stores, so any process sharing the backend computes the same
// snapshot.
type Aggregator struct {
	docs    ports.DocumentStore
	cfg     *config.DomainConfig
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewAggregator creates an aggregator over docs. metrics may be nil.
func NewAggregator(docs ports.DocumentStore, cfg *config.DomainConfig, logger *zap.Logger, metrics *observability.Collector) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{docs: docs, cfg: cfg, logger: logger, metrics: metrics}
}

// Compute reads every store and derives a snapshot. A missing or malformed
// store contributes its empty summary without affecting the others.
func (a *Aggregator) Compute(ctx context.Context) Snapshot {
	a.metrics.ObserveRecompute()

	runes := ports.Load(ctx, a.docs, a.cfg.ArchiveKey, []entities.Rune{})
	tasks := ports.Load(ctx, a.docs, a.cfg.ScheduleKey, []entities.Task{})
	synth := ports.Load(ctx, a.docs, a.cfg.SynthesisKey, entities.NewSynthState())

	return Snapshot{
		Helix:     helixInsights(runes),
		Scheduler: schedulerInsights(tasks),
		Synth:     synthInsights(synth),
	}
}

func helixInsights(runes []entities.Rune) HelixInsights {
	tags := make(map[string]struct{})
	for _, r := range runes {
		for _, tag := range r.Tags {
			tags[strings.ToLower(tag)] = struct{}{}
		}
	}

	out := HelixInsights{TotalRunes: len(runes), TotalTags: len(tags)}
	if len(runes) > 0 {
		at := runes[0].CreatedAt
		out.LastRuneAt = &at
	}
	return out
}

// schedulerInsights picks the upcoming task by status alone; a pending task
// whose start has passed still qualifies. Equal starts keep storage order.
func schedulerInsights(tasks []entities.Task) SchedulerInsights {
	out := SchedulerInsights{TotalTasks: len(tasks)}

	var upcoming *entities.Task
	for i := range tasks {
		t := &tasks[i]
		if t.IsComplete() {
			out.CompletedTasks++
			continue
		}
		if upcoming == nil || t.Start.Before(upcoming.Start) {
			upcoming = t
		}
	}
	if upcoming != nil {
		out.UpcomingTask = &UpcomingTask{
			ID:    upcoming.ID.String(),
			Title: upcoming.Title,
			Start: upcoming.Start,
		}
	}
	return out
}

func synthInsights(state entities.SynthState) SynthInsights {
	out := SynthInsights{
		PaletteCount:    len(state.Palettes),
		ConversionCount: state.ConversionCount,
	}
	if state.LastNoteAt != nil {
		at := *state.LastNoteAt
		out.LastNoteAt = &at
	}
	return out
}
