package stores

import (
	"context"
	"iter"
	"slices"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"etherlink/application/ports"
	"etherlink/domain/config"
	"etherlink/domain/core/entities"
	"etherlink/domain/core/valueobjects"
	pkgerrors "etherlink/pkg/errors"
)

// StatusFilter selects tasks by status
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterPending  StatusFilter = "pending"
	FilterComplete StatusFilter = "complete"
)

// ParseStatusFilter accepts "", all, pending and complete
func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch StatusFilter(raw) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending, FilterComplete:
		return StatusFilter(raw), nil
	}
	return "", pkgerrors.NewValidationError(pkgerrors.RuleInvalidInput, "status must be all, pending or complete").
		WithDetail("status", raw)
}

// TaskFilter selects tasks. The zero value matches everything.
type TaskFilter struct {
	Status StatusFilter
}

func (f TaskFilter) matches(t entities.Task) bool {
	switch f.Status {
	case FilterPending:
		return !t.IsComplete()
	case FilterComplete:
		return t.IsComplete()
	default:
		return true
	}
}

// TaskCounts summarises the schedule
type TaskCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Complete int `json:"complete"`
}

// ScheduleStore keeps tasks in storage order and reads them by start time
type ScheduleStore struct {
	docs ports.DocumentStore
	cfg  *config.DomainConfig
	opts options

	writeMu sync.Mutex
	mu      sync.RWMutex
	tasks   []entities.Task
}

// NewScheduleStore creates the store and loads its persisted tasks
func NewScheduleStore(ctx context.Context, docs ports.DocumentStore, cfg *config.DomainConfig, opts ...Option) *ScheduleStore {
	s := &ScheduleStore{docs: docs, cfg: cfg, opts: buildOptions(opts)}
	s.tasks = s.load(ctx)
	return s
}

func (s *ScheduleStore) load(ctx context.Context) []entities.Task {
	return ports.Load(ctx, s.docs, s.cfg.ScheduleKey, []entities.Task{})
}

// Create validates input and stores a pending task
func (s *ScheduleStore) Create(ctx context.Context, input entities.TaskInput) (entities.Task, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t, err := entities.NewTask(input, s.opts.now())
	if err != nil {
		return entities.Task{}, err
	}

	s.mu.Lock()
	next := make([]entities.Task, 0, len(s.tasks)+1)
	next = append(next, t)
	next = append(next, s.tasks...)
	s.tasks = next
	s.mu.Unlock()

	s.persist(ctx, next)
	s.opts.logger.Debug("Task created", zap.String("id", t.ID.String()))
	return t, nil
}

// Toggle flips the status of the task with id. Unknown ids are a no-op and
// report false.
func (s *ScheduleStore) Toggle(ctx context.Context, id valueobjects.EntryID) (entities.Task, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return entities.Task{}, false
	}
	next := slices.Clone(s.tasks)
	next[i].Toggle()
	s.tasks = next
	toggled := next[i]
	s.mu.Unlock()

	s.persist(ctx, next)
	return toggled, true
}

// Delete removes the task with id. It reports false, without writing, when
// no such task exists.
func (s *ScheduleStore) Delete(ctx context.Context, id valueobjects.EntryID) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	s.tasks = next
	s.mu.Unlock()

	s.persist(ctx, next)
	return true
}

// List yields matching tasks by ascending start. Tasks with equal starts
// keep their storage order.
func (s *ScheduleStore) List(filter TaskFilter) iter.Seq[entities.Task] {
	return func(yield func(entities.Task) bool) {
		for _, t := range s.sorted() {
			if !filter.matches(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// All returns every task by ascending start
func (s *ScheduleStore) All() []entities.Task {
	return slices.Collect(s.List(TaskFilter{}))
}

// Len returns the number of tasks
func (s *ScheduleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Counts returns the total, pending and complete task counts
func (s *ScheduleStore) Counts() TaskCounts {
	var c TaskCounts
	for _, t := range s.snapshot() {
		c.Total++
		if t.IsComplete() {
			c.Complete++
		} else {
			c.Pending++
		}
	}
	return c
}

// Next returns the earliest pending task that has not started before now
func (s *ScheduleStore) Next(now time.Time) (entities.Task, bool) {
	for _, t := range s.sorted() {
		if !t.IsComplete() && !t.Start.Before(now) {
			return t, true
		}
	}
	return entities.Task{}, false
}

// Reload replaces the in-memory tasks with the persisted ones
func (s *ScheduleStore) Reload(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tasks := s.load(ctx)
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}

// indexOf must be called with mu held
func (s *ScheduleStore) indexOf(id valueobjects.EntryID) int {
	return slices.IndexFunc(s.tasks, func(t entities.Task) bool { return t.ID == id })
}

func (s *ScheduleStore) snapshot() []entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks
}

func (s *ScheduleStore) sorted() []entities.Task {
	tasks := slices.Clone(s.snapshot())
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Start.Before(tasks[j].Start) })
	return tasks
}

func (s *ScheduleStore) persist(ctx context.Context, tasks []entities.Task) {
	if err := s.docs.Save(ctx, s.cfg.ScheduleKey, tasks); err != nil {
		s.opts.logger.Warn("Schedule change kept in memory only", zap.Error(err))
	}
}
