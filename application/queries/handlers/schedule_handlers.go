package handlers

import (
	"context"
	"time"

	"etherlink/application/queries"
	"etherlink/application/stores"
)

// ScheduleHandlers answers task queries
type ScheduleHandlers struct {
	schedule *stores.ScheduleStore
	now      func() time.Time
}

// NewScheduleHandlers creates the task query handlers
func NewScheduleHandlers(schedule *stores.ScheduleStore, now func() time.Time) *ScheduleHandlers {
	return &ScheduleHandlers{schedule: schedule, now: now}
}

// ListTasks returns tasks by ascending start
func (h *ScheduleHandlers) ListTasks(_ context.Context, q queries.ListTasksQuery) ([]queries.TaskView, error) {
	status, err := stores.ParseStatusFilter(q.Status)
	if err != nil {
		return nil, err
	}

	views := []queries.TaskView{}
	for task := range h.schedule.List(stores.TaskFilter{Status: status}) {
		views = append(views, queries.TaskView{Task: task, DurationMinutes: task.DurationMinutes()})
	}
	return views, nil
}

// TaskSummary returns the counts and the next pending task not yet started.
// A zero Now means the current time.
func (h *ScheduleHandlers) TaskSummary(_ context.Context, q queries.TaskSummaryQuery) (queries.TaskSummaryResult, error) {
	now := q.Now
	if now.IsZero() {
		now = h.now()
	}

	result := queries.TaskSummaryResult{Counts: h.schedule.Counts()}
	if next, ok := h.schedule.Next(now); ok {
		result.Next = &next
	}
	return result, nil
}
