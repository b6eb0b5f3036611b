package entities

import (
	"math"
	"strings"
	"time"

	"etherlink/domain/core/valueobjects"
	pkgerrors "etherlink/pkg/errors"
)

// TaskStatus represents the state of a scheduled task
type TaskStatus string

const (
	StatusPending  TaskStatus = "pending"
	StatusComplete TaskStatus = "complete"
)

// Task is a scheduled ritual with a time window
type Task struct {
	ID          valueobjects.EntryID `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Start       time.Time            `json:"start"`
	End         time.Time            `json:"end"`
	Status      TaskStatus           `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// TaskInput is the user supplied part of a task
type TaskInput struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// NewTask validates input and creates a pending task stamped with now
func NewTask(input TaskInput, now time.Time) (Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Task{}, pkgerrors.NewValidationError(pkgerrors.RuleTitleRequired, "enter a title for the ritual")
	}
	if input.Start.IsZero() || input.End.IsZero() {
		return Task{}, pkgerrors.NewValidationError(pkgerrors.RuleInvalidTimestamp, "invalid dates")
	}
	if input.Start.After(input.End) {
		return Task{}, pkgerrors.NewValidationError(pkgerrors.RuleTimeRangeInverted, "start cannot be after end").
			WithDetail("start", input.Start).
			WithDetail("end", input.End)
	}

	return Task{
		ID:          valueobjects.NewEntryID(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Start:       input.Start.UTC(),
		End:         input.End.UTC(),
		Status:      StatusPending,
		CreatedAt:   now,
	}, nil
}

// Toggle flips the status between pending and complete
func (t *Task) Toggle() {
	if t.Status == StatusComplete {
		t.Status = StatusPending
		return
	}
	t.Status = StatusComplete
}

// IsComplete reports whether the task is marked complete
func (t Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// Duration returns the length of the time window
func (t Task) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// DurationMinutes returns the window length in whole minutes, never negative
func (t Task) DurationMinutes() int {
	minutes := math.Round(t.Duration().Minutes())
	if minutes < 0 {
		return 0
	}
	return int(minutes)
}
