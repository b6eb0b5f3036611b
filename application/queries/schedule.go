package queries

import (
	"time"

	"etherlink/application/stores"
	"etherlink/domain/core/entities"
	"etherlink/pkg/utils"
)

// ListTasksQuery lists tasks by ascending start
type ListTasksQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=all pending complete"`
}

// Validate validates the query
func (q ListTasksQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// TaskSummaryQuery summarises the schedule as of Now
type TaskSummaryQuery struct {
	Now time.Time `json:"now"`
}

// Validate validates the query
func (q TaskSummaryQuery) Validate() error { return nil }

// TaskSummaryResult holds the schedule counts and the next ritual
type TaskSummaryResult struct {
	Counts stores.TaskCounts `json:"counts"`
	Next   *entities.Task    `json:"next"`
}

// TaskView is a task with its display duration
type TaskView struct {
	entities.Task
	DurationMinutes int `json:"durationMinutes"`
}
