package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"etherlink/application/commands"
	"etherlink/application/stores"
	"etherlink/domain/core/entities"
	"etherlink/domain/core/valueobjects"
	pkgerrors "etherlink/pkg/errors"
	"etherlink/pkg/utils"
)

// ScheduleHandlers handles task commands
type ScheduleHandlers struct {
	schedule *stores.ScheduleStore
	location *time.Location
	logger   *zap.Logger
}

// NewScheduleHandlers creates the task command handlers. Zoneless timestamps
// are read in location.
func NewScheduleHandlers(schedule *stores.ScheduleStore, location *time.Location, logger *zap.Logger) *ScheduleHandlers {
	return &ScheduleHandlers{schedule: schedule, location: location, logger: logger}
}

// CreateTask schedules a new task. Unparseable timestamps reach the entity
// as zero times so rule precedence stays with the entity.
func (h *ScheduleHandlers) CreateTask(ctx context.Context, cmd commands.CreateTaskCommand) (entities.Task, error) {
	start, _ := utils.ParseTimestamp(cmd.Start, h.location)
	end, _ := utils.ParseTimestamp(cmd.End, h.location)

	task, err := h.schedule.Create(ctx, entities.TaskInput{
		Title:       cmd.Title,
		Description: cmd.Description,
		Start:       start,
		End:         end,
	})
	if err != nil {
		return entities.Task{}, err
	}

	h.logger.Info("Task scheduled",
		zap.String("id", task.ID.String()),
		zap.Time("start", task.Start),
	)
	return task, nil
}

// ToggleTask flips a task's status. Unknown ids are reported as not found;
// the store itself treats them as a no-op.
func (h *ScheduleHandlers) ToggleTask(ctx context.Context, cmd commands.ToggleTaskCommand) (entities.Task, error) {
	task, ok := h.schedule.Toggle(ctx, valueobjects.EntryID(cmd.ID))
	if !ok {
		return entities.Task{}, pkgerrors.NewNotFoundError("task").WithDetail("id", cmd.ID)
	}
	h.logger.Info("Task toggled", zap.String("id", cmd.ID), zap.String("status", string(task.Status)))
	return task, nil
}

// DeleteTask removes a task
func (h *ScheduleHandlers) DeleteTask(ctx context.Context, cmd commands.DeleteTaskCommand) (commands.DeleteResult, error) {
	deleted := h.schedule.Delete(ctx, valueobjects.EntryID(cmd.ID))
	if deleted {
		h.logger.Info("Task deleted", zap.String("id", cmd.ID))
	}
	return commands.DeleteResult{Deleted: deleted}, nil
}
