package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"etherlink/application/commands"
	"etherlink/application/commands/bus"
	"etherlink/application/queries"
	querybus "etherlink/application/queries/bus"
	pkgerrors "etherlink/pkg/errors"
)

// TaskHandler handles Arcane Scheduler requests
type TaskHandler struct {
	base
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *TaskHandler {
	return &TaskHandler{base: newBase(commandBus, queryBus, errors, logger)}
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateTaskCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	h.send(w, r, http.StatusCreated, cmd)
}

// ListTasks handles GET /tasks?status=all|pending|complete
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListTasksQuery{Status: r.URL.Query().Get("status")})
}

// Summary handles GET /tasks/summary
func (h *TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.TaskSummaryQuery{})
}

// ToggleTask handles POST /tasks/{id}/toggle
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusOK, commands.ToggleTaskCommand{ID: chi.URLParam(r, "id")})
}

// DeleteTask handles DELETE /tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusOK, commands.DeleteTaskCommand{ID: chi.URLParam(r, "id")})
}
