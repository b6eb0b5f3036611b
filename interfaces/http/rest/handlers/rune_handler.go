package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"etherlink/application/commands"
	"etherlink/application/commands/bus"
	"etherlink/application/queries"
	querybus "etherlink/application/queries/bus"
	"etherlink/pkg/common"
	pkgerrors "etherlink/pkg/errors"
)

// RuneHandler handles Helix Nexus archive requests
type RuneHandler struct {
	base
}

// NewRuneHandler creates a new rune handler
func NewRuneHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *RuneHandler {
	return &RuneHandler{base: newBase(commandBus, queryBus, errors, logger)}
}

// CreateRune handles POST /runes
func (h *RuneHandler) CreateRune(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateRuneCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	h.send(w, r, http.StatusCreated, cmd)
}

// ListRunes handles GET /runes?tag=&q=
func (h *RuneHandler) ListRunes(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListRunesQuery{
		Tag:   r.URL.Query().Get("tag"),
		Query: r.URL.Query().Get("q"),
	})
}

// ListTags handles GET /runes/tags
func (h *RuneHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListRuneTagsQuery{})
}

// DeleteRune handles DELETE /runes/{id}
func (h *RuneHandler) DeleteRune(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusOK, commands.DeleteRuneCommand{ID: chi.URLParam(r, "id")})
}

// ExportRunes handles GET /runes/export
func (h *RuneHandler) ExportRunes(w http.ResponseWriter, r *http.Request) {
	result, err := h.result(r.Context(), queries.ExportRunesQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	export := result.(queries.ExportResult)
	common.RespondAttachment(w, export.Filename, "application/json", export.Data)
}
