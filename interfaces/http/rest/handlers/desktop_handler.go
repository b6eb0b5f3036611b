package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"etherlink/application/commands/bus"
	"etherlink/application/queries"
	querybus "etherlink/application/queries/bus"
	pkgerrors "etherlink/pkg/errors"
)

// DesktopHandler serves the insights widget, the terminal and the grimoire
type DesktopHandler struct {
	base
}

// NewDesktopHandler creates a new desktop handler
func NewDesktopHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *DesktopHandler {
	return &DesktopHandler{base: newBase(commandBus, queryBus, errors, logger)}
}

// Insights handles GET /insights
func (h *DesktopHandler) Insights(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetInsightsQuery{})
}

// Cast handles POST /terminal
func (h *DesktopHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var query queries.CastSpellQuery
	if !h.decode(w, r, &query) {
		return
	}
	h.ask(w, r, query)
}

// GrimoirePage handles GET /grimoire/{page}
func (h *DesktopHandler) GrimoirePage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		h.errors.Handle(w, r, invalidInput("page must be an integer").WithCause(err))
		return
	}
	h.ask(w, r, queries.GetGrimoirePageQuery{Page: page})
}
