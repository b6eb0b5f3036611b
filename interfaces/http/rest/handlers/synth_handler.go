package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"etherlink/application/commands"
	"etherlink/application/commands/bus"
	"etherlink/application/queries"
	querybus "etherlink/application/queries/bus"
	pkgerrors "etherlink/pkg/errors"
)

// SynthHandler handles Mana Synth requests
type SynthHandler struct {
	base
}

// NewSynthHandler creates a new synthesis handler
func NewSynthHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *SynthHandler {
	return &SynthHandler{base: newBase(commandBus, queryBus, errors, logger)}
}

// GetSynth handles GET /synth
func (h *SynthHandler) GetSynth(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetSynthQuery{})
}

// SavePalette handles POST /synth/palettes
func (h *SynthHandler) SavePalette(w http.ResponseWriter, r *http.Request) {
	var cmd commands.SavePaletteCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	h.send(w, r, http.StatusCreated, cmd)
}

// DeletePalette handles DELETE /synth/palettes/{index}
func (h *SynthHandler) DeletePalette(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.errors.Handle(w, r, invalidInput("palette index must be an integer").WithCause(err))
		return
	}
	h.send(w, r, http.StatusOK, commands.DeletePaletteCommand{Index: index})
}

// SaveNotes handles PUT /synth/notes
func (h *SynthHandler) SaveNotes(w http.ResponseWriter, r *http.Request) {
	var cmd commands.SaveNotesCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	h.send(w, r, http.StatusOK, cmd)
}

// RecordConversion handles POST /synth/conversions
func (h *SynthHandler) RecordConversion(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusOK, commands.RecordConversionCommand{})
}

// Convert handles GET /synth/convert?value=&from=&to=
func (h *SynthHandler) Convert(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	value, err := strconv.ParseFloat(params.Get("value"), 64)
	if err != nil {
		h.errors.Handle(w, r, invalidInput("value must be a number").WithCause(err))
		return
	}
	h.ask(w, r, queries.ConvertQuery{Value: value, From: params.Get("from"), To: params.Get("to")})
}

// ListUnits handles GET /synth/units
func (h *SynthHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListUnitsQuery{})
}
