package handlers

import (
	"context"

	"etherlink/application/queries"
	"etherlink/application/stores"
	"etherlink/domain/conversion"
	"etherlink/domain/core/entities"
)

// SynthesisHandlers answers synthesis queries
type SynthesisHandlers struct {
	synthesis *stores.SynthesisStore
}

// NewSynthesisHandlers creates the synthesis query handlers
func NewSynthesisHandlers(synthesis *stores.SynthesisStore) *SynthesisHandlers {
	return &SynthesisHandlers{synthesis: synthesis}
}

// GetSynth returns the synthesis state
func (h *SynthesisHandlers) GetSynth(_ context.Context, _ queries.GetSynthQuery) (entities.SynthState, error) {
	return h.synthesis.State(), nil
}

// Convert converts a value. It does not touch the conversion counter.
func (h *SynthesisHandlers) Convert(_ context.Context, q queries.ConvertQuery) (queries.ConversionResult, error) {
	result, err := conversion.Convert(q.Value, q.From, q.To)
	if err != nil {
		return queries.ConversionResult{}, err
	}
	return queries.ConversionResult{
		Value:     q.Value,
		From:      q.From,
		To:        q.To,
		Result:    result,
		Formatted: conversion.Format(result),
	}, nil
}

// ListUnits maps each source unit to the units it converts to
func (h *SynthesisHandlers) ListUnits(_ context.Context, _ queries.ListUnitsQuery) (map[string][]string, error) {
	units := make(map[string][]string)
	for _, from := range conversion.Units() {
		units[from] = conversion.Targets(from)
	}
	return units, nil
}
