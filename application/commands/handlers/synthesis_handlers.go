package handlers

import (
	"context"

	"go.uber.org/zap"

	"etherlink/application/commands"
	"etherlink/application/stores"
	"etherlink/domain/core/entities"
)

// SynthesisHandlers handles synthesis commands
type SynthesisHandlers struct {
	synthesis *stores.SynthesisStore
	logger    *zap.Logger
}

// NewSynthesisHandlers creates the synthesis command handlers
func NewSynthesisHandlers(synthesis *stores.SynthesisStore, logger *zap.Logger) *SynthesisHandlers {
	return &SynthesisHandlers{synthesis: synthesis, logger: logger}
}

// SavePalette appends a palette
func (h *SynthesisHandlers) SavePalette(ctx context.Context, cmd commands.SavePaletteCommand) (entities.Palette, error) {
	palette, err := h.synthesis.SavePalette(ctx, cmd.Colors)
	if err != nil {
		return nil, err
	}
	h.logger.Info("Palette saved", zap.Int("colors", len(palette)))
	return palette, nil
}

// DeletePalette removes a palette by index
func (h *SynthesisHandlers) DeletePalette(ctx context.Context, cmd commands.DeletePaletteCommand) (commands.DeleteResult, error) {
	return commands.DeleteResult{Deleted: h.synthesis.DeletePalette(ctx, cmd.Index)}, nil
}

// SaveNotes overwrites the notes
func (h *SynthesisHandlers) SaveNotes(ctx context.Context, cmd commands.SaveNotesCommand) (commands.NotesResult, error) {
	at := h.synthesis.SaveNotes(ctx, cmd.Notes)
	return commands.NotesResult{Notes: cmd.Notes, LastNoteAt: at}, nil
}

// RecordConversion counts a conversion
func (h *SynthesisHandlers) RecordConversion(ctx context.Context, _ commands.RecordConversionCommand) (commands.ConversionCountResult, error) {
	return commands.ConversionCountResult{ConversionCount: h.synthesis.RecordConversion(ctx)}, nil
}
