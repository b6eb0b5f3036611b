package handlers

import (
	"context"

	"go.uber.org/zap"

	"etherlink/application/commands"
	"etherlink/application/stores"
	"etherlink/domain/core/entities"
	"etherlink/domain/core/valueobjects"
)

// ArchiveHandlers handles rune commands
type ArchiveHandlers struct {
	archive *stores.ArchiveStore
	logger  *zap.Logger
}

// NewArchiveHandlers creates the rune command handlers
func NewArchiveHandlers(archive *stores.ArchiveStore, logger *zap.Logger) *ArchiveHandlers {
	return &ArchiveHandlers{archive: archive, logger: logger}
}

// CreateRune archives a new rune
func (h *ArchiveHandlers) CreateRune(ctx context.Context, cmd commands.CreateRuneCommand) (entities.Rune, error) {
	r, err := h.archive.Create(ctx, entities.RuneInput{
		Title:   cmd.Title,
		Content: cmd.Content,
		Tags:    cmd.Tags,
	})
	if err != nil {
		return entities.Rune{}, err
	}

	h.logger.Info("Rune archived",
		zap.String("id", r.ID.String()),
		zap.Int("tags", len(r.Tags)),
	)
	return r, nil
}

// DeleteRune removes a rune
func (h *ArchiveHandlers) DeleteRune(ctx context.Context, cmd commands.DeleteRuneCommand) (commands.DeleteResult, error) {
	deleted := h.archive.Delete(ctx, valueobjects.EntryID(cmd.ID))
	if deleted {
		h.logger.Info("Rune deleted", zap.String("id", cmd.ID))
	}
	return commands.DeleteResult{Deleted: deleted}, nil
}
