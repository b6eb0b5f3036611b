package handlers

import (
	"bytes"
	"context"
	"slices"

	"etherlink/application/queries"
	"etherlink/application/stores"
	"etherlink/domain/core/entities"
	pkgerrors "etherlink/pkg/errors"
)

// ArchiveHandlers answers rune queries
type ArchiveHandlers struct {
	archive *stores.ArchiveStore
}

// NewArchiveHandlers creates the rune query handlers
func NewArchiveHandlers(archive *stores.ArchiveStore) *ArchiveHandlers {
	return &ArchiveHandlers{archive: archive}
}

// ListRunes returns matching runes, newest first
func (h *ArchiveHandlers) ListRunes(_ context.Context, q queries.ListRunesQuery) ([]entities.Rune, error) {
	runes := slices.Collect(h.archive.List(stores.RuneFilter{Tag: q.Tag, Query: q.Query}))
	if runes == nil {
		runes = []entities.Rune{}
	}
	return runes, nil
}

// ListRuneTags returns the sorted distinct tags
func (h *ArchiveHandlers) ListRuneTags(_ context.Context, _ queries.ListRuneTagsQuery) ([]string, error) {
	return h.archive.Tags(), nil
}

// ExportRunes renders the archive as an indented JSON document
func (h *ArchiveHandlers) ExportRunes(_ context.Context, _ queries.ExportRunesQuery) (queries.ExportResult, error) {
	var buf bytes.Buffer
	if err := h.archive.Export(&buf); err != nil {
		return queries.ExportResult{}, pkgerrors.NewInternalError("failed to export archive").WithCause(err)
	}
	return queries.ExportResult{Filename: h.archive.ExportFilename(), Data: buf.Bytes()}, nil
}
