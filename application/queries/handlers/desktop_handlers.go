package handlers

import (
	"context"

	"etherlink/application/insights"
	"etherlink/application/queries"
	"etherlink/domain/terminal"
)

// DesktopHandlers answers insights and terminal queries
type DesktopHandlers struct {
	aggregator *insights.Aggregator
	spellbook  *terminal.Spellbook
}

// NewDesktopHandlers creates the desktop query handlers
func NewDesktopHandlers(aggregator *insights.Aggregator, spellbook *terminal.Spellbook) *DesktopHandlers {
	return &DesktopHandlers{aggregator: aggregator, spellbook: spellbook}
}

// GetInsights computes a fresh snapshot
func (h *DesktopHandlers) GetInsights(ctx context.Context, _ queries.GetInsightsQuery) (insights.Snapshot, error) {
	return h.aggregator.Compute(ctx), nil
}

// CastSpell answers a terminal command
func (h *DesktopHandlers) CastSpell(_ context.Context, q queries.CastSpellQuery) (queries.SpellResult, error) {
	return queries.SpellResult{Input: q.Input, Response: h.spellbook.Cast(q.Input)}, nil
}

// GetGrimoirePage returns a page, wrapping the index
func (h *DesktopHandlers) GetGrimoirePage(_ context.Context, q queries.GetGrimoirePageQuery) (queries.GrimoirePageResult, error) {
	total := len(h.spellbook.Pages)
	return queries.GrimoirePageResult{
		Page:  h.spellbook.Page(q.Page),
		Index: ((q.Page % total) + total) % total,
		Total: total,
	}, nil
}
