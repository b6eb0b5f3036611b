package handlers

import (
	"time"

	"etherlink/application/insights"
	"etherlink/application/queries"
	"etherlink/application/queries/bus"
	"etherlink/application/stores"
	"etherlink/domain/terminal"
)

// Register wires every query handler into b
func Register(b *bus.QueryBus, all *stores.Stores, aggregator *insights.Aggregator, spellbook *terminal.Spellbook, now func() time.Time) error {
	archive := NewArchiveHandlers(all.Archive)
	schedule := NewScheduleHandlers(all.Schedule, now)
	synthesis := NewSynthesisHandlers(all.Synthesis)
	desktop := NewDesktopHandlers(aggregator, spellbook)

	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{queries.ListRunesQuery{}, bus.Typed(archive.ListRunes)},
		{queries.ListRuneTagsQuery{}, bus.Typed(archive.ListRuneTags)},
		{queries.ExportRunesQuery{}, bus.Typed(archive.ExportRunes)},
		{queries.ListTasksQuery{}, bus.Typed(schedule.ListTasks)},
		{queries.TaskSummaryQuery{}, bus.Typed(schedule.TaskSummary)},
		{queries.GetSynthQuery{}, bus.Typed(synthesis.GetSynth)},
		{queries.ConvertQuery{}, bus.Typed(synthesis.Convert)},
		{queries.ListUnitsQuery{}, bus.Typed(synthesis.ListUnits)},
		{queries.GetInsightsQuery{}, bus.Typed(desktop.GetInsights)},
		{queries.CastSpellQuery{}, bus.Typed(desktop.CastSpell)},
		{queries.GetGrimoirePageQuery{}, bus.Typed(desktop.GetGrimoirePage)},
	}
	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}
