package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"etherlink/application/insights"
	"etherlink/application/queries"
	"etherlink/application/queries/bus"
	"etherlink/application/stores"
	"etherlink/domain/config"
	"etherlink/domain/core/entities"
	"etherlink/domain/terminal"
	"etherlink/infrastructure/messaging"
	"etherlink/infrastructure/persistence"
	"etherlink/infrastructure/persistence/memory"
	pkgerrors "etherlink/pkg/errors"
)

var now = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newBus(t *testing.T) (*bus.QueryBus, *stores.Stores) {
	t.Helper()
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	cfg := config.DefaultDomainConfig()
	docs := persistence.NewAdapter(memory.New(), messaging.NewBus(logger, nil), logger, nil)
	all := stores.New(ctx, docs, cfg)
	book, err := terminal.Default()
	require.NoError(t, err)

	b := bus.NewQueryBus(bus.LoggingMiddleware(logger))
	require.NoError(t, Register(b, all, insights.NewAggregator(docs, cfg, logger, nil), book, func() time.Time { return now }))
	return b, all
}

func TestArchiveQueries(t *testing.T) {
	ctx := context.Background()
	b, all := newBus(t)

	result, err := b.Ask(ctx, queries.ListRunesQuery{})
	require.NoError(t, err)
	assert.Equal(t, []entities.Rune{}, result)

	_, err = all.Archive.Create(ctx, entities.RuneInput{Title: "a", Tags: []string{"b", "a"}})
	require.NoError(t, err)

	result, err = b.Ask(ctx, queries.ListRuneTagsQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, result)

	result, err = b.Ask(ctx, queries.ExportRunesQuery{})
	require.NoError(t, err)
	export := result.(queries.ExportResult)
	assert.Equal(t, "helix-nexus-runes.json", export.Filename)
	var decoded []entities.Rune
	require.NoError(t, json.Unmarshal(export.Data, &decoded))
	assert.Len(t, decoded, 1)
}

func TestScheduleQueries(t *testing.T) {
	ctx := context.Background()
	b, all := newBus(t)

	past, err := all.Schedule.Create(ctx, entities.TaskInput{Title: "past", Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = all.Schedule.Create(ctx, entities.TaskInput{Title: "soon", Start: now.Add(time.Hour), End: now.Add(90 * time.Minute)})
	require.NoError(t, err)

	result, err := b.Ask(ctx, queries.ListTasksQuery{Status: "pending"})
	require.NoError(t, err)
	views := result.([]queries.TaskView)
	require.Len(t, views, 2)
	assert.Equal(t, past.ID, views[0].ID)
	assert.Equal(t, 30, views[1].DurationMinutes)

	_, err = b.Ask(ctx, queries.ListTasksQuery{Status: "done"})
	assert.Equal(t, pkgerrors.RuleInvalidInput, pkgerrors.RuleOf(err))

	result, err = b.Ask(ctx, queries.TaskSummaryQuery{})
	require.NoError(t, err)
	summary := result.(queries.TaskSummaryResult)
	assert.Equal(t, stores.TaskCounts{Total: 2, Pending: 2}, summary.Counts)
	require.NotNil(t, summary.Next)
	assert.Equal(t, "soon", summary.Next.Title)
}

func TestConvertQuery(t *testing.T) {
	ctx := context.Background()
	b, all := newBus(t)

	result, err := b.Ask(ctx, queries.ConvertQuery{Value: 100, From: "c", To: "f"})
	require.NoError(t, err)
	assert.Equal(t, "212.0000", result.(queries.ConversionResult).Formatted)
	assert.Equal(t, 0, all.Synthesis.State().ConversionCount)

	_, err = b.Ask(ctx, queries.ConvertQuery{Value: 1, From: "kg", To: "m"})
	assert.Equal(t, pkgerrors.RuleUnsupportedConversion, pkgerrors.RuleOf(err))

	result, err = b.Ask(ctx, queries.ListUnitsQuery{})
	require.NoError(t, err)
	units := result.(map[string][]string)
	assert.Len(t, units, 6)
	assert.Equal(t, []string{"f", "k"}, units["c"])
}

func TestDesktopQueries(t *testing.T) {
	ctx := context.Background()
	b, all := newBus(t)
	all.Synthesis.RecordConversion(ctx)

	result, err := b.Ask(ctx, queries.GetInsightsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.(insights.Snapshot).Synth.ConversionCount)

	result, err = b.Ask(ctx, queries.CastSpellQuery{Input: "nope"})
	require.NoError(t, err)
	assert.Contains(t, result.(queries.SpellResult).Response, `Unknown spell: "nope"`)

	result, err = b.Ask(ctx, queries.GetGrimoirePageQuery{Page: -1})
	require.NoError(t, err)
	page := result.(queries.GrimoirePageResult)
	assert.Equal(t, 4, page.Index)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, "The Final Truth", page.Title)
}
