package rest

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"etherlink/application/commands/bus"
	commandhandlers "etherlink/application/commands/handlers"
	"etherlink/application/insights"
	querybus "etherlink/application/queries/bus"
	queryhandlers "etherlink/application/queries/handlers"
	"etherlink/application/stores"
	domainconfig "etherlink/domain/config"
	"etherlink/domain/events"
	"etherlink/domain/terminal"
	"etherlink/infrastructure/config"
	"etherlink/infrastructure/messaging"
	"etherlink/infrastructure/persistence"
	"etherlink/infrastructure/persistence/memory"
	"etherlink/pkg/observability"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	*httptest.Server
	bus *messaging.Bus
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	metrics := observability.NewCollector("etherlink")
	domain := domainconfig.DefaultDomainConfig()

	changes := messaging.NewBus(logger, metrics)
	docs := persistence.NewAdapter(memory.New(), changes, logger, metrics)
	all := stores.New(ctx, docs, domain)
	book, err := terminal.Default()
	require.NoError(t, err)

	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))
	require.NoError(t, commandhandlers.Register(commandBus, all, time.UTC, logger))
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(logger))
	require.NoError(t, queryhandlers.Register(queryBus, all, insights.NewAggregator(docs, domain, logger, metrics), book, time.Now))

	cfg := &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{CORSOrigins: []string{"*"}},
	}
	srv := httptest.NewServer(NewRouter(commandBus, queryBus, changes, metrics, cfg, logger).Setup())
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, bus: changes}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRuneRoutes(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPost, "/api/v1/runes", `{"title":"Glyph","content":"spiral","tags":["Void","ash"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)
	created := decodeData[struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}](t, env)
	assert.Equal(t, []string{"void", "ash"}, created.Tags)

	_, env = s.do(t, http.MethodGet, "/api/v1/runes?tag=void", "")
	assert.Len(t, decodeData[[]json.RawMessage](t, env), 1)
	_, env = s.do(t, http.MethodGet, "/api/v1/runes?q=nothing", "")
	assert.Empty(t, decodeData[[]json.RawMessage](t, env))

	_, env = s.do(t, http.MethodGet, "/api/v1/runes/tags", "")
	assert.Equal(t, []string{"ash", "void"}, decodeData[[]string](t, env))

	export, err := http.Get(s.URL + "/api/v1/runes/export")
	require.NoError(t, err)
	body, _ := io.ReadAll(export.Body)
	export.Body.Close()
	assert.Equal(t, `attachment; filename="helix-nexus-runes.json"`, export.Header.Get("Content-Disposition"))
	assert.Contains(t, string(body), "\n  {")

	_, env = s.do(t, http.MethodDelete, "/api/v1/runes/"+created.ID, "")
	assert.Equal(t, map[string]bool{"deleted": true}, decodeData[map[string]bool](t, env))
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   string
	}{
		{"empty rune", http.MethodPost, "/api/v1/runes", `{"title":"  "}`, "RUNE_EMPTY"},
		{"malformed body", http.MethodPost, "/api/v1/runes", `{"title":`, "INVALID_INPUT"},
		{"unknown field", http.MethodPost, "/api/v1/runes", `{"name":"x"}`, "INVALID_INPUT"},
		{"task without title", http.MethodPost, "/api/v1/tasks", `{"start":"2024-01-01T10:00","end":"2024-01-01T11:00"}`, "TITLE_REQUIRED"},
		{"inverted task", http.MethodPost, "/api/v1/tasks", `{"title":"x","start":"2024-01-02T10:00","end":"2024-01-01T11:00"}`, "TIME_RANGE_INVERTED"},
		{"bad status filter", http.MethodGet, "/api/v1/tasks?status=done", "", "INVALID_INPUT"},
		{"empty palette", http.MethodPost, "/api/v1/synth/palettes", `{"colors":[" "]}`, "PALETTE_EMPTY"},
		{"bad palette index", http.MethodDelete, "/api/v1/synth/palettes/first", "", "INVALID_INPUT"},
		{"bad conversion", http.MethodGet, "/api/v1/synth/convert?value=1&from=kg&to=km", "", "UNSUPPORTED_CONVERSION"},
		{"bad value", http.MethodGet, "/api/v1/synth/convert?value=abc&from=m&to=km", "", "INVALID_INPUT"},
		{"nan value", http.MethodGet, "/api/v1/synth/convert?value=NaN&from=m&to=km", "", "INVALID_INPUT"},
		{"infinite value", http.MethodGet, "/api/v1/synth/convert?value=-Inf&from=c&to=f", "", "INVALID_INPUT"},
		{"overflowing conversion", http.MethodGet, "/api/v1/synth/convert?value=1e308&from=km&to=mm", "", "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION", env.Error.Type)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestTaskRoutes(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPost, "/api/v1/tasks", `{"title":"Scry","start":"2099-01-01T10:00","end":"2099-01-01T10:45"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeData[struct {
		ID string `json:"id"`
	}](t, env).ID

	_, env = s.do(t, http.MethodGet, "/api/v1/tasks", "")
	views := decodeData[[]struct {
		Title           string `json:"title"`
		DurationMinutes int    `json:"durationMinutes"`
	}](t, env)
	require.Len(t, views, 1)
	assert.Equal(t, 45, views[0].DurationMinutes)

	_, env = s.do(t, http.MethodGet, "/api/v1/tasks/summary", "")
	summary := decodeData[struct {
		Counts stores.TaskCounts `json:"counts"`
		Next   *struct {
			ID string `json:"id"`
		} `json:"next"`
	}](t, env)
	assert.Equal(t, stores.TaskCounts{Total: 1, Pending: 1}, summary.Counts)
	require.NotNil(t, summary.Next)
	assert.Equal(t, id, summary.Next.ID)

	resp, env = s.do(t, http.MethodPost, "/api/v1/tasks/"+id+"/toggle", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "complete", decodeData[struct {
		Status string `json:"status"`
	}](t, env).Status)

	_, env = s.do(t, http.MethodGet, "/api/v1/tasks?status=pending", "")
	assert.Empty(t, decodeData[[]json.RawMessage](t, env))

	resp, env = s.do(t, http.MethodPost, "/api/v1/tasks/missing/toggle", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Error.Type)

	_, env = s.do(t, http.MethodDelete, "/api/v1/tasks/"+id, "")
	assert.Equal(t, map[string]bool{"deleted": true}, decodeData[map[string]bool](t, env))
}

func TestSynthRoutes(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodPost, "/api/v1/synth/palettes", `{"colors":["#ff00aa","#00ffcc"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_, env := s.do(t, http.MethodPut, "/api/v1/synth/notes", `{"notes":"mana flows"}`)
	require.True(t, env.Success)
	_, env = s.do(t, http.MethodPost, "/api/v1/synth/conversions", "")
	assert.Equal(t, map[string]int{"conversionCount": 1}, decodeData[map[string]int](t, env))

	_, env = s.do(t, http.MethodGet, "/api/v1/synth/convert?value=1&from=km&to=m", "")
	assert.Equal(t, "1000.0000", decodeData[struct {
		Formatted string `json:"formatted"`
	}](t, env).Formatted)

	_, env = s.do(t, http.MethodGet, "/api/v1/synth/units", "")
	units := decodeData[map[string][]string](t, env)
	assert.Equal(t, []string{"f", "k"}, units["c"])

	_, env = s.do(t, http.MethodGet, "/api/v1/synth", "")
	state := decodeData[struct {
		Palettes        [][]string `json:"palettes"`
		Notes           string     `json:"notes"`
		ConversionCount int        `json:"conversionCount"`
		LastNoteAt      *time.Time `json:"lastNoteAt"`
	}](t, env)
	assert.Equal(t, [][]string{{"#ff00aa", "#00ffcc"}}, state.Palettes)
	assert.Equal(t, "mana flows", state.Notes)
	assert.Equal(t, 1, state.ConversionCount)
	assert.NotNil(t, state.LastNoteAt)

	_, env = s.do(t, http.MethodDelete, "/api/v1/synth/palettes/3", "")
	assert.Equal(t, map[string]bool{"deleted": false}, decodeData[map[string]bool](t, env))
}

func TestInsightsRoute(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/insights", "")
	assert.JSONEq(t, `{
		"helix":{"totalRunes":0,"totalTags":0,"lastRuneAt":null},
		"scheduler":{"totalTasks":0,"completedTasks":0,"upcomingTask":null},
		"synth":{"paletteCount":0,"conversionCount":0,"lastNoteAt":null}
	}`, string(env.Data))
}

func TestTerminalRoutes(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/v1/terminal", `{"input":"  HELP "}`)
	assert.Contains(t, decodeData[struct {
		Response string `json:"response"`
	}](t, env).Response, "summon")

	_, env = s.do(t, http.MethodGet, "/api/v1/grimoire/5", "")
	page := decodeData[struct {
		Title string `json:"title"`
		Index int    `json:"index"`
	}](t, env)
	assert.Equal(t, 0, page.Index)
	assert.Equal(t, "The First Axiom", page.Title)
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/runes", `{"content":"x"}`)

	resp, err := http.Get(s.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Contains(t, string(body), `etherlink_bus_publishes_total{origin="local",topic="helix-nexus-updated"} 1`)
	assert.Contains(t, string(body), `etherlink_http_requests_total{method="POST",route="/api/v1/runes`)
}

func TestEventStream(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, ": connected", lines.Text())
	require.Eventually(t, func() bool {
		return s.bus.Subscribers(events.TopicSynthesis) == 1
	}, time.Second, 5*time.Millisecond)

	s.do(t, http.MethodPost, "/api/v1/synth/conversions", "")

	var event string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "event: ") {
			event = strings.TrimPrefix(lines.Text(), "event: ")
			break
		}
	}
	assert.Equal(t, "mana-synth-updated", event)

	require.True(t, lines.Scan())
	require.True(t, strings.HasPrefix(lines.Text(), "data: "), lines.Text())
	var payload struct {
		Topic string    `json:"topic"`
		At    time.Time `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines.Text(), "data: ")), &payload))
	assert.Equal(t, "mana-synth-updated", payload.Topic)
	assert.False(t, payload.At.IsZero())

	cancel()
	assert.Eventually(t, func() bool {
		return s.bus.Subscribers(events.TopicSynthesis) == 0
	}, time.Second, 5*time.Millisecond)
}
