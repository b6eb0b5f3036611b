package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"etherlink/application/ports"
	"etherlink/domain/config"
	"etherlink/domain/events"
	"etherlink/infrastructure/persistence/memory"
	pkgerrors "etherlink/pkg/errors"
	"etherlink/pkg/observability"
)

type publishRecorder struct {
	topics    []events.Topic
	onPublish func(events.Topic)
}

func (p *publishRecorder) Publish(topic events.Topic) {
	p.topics = append(p.topics, topic)
	if p.onPublish != nil {
		p.onPublish(topic)
	}
}

type synth struct {
	Notes string `json:"notes"`
	Count int    `json:"conversionCount"`
}

func setup(t *testing.T) (*Adapter, *memory.Store, *publishRecorder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	store := memory.New()
	bus := &publishRecorder{}
	return NewAdapter(store, bus, zap.New(core), observability.NewCollector("test")), store, bus, logs
}

func TestLoad(t *testing.T) {
	def := synth{Notes: "default"}

	tests := []struct {
		name      string
		stored    string
		store     bool
		want      synth
		diagnosed bool
	}{
		{name: "absent", want: def},
		{name: "stored", stored: `{"notes":"hi","conversionCount":3}`, store: true, want: synth{Notes: "hi", Count: 3}},
		{name: "malformed", stored: `{"notes":`, store: true, want: def, diagnosed: true},
		{name: "wrong shape", stored: `[1,2]`, store: true, want: def, diagnosed: true},
		{name: "null", stored: `null`, store: true, want: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, store, _, logs := setup(t)
			if tt.store {
				require.NoError(t, store.Set(context.Background(), config.SynthesisKey, []byte(tt.stored)))
			}

			got := ports.Load(context.Background(), a, config.SynthesisKey, def)

			assert.Equal(t, tt.want, got)
			diagnostics := logs.FilterField(zap.String("error_type", string(pkgerrors.ErrorTypePersistenceRead)))
			assert.Equal(t, tt.diagnosed, diagnostics.Len() == 1)
		})
	}
}

func TestLoadBackendFailureFallsBack(t *testing.T) {
	a, store, _, logs := setup(t)
	store.FailReads(errors.New("io error"))

	got := ports.Load(context.Background(), a, config.ArchiveKey, []string{})

	assert.Equal(t, []string{}, got)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, config.ArchiveKey, logs.All()[0].ContextMap()["key"])
}

func TestSavePublishesAfterWrite(t *testing.T) {
	ctx := context.Background()
	a, _, bus, _ := setup(t)

	var seen synth
	bus.onPublish = func(events.Topic) {
		seen = ports.Load(ctx, a, config.SynthesisKey, synth{})
	}

	require.NoError(t, a.Save(ctx, config.SynthesisKey, synth{Notes: "fresh"}))

	assert.Equal(t, []events.Topic{events.TopicSynthesis}, bus.topics)
	assert.Equal(t, "fresh", seen.Notes, "subscribers must observe the new value")
}

func TestSaveFailureSkipsPublish(t *testing.T) {
	ctx := context.Background()
	a, store, bus, logs := setup(t)
	store.FailWrites(errors.New("quota exceeded"))

	err := a.Save(ctx, config.ScheduleKey, []string{"x"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypePersistenceWrite))
	assert.Empty(t, bus.topics)
	assert.Equal(t, 1, logs.FilterField(zap.String("error_type", string(pkgerrors.ErrorTypePersistenceWrite))).Len())
}

func TestSaveUnknownKeyDoesNotPublish(t *testing.T) {
	ctx := context.Background()
	a, _, bus, _ := setup(t)

	require.NoError(t, a.Save(ctx, "scratch", 1))
	raw, err := a.Raw(ctx, "scratch")
	require.NoError(t, err)

	assert.Equal(t, "1", string(raw))
	assert.Empty(t, bus.topics)
}
