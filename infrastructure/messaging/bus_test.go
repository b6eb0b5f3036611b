package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"etherlink/domain/config"
	"etherlink/domain/events"
	"etherlink/infrastructure/persistence/memory"
	"etherlink/pkg/observability"
)

func TestPublishRunsHandlersInOrder(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), nil)

	var calls []string
	bus.Subscribe(events.TopicArchive, func(events.Topic) { calls = append(calls, "first") })
	bus.Subscribe(events.TopicArchive, func(events.Topic) { calls = append(calls, "second") })
	bus.Subscribe(events.TopicSchedule, func(events.Topic) { calls = append(calls, "other") })

	bus.Publish(events.TopicArchive)

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), nil)
	assert.NotPanics(t, func() { bus.Publish(events.TopicSynthesis) })
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), nil)

	count := 0
	unsubscribe := bus.Subscribe(events.TopicSynthesis, func(events.Topic) { count++ })
	bus.Publish(events.TopicSynthesis)

	unsubscribe()
	unsubscribe()
	bus.Publish(events.TopicSynthesis)

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.Subscribers(events.TopicSynthesis))
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), nil)

	var calls []string
	var unsubscribe func()
	unsubscribe = bus.Subscribe(events.TopicArchive, func(events.Topic) {
		calls = append(calls, "self-removing")
		unsubscribe()
	})
	bus.Subscribe(events.TopicArchive, func(events.Topic) { calls = append(calls, "next") })

	bus.Publish(events.TopicArchive)
	bus.Publish(events.TopicArchive)

	assert.Equal(t, []string{"self-removing", "next", "next"}, calls)
}

func TestPanickingHandlerIsIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	metrics := observability.NewCollector("test")
	bus := NewBus(zap.New(core), metrics)

	reached := false
	bus.Subscribe(events.TopicSchedule, func(events.Topic) { panic("render failed") })
	bus.Subscribe(events.TopicSchedule, func(events.Topic) { reached = true })

	require.NotPanics(t, func() { bus.Publish(events.TopicSchedule) })

	assert.True(t, reached)
	assert.Equal(t, 1, logs.FilterMessage("Subscriber panicked").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HandlerPanics))
}

func TestSubscribeAll(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), nil)

	var got []events.Topic
	unsubscribe := bus.SubscribeAll(func(topic events.Topic) { got = append(got, topic) })
	for _, topic := range events.StoreTopics() {
		bus.Publish(topic)
	}
	unsubscribe()
	bus.Publish(events.TopicArchive)

	assert.Equal(t, events.StoreTopics(), got)
}

func TestRelayExternal(t *testing.T) {
	defer goleak.VerifyNone(t)

	metrics := observability.NewCollector("test")
	bus := NewBus(zaptest.NewLogger(t), metrics)
	store := memory.New()

	got := make(chan events.Topic, 4)
	bus.Subscribe(events.TopicArchive, func(topic events.Topic) { got <- topic })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bus.RelayExternal(ctx, store) }()
	require.Eventually(t, func() bool { return store.Watchers() == 1 }, time.Second, time.Millisecond)

	store.SimulateExternalWrite("unrelated", []byte("1"))
	store.SimulateExternalWrite(config.ArchiveKey, []byte("[]"))

	assert.Equal(t, events.TopicArchive, <-got)
	assert.Empty(t, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Publishes.WithLabelValues(events.TopicArchive.String(), string(events.OriginExternal))))

	cancel()
	assert.NoError(t, <-done)
}
