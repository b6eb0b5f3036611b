package stores

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"etherlink/domain/config"
	"etherlink/domain/events"
	"etherlink/infrastructure/messaging"
	"etherlink/infrastructure/persistence"
	"etherlink/infrastructure/persistence/memory"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// stepClock returns epoch and advances a minute on every call
type stepClock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Minute)
	return now
}

type fixture struct {
	backend   *memory.Store
	bus       *messaging.Bus
	docs      *persistence.Adapter
	cfg       *config.DomainConfig
	clock     *stepClock
	published []events.Topic
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	f := &fixture{
		backend: memory.New(),
		bus:     messaging.NewBus(logger, nil),
		cfg:     config.DefaultDomainConfig(),
		clock:   &stepClock{next: epoch},
	}
	f.docs = persistence.NewAdapter(f.backend, f.bus, logger, nil)
	f.bus.SubscribeAll(func(topic events.Topic) { f.published = append(f.published, topic) })
	return f
}

func (f *fixture) options() []Option {
	return []Option{WithClock(f.clock.Now)}
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}
