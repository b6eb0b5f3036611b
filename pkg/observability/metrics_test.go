package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("etherlink")

	c.ObservePublish("helix-nexus-updated", "local")
	c.ObservePublish("helix-nexus-updated", "local")
	c.ObservePublish("helix-nexus-updated", "external")
	c.ObserveStore("save", "etherlink-mana-synth", ResultError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Publishes.WithLabelValues("helix-nexus-updated", "local")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Publishes.WithLabelValues("helix-nexus-updated", "external")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.StoreOperations.WithLabelValues("save", "etherlink-mana-synth", ResultError)))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObservePublish("t", "local")
		c.ObserveStore("load", "k", ResultOK, 0)
		c.ObserveHandlerPanic()
		c.ObserveRecompute()
		c.ObserveHTTP("GET", "/", "200", 0)
	})
}

func TestCollectorsDoNotShareRegistry(t *testing.T) {
	a := NewCollector("etherlink")
	b := NewCollector("etherlink")
	assert.NotSame(t, a.GetRegistry(), b.GetRegistry())
}
