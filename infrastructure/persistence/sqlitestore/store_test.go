package sqlitestore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"etherlink/application/ports"
)

const interval = 10 * time.Millisecond

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, interval, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "kv.db"))

	_, err := s.Get(ctx, "etherlink-helix-runes")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "etherlink-helix-runes", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "etherlink-helix-runes", []byte(`[{"id":"a"}]`)))

	got, err := s.Get(ctx, "etherlink-helix-runes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	var version int64
	require.NoError(t, s.db.QueryRow(`SELECT version FROM kv WHERE key = ?`, "etherlink-helix-runes").Scan(&version))
	assert.Equal(t, int64(2), version)
}

type recorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *recorder) add(key string) {
	r.mu.Lock()
	r.keys = append(r.keys, key)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

func TestWatchReportsOtherConnections(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreAnyFunction("database/sql.(*DB).connectionOpener"))

	ctx, cancel := context.WithCancel(context.Background())
	path := filepath.Join(t.TempDir(), "kv.db")
	s := openStore(t, path)
	other := openStore(t, path)

	require.NoError(t, s.Set(ctx, "etherlink-mana-synth", []byte(`{}`)))

	rec := &recorder{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, s.Watch(ctx, rec.add))
	}()
	time.Sleep(5 * interval)

	require.NoError(t, s.Set(ctx, "etherlink-mana-synth", []byte(`{"notes":"mine"}`)))
	require.NoError(t, other.Set(ctx, "etherlink-scheduler-tasks", []byte(`[]`)))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) > 0
	}, 2*time.Second, interval)
	time.Sleep(5 * interval)

	assert.Equal(t, []string{"etherlink-scheduler-tasks"}, rec.snapshot())

	cancel()
	<-done
}
