package cachegraph_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/agent-lab-client/pkg/cachegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var edges = []cachegraph.Edge{
	{From: "providers/{id}", To: "providers"},
	{From: "providers/{id}", To: "providers/{id}/models"},
	{From: "providers", To: "providers/*/models"},
	{From: "models/{id}", To: "models"},
	{From: "models", To: "providers/*/models"},
}

func newGraph(t *testing.T, ttl string, opts ...cachegraph.Option) *cachegraph.Graph {
	t.Helper()
	cfg := &cachegraph.Config{TTL: ttl}
	require.NoError(t, cfg.Finalize(nil))
	return cachegraph.New(edges, cfg, slog.New(slog.DiscardHandler), opts...)
}

// counter returns a fetch func that reports how often it ran.
func counter(value string) (func(context.Context) (string, error), *atomic.Int32) {
	var n atomic.Int32
	return func(context.Context) (string, error) {
		n.Add(1)
		return value, nil
	}, &n
}

func TestLoad_CachesValue(t *testing.T) {
	g := newGraph(t, "0s")
	fetch, calls := counter("v")

	for range 3 {
		v, err := cachegraph.Load(context.Background(), g, "providers", fetch)
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, g.Stale("providers"))
}

func TestLoad_ErrorIsNotCached(t *testing.T) {
	g := newGraph(t, "0s")
	boom := errors.New("boom")
	var calls atomic.Int32

	fetch := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", boom
		}
		return "ok", nil
	}

	_, err := cachegraph.Load(context.Background(), g, "models", fetch)
	require.ErrorIs(t, err, boom)
	assert.True(t, g.Stale("models"))

	v, err := cachegraph.Load(context.Background(), g, "models", fetch)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoad_CoalescesConcurrentReads(t *testing.T) {
	g := newGraph(t, "0s")
	release := make(chan struct{})
	var calls atomic.Int32

	fetch := func(context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"p1"}, nil
	}

	const readers = 8
	var started, wg sync.WaitGroup
	results := make([][]string, readers)
	started.Add(readers)
	wg.Add(readers)
	for i := range readers {
		go func() {
			defer wg.Done()
			started.Done()
			v, err := cachegraph.Load(context.Background(), g, "providers", fetch)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	started.Wait()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, []string{"p1"}, r)
	}
}

func TestLoad_AbandonedReadStillPopulates(t *testing.T) {
	g := newGraph(t, "0s")
	release := make(chan struct{})
	done := make(chan struct{})

	fetch := func(ctx context.Context) (string, error) {
		defer close(done)
		<-release
		return "late", ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := cachegraph.Load(ctx, g, "providers", fetch)
		errc <- err
	}()

	cancel()
	require.ErrorIs(t, <-errc, context.Canceled)

	close(release)
	<-done

	require.Eventually(t, func() bool { return !g.Stale("providers") }, time.Second, time.Millisecond)
	v, ok := g.Peek("providers")
	require.True(t, ok)
	assert.Equal(t, "late", v)
}

func TestLoad_TTLExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	g := newGraph(t, "30s", cachegraph.WithClock(clock))
	fetch, calls := counter("v")

	_, err := cachegraph.Load(context.Background(), g, "providers", fetch)
	require.NoError(t, err)

	now = now.Add(29 * time.Second)
	assert.False(t, g.Stale("providers"))
	_, _ = cachegraph.Load(context.Background(), g, "providers", fetch)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(time.Second)
	assert.True(t, g.Stale("providers"))
	_, _ = cachegraph.Load(context.Background(), g, "providers", fetch)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_Closure(t *testing.T) {
	tests := []struct {
		name   string
		loaded []cachegraph.Key
		roots  []cachegraph.Key
		want   []cachegraph.Key
	}{
		{
			"provider stales list and its models",
			[]cachegraph.Key{"providers", "providers/p1", "providers/p1/models", "providers/p2/models"},
			[]cachegraph.Key{"providers/p1"},
			[]cachegraph.Key{"providers", "providers/p1", "providers/p1/models", "providers/p2/models"},
		},
		{
			"provider list reaches every tracked provider model view",
			[]cachegraph.Key{"providers/p1/models", "providers/p2/models", "models/m1"},
			[]cachegraph.Key{"providers"},
			[]cachegraph.Key{"providers", "providers/p1/models", "providers/p2/models"},
		},
		{
			"model stales model list and provider model views",
			[]cachegraph.Key{"models", "models/m1", "models/m2", "providers/p1/models"},
			[]cachegraph.Key{"models/m1"},
			[]cachegraph.Key{"models", "models/m1", "providers/p1/models"},
		},
		{
			"untracked roots are still marked",
			nil,
			[]cachegraph.Key{"models/m9"},
			[]cachegraph.Key{"models", "models/m9"},
		},
		{
			"pattern root expands to tracked keys",
			[]cachegraph.Key{"models/m1", "models/m2", "providers/p1"},
			[]cachegraph.Key{"models/*"},
			[]cachegraph.Key{"models", "models/m1", "models/m2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(t, "0s")
			for _, k := range tt.loaded {
				_, err := cachegraph.Load(context.Background(), g, k, func(context.Context) (string, error) {
					return string(k), nil
				})
				require.NoError(t, err)
			}

			got := g.Invalidate(tt.roots...)

			assert.Equal(t, tt.want, got)
			for _, k := range got {
				assert.True(t, g.Stale(k), "%s should be stale", k)
			}
		})
	}
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	g := newGraph(t, "0s")
	fetch, calls := counter("v")

	_, _ = cachegraph.Load(context.Background(), g, "providers/p1/models", fetch)
	g.Invalidate("providers/p1")
	_, _ = cachegraph.Load(context.Background(), g, "providers/p1/models", fetch)

	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_InFlightFetchDoesNotRepopulate(t *testing.T) {
	g := newGraph(t, "0s")
	release := make(chan struct{})
	var calls atomic.Int32

	fetch := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			<-release
			return "before", nil
		}
		return "after", nil
	}

	first := make(chan string, 1)
	go func() {
		v, _ := cachegraph.Load(context.Background(), g, "providers", fetch)
		first <- v
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	g.Invalidate("providers")
	close(release)
	assert.Equal(t, "before", <-first)
	assert.True(t, g.Stale("providers"))

	v, err := cachegraph.Load(context.Background(), g, "providers", fetch)
	require.NoError(t, err)
	assert.Equal(t, "after", v)
}

func TestReset_InFlightFetchDoesNotRepopulate(t *testing.T) {
	g := newGraph(t, "0s")
	release := make(chan struct{})
	var calls atomic.Int32

	fetch := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			<-release
			return "before", nil
		}
		return "", errors.New("upstream down")
	}

	first := make(chan string, 1)
	go func() {
		v, _ := cachegraph.Load(context.Background(), g, "providers", fetch)
		first <- v
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	g.Reset()

	_, err := cachegraph.Load(context.Background(), g, "providers", fetch)
	require.Error(t, err)

	close(release)
	assert.Equal(t, "before", <-first)

	_, ok := g.Peek("providers")
	assert.False(t, ok)
	assert.True(t, g.Stale("providers"))
}

func TestRange(t *testing.T) {
	g := newGraph(t, "0s")
	for _, k := range []cachegraph.Key{"models/b", "models/a", "providers/p1", "models"} {
		_, _ = cachegraph.Load(context.Background(), g, k, func(context.Context) (string, error) {
			return string(k), nil
		})
	}

	var keys []cachegraph.Key
	g.Range("models/*", func(k cachegraph.Key, _ any) {
		keys = append(keys, k)
	})

	assert.Equal(t, []cachegraph.Key{"models/a", "models/b"}, keys)
}

func TestReset(t *testing.T) {
	g := newGraph(t, "0s")
	fetch, calls := counter("v")

	_, _ = cachegraph.Load(context.Background(), g, "providers", fetch)
	g.Reset()

	_, ok := g.Peek("providers")
	assert.False(t, ok)
	assert.True(t, g.Stale("providers"))

	_, _ = cachegraph.Load(context.Background(), g, "providers", fetch)
	assert.Equal(t, int32(2), calls.Load())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, cachegraph.Key("providers/p1/models"), cachegraph.Join("providers", "p1", "models"))
}
