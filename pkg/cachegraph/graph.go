// Package cachegraph provides a keyed view cache whose keys are linked by a
// static dependency graph. Reads are coalesced per key and expire after a
// freshness window; invalidating a key stales every key reachable from it.
package cachegraph

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	loaded    bool
	stale     bool
	fetchedAt time.Time
	gen       uint64
}

// Graph is a dependency-aware view cache. The zero value is not usable;
// construct with New.
type Graph struct {
	mu      sync.Mutex
	entries map[Key]*entry
	edges   []Edge
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
	logger  *slog.Logger
}

// Option customizes a Graph.
type Option func(*Graph)

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(g *Graph) {
		g.now = now
	}
}

// New creates a Graph with the given dependency edges. cfg must be finalized.
func New(edges []Edge, cfg *Config, logger *slog.Logger, opts ...Option) *Graph {
	g := &Graph{
		entries: make(map[Key]*entry),
		edges:   slices.Clone(edges),
		ttl:     cfg.TTLDuration(),
		now:     time.Now,
		logger:  logger.With("system", "cachegraph"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load returns the cached value for key, fetching it when the key is
// missing, stale, or expired. Concurrent loads of the same key share one
// fetch. If ctx ends first, Load returns ctx.Err() while the fetch runs on
// and still populates the cache.
func Load[T any](ctx context.Context, g *Graph, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := g.fresh(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	detached := context.WithoutCancel(ctx)
	ch := g.group.DoChan(string(key), func() (any, error) {
		if v, ok := g.fresh(key); ok {
			return v, nil
		}
		gen := g.begin(key)
		v, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		g.store(key, v, gen)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, _ := res.Val.(T)
		return typed, nil
	}
}

// Invalidate marks each key and every key reachable from it through the
// dependency edges as stale, and returns the affected keys in sorted order.
// A key containing "*" segments stands for every tracked key it matches.
// A fetch already in flight for an affected key will not repopulate it.
func (g *Graph) Invalidate(keys ...Key) []Key {
	g.mu.Lock()
	affected := g.closure(keys)
	for _, k := range affected {
		e, ok := g.entries[k]
		if !ok {
			e = &entry{}
			g.entries[k] = e
		}
		e.stale = true
		e.gen++
		g.group.Forget(string(k))
	}
	g.mu.Unlock()

	g.logger.Debug("cache invalidated", "roots", keys, "keys", affected)
	return affected
}

// Stale reports whether a read of key would trigger a fetch.
func (g *Graph) Stale(key Key) bool {
	_, ok := g.fresh(key)
	return !ok
}

// Peek returns the last loaded value for key regardless of freshness.
func (g *Graph) Peek(key Key) (any, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	if !ok || !e.loaded {
		return nil, false
	}
	return e.value, true
}

// Range calls fn for every loaded key matching pattern.
func (g *Graph) Range(pattern string, fn func(Key, any)) {
	type kv struct {
		key   Key
		value any
	}

	g.mu.Lock()
	matched := make([]kv, 0)
	for k, e := range g.entries {
		if !e.loaded {
			continue
		}
		if _, ok := match(pattern, k); ok {
			matched = append(matched, kv{k, e.value})
		}
	}
	g.mu.Unlock()

	slices.SortFunc(matched, func(a, b kv) int {
		return cmp.Compare(a.key, b.key)
	})
	for _, m := range matched {
		fn(m.key, m.value)
	}
}

// Reset drops every cached value. Generations survive so a fetch that began
// before the reset cannot store its result.
func (g *Graph) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for k, e := range g.entries {
		*e = entry{gen: e.gen + 1}
		g.group.Forget(string(k))
	}
}

func (g *Graph) fresh(key Key) (any, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	if !ok || !e.loaded || e.stale {
		return nil, false
	}
	if g.ttl > 0 && g.now().Sub(e.fetchedAt) >= g.ttl {
		return nil, false
	}
	return e.value, true
}

// begin tracks key as in flight and returns the generation the fetch
// belongs to.
func (g *Graph) begin(key Key) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	if !ok {
		e = &entry{}
		g.entries[key] = e
	}
	return e.gen
}

func (g *Graph) store(key Key, value any, gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	if !ok || e.gen != gen {
		return
	}
	e.value = value
	e.loaded = true
	e.stale = false
	e.fetchedAt = g.now()
}

// closure must be called with g.mu held.
func (g *Graph) closure(roots []Key) []Key {
	seen := make(map[Key]bool)
	queue := slices.Clone(roots)

	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		if seen[k] {
			continue
		}
		if isPattern(string(k)) {
			for tracked := range g.entries {
				if _, ok := match(string(k), tracked); ok {
					queue = append(queue, tracked)
				}
			}
			continue
		}
		seen[k] = true

		for _, edge := range g.edges {
			bindings, ok := match(edge.From, k)
			if !ok {
				continue
			}
			target := render(edge.To, bindings)
			if !isPattern(target) {
				queue = append(queue, Key(target))
				continue
			}
			for tracked := range g.entries {
				if _, ok := match(target, tracked); ok {
					queue = append(queue, tracked)
				}
			}
		}
	}

	affected := make([]Key, 0, len(seen))
	for k := range seen {
		affected = append(affected, k)
	}
	slices.Sort(affected)
	return affected
}
