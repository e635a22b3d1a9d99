// Package routes builds the gateway's request multiplexer from route groups.
package routes

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"

	pkgroutes "github.com/JaimeStill/agent-lab-client/pkg/routes"
)

type table struct {
	mu      sync.RWMutex
	entries []pkgroutes.Entry
	logger  *slog.Logger
}

// New creates an empty route table.
func New(logger *slog.Logger) pkgroutes.System {
	return &table{
		entries: []pkgroutes.Entry{},
		logger:  logger.With("system", "routes"),
	}
}

func (t *table) RegisterRoute(route pkgroutes.Route) {
	t.add(pkgroutes.Entry{
		Method:  route.Method,
		Pattern: route.Pattern,
		Handler: route.Handler,
	})
}

func (t *table) RegisterGroup(group pkgroutes.Group) {
	t.add(group.Flatten("")...)
}

func (t *table) Entries() []pkgroutes.Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.entries)
}

// Build registers every entry on a ServeMux using "METHOD pattern" keys.
func (t *table) Build() http.Handler {
	mux := http.NewServeMux()
	for _, e := range t.Entries() {
		mux.HandleFunc(e.Method+" "+e.Pattern, e.Handler)
		t.logger.Debug("route registered", "method", e.Method, "pattern", e.Pattern)
	}
	return mux
}

func (t *table) add(entries ...pkgroutes.Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entries...)
}
