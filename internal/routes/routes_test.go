package routes_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/agent-lab-client/internal/routes"
	pkgroutes "github.com/JaimeStill/agent-lab-client/pkg/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body + ":" + r.PathValue("id")))
	}
}

func TestBuild(t *testing.T) {
	sys := routes.New(slog.New(slog.DiscardHandler))
	sys.RegisterRoute(pkgroutes.Route{Method: "GET", Pattern: "/healthz", Handler: reply("health")})
	sys.RegisterGroup(pkgroutes.Group{
		Prefix: "/api",
		Children: []pkgroutes.Group{
			{
				Prefix: "/providers",
				Routes: []pkgroutes.Route{
					{Method: "GET", Pattern: "", Handler: reply("list")},
					{Method: "GET", Pattern: "/{id}", Handler: reply("get")},
				},
				Children: []pkgroutes.Group{
					{
						Prefix: "/{id}/models",
						Routes: []pkgroutes.Route{
							{Method: "GET", Pattern: "", Handler: reply("models")},
						},
					},
				},
			},
		},
	})


	h := sys.Build()

	tests := []struct {
		method string
		target string
		status int
		body   string
	}{
		{"GET", "/healthz", http.StatusOK, "health:"},
		{"GET", "/api/providers", http.StatusOK, "list:"},
		{"GET", "/api/providers/p1", http.StatusOK, "get:p1"},
		{"GET", "/api/providers/p1/models", http.StatusOK, "models:p1"},
		{"POST", "/api/providers", http.StatusMethodNotAllowed, ""},
		{"GET", "/api/unknown", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestEntries(t *testing.T) {
	sys := routes.New(slog.New(slog.DiscardHandler))
	sys.RegisterRoute(pkgroutes.Route{Method: "GET", Pattern: "/healthz", Handler: reply("health")})
	sys.RegisterGroup(pkgroutes.Group{
		Prefix:      "/api",
		Description: "API",
		Children: []pkgroutes.Group{
			{
				Prefix:      "/models",
				Description: "Model access",
				Routes: []pkgroutes.Route{
					{Method: "GET", Pattern: "/{id}", Handler: reply("get")},
				},
			},
			{
				Prefix: "/cache",
				Routes: []pkgroutes.Route{
					{Method: "DELETE", Pattern: "", Handler: reply("reset")},
				},
			},
		},
	})

	entries := sys.Entries()
	require.Len(t, entries, 3)

	got := make([][3]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, [3]string{e.Method, e.Pattern, e.Description})
	}
	assert.Equal(t, [][3]string{
		{"GET", "/healthz", ""},
		{"GET", "/api/models/{id}", "Model access"},
		{"DELETE", "/api/cache", "API"},
	}, got)

	entries[0].Pattern = "/mutated"
	assert.Equal(t, "/healthz", sys.Entries()[0].Pattern)
}
