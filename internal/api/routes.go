package api

import (
	"net/http"

	"github.com/JaimeStill/agent-lab-client/internal/catalog"
	"github.com/JaimeStill/agent-lab-client/internal/config"
	"github.com/JaimeStill/agent-lab-client/internal/infrastructure"
	"github.com/JaimeStill/agent-lab-client/pkg/handlers"
	"github.com/JaimeStill/agent-lab-client/pkg/routes"
)

func registerRoutes(
	r routes.System,
	infra *infrastructure.Infrastructure,
	domain *Domain,
	cfg *config.Config,
) {
	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: cfg.Server.BasePath + "/routes",
		Handler: handleRouteIndex(r),
	})

	catalogHandler := catalog.NewHandler(domain.Catalog, infra.Logger)
	r.RegisterGroup(catalogHandler.Routes(cfg.Server.BasePath))
}

// handleRouteIndex lists the gateway's routes.
func handleRouteIndex(r routes.System) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, r.Entries())
	}
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
