// Package api assembles the gateway's HTTP handler from the domain systems.
package api

import (
	"net/http"

	"github.com/JaimeStill/agent-lab-client/internal/config"
	"github.com/JaimeStill/agent-lab-client/internal/infrastructure"
	"github.com/JaimeStill/agent-lab-client/internal/routes"
	"github.com/JaimeStill/agent-lab-client/pkg/middleware"
)

// NewHandler builds the routed and middleware-wrapped gateway handler.
func NewHandler(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	domain *Domain,
) http.Handler {
	routeSys := routes.New(infra.Logger)
	registerRoutes(routeSys, infra, domain, cfg)

	mw := middleware.New()
	mw.Use(middleware.TrimSlash())
	mw.Use(middleware.CORS(&cfg.CORS))
	mw.Use(middleware.Logger(infra.Logger.With("system", "http")))

	return mw.Apply(routeSys.Build())
}
