// Package infrastructure assembles the shared dependencies every entry point
// needs before building domain systems: logging, the remote transport, the
// resolved endpoint paths, and the view cache.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/agent-lab-client/internal/catalog"
	"github.com/JaimeStill/agent-lab-client/internal/config"
	"github.com/JaimeStill/agent-lab-client/internal/endpoints"
	"github.com/JaimeStill/agent-lab-client/pkg/cachegraph"
	"github.com/JaimeStill/agent-lab-client/pkg/logging"
	"github.com/JaimeStill/agent-lab-client/pkg/transport"
)

// Infrastructure holds the core systems required by the domain systems.
type Infrastructure struct {
	Logger    *slog.Logger
	Transport transport.Client
	Endpoints endpoints.Endpoints
	Graph     *cachegraph.Graph
}

// New creates an Infrastructure from a finalized configuration.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, logging.New(&cfg.Logging))
}

// NewWithLogger creates an Infrastructure that logs through logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	paths, err := cfg.Client.Endpoints()
	if err != nil {
		return nil, fmt.Errorf("endpoints init failed: %w", err)
	}

	return &Infrastructure{
		Logger:    logger,
		Transport: transport.New(&cfg.Client.Config, logger),
		Endpoints: paths,
		Graph:     cachegraph.New(catalog.Edges, &cfg.Cache, logger),
	}, nil
}
