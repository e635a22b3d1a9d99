package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaimeStill/agent-lab-client/internal/api"
	"github.com/JaimeStill/agent-lab-client/internal/config"
	"github.com/JaimeStill/agent-lab-client/internal/infrastructure"
	"github.com/JaimeStill/agent-lab-client/internal/server"
)

// Service coordinates the lifecycle of the gateway subsystems.
type Service struct {
	ctx        context.Context
	cancel     context.CancelFunc
	shutdownWg sync.WaitGroup

	logger *slog.Logger
	server server.System
}

// NewService creates and initializes the gateway with all subsystems.
func NewService(cfg *config.Config) (*Service, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("infrastructure init failed: %w", err)
	}

	domain := api.NewDomain(infra)
	handler := api.NewHandler(cfg, infra, domain)

	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		ctx:    ctx,
		cancel: cancel,
		logger: infra.Logger,
		server: server.New(&cfg.Server, handler, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns when they are ready.
func (s *Service) Start() error {
	s.logger.Info("starting service")

	if err := s.server.Start(s.ctx, &s.shutdownWg); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	s.logger.Info("service started", "addr", s.server.Addr())
	return nil
}

// Shutdown gracefully stops all subsystems within the provided context deadline.
func (s *Service) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating shutdown")

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("all subsystems shut down successfully")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
