package main

import (
	"fmt"
	"io"
	"os"

	"github.com/JaimeStill/agent-lab-client/internal/api"
	"github.com/JaimeStill/agent-lab-client/internal/catalog"
	"github.com/JaimeStill/agent-lab-client/internal/config"
	"github.com/JaimeStill/agent-lab-client/internal/infrastructure"
	"github.com/JaimeStill/agent-lab-client/pkg/logging"
	"github.com/joho/godotenv"
)

type options struct {
	configPath string
	envFile    string
	baseURL    string
	apiVersion string
	output     string
}

// app carries the state shared by every subcommand once the root command has
// resolved configuration.
type app struct {
	out     io.Writer
	errOut  io.Writer
	format  format
	catalog *catalog.Catalog
}

func (a *app) init(opts *options) error {
	f := format(opts.output)
	if err := f.Validate(); err != nil {
		return err
	}
	a.format = f

	if err := loadEnvFile(opts.envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("finalize config: %w", err)
	}

	if err := cfg.Client.Override(opts.baseURL, opts.apiVersion); err != nil {
		return fmt.Errorf("client flags: %w", err)
	}

	// Command output owns stdout.
	logOut := logging.Writer(&cfg.Logging)
	if logOut == os.Stdout {
		logOut = a.errOut
	}
	logger := logging.NewWithWriter(&cfg.Logging, logOut)

	infra, err := infrastructure.NewWithLogger(cfg, logger)
	if err != nil {
		return err
	}
	a.catalog = api.NewDomain(infra).Catalog
	return nil
}

func (a *app) print(v any) error {
	return render(a.out, a.format, v)
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}
