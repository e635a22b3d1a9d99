package main

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/agent-lab-client/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Lifecycle(t *testing.T) {
	t.Setenv(config.EnvServiceEnv, "")
	t.Setenv("LOGGING_OUTPUT", "stderr")
	t.Setenv("LOGGING_LEVEL", "error")

	cfg := &config.Config{}
	require.NoError(t, cfg.Finalize())
	cfg.Server.Port = 0

	svc, err := NewService(cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Start())

	resp, err := http.Get("http://" + svc.server.Addr() + "/healthz")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, svc.Shutdown(ctx))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	assert.NoError(t, loadEnvFile(""))
	assert.NoError(t, loadEnvFile(t.TempDir()+"/absent.env"))
}
