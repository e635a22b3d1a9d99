package config

import (
	"os"

	"github.com/JaimeStill/agent-lab-client/internal/endpoints"
	"github.com/JaimeStill/agent-lab-client/pkg/transport"
)

// EnvClientAPIVersion overrides the remote API version.
const EnvClientAPIVersion = "CLIENT_API_VERSION"

var transportEnv = &transport.Env{
	BaseURL:         "CLIENT_BASE_URL",
	Timeout:         "CLIENT_TIMEOUT",
	Token:           "CLIENT_TOKEN",
	MaxResponseSize: "CLIENT_MAX_RESPONSE_SIZE",
}

// ClientConfig describes how to reach the remote catalog service.
type ClientConfig struct {
	transport.Config
	APIVersion endpoints.Version `toml:"api_version"`
}

// Endpoints returns the resource paths for the configured API version.
func (c *ClientConfig) Endpoints() (endpoints.Endpoints, error) {
	return endpoints.For(c.APIVersion)
}

func (c *ClientConfig) Finalize() error {
	if c.APIVersion == "" {
		c.APIVersion = endpoints.V1
	}
	if v := os.Getenv(EnvClientAPIVersion); v != "" {
		c.APIVersion = endpoints.Version(v)
	}
	if err := c.APIVersion.Validate(); err != nil {
		return err
	}
	return c.Config.Finalize(transportEnv)
}

func (c *ClientConfig) Merge(overlay *ClientConfig) {
	if overlay.APIVersion != "" {
		c.APIVersion = overlay.APIVersion
	}
	c.Config.Merge(&overlay.Config)
}

// Override applies command-line values over a finalized ClientConfig and
// validates the result. Empty values are ignored.
func (c *ClientConfig) Override(baseURL, apiVersion string) error {
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	if apiVersion != "" {
		c.APIVersion = endpoints.Version(apiVersion)
	}
	if err := c.APIVersion.Validate(); err != nil {
		return err
	}
	return c.Config.Finalize(nil)
}
