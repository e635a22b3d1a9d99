// Package endpoints resolves the remote service's resource paths for a
// configured API version.
package endpoints

import (
	"fmt"
	"net/url"
)

// Version selects a generation of the remote API.
type Version string

const (
	V1     Version = "v1"
	Legacy Version = "legacy"
)

// Validate checks if the version is known.
func (v Version) Validate() error {
	switch v {
	case V1, Legacy:
		return nil
	default:
		return fmt.Errorf("invalid api version: %s (must be v1 or legacy)", v)
	}
}

// Endpoints holds the collection paths for one API version.
type Endpoints struct {
	Providers   string
	Models      string
	Evaluations string
}

// For returns the paths served by version v.
func For(v Version) (Endpoints, error) {
	switch v {
	case V1:
		return Endpoints{
			Providers:   "/api/v1/providers",
			Models:      "/api/v1/models",
			Evaluations: "/api/v1/evaluations/run",
		}, nil
	case Legacy:
		return Endpoints{
			Providers:   "/api/providers",
			Models:      "/api/models",
			Evaluations: "/api/evaluation/run",
		}, nil
	default:
		return Endpoints{}, v.Validate()
	}
}

func (e Endpoints) Provider(id string) string {
	return e.Providers + "/" + url.PathEscape(id)
}

func (e Endpoints) ProviderModels(id string) string {
	return e.Provider(id) + "/models"
}

func (e Endpoints) Model(id string) string {
	return e.Models + "/" + url.PathEscape(id)
}
