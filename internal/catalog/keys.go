package catalog

import (
	"net/url"

	"github.com/JaimeStill/agent-lab-client/pkg/cachegraph"
)

// Fixed cache keys.
const (
	ProvidersKey cachegraph.Key = "providers"
	ModelsKey    cachegraph.Key = "models"
)

// ProviderKey identifies the cached view of one provider.
func ProviderKey(id string) cachegraph.Key {
	return cachegraph.Join("providers", url.PathEscape(id))
}

// ProviderModelsKey identifies the cached models of one provider.
func ProviderModelsKey(id string) cachegraph.Key {
	return cachegraph.Join("providers", url.PathEscape(id), "models")
}

// ModelKey identifies the cached view of one model.
func ModelKey(id string) cachegraph.Key {
	return cachegraph.Join("models", url.PathEscape(id))
}

// Edges declares which cached views go stale when another view changes.
// A provider's model list depends on both the provider and model views.
var Edges = []cachegraph.Edge{
	{From: "providers/{id}", To: "providers"},
	{From: "providers/{id}", To: "providers/{id}/models"},
	{From: "providers", To: "providers/*/models"},
	{From: "models/{id}", To: "models"},
	{From: "models", To: "providers/*/models"},
}
