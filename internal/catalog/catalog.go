// Package catalog serves provider and model views from a dependency-aware
// cache. Reads are cached per view; successful writes invalidate the written
// view and every view that depends on it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/JaimeStill/agent-lab-client/internal/evaluations"
	"github.com/JaimeStill/agent-lab-client/internal/models"
	"github.com/JaimeStill/agent-lab-client/internal/providers"
	"github.com/JaimeStill/agent-lab-client/pkg/cachegraph"
)

// Catalog is the cached access point used by CLI and gateway code.
type Catalog struct {
	providers   providers.System
	models      models.System
	evaluations evaluations.System
	graph       *cachegraph.Graph
	logger      *slog.Logger
}

// New creates a Catalog over the given systems. graph should be built
// with Edges.
func New(
	providersSys providers.System,
	modelsSys models.System,
	evaluationsSys evaluations.System,
	graph *cachegraph.Graph,
	logger *slog.Logger,
) *Catalog {
	return &Catalog{
		providers:   providersSys,
		models:      modelsSys,
		evaluations: evaluationsSys,
		graph:       graph,
		logger:      logger.With("system", "catalog"),
	}
}

func (c *Catalog) Providers(ctx context.Context) ([]providers.Provider, error) {
	list, err := cachegraph.Load(ctx, c.graph, ProvidersKey, c.providers.List)
	return slices.Clone(list), err
}

func (c *Catalog) Provider(ctx context.Context, id string) (*providers.Provider, error) {
	if id == "" {
		return nil, providers.ErrIDRequired
	}
	p, err := cachegraph.Load(ctx, c.graph, ProviderKey(id), func(ctx context.Context) (*providers.Provider, error) {
		return c.providers.Find(ctx, id)
	})
	return clone(p), err
}

func (c *Catalog) CreateProvider(ctx context.Context, cmd providers.CreateCommand) (*providers.Provider, error) {
	p, err := c.providers.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}

	keys := []cachegraph.Key{ProvidersKey}
	if p.ID != "" {
		keys = append(keys, ProviderKey(p.ID))
	}
	c.graph.Invalidate(keys...)
	return p, nil
}

func (c *Catalog) UpdateProvider(ctx context.Context, id string, cmd providers.UpdateCommand) (*providers.Provider, error) {
	p, err := c.providers.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	c.graph.Invalidate(ProviderKey(id), ProvidersKey)
	return p, nil
}

// DeleteProvider removes a provider and stales every cached view of it and
// of the models it owned.
func (c *Catalog) DeleteProvider(ctx context.Context, id string) error {
	if err := c.providers.Delete(ctx, id); err != nil {
		return err
	}

	keys := []cachegraph.Key{ProviderKey(id), ProvidersKey, ProviderModelsKey(id), ModelsKey}
	for _, mid := range c.cachedModelIDs(id) {
		keys = append(keys, ModelKey(mid))
	}
	c.graph.Invalidate(keys...)
	return nil
}

func (c *Catalog) Models(ctx context.Context) ([]models.Model, error) {
	list, err := cachegraph.Load(ctx, c.graph, ModelsKey, c.models.List)
	return slices.Clone(list), err
}

func (c *Catalog) ProviderModels(ctx context.Context, providerID string) ([]models.Model, error) {
	if providerID == "" {
		return nil, models.ErrProviderRequired
	}
	list, err := cachegraph.Load(ctx, c.graph, ProviderModelsKey(providerID), func(ctx context.Context) ([]models.Model, error) {
		return c.models.ListByProvider(ctx, providerID)
	})
	return slices.Clone(list), err
}

func (c *Catalog) Model(ctx context.Context, id string) (*models.Model, error) {
	if id == "" {
		return nil, models.ErrIDRequired
	}
	m, err := cachegraph.Load(ctx, c.graph, ModelKey(id), func(ctx context.Context) (*models.Model, error) {
		return c.models.Find(ctx, id)
	})
	return clone(m), err
}

func (c *Catalog) CreateModel(ctx context.Context, cmd models.CreateCommand) (*models.Model, error) {
	m, err := c.models.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}

	keys := []cachegraph.Key{ModelsKey, ProviderModelsKey(cmd.ProviderID)}
	if m.ID != "" {
		keys = append(keys, ModelKey(m.ID))
	}
	if m.ProviderID != "" && m.ProviderID != cmd.ProviderID {
		keys = append(keys, ProviderModelsKey(m.ProviderID))
	}
	c.graph.Invalidate(keys...)
	return m, nil
}

// UpdateModel changes a model. When the model moves between providers both
// providers' model views are staled.
func (c *Catalog) UpdateModel(ctx context.Context, id string, cmd models.UpdateCommand) (*models.Model, error) {
	previous := c.cachedProviderOf(id)

	m, err := c.models.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	keys := []cachegraph.Key{ModelKey(id), ModelsKey}
	for _, pid := range []string{previous, m.ProviderID} {
		if pid != "" {
			keys = append(keys, ProviderModelsKey(pid))
		}
	}
	if cmd.ProviderID != nil && *cmd.ProviderID != "" {
		keys = append(keys, ProviderModelsKey(*cmd.ProviderID))
	}
	c.graph.Invalidate(keys...)
	return m, nil
}

func (c *Catalog) DeleteModel(ctx context.Context, id string) error {
	previous := c.cachedProviderOf(id)

	if err := c.models.Delete(ctx, id); err != nil {
		return err
	}

	keys := []cachegraph.Key{ModelKey(id), ModelsKey}
	if previous != "" {
		keys = append(keys, ProviderModelsKey(previous))
	}
	c.graph.Invalidate(keys...)
	return nil
}

// RunEvaluation forwards request without caching.
func (c *Catalog) RunEvaluation(ctx context.Context, request json.RawMessage) (json.RawMessage, error) {
	return c.evaluations.Run(ctx, request)
}

// Invalidate stales keys and their dependents.
func (c *Catalog) Invalidate(keys ...cachegraph.Key) []cachegraph.Key {
	return c.graph.Invalidate(keys...)
}

// Refresh stales both list views and everything derived from them, then
// reloads the lists.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.graph.Invalidate(ProvidersKey, ModelsKey)

	if _, err := c.Providers(ctx); err != nil {
		return fmt.Errorf("refresh providers: %w", err)
	}
	if _, err := c.Models(ctx); err != nil {
		return fmt.Errorf("refresh models: %w", err)
	}
	return nil
}

// Stale reports whether the next read of key will fetch.
func (c *Catalog) Stale(key cachegraph.Key) bool {
	return c.graph.Stale(key)
}

// Reset drops every cached view.
func (c *Catalog) Reset() {
	c.graph.Reset()
	c.logger.Info("cache reset")
}

// cachedModelIDs collects ids of cached models owned by providerID.
func (c *Catalog) cachedModelIDs(providerID string) []string {
	ids := make([]string, 0)
	seen := make(map[string]bool)
	add := func(m models.Model) {
		if m.ID != "" && m.ProviderID == providerID && !seen[m.ID] {
			seen[m.ID] = true
			ids = append(ids, m.ID)
		}
	}

	if v, ok := c.graph.Peek(ProviderModelsKey(providerID)); ok {
		if list, ok := v.([]models.Model); ok {
			for _, m := range list {
				add(m)
			}
		}
	}
	if v, ok := c.graph.Peek(ModelsKey); ok {
		if list, ok := v.([]models.Model); ok {
			for _, m := range list {
				add(m)
			}
		}
	}
	c.graph.Range("models/*", func(_ cachegraph.Key, v any) {
		if m, ok := v.(*models.Model); ok && m != nil {
			add(*m)
		}
	})
	return ids
}

// cachedProviderOf returns the provider id last seen for a model, or "".
func (c *Catalog) cachedProviderOf(id string) string {
	if v, ok := c.graph.Peek(ModelKey(id)); ok {
		if m, ok := v.(*models.Model); ok && m != nil {
			return m.ProviderID
		}
	}
	if v, ok := c.graph.Peek(ModelsKey); ok {
		if list, ok := v.([]models.Model); ok {
			for _, m := range list {
				if m.ID == id {
					return m.ProviderID
				}
			}
		}
	}
	return ""
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
