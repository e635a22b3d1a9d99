package models

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/agent-lab-client/internal/endpoints"
	"github.com/JaimeStill/agent-lab-client/pkg/normalize"
	"github.com/JaimeStill/agent-lab-client/pkg/transport"
)

type repository struct {
	http   transport.Client
	paths  endpoints.Endpoints
	logger *slog.Logger
}

// New creates a models system backed by the remote service.
func New(client transport.Client, paths endpoints.Endpoints, logger *slog.Logger) System {
	return &repository{
		http:   client,
		paths:  paths,
		logger: logger.With("system", "model"),
	}
}

func (r *repository) List(ctx context.Context) ([]Model, error) {
	raw, err := r.http.Get(ctx, r.paths.Models)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return r.collect(raw, ""), nil
}

func (r *repository) ListByProvider(ctx context.Context, providerID string) ([]Model, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, ErrProviderRequired
	}

	raw, err := r.http.Get(ctx, r.paths.ProviderModels(providerID))
	if err != nil {
		return nil, fmt.Errorf("list provider models: %w", err)
	}
	return r.collect(raw, providerID), nil
}

func (r *repository) Find(ctx context.Context, id string) (*Model, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}

	raw, err := r.http.Get(ctx, r.paths.Model(id))
	if err != nil {
		var te *transport.Error
		if errors.As(err, &te) && te.NotFound() {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("find model: %w", err)
	}

	out, err := normalize.Entity(raw, hint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	m := decode(out.Value)
	return &m, nil
}

func (r *repository) Create(ctx context.Context, cmd CreateCommand) (*Model, error) {
	if strings.TrimSpace(cmd.ProviderID) == "" {
		return nil, ErrProviderRequired
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrNameRequired
	}

	body, err := createPayload(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}

	raw, err := r.http.Post(ctx, r.paths.Models, body)
	if err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}

	m := r.written(raw, body, "")
	r.logger.Info("model created", "id", m.ID, "name", m.Name, "provider_id", m.ProviderID)
	return &m, nil
}

func (r *repository) Update(ctx context.Context, id string, cmd UpdateCommand) (*Model, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}

	body, err := updatePayload(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}

	raw, err := r.http.Put(ctx, r.paths.Model(id), body)
	if err != nil {
		return nil, fmt.Errorf("update model: %w", err)
	}

	m := r.written(raw, body, id)
	r.logger.Info("model updated", "id", m.ID, "name", m.Name)
	return &m, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}

	if err := r.http.Delete(ctx, r.paths.Model(id)); err != nil {
		return fmt.Errorf("delete model: %w", err)
	}

	r.logger.Info("model deleted", "id", id)
	return nil
}

// collect normalizes a list response. When providerID is set, members
// without a provider adopt it and members of another provider are dropped.
func (r *repository) collect(raw []byte, providerID string) []Model {
	out := normalize.Collection(raw, hint)
	if out.Shape == normalize.Empty {
		r.logger.Warn("unrecognized models response", "shape", normalize.Describe(raw), "provider_id", providerID)
	}

	models := make([]Model, 0, len(out.Items))
	for _, item := range out.Items {
		if !item.IsObject() {
			continue
		}
		m := decode(item)
		if providerID != "" {
			if m.ProviderID == "" {
				m.ProviderID = providerID
			} else if m.ProviderID != providerID {
				r.logger.Warn("dropping model of another provider", "id", m.ID, "provider_id", m.ProviderID, "want", providerID)
				continue
			}
		}
		models = append(models, m)
	}
	return models
}

func (r *repository) written(raw, body []byte, id string) Model {
	out := normalize.WriteResult(raw, body, hint)
	if out.Shape == normalize.Synthesized {
		r.logger.Warn("model synthesized from request", "shape", normalize.Describe(raw))
	}

	m := decode(out.Value)
	if m.ID == "" {
		m.ID = id
	}
	return m
}
