package providers

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

// New creates a providers system backed by the remote service.
func New(client transport.Client, paths endpoints.Endpoints, logger *slog.Logger) System {
	return &repository{
		http:   client,
		paths:  paths,
		logger: logger.With("system", "provider"),
	}
}

func (r *repository) List(ctx context.Context) ([]Provider, error) {
	raw, err := r.http.Get(ctx, r.paths.Providers)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	out := normalize.Collection(raw, hint)
	if out.Shape == normalize.Empty {
		r.logger.Warn("unrecognized providers response", "shape", normalize.Describe(raw))
	}

	providers := make([]Provider, 0, len(out.Items))
	for _, item := range out.Items {
		if !item.IsObject() {
			continue
		}
		providers = append(providers, decode(item))
	}
	return providers, nil
}

func (r *repository) Find(ctx context.Context, id string) (*Provider, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}

	raw, err := r.http.Get(ctx, r.paths.Provider(id))
	if err != nil {
		var te *transport.Error
		if errors.As(err, &te) && te.NotFound() {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("find provider: %w", err)
	}

	out, err := normalize.Entity(raw, hint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	p := decode(out.Value)
	return &p, nil
}

func (r *repository) Create(ctx context.Context, cmd CreateCommand) (*Provider, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrNameRequired
	}

	body, err := createPayload(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode provider: %w", err)
	}

	raw, err := r.http.Post(ctx, r.paths.Providers, body)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	p := r.written(raw, body, "")
	r.logger.Info("provider created", "id", p.ID, "name", p.Name, "type", p.Type)
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id string, cmd UpdateCommand) (*Provider, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}

	body, err := updatePayload(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode provider: %w", err)
	}

	raw, err := r.http.Put(ctx, r.paths.Provider(id), body)
	if err != nil {
		return nil, fmt.Errorf("update provider: %w", err)
	}

	p := r.written(raw, body, id)
	r.logger.Info("provider updated", "id", p.ID, "name", p.Name)
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}

	if err := r.http.Delete(ctx, r.paths.Provider(id)); err != nil {
		return fmt.Errorf("delete provider: %w", err)
	}

	r.logger.Info("provider deleted", "id", id)
	return nil
}

// written resolves the entity from a write response, falling back to the
// request body when the response carries no recognizable provider.
func (r *repository) written(raw, body []byte, id string) Provider {
	out := normalize.WriteResult(raw, body, hint)
	if out.Shape == normalize.Synthesized {
		r.logger.Warn("provider synthesized from request", "shape", normalize.Describe(raw))
	}

	p := decode(out.Value)
	if p.ID == "" {
		p.ID = id
	}
	return p
}
