package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/agent-lab-client/internal/evaluations"
	"github.com/JaimeStill/agent-lab-client/internal/models"
	"github.com/JaimeStill/agent-lab-client/internal/providers"
	"github.com/JaimeStill/agent-lab-client/pkg/handlers"
	"github.com/JaimeStill/agent-lab-client/pkg/routes"
)

// Handler exposes the cached catalog over HTTP.
type Handler struct {
	catalog *Catalog
	logger  *slog.Logger
}

func NewHandler(catalog *Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger.With("system", "catalog-handler"),
	}
}

// Routes returns the route groups served by the gateway, relative to basePath.
func (h *Handler) Routes(basePath string) routes.Group {
	return routes.Group{
		Prefix:      basePath,
		Description: "Cached provider and model catalog",
		Children: []routes.Group{
			{
				Prefix:      "/providers",
				Description: "Provider access",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListProviders},
					{Method: "POST", Pattern: "", Handler: h.CreateProvider},
					{Method: "GET", Pattern: "/{id}", Handler: h.GetProvider},
					{Method: "PUT", Pattern: "/{id}", Handler: h.UpdateProvider},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.DeleteProvider},
					{Method: "GET", Pattern: "/{id}/models", Handler: h.ListProviderModels},
				},
			},
			{
				Prefix:      "/models",
				Description: "Model access",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListModels},
					{Method: "POST", Pattern: "", Handler: h.CreateModel},
					{Method: "GET", Pattern: "/{id}", Handler: h.GetModel},
					{Method: "PUT", Pattern: "/{id}", Handler: h.UpdateModel},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.DeleteModel},
				},
			},
			{
				Prefix:      "/evaluations",
				Description: "Evaluation execution",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/run", Handler: h.RunEvaluation},
				},
			},
			{
				Prefix:      "/cache",
				Description: "Cache control",
				Routes: []routes.Route{
					{Method: "DELETE", Pattern: "", Handler: h.ResetCache},
				},
			},
		},
	}
}

func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Providers(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, providers.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Provider(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, providers.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var cmd providers.CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.catalog.CreateProvider(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, providers.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	var cmd providers.UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.catalog.UpdateProvider(r.Context(), r.PathValue("id"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, providers.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteProvider(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProvider(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, providers.MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListProviderModels(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.ProviderModels(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, models.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Models(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, models.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Model(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, models.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateModel(w http.ResponseWriter, r *http.Request) {
	var cmd models.CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.catalog.CreateModel(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, models.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) UpdateModel(w http.ResponseWriter, r *http.Request) {
	var cmd models.UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.catalog.UpdateModel(r.Context(), r.PathValue("id"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, models.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteModel(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, models.MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RunEvaluation(w http.ResponseWriter, r *http.Request) {
	body, err := handlers.ReadBody(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.catalog.RunEvaluation(r.Context(), json.RawMessage(body))
	if err != nil {
		handlers.RespondError(w, h.logger, evaluations.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondRaw(w, http.StatusOK, result)
}

func (h *Handler) ResetCache(w http.ResponseWriter, r *http.Request) {
	h.catalog.Reset()
	w.WriteHeader(http.StatusNoContent)
}
