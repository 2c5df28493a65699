package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pratico/internal/emoluments"
	"pratico/internal/platform/middleware"
	dErrors "pratico/pkg/domain-errors"
	"pratico/pkg/platform/httputil"
)

// Service is the emoluments surface the handler needs.
type Service interface {
	DeedCost(ctx context.Context, uf string, propertyValue float64) (emoluments.DeedCost, error)
	DeedEconomy(ctx context.Context, baseUF string, propertyValue float64) (emoluments.Economy, error)
	UpsertTable(ctx context.Context, table *emoluments.Table) (*emoluments.Table, error)
	ActivateTable(ctx context.Context, id string) error
	ListTables(ctx context.Context) ([]*emoluments.Table, error)
}

// Handler exposes the fee-table lookups publicly and the table management
// endpoints behind admin auth.
type Handler struct {
	service   Service
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func New(service Service, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, validator: validator, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/emolumentos/escritura", h.handleDeedCost)
	r.Get("/emolumentos/economia", h.handleDeedEconomy)

	r.Route("/admin/emolumentos", func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin(h.validator, h.logger))
		admin.Get("/tabelas", h.handleListTables)
		admin.Put("/tabelas", h.handleUpsertTable)
		admin.Post("/tabelas/{id}/ativar", h.handleActivateTable)
	})
}

func (h *Handler) handleDeedCost(w http.ResponseWriter, r *http.Request) {
	uf, value, err := lookupParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cost, err := h.service.DeedCost(r.Context(), uf, value)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cost)
}

func (h *Handler) handleDeedEconomy(w http.ResponseWriter, r *http.Request) {
	uf, value, err := lookupParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	economy, err := h.service.DeedEconomy(r.Context(), uf, value)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, economy)
}

func lookupParams(r *http.Request) (string, float64, error) {
	uf := r.URL.Query().Get("uf")
	if uf == "" {
		return "", 0, dErrors.New(dErrors.CodeBadRequest, "query parameter uf is required")
	}
	raw := r.URL.Query().Get("valor")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, dErrors.New(dErrors.CodeBadRequest, "query parameter valor must be a number")
	}
	return uf, value, nil
}

func (h *Handler) handleListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.ListTables(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tables": tables})
}

func (h *Handler) handleUpsertTable(w http.ResponseWriter, r *http.Request) {
	var table emoluments.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	saved, err := h.service.UpsertTable(r.Context(), &table)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to save fee table",
			"error", err.Error(),
			"uf", table.UF,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to save fee table"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleActivateTable(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ActivateTable(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
