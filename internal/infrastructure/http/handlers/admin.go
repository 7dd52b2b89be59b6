package handlers

import (
	"net/http"

	"github.com/mealwise/core/internal/ports/inbound"
	"github.com/mealwise/core/pkg/errors"
	"go.uber.org/zap"
)

// AdminHandlers exposes operator actions
type AdminHandlers struct {
	catalog inbound.CatalogService
	logger  *zap.Logger
}

// NewAdminHandlers creates admin handlers
func NewAdminHandlers(catalog inbound.CatalogService, logger *zap.Logger) *AdminHandlers {
	return &AdminHandlers{catalog: catalog, logger: logger.Named("admin-handlers")}
}

// ReloadCatalog handles POST /api/v1/admin/catalog/reload
func (h *AdminHandlers) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Initialize(r.Context()); err != nil {
		writeError(w, r, h.logger, errors.NewServiceUnavailableError("recipe catalog source", err))
		return
	}

	count := h.catalog.Count()
	h.logger.Info("Catalog reloaded on request", zap.Int("recipes", count))
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]int{"recipes": count},
		Message: "Catalog reloaded",
	})
}
