package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mealwise/core/internal/ports/inbound"
	"github.com/mealwise/core/pkg/errors"
	"go.uber.org/zap"
)

// CatalogHandlers serves the read-only recipe catalog
type CatalogHandlers struct {
	catalog inbound.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandlers creates catalog handlers
func NewCatalogHandlers(catalog inbound.CatalogService, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog, logger: logger.Named("catalog-handlers")}
}

// Search handles GET /api/v1/recipes?q=&context=
func (h *CatalogHandlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sc := inbound.ParseSearchContext(query.Get("context"))
	writeJSON(w, http.StatusOK, list(h.catalog.Search(query.Get("q"), sc)))
}

// MainMeals handles GET /api/v1/recipes/meals
func (h *CatalogHandlers) MainMeals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, list(h.catalog.MainMeals()))
}

// Snacks handles GET /api/v1/recipes/snacks
func (h *CatalogHandlers) Snacks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, list(h.catalog.Snacks()))
}

// Get handles GET /api/v1/recipes/{id}
func (h *CatalogHandlers) Get(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")
	rec, found := h.catalog.Lookup(ref)
	if !found {
		writeError(w, r, h.logger, errors.NewRecipeNotFoundError(ref))
		return
	}
	writeJSON(w, http.StatusOK, ok(rec))
}
