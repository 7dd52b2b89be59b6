package handlers

import (
	"net/http"
	"time"

	"github.com/mealwise/core/internal/ports/inbound"
)

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Recipes   int    `json:"recipes"`
	Timestamp int64  `json:"timestamp"`
}

// Health returns the liveness handler
func Health(service, version string, catalog inbound.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:    "healthy",
			Service:   service,
			Version:   version,
			Recipes:   catalog.Count(),
			Timestamp: time.Now().Unix(),
		})
	}
}
