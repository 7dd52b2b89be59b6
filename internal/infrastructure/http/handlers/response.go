// Package handlers provides HTTP handlers for the JSON API
package handlers

import (
	"net/http"

	"github.com/mealwise/core/internal/infrastructure/http/middleware"
	"github.com/mealwise/core/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func list[T any](items []T) APIResponse {
	n := len(items)
	return APIResponse{Success: true, Data: items, Count: &n}
}

// writeError logs server-side failures before rendering the error envelope
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	code := errors.GetCode(err)
	if status := (&errors.AppError{Code: code}).StatusCode(); status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}
	middleware.WriteError(w, r, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	middleware.WriteJSON(w, status, v)
}
