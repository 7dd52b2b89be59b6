package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/mealwise/core/internal/domain/profile"
	"github.com/mealwise/core/internal/infrastructure/security"
	"github.com/mealwise/core/internal/ports/inbound"
	"github.com/mealwise/core/pkg/errors"
	"go.uber.org/zap"
)

// ProfileHandlers serves the authenticated user's profile
type ProfileHandlers struct {
	profiles inbound.ProfileService
	logger   *zap.Logger
}

// NewProfileHandlers creates profile handlers
func NewProfileHandlers(profiles inbound.ProfileService, logger *zap.Logger) *ProfileHandlers {
	return &ProfileHandlers{profiles: profiles, logger: logger.Named("profile-handlers")}
}

// Get handles GET /api/v1/profile
func (h *ProfileHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, okUser := h.userID(w, r)
	if !okUser {
		return
	}

	doc, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(doc))
}

// Update handles PATCH /api/v1/profile
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, okUser := h.userID(w, r)
	if !okUser {
		return
	}

	patch, err := decodePatch(r.Body)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	doc, err := h.profiles.Update(r.Context(), userID, patch)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(doc))
}

// Reset handles DELETE /api/v1/profile
func (h *ProfileHandlers) Reset(w http.ResponseWriter, r *http.Request) {
	userID, okUser := h.userID(w, r)
	if !okUser {
		return
	}

	doc, err := h.profiles.Reset(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(doc))
}

// Defaults handles GET /api/v1/profile/defaults
func (h *ProfileHandlers) Defaults(w http.ResponseWriter, r *http.Request) {
	userID, okUser := h.userID(w, r)
	if !okUser {
		return
	}
	writeJSON(w, http.StatusOK, ok(h.profiles.Defaults(userID)))
}

// Targets handles GET /api/v1/profile/targets
func (h *ProfileHandlers) Targets(w http.ResponseWriter, r *http.Request) {
	userID, okUser := h.userID(w, r)
	if !okUser {
		return
	}

	targets, err := h.profiles.Targets(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(targets))
}

func (h *ProfileHandlers) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, found := security.PrincipalFrom(r.Context())
	if !found || principal.UserID == "" {
		writeError(w, r, h.logger, errors.NewUnauthorizedError(""))
		return "", false
	}
	return principal.UserID, true
}

// decodePatch reads a single JSON object from body
func decodePatch(body io.Reader) (profile.Document, error) {
	var patch profile.Document
	dec := json.NewDecoder(body)
	if err := dec.Decode(&patch); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.NewBadRequestError("Request body too large")
		}
		return nil, errors.NewBadRequestError("Request body must be a JSON object").WithCause(err)
	}
	if patch == nil {
		return nil, errors.NewBadRequestError("Request body must be a JSON object")
	}
	if dec.More() {
		return nil, errors.NewBadRequestError("Request body must contain a single JSON object")
	}
	return patch, nil
}
