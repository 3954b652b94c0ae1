package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BaderVance/BucketListify/internal/repository"
	"github.com/BaderVance/BucketListify/internal/service"
	"github.com/BaderVance/BucketListify/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondServiceError maps the service error taxonomy onto status codes:
// not found 404, forbidden 403, validation 422, anything else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error

	switch {
	case errors.Is(err, repository.ErrGoalNotFound):
		respondError(w, http.StatusNotFound, "Goal not found")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "Not authorized for this goal")
	case errors.As(err, &verr):
		respondError(w, http.StatusUnprocessableEntity, verr.Error())
	default:
		slog.Error("unhandled service error", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
