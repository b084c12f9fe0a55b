package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopcore/admin-service/internal/repository"
	"github.com/shopcore/admin-service/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeBadRequest renders request-parsing failures on the same JSON error
// surface as workflow errors.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// writeError maps workflow errors onto HTTP statuses and renders them as a
// one-line JSON body, the notification surface of the admin UI.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrAccountInactive):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPurchaseIncomplete):
		status = http.StatusBadGateway
	case errors.Is(err, repository.ErrRequestFailed):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
