package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteAppError maps the shared error taxonomy onto client-facing statuses.
// Store and unexpected errors stay opaque to the client.
func WriteAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation_failed", err.Error(), nil)
	case errors.Is(err, apperr.ErrInvalidToken), errors.Is(err, apperr.ErrDecryption):
		WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token", nil)
	case errors.Is(err, apperr.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "user not authorized", nil)
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "resource not found", nil)
	case errors.Is(err, apperr.ErrStoreUnavailable):
		WriteError(w, http.StatusInternalServerError, "store_unavailable", "store unavailable", nil)
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
