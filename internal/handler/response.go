package handler

// RESPONSE HELPERS:
// These standardise how handlers send JSON and errors. Every error response
// has the same shape:
//
//	{"error": "not_found", "message": "goober not found with id 7"}
//
// so the display firmware can parse failures without caring which endpoint
// produced them.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/goober-garden/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write — hence the fixed order here.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status code and sends it.
//
// STATUS MAPPING:
//   - validation  → 400 (missing/bad request fields)
//   - conflict    → 400 (duplicate registration; the pre-rewrite backend
//     answered 400 here and the frontend depends on it, so no 409)
//   - not found   → 404 (unknown token/goober, no active session)
//   - exhausted   → 404 (no fresh fingerprint to hand out)
//   - empty       → 404 (catalog has no events to draw)
//   - anything else → 500 with a generic message; raw errors may contain
//     SQL or paths and never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
			errorType = "conflict"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrExhausted):
			status = http.StatusNotFound
			errorType = "exhausted"
		case errors.Is(err, apperror.ErrEmpty):
			status = http.StatusNotFound
			errorType = "empty"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
