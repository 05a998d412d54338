// Package handler is the HTTP edge: it decodes requests, calls
// services, and encodes responses. No business rule lives here — a
// handler that does more than translate is a handler doing the
// service's job.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"assistor/internal/apperror"
)

// ErrorResponse is the error body returned by every endpoint.
// Fields is present only on validation failures: field name → messages,
// the same names the request body used.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// writeJSON sends a JSON response. Headers and status must go out
// before the body — once Encode writes, the status line is sent.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError translates a domain error into an HTTP response. This is
// the only place that mapping exists — services return apperror values
// and never see a status code.
func writeError(w http.ResponseWriter, err error) {
	// Whole-form validation failures carry the field-error map.
	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "validation failed",
			Fields:  verr.Fields,
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
			errorType = "unauthenticated"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		}

		resp := ErrorResponse{Error: errorType, Message: appErr.Message}
		// Single-field problems (duplicate username, duplicate
		// instructor email) use the same fields shape as form failures.
		if appErr.Field != "" {
			resp.Fields = map[string][]string{appErr.Field: {appErr.Message}}
		}

		writeJSON(w, status, resp)
		return
	}

	// Unknown error: generic 500. The raw message may contain SQL or
	// paths and never reaches the client; the caller logs it.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}

// decodeJSON reads the request body into dst. A malformed body is a
// plain 400 — there is no field to blame it on.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return false
	}
	return true
}
