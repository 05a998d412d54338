package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"assistor/internal/apperror"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"not found", apperror.NotFound("course", "abc"), http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("loading: %w", apperror.NotFound("note", "x")), http.StatusNotFound, "not_found"},
		{"validation", apperror.ValidationFailed("title", "too long"), http.StatusBadRequest, "validation_error"},
		{"duplicate", apperror.Duplicate("user", "username"), http.StatusBadRequest, "validation_error"},
		{"unauthenticated", apperror.Unauthenticated("no session"), http.StatusUnauthorized, "unauthenticated"},
		{"unknown", errors.New("sql: connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if resp.Error != tt.wantType {
				t.Errorf("error type = %q, want %q", resp.Error, tt.wantType)
			}
		})
	}
}

// Raw error text must never reach the client — it can carry SQL or
// filesystem paths.
func TestWriteError_NoInternalLeak(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("open /var/lib/assistor/data: permission denied"))

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp.Message != "an internal error occurred" {
		t.Errorf("message = %q, leaks internal detail", resp.Message)
	}
}

func TestWriteError_FieldMap(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperror.Invalid(map[string][]string{
		"title": {"must be at most 64 characters"},
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if msgs := resp.Fields["title"]; len(msgs) != 1 {
		t.Errorf("fields = %v, want one message for title", resp.Fields)
	}
}

func TestWriteError_DuplicateCarriesField(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperror.Duplicate("instructor", "email"))

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if _, ok := resp.Fields["email"]; !ok {
		t.Errorf("fields = %v, want an entry for email", resp.Fields)
	}
}
