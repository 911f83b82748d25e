package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("goober", "7"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("goober", "7"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Exhausted wraps ErrExhausted",
			err:       Exhausted("fingerprint"),
			target:    ErrExhausted,
			wantMatch: true,
		},
		{
			name:      "Empty wraps ErrEmpty",
			err:       Empty("event"),
			target:    ErrEmpty,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrConflict",
			err:       NotFound("goober", "7"),
			target:    ErrConflict,
			wantMatch: false,
		},
		{
			name:      "Exhausted does NOT match ErrEmpty",
			err:       Exhausted("fingerprint"),
			target:    ErrEmpty,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

// Errors survive wrapping with fmt.Errorf %w — the handler's writeError
// depends on this to map deeply wrapped errors to status codes.
func TestErrorsIs_Wrapped(t *testing.T) {
	err := fmt.Errorf("resolving session: %w", NotFound("session", "current"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped NotFound no longer matches ErrNotFound")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed to extract *AppError from wrapped error")
	}
	if appErr.Message == "" {
		t.Error("extracted AppError has no message")
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("fingerprint", "fingerprint is required")
	if err.Field != "fingerprint" {
		t.Errorf("Field = %q, want %q", err.Field, "fingerprint")
	}
	if err.Error() != "fingerprint is required" {
		t.Errorf("Error() = %q, want the message", err.Error())
	}
}
