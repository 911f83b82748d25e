package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrConflict   = errors.New("conflict")
	ErrExhausted  = errors.New("exhausted")
	ErrEmpty      = errors.New("empty")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Exhausted returns an AppError for a fully consumed finite resource pool.
// HTTP handlers map this to 404 Not Found — there is nothing left to hand out.
func Exhausted(resource string) *AppError {
	return &AppError{
		Err:     ErrExhausted,
		Message: fmt.Sprintf("%s pool exhausted", resource),
	}
}

// Empty returns an AppError for a "pick any" read against a collection with
// no rows. Distinct from NotFound: the caller didn't ask for a specific id.
func Empty(resource string) *AppError {
	return &AppError{
		Err:     ErrEmpty,
		Message: fmt.Sprintf("no %ss defined", resource),
	}
}
