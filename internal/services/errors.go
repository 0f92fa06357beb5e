package services

import (
	"errors"
	"fmt"
)

// Error kinds. Services wrap one of these so callers can classify failures
// with errors.Is while the wrapped message keeps the precise cause for logs.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrPermission = errors.New("permission denied")
	ErrStore      = errors.New("store failure")
)

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func denied(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPermission, fmt.Sprintf(format, args...))
}

// storeErr wraps a storage failure. Errors that already carry a kind (for
// example a NotFound raised inside a transaction) pass through unchanged.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != "" {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

// Kind names the error kind carried by err, or "" for unclassified errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NotFoundError"
	case errors.Is(err, ErrConflict):
		return "ConflictError"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrPermission):
		return "PermissionError"
	case errors.Is(err, ErrStore):
		return "StoreError"
	}
	return ""
}
