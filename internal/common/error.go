// Package common defines shared constants and error values used across
// client and server layers. Callers should use errors.Is / errors.As to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record or a stored asset does not exist.
	// It is an expected condition, distinct from StorageError.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPayload marks an upload whose payload cannot be transferred
	// (missing body, unknown or zero size, empty key).
	ErrInvalidPayload = errors.New("invalid payload")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrBusy is returned when another operation for the same owner is in flight.
	ErrBusy = errors.New("operation already in progress")
)

// ValidationError reports the first required profile field that was left empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s is required", e.Field)
}

// UploadError wraps a failure during asset transfer.
type UploadError struct {
	Key   string
	Cause error
}

func (e *UploadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("upload failed: %v", e.Cause)
	}
	return fmt.Sprintf("upload %s failed: %v", e.Key, e.Cause)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// StorageError wraps a failed record store or asset store operation
// (query, insert, update, delete, resolve).
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError wraps cause unless it is nil.
func NewStorageError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &StorageError{Op: op, Cause: cause}
}

// Kind names the failure category of err for notifications and logs.
func Kind(err error) string {
	var (
		ve *ValidationError
		ue *UploadError
		se *StorageError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &ue):
		return "upload"
	case errors.As(err, &se):
		return "storage"
	case errors.Is(err, ErrBusy):
		return "busy"
	default:
		return "internal"
	}
}
