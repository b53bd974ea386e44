// Package apperrors defines the error kinds shared by the repository,
// service, and handler layers. Every storage or business failure is
// normalized to one of these sentinels before it crosses a layer
// boundary, so callers can match with errors.Is.
package apperrors

import "errors"

var (
	// ErrNotFound indicates that no product exists with the requested ID (or name).
	ErrNotFound = errors.New("product not found")

	// ErrConflict indicates a uniqueness violation, e.g. a duplicate product name.
	ErrConflict = errors.New("product name must be unique")

	// ErrInvalidArgument indicates a caller-supplied value that fails validation,
	// e.g. a negative price or negative pagination bounds.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageUnavailable indicates an infrastructural storage failure
	// (connection loss, failed statement). It is not retried here.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
