package repositories

import (
	"fmt"

	"productapi/internal/apperrors"
)

// Repository defines the storage primitives shared by every entity,
// parameterized by the persisted entity shape M, the create-input shape C,
// and the update-input shape U.
//
// Absent rows surface as apperrors.ErrNotFound; any other storage failure
// wraps apperrors.ErrStorageUnavailable. Implementations never leak
// driver- or ORM-specific errors past this boundary.
type Repository[M any, C any, U any] interface {
	// Get looks up an entity by primary key.
	Get(id uint) (*M, error)

	// List returns up to limit entities after skipping skip, ordered by
	// primary key ascending. Negative skip or limit fails with ErrInvalidArgument.
	List(skip, limit int) ([]M, error)

	// Create persists a new entity built from all fields of input and
	// returns it including the assigned primary key.
	Create(input C) (*M, error)

	// Update loads the entity by id, overwrites only the fields present in
	// patch, persists, and returns the updated entity.
	Update(id uint, patch U) (*M, error)

	// Delete removes the entity by id and returns its prior state.
	Delete(id uint) (*M, error)
}

// checkPage validates pagination bounds shared by both backends.
func checkPage(skip, limit int) error {
	if skip < 0 || limit < 0 {
		return fmt.Errorf("%w: skip and limit must be non-negative", apperrors.ErrInvalidArgument)
	}
	return nil
}

// storageErr normalizes a backend failure into ErrStorageUnavailable
// while keeping the underlying cause in the message.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorageUnavailable, err)
}
