package repositories

import (
	"productapi/internal/models"
)

// ProductRepository defines the interface for product data access.
// Both backends (GORM and template SQL) implement it with identical
// semantics so they can be swapped via configuration.
type ProductRepository interface {
	Repository[models.Product, models.ProductCreate, models.ProductUpdate]

	// FindByName returns the product with the given name, or ErrNotFound.
	// The match is exact; case sensitivity follows the column collation,
	// which is case-sensitive for SQLite's default TEXT comparison.
	FindByName(name string) (*models.Product, error)
}
