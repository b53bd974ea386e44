package models

// Product represents a product in the catalog.
// Name uniqueness is enforced by the service layer via a pre-check,
// not by a database constraint, so both storage backends stay identical.
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:100;index;not null"`
	Description string  `json:"description" gorm:"size:255"`
	Price       float64 `json:"price" gorm:"not null"`
}

// ProductCreate is the request shape for creating a product.
// Price is a pointer so that a missing price is rejected by validation
// instead of silently defaulting to zero.
type ProductCreate struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

// ProductUpdate is the request shape for partially updating a product.
// All fields are pointers: a nil field was omitted and leaves the stored
// value untouched, while a non-nil pointer to a zero value explicitly
// clears or overwrites it.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}
