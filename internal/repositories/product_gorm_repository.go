package repositories

import (
	"errors"
	"fmt"

	"productapi/internal/apperrors"
	"productapi/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is the mapped-object implementation of
// ProductRepository. GORM generates the statements and coerces types;
// every mutation is still an explicit Create/Save/Delete call, no hidden
// change tracking.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Get retrieves a single product by its ID.
func (r *GORMProductRepository) Get(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageErr(fmt.Sprintf("failed to get product %d", id), err)
	}
	return &product, nil
}

// List retrieves up to limit products after skipping skip, ordered by ID.
func (r *GORMProductRepository) List(skip, limit int) ([]models.Product, error) {
	if err := checkPage(skip, limit); err != nil {
		return nil, err
	}
	var products []models.Product
	if err := r.db.Order("id").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return nil, storageErr("failed to list products", err)
	}
	return products, nil
}

// Create persists a new product and returns it with its assigned ID.
func (r *GORMProductRepository) Create(input models.ProductCreate) (*models.Product, error) {
	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
	}
	if err := r.db.Create(&product).Error; err != nil {
		return nil, storageErr("failed to create product", err)
	}
	return &product, nil
}

// Update loads the product, overwrites only the fields supplied in patch,
// and persists the result. A nil patch field leaves the stored value alone.
func (r *GORMProductRepository) Update(id uint, patch models.ProductUpdate) (*models.Product, error) {
	product, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if err := r.db.Save(product).Error; err != nil {
		return nil, storageErr(fmt.Sprintf("failed to update product %d", id), err)
	}
	return product, nil
}

// Delete removes a product by its ID and returns its prior state.
func (r *GORMProductRepository) Delete(id uint) (*models.Product, error) {
	product, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return nil, storageErr(fmt.Sprintf("failed to delete product %d", id), err)
	}
	return product, nil
}

// FindByName retrieves the product with the given name, lowest ID first.
func (r *GORMProductRepository) FindByName(name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageErr(fmt.Sprintf("failed to find product by name %q", name), err)
	}
	return &product, nil
}
