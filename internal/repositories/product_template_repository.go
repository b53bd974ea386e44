package repositories

import (
	"fmt"
	"strings"

	"productapi/internal/apperrors"
	"productapi/internal/models"

	"gorm.io/gorm"
)

// TemplateProductRepository implements ProductRepository with explicit,
// parameterized SQL text instead of GORM's statement generation. Values
// are always bound with placeholders, never interpolated, and the row to
// entity mapping is done here rather than by the ORM.
//
// It applies the same column set, ID ordering, and pagination semantics
// as GORMProductRepository so the two backends stay interchangeable.
type TemplateProductRepository struct {
	db *gorm.DB
}

// NewTemplateProductRepository creates a new instance of TemplateProductRepository.
func NewTemplateProductRepository(db *gorm.DB) *TemplateProductRepository {
	return &TemplateProductRepository{
		db: db,
	}
}

// Get retrieves a single product by its ID.
func (r *TemplateProductRepository) Get(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Raw(
		`SELECT id, name, description, price FROM products WHERE id = ?`, id,
	).Scan(&product).Error
	if err != nil {
		return nil, storageErr(fmt.Sprintf("failed to get product %d", id), err)
	}
	if product.ID == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &product, nil
}

// List retrieves up to limit products after skipping skip, ordered by ID.
func (r *TemplateProductRepository) List(skip, limit int) ([]models.Product, error) {
	if err := checkPage(skip, limit); err != nil {
		return nil, err
	}
	var products []models.Product
	err := r.db.Raw(
		`SELECT id, name, description, price FROM products ORDER BY id LIMIT ? OFFSET ?`,
		limit, skip,
	).Scan(&products).Error
	if err != nil {
		return nil, storageErr("failed to list products", err)
	}
	return products, nil
}

// Create inserts a new product and returns the persisted row including
// its assigned ID.
func (r *TemplateProductRepository) Create(input models.ProductCreate) (*models.Product, error) {
	var product models.Product
	err := r.db.Raw(
		`INSERT INTO products (name, description, price) VALUES (?, ?, ?)
		 RETURNING id, name, description, price`,
		input.Name, input.Description, *input.Price,
	).Scan(&product).Error
	if err != nil {
		return nil, storageErr("failed to create product", err)
	}
	return &product, nil
}

// Update builds an UPDATE statement covering only the fields supplied in
// patch and returns the updated row. An empty patch returns the current
// state unchanged.
func (r *TemplateProductRepository) Update(id uint, patch models.ProductUpdate) (*models.Product, error) {
	assignments := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if patch.Name != nil {
		assignments = append(assignments, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		assignments = append(assignments, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Price != nil {
		assignments = append(assignments, "price = ?")
		args = append(args, *patch.Price)
	}
	if len(assignments) == 0 {
		return r.Get(id)
	}
	args = append(args, id)

	tx := r.db.Exec(
		`UPDATE products SET `+strings.Join(assignments, ", ")+` WHERE id = ?`,
		args...,
	)
	if tx.Error != nil {
		return nil, storageErr(fmt.Sprintf("failed to update product %d", id), tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.Get(id)
}

// Delete fetches the product, removes it, and returns the prior state.
func (r *TemplateProductRepository) Delete(id uint) (*models.Product, error) {
	product, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	tx := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if tx.Error != nil {
		return nil, storageErr(fmt.Sprintf("failed to delete product %d", id), tx.Error)
	}
	return product, nil
}

// FindByName retrieves the product with the given name, lowest ID first.
func (r *TemplateProductRepository) FindByName(name string) (*models.Product, error) {
	var product models.Product
	err := r.db.Raw(
		`SELECT id, name, description, price FROM products WHERE name = ? ORDER BY id LIMIT 1`,
		name,
	).Scan(&product).Error
	if err != nil {
		return nil, storageErr(fmt.Sprintf("failed to find product by name %q", name), err)
	}
	if product.ID == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &product, nil
}
