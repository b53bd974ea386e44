package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"productapi/internal/apperrors"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/pkg/rabbitmq"
)

// ProductService handles business logic related to products: name
// uniqueness, price validation, and translating repository outcomes into
// the apperrors vocabulary consumed by the handlers.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client // nil disables event publishing
}

// NewProductService creates a new ProductService. mqClient may be nil.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	return s.repo.Get(id)
}

// ListProducts retrieves a page of products ordered by ID.
func (s *ProductService) ListProducts(skip, limit int) ([]models.Product, error) {
	products, err := s.repo.List(skip, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// CreateProduct creates a new product after checking name uniqueness and
// price validity.
//
// The uniqueness check is check-then-act: two concurrent creates with the
// same name can race past it, since the store carries no unique constraint.
// That window is an accepted limitation of this design.
func (s *ProductService) CreateProduct(input models.ProductCreate) (*models.Product, error) {
	existing, err := s.repo.FindByName(input.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: product with name %q already exists", apperrors.ErrConflict, input.Name)
	}
	if input.Price == nil || *input.Price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", apperrors.ErrInvalidArgument)
	}

	product, err := s.repo.Create(input)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.created", product)
	return product, nil
}

// UpdateProduct applies a partial update to an existing product. A name
// change re-runs the uniqueness check, excluding the product itself.
func (s *ProductService) UpdateProduct(id uint, patch models.ProductUpdate) (*models.Product, error) {
	if patch.Name != nil {
		existing, err := s.repo.FindByName(*patch.Name)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: product with name %q already exists", apperrors.ErrConflict, *patch.Name)
		}
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", apperrors.ErrInvalidArgument)
	}

	product, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.updated", product)
	return product, nil
}

// DeleteProduct removes a product by its ID and returns its prior state.
func (s *ProductService) DeleteProduct(id uint) (*models.Product, error) {
	product, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.deleted", product)
	return product, nil
}

// publishEvent sends a product event to RabbitMQ. Publishing is
// best-effort: failures are logged and never fail the request.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":     event,
		"productID": product.ID,
		"name":      product.Name,
		"price":     product.Price,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.mqClient.Publish(body); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", event, product.ID, err)
	}
}
