package services

import (
	"context"
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventPublisher delivers product lifecycle events.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in which
// case no events are published.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduct coerces the raw request body and stores it as a new product.
// Coercion errors are returned before the repository is touched.
func (s *ProductService) CreateProduct(ctx context.Context, body []byte) (*models.Product, error) {
	fields, err := validation.CoerceProductFields(body)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.publish(models.ProductCreated, product)
	return product, nil
}

// UpdateProduct coerces the raw request body and overwrites the fields it contains.
func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, body []byte) (*models.Product, error) {
	fields, err := validation.CoerceProductFields(body)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.publish(models.ProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	product, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	s.publish(models.ProductDeleted, product)
	return nil
}

func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(models.NewProductEvent(eventType, product)); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", eventType, product.ID.Hex(), err)
	}
}
