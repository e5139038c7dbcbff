package repositories

import (
	"context"
	"errors"
	"strings"

	"catalog/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrProductNotFound is returned when no product matches the given identifier.
var ErrProductNotFound = errors.New("product not found")

// ValidationError is returned when a write is rejected by the product schema.
// Messages are ordered by field declaration.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "product validation failed: " + strings.Join(e.Messages, "; ")
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// Insert validates and stores a new product; the repository assigns the identifier.
	Insert(ctx context.Context, fields models.ProductFields) (*models.Product, error)
	// UpdateByID overwrites the present fields and returns the updated product.
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields models.ProductFields) (*models.Product, error)
	// DeleteByID removes the product and returns it as it was before deletion.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}
