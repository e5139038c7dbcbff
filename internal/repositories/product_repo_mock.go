package repositories

import (
	"context"
	"sync"
	"time"

	"catalog/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It keeps insertion order so FindAll behaves like a natural-order collection scan.
type MockProductRepository struct {
	products map[primitive.ObjectID]models.Product
	order    []primitive.ObjectID
	schema   *ProductSchema
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[primitive.ObjectID]models.Product),
		schema:   NewProductSchema(),
	}
}

// FindAll returns all products in insertion order.
func (r *MockProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// FindByID returns a product by its ID.
func (r *MockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Insert adds a new product.
func (r *MockProductRepository) Insert(ctx context.Context, fields models.ProductFields) (*models.Product, error) {
	product := models.NewProduct(fields)
	if err := r.schema.ValidateNew(&product); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = product
	r.order = append(r.order, product.ID)
	return &product, nil
}

// UpdateByID modifies an existing product.
func (r *MockProductRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields models.ProductFields) (*models.Product, error) {
	if err := r.schema.ValidateUpdate(fields); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product.Apply(fields)
	product.UpdatedAt = time.Now().UTC()
	r.products[id] = product
	return &product, nil
}

// DeleteByID removes a product by its ID.
func (r *MockProductRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &product, nil
}
