package services_test

import (
	"context"
	"errors"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Insert(ctx context.Context, fields models.ProductFields) (*models.Product, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields models.ProductFields) (*models.Product, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event models.ProductEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func ptr[T any](v T) *T { return &v }

func eventOfType(eventType string, id primitive.ObjectID) interface{} {
	return mock.MatchedBy(func(e models.ProductEvent) bool {
		return e.Type == eventType && e.ProductID == id.Hex()
	})
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	expectedProducts := []models.Product{
		{ID: primitive.NewObjectID(), Name: ptr("Product A"), Price: ptr(10.0)},
		{ID: primitive.NewObjectID(), Name: ptr("Product B"), Price: ptr(20.0)},
	}
	mockRepo.On("FindAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	id := primitive.NewObjectID()
	expectedProduct := &models.Product{ID: id, Name: ptr("Product A")}

	mockRepo.On("FindByID", ctx, id).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	missing := primitive.NewObjectID()
	mockRepo.On("FindByID", ctx, missing).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(ctx, missing)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)
	ctx := context.Background()

	fields := models.ProductFields{Name: ptr("New Product"), Price: ptr(50.0), Stock: ptr(int64(20))}
	created := &models.Product{ID: primitive.NewObjectID(), Name: fields.Name, Price: fields.Price, Stock: fields.Stock}

	mockRepo.On("Insert", ctx, fields).Return(created, nil).Once()
	mockPublisher.On("PublishProductEvent", eventOfType(models.ProductCreated, created.ID)).Return(nil).Once()

	product, err := service.CreateProduct(ctx, []byte(`{"name":"New Product","price":50,"stock":"20","sku":"ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, created, product)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_CreateProductRejectsBadNumbersBeforeStorage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	_, err := service.CreateProduct(context.Background(), []byte(`{"name":"Laptop","price":"abc"}`))

	var numErr *validation.NumericFieldError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, "Price must be a valid number", numErr.Message())
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "PublishProductEvent", mock.Anything)
}

func TestProductService_CreateProductSchemaFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)
	ctx := context.Background()

	schemaErr := &repositories.ValidationError{Messages: []string{"Please add a product name"}}
	mockRepo.On("Insert", ctx, models.ProductFields{Price: ptr(5.0)}).Return(nil, schemaErr).Once()

	_, err := service.CreateProduct(ctx, []byte(`{"price":5}`))
	var validationErr *repositories.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"Please add a product name"}, validationErr.Messages)
	mockPublisher.AssertNotCalled(t, "PublishProductEvent", mock.Anything)
}

func TestProductService_PublishFailureDoesNotFailWrite(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)
	ctx := context.Background()

	id := primitive.NewObjectID()
	updated := &models.Product{ID: id, Name: ptr("Renamed")}
	mockRepo.On("UpdateByID", ctx, id, models.ProductFields{Name: ptr("Renamed")}).Return(updated, nil).Once()
	mockPublisher.On("PublishProductEvent", eventOfType(models.ProductUpdated, id)).Return(errors.New("channel closed")).Once()

	product, err := service.UpdateProduct(ctx, id, []byte(`{"name":"Renamed"}`))
	require.NoError(t, err)
	assert.Equal(t, updated, product)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	missing := primitive.NewObjectID()
	mockRepo.On("UpdateByID", ctx, missing, models.ProductFields{Stock: ptr(int64(0))}).Return(nil, repositories.ErrProductNotFound).Once()
	_, err := service.UpdateProduct(ctx, missing, []byte(`{"stock":0}`))
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	_, err = service.UpdateProduct(ctx, missing, []byte(`{"stock":"many"}`))
	var numErr *validation.NumericFieldError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, "stock", numErr.Field)

	_, err = service.UpdateProduct(ctx, missing, []byte(`not json`))
	assert.ErrorIs(t, err, validation.ErrMalformedBody)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)
	ctx := context.Background()

	id := primitive.NewObjectID()
	mockRepo.On("DeleteByID", ctx, id).Return(&models.Product{ID: id}, nil).Once()
	mockPublisher.On("PublishProductEvent", eventOfType(models.ProductDeleted, id)).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, id))

	mockRepo.On("DeleteByID", ctx, id).Return(nil, repositories.ErrProductNotFound).Once()
	assert.ErrorIs(t, service.DeleteProduct(ctx, id), repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}
