package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/validation"
	pkgerrors "inventory/pkg/errors"
	"inventory/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishInventoryEvent(ctx context.Context, evt rabbitmq.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func payload(t *testing.T, body string) validation.Payload {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var p validation.Payload
	require.NoError(t, dec.Decode(&p))
	return p
}

func eventOfType(eventType string, id int64) interface{} {
	return mock.MatchedBy(func(evt rabbitmq.Event) bool {
		return evt.Type == eventType && evt.ResourceID == id && evt.ID != ""
	})
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, validation.NewValidation(), nil, nil)
	ctx := context.Background()

	expectedProducts := []models.Product{
		{ID: 1, Name: "Pennor", Quantity: 50, Price: 2, Category: "Kontorsmaterial"},
		{ID: 2, Name: "Anteckningsblock", Quantity: 30, Price: 15, Category: "Kontorsmaterial"},
	}

	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, validation.NewValidation(), nil, nil)
	ctx := context.Background()

	expectedProduct := &models.Product{ID: 1, Name: "Pennor", Quantity: 50, Price: 2, Category: "Kontorsmaterial"}

	// Test successful retrieval
	mockRepo.On("GetByID", ctx, int64(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, validation.NewValidation(), mockMQ, nil)
	ctx := context.Background()

	created := &models.Product{ID: 6, Name: "Sax", Quantity: 20, Price: 30, Category: "Kontorsmaterial"}
	mockRepo.On("Create", ctx, mock.MatchedBy(func(in models.ProductInput) bool {
		return in.Name != nil && *in.Name == "Sax" && *in.Quantity == 20 && in.SupplierID == nil
	})).Return(created, nil).Once()
	mockMQ.On("PublishInventoryEvent", ctx, eventOfType(rabbitmq.ProductCreated, 6)).Return(nil).Once()

	product, err := service.CreateProduct(ctx, payload(t, `{"name":"Sax","quantity":20,"price":30,"category":"Kontorsmaterial"}`))

	require.NoError(t, err)
	assert.Equal(t, created, product)
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_CreateProductValidationSkipsRepository(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, validation.NewValidation(), nil, nil)

	product, err := service.CreateProduct(context.Background(), payload(t, `{"name":"","quantity":20,"price":30,"category":"Kontorsmaterial"}`))

	assert.Nil(t, product)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, []string{"'name' is required and must be a non-empty string"}, typed.Details())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_CreateProductRepositoryFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, validation.NewValidation(), mockMQ, nil)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil, fmt.Errorf("database error")).Once()

	product, err := service.CreateProduct(ctx, payload(t, `{"name":"Sax","quantity":20,"price":30,"category":"Kontorsmaterial"}`))

	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "database error")
	mockMQ.AssertNotCalled(t, "PublishInventoryEvent", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, validation.NewValidation(), mockMQ, nil)
	ctx := context.Background()

	updated := &models.Product{ID: 3, Name: "Häftapparat", Quantity: 10, Price: 130, Category: "Kontorsmaterial"}
	mockRepo.On("Update", ctx, int64(3), mock.MatchedBy(func(in models.ProductInput) bool {
		return in.Price != nil && *in.Price == 130 && in.Name == nil && in.Quantity == nil
	})).Return(updated, nil).Once()
	mockMQ.On("PublishInventoryEvent", ctx, eventOfType(rabbitmq.ProductUpdated, 3)).Return(nil).Once()

	product, err := service.UpdateProduct(ctx, 3, payload(t, `{"price":130}`))

	require.NoError(t, err)
	assert.Equal(t, updated, product)
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_UpdateProductRejectsEmptyBody(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, validation.NewValidation(), nil, nil)

	_, err := service.UpdateProduct(context.Background(), 3, payload(t, `{}`))

	assert.ErrorIs(t, err, services.ErrEmptyUpdate)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UpdateProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, validation.NewValidation(), nil, nil)
	ctx := context.Background()

	mockRepo.On("Update", ctx, int64(99), mock.Anything).Return(nil, repositories.ErrProductNotFound).Once()

	_, err := service.UpdateProduct(ctx, 99, payload(t, `{"quantity":1}`))
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, validation.NewValidation(), mockMQ, nil)
	ctx := context.Background()

	removed := &models.Product{ID: 2, Name: "Anteckningsblock", Quantity: 30, Price: 15, Category: "Kontorsmaterial"}

	// A failed publish does not fail the delete.
	mockRepo.On("Delete", ctx, int64(2)).Return(removed, nil).Once()
	mockMQ.On("PublishInventoryEvent", ctx, eventOfType(rabbitmq.ProductDeleted, 2)).Return(errors.New("broker down")).Once()

	product, err := service.DeleteProduct(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, removed, product)

	mockRepo.On("Delete", ctx, int64(2)).Return(nil, repositories.ErrProductNotFound).Once()
	_, err = service.DeleteProduct(ctx, 2)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestSeedProducts(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository(repositories.NewMemoryStore())

	n, err := services.SeedProducts(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "Pennor", products[0].Name)
	assert.Equal(t, "Häftapparat", products[2].Name)
	assert.Equal(t, 120.0, products[2].Price)

	// already populated
	n, err = services.SeedProducts(ctx, repo)
	require.NoError(t, err)
	assert.Zero(t, n)
}
