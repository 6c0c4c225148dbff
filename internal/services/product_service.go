package services

import (
	"context"

	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/validation"
	pkgerrors "inventory/pkg/errors"
	"inventory/pkg/logger"
	"inventory/pkg/rabbitmq"
)

// ErrEmptyUpdate is returned when an update supplies no known field.
var ErrEmptyUpdate = pkgerrors.New(pkgerrors.CodeValidation, "At least one field must be provided for update")

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	validation *validation.Validation
	notifier   notifier
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, v *validation.Validation, events EventPublisher, log *logger.Logger) *ProductService {
	return &ProductService{
		repo:       repo,
		validation: v,
		notifier:   notifier{events: events, log: orNop(log)},
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates a complete product payload and stores it.
func (s *ProductService) CreateProduct(ctx context.Context, payload validation.Payload) (*models.Product, error) {
	in, errs := s.validation.Product(payload, false)
	if len(errs) > 0 {
		return nil, pkgerrors.Validation(errs)
	}

	product, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.notifier.publish(ctx, rabbitmq.ProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct validates the supplied fields and applies them to product id.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, payload validation.Payload) (*models.Product, error) {
	in, errs := s.validation.Product(payload, true)
	if len(errs) > 0 {
		return nil, pkgerrors.Validation(errs)
	}
	if in.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	product, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.notifier.publish(ctx, rabbitmq.ProductUpdated, product.ID, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns the removed record.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.publish(ctx, rabbitmq.ProductDeleted, product.ID, product)
	return product, nil
}
