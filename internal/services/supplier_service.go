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

// SupplierService handles business logic related to suppliers.
type SupplierService struct {
	repo       repositories.SupplierRepository
	validation *validation.Validation
	notifier   notifier
}

// NewSupplierService creates a new SupplierService. events may be nil.
func NewSupplierService(repo repositories.SupplierRepository, v *validation.Validation, events EventPublisher, log *logger.Logger) *SupplierService {
	return &SupplierService{
		repo:       repo,
		validation: v,
		notifier:   notifier{events: events, log: orNop(log)},
	}
}

// GetAllSuppliers retrieves all suppliers.
func (s *SupplierService) GetAllSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.repo.GetAll(ctx)
}

// GetSupplierByID returns the supplier together with its product count.
func (s *SupplierService) GetSupplierByID(ctx context.Context, id int64) (*models.SupplierDetail, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateSupplier validates a complete supplier payload and stores it.
func (s *SupplierService) CreateSupplier(ctx context.Context, payload validation.Payload) (*models.Supplier, error) {
	in, errs := s.validation.Supplier(payload, false)
	if len(errs) > 0 {
		return nil, pkgerrors.Validation(errs)
	}

	supplier, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.notifier.publish(ctx, rabbitmq.SupplierCreated, supplier.ID, supplier)
	return supplier, nil
}

// UpdateSupplier validates the supplied fields and applies them to supplier id.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id int64, payload validation.Payload) (*models.Supplier, error) {
	in, errs := s.validation.Supplier(payload, true)
	if len(errs) > 0 {
		return nil, pkgerrors.Validation(errs)
	}
	if in.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	supplier, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.notifier.publish(ctx, rabbitmq.SupplierUpdated, supplier.ID, supplier)
	return supplier, nil
}

// DeleteSupplier fails with repositories.ErrSupplierInUse while products
// reference the supplier.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	supplier, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.publish(ctx, rabbitmq.SupplierDeleted, supplier.ID, supplier)
	return supplier, nil
}

// GetSupplierProducts lists the products of a supplier. An unknown supplier
// has no products.
func (s *SupplierService) GetSupplierProducts(ctx context.Context, id int64) ([]models.Product, error) {
	return s.repo.GetProducts(ctx, id)
}
