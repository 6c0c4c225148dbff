package repositories

import (
	"context"

	"inventory/internal/models"
)

// SupplierRepository defines the interface for supplier data access.
type SupplierRepository interface {
	GetAll(ctx context.Context) ([]models.Supplier, error)
	// GetByID includes the number of products referencing the supplier.
	GetByID(ctx context.Context, id int64) (*models.SupplierDetail, error)
	Create(ctx context.Context, in models.SupplierInput) (*models.Supplier, error)
	Update(ctx context.Context, id int64, in models.SupplierInput) (*models.Supplier, error)
	// Delete fails with ErrSupplierInUse while any product references the
	// supplier.
	Delete(ctx context.Context, id int64) (*models.Supplier, error)
	// GetProducts returns the products referencing the supplier, ordered by id.
	GetProducts(ctx context.Context, id int64) ([]models.Product, error)
}
