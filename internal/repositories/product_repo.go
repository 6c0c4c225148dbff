package repositories

import (
	"context"

	"inventory/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by ascending id.
	GetAll(ctx context.Context) ([]models.Product, error)
	// GetByID returns ErrProductNotFound when id does not exist.
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	// Create expects a fully validated input and returns the stored record
	// with its assigned id.
	Create(ctx context.Context, in models.ProductInput) (*models.Product, error)
	// Update replaces only the supplied fields and returns the updated record.
	Update(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error)
	// Delete removes the product and returns the removed record.
	Delete(ctx context.Context, id int64) (*models.Product, error)
}
