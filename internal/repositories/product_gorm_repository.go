package repositories

import (
	"context"
	"fmt"

	"inventory/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const updateProductSQL = `
UPDATE products
SET
	name = COALESCE(?, name),
	quantity = COALESCE(?, quantity),
	price = COALESCE(?, price),
	category = COALESCE(?, category),
	supplier_id = COALESCE(?, supplier_id)
WHERE id = ?
RETURNING *`

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, storageError(err, "failed to get all products")
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	res := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&product)
	if res.Error != nil {
		return nil, storageError(res.Error, fmt.Sprintf("failed to get product by ID %d", id))
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	db := r.db.WithContext(ctx)
	if err := ensureSupplierExists(db, in.SupplierID); err != nil {
		return nil, err
	}

	// RETURNING reads back the stored row, including NUMERIC rounding.
	product := models.Product{}.Apply(in)
	if err := db.Clauses(clause.Returning{}).Create(&product).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUnknownSupplier
		}
		return nil, storageError(err, "failed to create product")
	}
	return &product, nil
}

// Update applies the supplied fields with COALESCE so omitted columns keep
// their stored value.
func (r *GORMProductRepository) Update(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	db := r.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.Product{}).Where("id = ?", id).Count(&existing).Error; err != nil {
		return nil, storageError(err, fmt.Sprintf("failed to look up product %d", id))
	}
	if existing == 0 {
		return nil, ErrProductNotFound
	}
	if err := ensureSupplierExists(db, in.SupplierID); err != nil {
		return nil, err
	}

	var product models.Product
	res := db.Raw(updateProductSQL, in.Name, in.Quantity, in.Price, in.Category, in.SupplierID, id).Scan(&product)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return nil, ErrUnknownSupplier
		}
		return nil, storageError(res.Error, fmt.Sprintf("failed to update product %d", id))
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Delete deletes a product by its ID and returns the removed row.
func (r *GORMProductRepository) Delete(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	res := r.db.WithContext(ctx).Raw("DELETE FROM products WHERE id = ? RETURNING *", id).Scan(&product)
	if res.Error != nil {
		return nil, storageError(res.Error, fmt.Sprintf("failed to delete product %d", id))
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// ensureSupplierExists checks a supplier reference before writing. The
// foreign key remains the final guard against a concurrent delete.
func ensureSupplierExists(db *gorm.DB, supplierID *int64) error {
	if supplierID == nil {
		return nil
	}
	var n int64
	if err := db.Model(&models.Supplier{}).Where("id = ?", *supplierID).Count(&n).Error; err != nil {
		return storageError(err, "failed to look up supplier")
	}
	if n == 0 {
		return ErrUnknownSupplier
	}
	return nil
}
