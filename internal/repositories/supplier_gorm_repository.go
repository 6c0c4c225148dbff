package repositories

import (
	"context"
	"fmt"

	"inventory/internal/models"

	"gorm.io/gorm"
)

const (
	supplierDetailSQL = `
SELECT s.*, COUNT(p.id) AS product_count
FROM suppliers s
LEFT JOIN products p ON p.supplier_id = s.id
WHERE s.id = ?
GROUP BY s.id`

	updateSupplierSQL = `
UPDATE suppliers
SET
	name = COALESCE(?, name),
	contact_person = COALESCE(?, contact_person),
	email = COALESCE(?, email),
	phone = COALESCE(?, phone),
	country = COALESCE(?, country)
WHERE id = ?
RETURNING *`
)

// GORMSupplierRepository is a GORM implementation of SupplierRepository.
type GORMSupplierRepository struct {
	db *gorm.DB
}

// NewGORMSupplierRepository creates a new instance of GORMSupplierRepository.
func NewGORMSupplierRepository(db *gorm.DB) *GORMSupplierRepository {
	return &GORMSupplierRepository{
		db: db,
	}
}

// GetAll retrieves all suppliers ordered by id.
func (r *GORMSupplierRepository) GetAll(ctx context.Context) ([]models.Supplier, error) {
	suppliers := make([]models.Supplier, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&suppliers).Error; err != nil {
		return nil, storageError(err, "failed to get all suppliers")
	}
	return suppliers, nil
}

// GetByID retrieves a supplier and counts the products referencing it.
func (r *GORMSupplierRepository) GetByID(ctx context.Context, id int64) (*models.SupplierDetail, error) {
	var detail models.SupplierDetail
	res := r.db.WithContext(ctx).Raw(supplierDetailSQL, id).Scan(&detail)
	if res.Error != nil {
		return nil, storageError(res.Error, fmt.Sprintf("failed to get supplier by ID %d", id))
	}
	if res.RowsAffected == 0 {
		return nil, ErrSupplierNotFound
	}
	return &detail, nil
}

// Create creates a new supplier in the database.
func (r *GORMSupplierRepository) Create(ctx context.Context, in models.SupplierInput) (*models.Supplier, error) {
	supplier := models.Supplier{}.Apply(in)
	if err := r.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, storageError(err, "failed to create supplier")
	}
	return &supplier, nil
}

// Update applies the supplied fields with COALESCE.
func (r *GORMSupplierRepository) Update(ctx context.Context, id int64, in models.SupplierInput) (*models.Supplier, error) {
	var supplier models.Supplier
	res := r.db.WithContext(ctx).
		Raw(updateSupplierSQL, in.Name, in.ContactPerson, in.Email, in.Phone, in.Country, id).
		Scan(&supplier)
	if res.Error != nil {
		return nil, storageError(res.Error, fmt.Sprintf("failed to update supplier %d", id))
	}
	if res.RowsAffected == 0 {
		return nil, ErrSupplierNotFound
	}
	return &supplier, nil
}

// Delete removes a supplier. Referenced suppliers are rejected before the
// statement runs; the RESTRICT foreign key covers products added meanwhile.
func (r *GORMSupplierRepository) Delete(ctx context.Context, id int64) (*models.Supplier, error) {
	db := r.db.WithContext(ctx)

	var referencing int64
	if err := db.Model(&models.Product{}).Where("supplier_id = ?", id).Count(&referencing).Error; err != nil {
		return nil, storageError(err, fmt.Sprintf("failed to count products of supplier %d", id))
	}
	if referencing > 0 {
		return nil, ErrSupplierInUse
	}

	var supplier models.Supplier
	res := db.Raw("DELETE FROM suppliers WHERE id = ? RETURNING *", id).Scan(&supplier)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return nil, ErrSupplierInUse
		}
		return nil, storageError(res.Error, fmt.Sprintf("failed to delete supplier %d", id))
	}
	if res.RowsAffected == 0 {
		return nil, ErrSupplierNotFound
	}
	return &supplier, nil
}

// GetProducts retrieves the products referencing the supplier.
func (r *GORMSupplierRepository) GetProducts(ctx context.Context, id int64) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", id).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, storageError(err, fmt.Sprintf("failed to get products of supplier %d", id))
	}
	return products, nil
}
