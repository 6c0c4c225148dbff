package repositories

import (
	"context"

	"inventory/internal/models"
)

// MemorySupplierRepository is an in-memory implementation of SupplierRepository.
type MemorySupplierRepository struct {
	store *MemoryStore
}

// NewMemorySupplierRepository creates a supplier repository over store.
func NewMemorySupplierRepository(store *MemoryStore) *MemorySupplierRepository {
	return &MemorySupplierRepository{
		store: store,
	}
}

// GetAll returns all suppliers.
func (r *MemorySupplierRepository) GetAll(ctx context.Context) ([]models.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	supplierList := make([]models.Supplier, len(r.store.suppliers))
	copy(supplierList, r.store.suppliers)
	return supplierList, nil
}

// GetByID returns a supplier and its product count.
func (r *MemorySupplierRepository) GetByID(ctx context.Context, id int64) (*models.SupplierDetail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.store.supplierIndex(id)
	if i < 0 {
		return nil, ErrSupplierNotFound
	}
	return &models.SupplierDetail{
		Supplier:     r.store.suppliers[i],
		ProductCount: r.store.countProductsOf(id),
	}, nil
}

// Create adds a new supplier.
func (r *MemorySupplierRepository) Create(ctx context.Context, in models.SupplierInput) (*models.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	supplier := models.Supplier{ID: r.store.nextSupplierID}.Apply(in)
	r.store.nextSupplierID++
	r.store.suppliers = append(r.store.suppliers, supplier)
	return &supplier, nil
}

// Update modifies an existing supplier.
func (r *MemorySupplierRepository) Update(ctx context.Context, id int64, in models.SupplierInput) (*models.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.store.supplierIndex(id)
	if i < 0 {
		return nil, ErrSupplierNotFound
	}
	r.store.suppliers[i] = r.store.suppliers[i].Apply(in)
	updated := r.store.suppliers[i]
	return &updated, nil
}

// Delete removes a supplier that no product references.
func (r *MemorySupplierRepository) Delete(ctx context.Context, id int64) (*models.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.store.supplierIndex(id)
	if i < 0 {
		return nil, ErrSupplierNotFound
	}
	if r.store.countProductsOf(id) > 0 {
		return nil, ErrSupplierInUse
	}
	removed := r.store.suppliers[i]
	r.store.suppliers = append(r.store.suppliers[:i], r.store.suppliers[i+1:]...)
	return &removed, nil
}

// GetProducts returns the products that reference the supplier.
func (r *MemorySupplierRepository) GetProducts(ctx context.Context, id int64) ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	productList := make([]models.Product, 0)
	for _, p := range r.store.products {
		if p.SupplierID != nil && *p.SupplierID == id {
			productList = append(productList, *cloneProduct(p))
		}
	}
	return productList, nil
}
