package repositories

import (
	"context"

	"inventory/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	store *MemoryStore
}

// NewMemoryProductRepository creates a product repository over store.
func NewMemoryProductRepository(store *MemoryStore) *MemoryProductRepository {
	return &MemoryProductRepository{
		store: store,
	}
}

// GetAll returns all products.
func (r *MemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		productList = append(productList, *cloneProduct(p))
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.store.productIndex(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	return cloneProduct(r.store.products[i]), nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if in.SupplierID != nil && r.store.supplierIndex(*in.SupplierID) < 0 {
		return nil, ErrUnknownSupplier
	}

	product := models.Product{ID: r.store.nextProductID}.Apply(in)
	r.store.nextProductID++
	r.store.products = append(r.store.products, product)
	return cloneProduct(product), nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.store.productIndex(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	if in.SupplierID != nil && r.store.supplierIndex(*in.SupplierID) < 0 {
		return nil, ErrUnknownSupplier
	}

	r.store.products[i] = r.store.products[i].Apply(in)
	return cloneProduct(r.store.products[i]), nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(ctx context.Context, id int64) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.store.productIndex(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	removed := r.store.products[i]
	r.store.products = append(r.store.products[:i], r.store.products[i+1:]...)
	return cloneProduct(removed), nil
}
