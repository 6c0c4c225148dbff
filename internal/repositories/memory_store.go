package repositories

import (
	"sync"

	"inventory/internal/models"
)

// MemoryStore owns the in-process product and supplier collections and
// their id counters. Both collections share one lock so supplier
// references are checked atomically with the write.
type MemoryStore struct {
	products       []models.Product
	suppliers      []models.Supplier
	nextProductID  int64
	nextSupplierID int64
	mu             sync.RWMutex
}

// NewMemoryStore creates an empty store whose first ids are 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:       make([]models.Product, 0),
		suppliers:      make([]models.Supplier, 0),
		nextProductID:  1,
		nextSupplierID: 1,
	}
}

// Ping always succeeds; it lets the store satisfy health checks.
func (s *MemoryStore) Ping() error {
	return nil
}

// Collections are append-only in id order, so index lookups are linear
// scans over a sorted slice.

func (s *MemoryStore) productIndex(id int64) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) supplierIndex(id int64) int {
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) countProductsOf(supplierID int64) int64 {
	var n int64
	for _, p := range s.products {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			n++
		}
	}
	return n
}

// cloneProduct detaches the SupplierID pointer from the stored record.
func cloneProduct(p models.Product) *models.Product {
	if p.SupplierID != nil {
		id := *p.SupplierID
		p.SupplierID = &id
	}
	return &p
}
