package models

// Product represents a catalog item in the inventory.
type Product struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string  `json:"name" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"type:numeric(10,2);not null"`
	Category   string  `json:"category" gorm:"not null"`
	SupplierID *int64  `json:"supplier_id,omitempty" gorm:"index"`
}

// ProductInput carries validated, trimmed product fields. A nil field was
// not supplied by the client.
type ProductInput struct {
	Name       *string  `json:"name,omitempty"`
	Quantity   *int     `json:"quantity,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Category   *string  `json:"category,omitempty"`
	SupplierID *int64   `json:"supplier_id,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (in ProductInput) IsEmpty() bool {
	return in.Name == nil && in.Quantity == nil && in.Price == nil &&
		in.Category == nil && in.SupplierID == nil
}

// Apply returns a copy of p with every supplied field of in replacing the
// stored value. Unsupplied fields keep their previous value.
func (p Product) Apply(in ProductInput) Product {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.SupplierID != nil {
		id := *in.SupplierID
		p.SupplierID = &id
	}
	return p
}
