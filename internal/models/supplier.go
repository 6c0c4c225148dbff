package models

// Supplier represents a vendor that products may reference.
type Supplier struct {
	ID            int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string `json:"name" gorm:"not null"`
	ContactPerson string `json:"contact_person" gorm:"not null"`
	Email         string `json:"email" gorm:"not null"`
	Phone         string `json:"phone" gorm:"not null"`
	Country       string `json:"country" gorm:"not null"`
}

// SupplierDetail is a supplier together with the number of products that
// currently reference it.
type SupplierDetail struct {
	Supplier
	ProductCount int64 `json:"product_count"`
}

// SupplierInput carries validated, trimmed supplier fields. A nil field was
// not supplied by the client.
type SupplierInput struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Country       *string `json:"country,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (in SupplierInput) IsEmpty() bool {
	return in.Name == nil && in.ContactPerson == nil && in.Email == nil &&
		in.Phone == nil && in.Country == nil
}

// Apply returns a copy of s with every supplied field of in replacing the
// stored value.
func (s Supplier) Apply(in SupplierInput) Supplier {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.ContactPerson != nil {
		s.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Country != nil {
		s.Country = *in.Country
	}
	return s
}
