package validation

import "inventory/internal/models"

const (
	msgSupplierName    = "'name' is required and must be a non-empty string"
	msgSupplierContact = "'contact_person' is required and must be a non-empty string"
	msgSupplierEmail   = "'email' must be a valid email address"
	msgSupplierPhone   = "'phone' must be at least 5 characters"
	msgSupplierCountry = "'country' is required and must be a non-empty string"
)

// Supplier validates a supplier payload with the same create/update rules
// as Product.
func (v *Validation) Supplier(payload Payload, isUpdate bool) (models.SupplierInput, []string) {
	var (
		in     models.SupplierInput
		errors []string
	)

	nonEmpty := func(key, msg string) *string {
		raw, ok := field(payload, key, isUpdate)
		if !ok {
			return nil
		}
		s, isString := trimmedString(raw)
		if !isString || !v.check(s, "required") {
			errors = append(errors, msg)
			return nil
		}
		return &s
	}

	in.Name = nonEmpty("name", msgSupplierName)
	in.ContactPerson = nonEmpty("contact_person", msgSupplierContact)

	if raw, ok := field(payload, "email", isUpdate); ok {
		if s, isString := trimmedString(raw); isString && v.check(s, "required,simple_email") {
			in.Email = &s
		} else {
			errors = append(errors, msgSupplierEmail)
		}
	}

	if raw, ok := field(payload, "phone", isUpdate); ok {
		if s, isString := trimmedString(raw); isString && v.check(s, "min=5") {
			in.Phone = &s
		} else {
			errors = append(errors, msgSupplierPhone)
		}
	}

	in.Country = nonEmpty("country", msgSupplierCountry)

	return in, errors
}
