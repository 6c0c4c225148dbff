package validation

import "inventory/internal/models"

const (
	msgProductName     = "'name' is required and must be a non-empty string"
	msgProductCategory = "'category' is required and must be a non-empty string"
	msgProductQuantity = "'quantity' cannot be negative and must be an integer"
	msgProductPrice    = "'price' cannot be negative and must be a number"
	msgProductSupplier = "'supplier_id' must be a positive integer"
)

// Product validates a product payload. In create mode name, category,
// quantity and price are required; supplier_id is checked only when
// present. In update mode every field is checked only when present.
func (v *Validation) Product(payload Payload, isUpdate bool) (models.ProductInput, []string) {
	var (
		in     models.ProductInput
		errors []string
	)

	if raw, ok := field(payload, "name", isUpdate); ok {
		if s, isString := trimmedString(raw); isString && v.check(s, "required") {
			in.Name = &s
		} else {
			errors = append(errors, msgProductName)
		}
	}

	if raw, ok := field(payload, "category", isUpdate); ok {
		if s, isString := trimmedString(raw); isString && v.check(s, "required") {
			in.Category = &s
		} else {
			errors = append(errors, msgProductCategory)
		}
	}

	if raw, ok := field(payload, "quantity", isUpdate); ok {
		if n, isInt := integer(raw); isInt && v.check(n, "gte=0") {
			q := int(n)
			in.Quantity = &q
		} else {
			errors = append(errors, msgProductQuantity)
		}
	}

	if raw, ok := field(payload, "price", isUpdate); ok {
		if f, isNumber := number(raw); isNumber && v.check(f, "gte=0") {
			in.Price = &f
		} else {
			errors = append(errors, msgProductPrice)
		}
	}

	// supplier_id is an optional link in both modes.
	if raw, ok := payload["supplier_id"]; ok {
		if n, isInt := integer(raw); isInt && v.check(n, "gt=0") {
			in.SupplierID = &n
		} else {
			errors = append(errors, msgProductSupplier)
		}
	}

	return in, errors
}
