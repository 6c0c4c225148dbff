// Package validation inspects decoded JSON payloads for products and
// suppliers. Every check returns human-readable messages plus a trimmed,
// typed copy of the fields that were present.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Payload is a JSON object decoded with json.Decoder.UseNumber.
type Payload map[string]any

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation checks product and supplier payloads.
type Validation struct {
	validator *validator.Validate
}

// NewValidation builds a Validation with the custom simple_email tag
// registered.
func NewValidation() *Validation {
	v := validator.New()
	if err := v.RegisterValidation("simple_email", validateSimpleEmail); err != nil {
		panic(fmt.Sprintf("registering simple_email validation: %v", err))
	}
	return &Validation{validator: v}
}

// validateSimpleEmail accepts local@domain.tld with no whitespace.
func validateSimpleEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

func (v *Validation) check(value any, tag string) bool {
	return v.validator.Var(value, tag) == nil
}

// field reports whether key should be validated: always in create mode, and
// only when present in update mode.
func field(payload Payload, key string, isUpdate bool) (any, bool) {
	raw, present := payload[key]
	if isUpdate && !present {
		return nil, false
	}
	return raw, true
}

// trimmedString returns the trimmed value when raw is a JSON string.
func trimmedString(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// integer returns raw as an int64 when it is a JSON number without a
// fractional part. 2e1 counts as an integer; "20" does not.
func integer(raw any) (int64, bool) {
	f, ok := number(raw)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int64(f), true
}

func number(raw any) (float64, bool) {
	switch n := raw.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
