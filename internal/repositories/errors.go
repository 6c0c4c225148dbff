package repositories

import (
	"errors"
	"strings"

	pkgerrors "inventory/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository errors. Callers compare with errors.Is.
var (
	ErrProductNotFound  = pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	ErrSupplierNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "Supplier not found")
	// ErrSupplierInUse is returned when deleting a supplier that products
	// still reference.
	ErrSupplierInUse = pkgerrors.New(pkgerrors.CodeConflict, "Supplier has products and cannot be deleted")
	// ErrUnknownSupplier is returned when a product references a supplier
	// that does not exist.
	ErrUnknownSupplier = pkgerrors.New(pkgerrors.CodeConflict, "Referenced supplier does not exist")
)

// isForeignKeyViolation reports whether err comes from a foreign key
// constraint, whichever driver raised it.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pkgerrors.ForeignKeyViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// storageError wraps a backend fault so handlers answer with a generic 500.
func storageError(err error, op string) error {
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
