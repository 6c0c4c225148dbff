package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"inventory/internal/database"
	"inventory/internal/models"
	"inventory/internal/repositories"
	pkgerrors "inventory/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	name      string
	products  repositories.ProductRepository
	suppliers repositories.SupplierRepository
}

func backends(t *testing.T) []backend {
	t.Helper()

	store := repositories.NewMemoryStore()

	db, err := database.OpenSQLite(fmt.Sprintf("file:repo-%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background(), nil))

	return []backend{
		{
			name:      "memory",
			products:  repositories.NewMemoryProductRepository(store),
			suppliers: repositories.NewMemorySupplierRepository(store),
		},
		{
			name:      "sqlite",
			products:  repositories.NewGORMProductRepository(db.DB()),
			suppliers: repositories.NewGORMSupplierRepository(db.DB()),
		},
	}
}

func ptr[T any](v T) *T { return &v }

func productInput(name string, quantity int, price float64) models.ProductInput {
	return models.ProductInput{
		Name:     ptr(name),
		Quantity: ptr(quantity),
		Price:    ptr(price),
		Category: ptr("Kontorsmaterial"),
	}
}

func supplierInput(name string) models.SupplierInput {
	return models.SupplierInput{
		Name:          ptr(name),
		ContactPerson: ptr("Anna Berg"),
		Email:         ptr("anna@nordicsupply.se"),
		Phone:         ptr("+46 8 123 45"),
		Country:       ptr("Sweden"),
	}
}

func TestProductIDsIncreaseAndAreNotReused(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			first, err := b.products.Create(ctx, productInput("Pennor", 50, 2))
			require.NoError(t, err)
			second, err := b.products.Create(ctx, productInput("Pärm", 25, 35))
			require.NoError(t, err)
			assert.Greater(t, second.ID, first.ID)

			_, err = b.products.Delete(ctx, second.ID)
			require.NoError(t, err)

			third, err := b.products.Create(ctx, productInput("Sax", 20, 30))
			require.NoError(t, err)
			assert.Greater(t, third.ID, second.ID)

			all, err := b.products.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, first.ID, all[0].ID)
			assert.Equal(t, third.ID, all[1].ID)
		})
	}
}

func TestProductEmptyUpdateIsNoop(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			created, err := b.products.Create(ctx, productInput("Häftapparat", 10, 120))
			require.NoError(t, err)

			updated, err := b.products.Update(ctx, created.ID, models.ProductInput{})
			require.NoError(t, err)
			assert.Equal(t, created, updated)

			updated, err = b.products.Update(ctx, created.ID, models.ProductInput{Price: ptr(130.0)})
			require.NoError(t, err)
			assert.Equal(t, 130.0, updated.Price)
			assert.Equal(t, "Häftapparat", updated.Name)
			assert.Equal(t, 10, updated.Quantity)
		})
	}
}

func TestProductNotFoundAfterDelete(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			created, err := b.products.Create(ctx, productInput("Tuschpennor", 40, 25))
			require.NoError(t, err)

			removed, err := b.products.Delete(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, removed)

			_, err = b.products.GetByID(ctx, created.ID)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
			_, err = b.products.Update(ctx, created.ID, models.ProductInput{Quantity: ptr(1)})
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
			_, err = b.products.Delete(ctx, created.ID)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
			assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
		})
	}
}

func TestProductRejectsUnknownSupplier(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			in := productInput("Sax", 20, 30)
			in.SupplierID = ptr(int64(404))
			_, err := b.products.Create(ctx, in)
			assert.ErrorIs(t, err, repositories.ErrUnknownSupplier)

			all, err := b.products.GetAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestSupplierInUseCannotBeDeleted(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			supplier, err := b.suppliers.Create(ctx, supplierInput("Nordic Supply AB"))
			require.NoError(t, err)

			in := productInput("Pennor", 50, 2)
			in.SupplierID = ptr(supplier.ID)
			product, err := b.products.Create(ctx, in)
			require.NoError(t, err)
			require.NotNil(t, product.SupplierID)
			assert.Equal(t, supplier.ID, *product.SupplierID)

			_, err = b.suppliers.Delete(ctx, supplier.ID)
			assert.ErrorIs(t, err, repositories.ErrSupplierInUse)
			assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))

			detail, err := b.suppliers.GetByID(ctx, supplier.ID)
			require.NoError(t, err)
			assert.Equal(t, *supplier, detail.Supplier)
			assert.Equal(t, int64(1), detail.ProductCount)

			products, err := b.suppliers.GetProducts(ctx, supplier.ID)
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, product.ID, products[0].ID)

			_, err = b.products.Delete(ctx, product.ID)
			require.NoError(t, err)
			removed, err := b.suppliers.Delete(ctx, supplier.ID)
			require.NoError(t, err)
			assert.Equal(t, supplier, removed)

			_, err = b.suppliers.GetByID(ctx, supplier.ID)
			assert.ErrorIs(t, err, repositories.ErrSupplierNotFound)
		})
	}
}

func TestSupplierUpdateAndListing(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			first, err := b.suppliers.Create(ctx, supplierInput("Nordic Supply AB"))
			require.NoError(t, err)
			second, err := b.suppliers.Create(ctx, supplierInput("Kontorsgrossisten"))
			require.NoError(t, err)
			assert.Greater(t, second.ID, first.ID)

			updated, err := b.suppliers.Update(ctx, first.ID, models.SupplierInput{Country: ptr("Norway")})
			require.NoError(t, err)
			assert.Equal(t, "Norway", updated.Country)
			assert.Equal(t, "Nordic Supply AB", updated.Name)

			_, err = b.suppliers.Update(ctx, 999, models.SupplierInput{Country: ptr("Norway")})
			assert.ErrorIs(t, err, repositories.ErrSupplierNotFound)

			all, err := b.suppliers.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, first.ID, all[0].ID)

			detail, err := b.suppliers.GetByID(ctx, second.ID)
			require.NoError(t, err)
			assert.Zero(t, detail.ProductCount)

			products, err := b.suppliers.GetProducts(ctx, 999)
			require.NoError(t, err)
			assert.NotNil(t, products)
			assert.Empty(t, products)
		})
	}
}

func TestProductUpdateReportsMissingProductBeforeSupplier(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			_, err := b.products.Update(ctx, 999, models.ProductInput{SupplierID: ptr(int64(999))})
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)

			created, err := b.products.Create(ctx, productInput("Pennor", 50, 2))
			require.NoError(t, err)
			_, err = b.products.Update(ctx, created.ID, models.ProductInput{SupplierID: ptr(int64(999))})
			assert.ErrorIs(t, err, repositories.ErrUnknownSupplier)

			stored, err := b.products.GetByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Nil(t, stored.SupplierID)
		})
	}
}

func TestProductCreateReturnsStoredRow(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			created, err := b.products.Create(ctx, productInput("Sax", 20, 30.5))
			require.NoError(t, err)

			stored, err := b.products.GetByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, stored, created)
		})
	}
}
