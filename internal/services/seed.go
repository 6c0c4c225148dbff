package services

import (
	"context"
	"fmt"

	"inventory/internal/models"
	"inventory/internal/repositories"
)

func demoProducts() []models.ProductInput {
	product := func(name string, quantity int, price float64) models.ProductInput {
		category := "Kontorsmaterial"
		return models.ProductInput{Name: &name, Quantity: &quantity, Price: &price, Category: &category}
	}
	return []models.ProductInput{
		product("Pennor", 50, 2),
		product("Anteckningsblock", 30, 15),
		product("Häftapparat", 10, 120),
		product("Pärm", 25, 35),
		product("Tuschpennor", 40, 25),
	}
}

// SeedProducts fills an empty product collection with the demo catalog and
// returns how many products were created. A non-empty collection is left
// untouched.
func SeedProducts(ctx context.Context, repo repositories.ProductRepository) (int, error) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	seeded := 0
	for _, in := range demoProducts() {
		if _, err := repo.Create(ctx, in); err != nil {
			return seeded, fmt.Errorf("seeding product %s: %w", *in.Name, err)
		}
		seeded++
	}
	return seeded, nil
}
