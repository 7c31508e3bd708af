package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"pcstore/internal/logging"
	"pcstore/internal/models"
	"pcstore/internal/repositories"
)

// SampleProducts returns the demo inventory.
func SampleProducts() []models.Product {
	return []models.Product{
		{ID: "intel-i5-13600k", Name: "Intel Core i5-13600K", Category: models.CategoryCPU, Price: 320, Stock: 15, PowerScore: 80},
		{ID: "intel-i7-13700k", Name: "Intel Core i7-13700K", Category: models.CategoryCPU, Price: 450, Stock: 10, PowerScore: 90},
		{ID: "amd-ryzen-5-7600x", Name: "AMD Ryzen 5 7600X", Category: models.CategoryCPU, Price: 250, Stock: 20, PowerScore: 75},
		{ID: "amd-ryzen-7-7800x3d", Name: "AMD Ryzen 7 7800X3D", Category: models.CategoryCPU, Price: 400, Stock: 8, PowerScore: 92},
		{ID: "nvidia-rtx-4060", Name: "NVIDIA GeForce RTX 4060 8GB", Category: models.CategoryGPU, Price: 350, Stock: 12, PowerScore: 78},
		{ID: "nvidia-rtx-4070-super", Name: "NVIDIA GeForce RTX 4070 Super 12GB", Category: models.CategoryGPU, Price: 650, Stock: 7, PowerScore: 93},
		{ID: "amd-rx-7700-xt", Name: "AMD Radeon RX 7700 XT 12GB", Category: models.CategoryGPU, Price: 480, Stock: 10, PowerScore: 85},
		{ID: "amd-rx-7900-xtx", Name: "AMD Radeon RX 7900 XTX 24GB", Category: models.CategoryGPU, Price: 1000, Stock: 5, PowerScore: 98},
		{ID: "corsair-ddr5-32gb-6000", Name: "Corsair Vengeance 32GB DDR5 6000MHz", Category: models.CategoryRAM, Price: 110, Stock: 25},
		{ID: "gskill-ddr5-32gb-6400", Name: "G.Skill Trident Z5 32GB DDR5 6400MHz", Category: models.CategoryRAM, Price: 130, Stock: 18},
		{ID: "corsair-rm750e", Name: "Corsair RM750e 750W Gold", Category: models.CategoryPSU, Price: 100, Stock: 30},
		{ID: "seasonic-focus-850w", Name: "Seasonic FOCUS Plus 850W Gold", Category: models.CategoryPSU, Price: 140, Stock: 22},
		{ID: "samsung-980-pro-1tb", Name: "Samsung 980 Pro 1TB NVMe SSD", Category: models.CategoryStorage, Price: 90, Stock: 40},
		{ID: "asus-rog-strix-b650e", Name: "ASUS ROG STRIX B650E-F Gaming WiFi", Category: models.CategoryMotherboard, Price: 280, Stock: 15},
		{ID: "nzxt-h5-flow", Name: "NZXT H5 Flow", Category: models.CategoryCase, Price: 85, Stock: 18},
	}
}

// SeedProducts inserts SampleProducts when the catalog is empty and returns
// how many products were inserted.
func SeedProducts(ctx context.Context, repo repositories.ProductRepository, logger *logrus.Logger) (int, error) {
	log := logging.OrDiscard(logger)

	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Debugf("Catalog already has %d products, skipping seed", count)
		return 0, nil
	}

	products := SampleProducts()
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("failed to seed product %s: %w", products[i].ID, err)
		}
	}
	log.Infof("Seeded %d sample products", len(products))
	return len(products), nil
}
