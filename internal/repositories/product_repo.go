package repositories

import (
	"context"

	"pcstore/internal/models"
)

// StockChange is a quantity to take out of a product's stock.
type StockChange struct {
	ProductID string
	Quantity  int
}

// ProductRepository defines the interface for catalog data access.
//
// Stock is only ever mutated with arithmetic updates applied by the storage
// layer, never by writing back a value read earlier.
type ProductRepository interface {
	// GetAll returns every product ordered by category, then name.
	GetAll(ctx context.Context) ([]models.Product, error)
	// GetInStockByCategory returns products of the category with stock > 0, ordered by name.
	GetInStockByCategory(ctx context.Context, category models.Category) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	// AdjustStock applies stock += delta atomically. It fails with
	// InsufficientStock rather than letting stock go below zero.
	AdjustStock(ctx context.Context, id string, delta int) error
	// Withdraw takes every change out of stock, or none of them.
	Withdraw(ctx context.Context, changes []StockChange) error
	Count(ctx context.Context) (int64, error)
}
