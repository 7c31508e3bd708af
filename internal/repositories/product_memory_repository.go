package repositories

import (
	"context"
	"sort"
	"sync"

	"pcstore/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// A single mutex makes every stock adjustment atomic.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products ordered by category and name.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sortProducts(productList)
	return productList, nil
}

// GetInStockByCategory returns in-stock products of the category ordered by name.
func (r *MemoryProductRepository) GetInStockByCategory(_ context.Context, category models.Category) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := []models.Product{}
	for _, p := range r.products {
		if p.Category == category && p.Stock > 0 {
			productList = append(productList, p)
		}
	}
	sortProducts(productList)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, models.NewProductNotFoundError(id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = models.ProductIDFromName(product.Name)
	}
	if _, ok := r.products[product.ID]; ok {
		return models.NewDuplicateIDError(product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return models.NewProductNotFoundError(id)
	}
	delete(r.products, id)
	return nil
}

// AdjustStock applies stock += delta under the write lock.
func (r *MemoryProductRepository) AdjustStock(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return models.NewProductNotFoundError(id)
	}
	if product.Stock+delta < 0 {
		return models.NewInsufficientStockError(id, -delta, product.Stock)
	}
	product.Stock += delta
	r.products[id] = product
	return nil
}

// Withdraw validates every change before applying any of them.
func (r *MemoryProductRepository) Withdraw(_ context.Context, changes []StockChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := mergeChanges(changes)
	for _, ch := range merged {
		product, ok := r.products[ch.ProductID]
		if !ok {
			return models.NewProductNotFoundError(ch.ProductID)
		}
		if product.Stock < ch.Quantity {
			return models.NewInsufficientStockError(ch.ProductID, ch.Quantity, product.Stock)
		}
	}
	for _, ch := range merged {
		product := r.products[ch.ProductID]
		product.Stock -= ch.Quantity
		r.products[ch.ProductID] = product
	}
	return nil
}

// Count returns the number of products.
func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func sortProducts(products []models.Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].Category != products[j].Category {
			return products[i].Category < products[j].Category
		}
		return products[i].Name < products[j].Name
	})
}
