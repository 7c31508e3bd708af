package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pcstore/internal/logging"
	"pcstore/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB, logger *logrus.Logger) *GORMProductRepository {
	return &GORMProductRepository{
		db:  db,
		log: logging.OrDiscard(logger),
	}
}

// GetAll retrieves all products ordered by category and name.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&products).Error; err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

// GetInStockByCategory retrieves the products of a category that have stock left.
func (r *GORMProductRepository) GetInStockByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ? AND stock > 0", category).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		r.log.Errorf("Failed to list products for category %s: %v", category, err)
		return nil, fmt.Errorf("failed to get products by category %s: %w", category, err)
	}
	r.log.Debugf("Retrieved %d in-stock products for category %s", len(products), category)
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewProductNotFoundError(id)
		}
		r.log.Errorf("Failed to get product by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product. The id is derived from the name when empty.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = models.ProductIDFromName(product.Name)
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || r.exists(ctx, product.ID) {
			r.log.Warnf("Attempted to create duplicate product ID %s", product.ID)
			return models.NewDuplicateIDError(product.ID)
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.log.Infof("Product created with ID: %s, Name: %s", product.ID, product.Name)
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", id, res.Error)
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id)
		return models.NewProductNotFoundError(id)
	}
	r.log.Infof("Product deleted with ID: %s", id)
	return nil
}

// AdjustStock runs UPDATE products SET stock = stock + delta guarded by the
// non-negative stock condition, so concurrent adjustments never lose updates.
func (r *GORMProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		r.log.Errorf("Failed to adjust stock for product ID %s by %d: %v", id, delta, res.Error)
		return fmt.Errorf("failed to adjust stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		err := r.stockFailure(db, id, -delta)
		r.log.Warnf("Stock adjustment of %d rejected for product ID %s: %v", delta, id, err)
		return err
	}
	r.log.Infof("Adjusted stock for product ID %s by %d", id, delta)
	return nil
}

// Withdraw decrements stock for every change inside one transaction. The
// first change that cannot be applied rolls back all of them.
func (r *GORMProductRepository) Withdraw(ctx context.Context, changes []StockChange) error {
	merged := mergeChanges(changes)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ch := range merged {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", ch.ProductID, ch.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", ch.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to withdraw stock for product %s: %w", ch.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return r.stockFailure(tx, ch.ProductID, ch.Quantity)
			}
		}
		return nil
	})
	if err != nil {
		if _, tagged := models.AsError(err); tagged {
			r.log.Warnf("Stock withdrawal rolled back: %v", err)
		} else {
			r.log.Errorf("Stock withdrawal failed: %v", err)
		}
		return err
	}
	r.log.Infof("Withdrew stock for %d products", len(merged))
	return nil
}

// Count returns the number of products in the catalog.
func (r *GORMProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// stockFailure explains why a guarded stock update matched no row.
func (r *GORMProductRepository) stockFailure(db *gorm.DB, id string, requested int) error {
	var product models.Product
	if err := db.Select("id", "stock").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewProductNotFoundError(id)
		}
		return fmt.Errorf("failed to read stock for product %s: %w", id, err)
	}
	return models.NewInsufficientStockError(id, requested, product.Stock)
}

func (r *GORMProductRepository) exists(ctx context.Context, id string) bool {
	var n int64
	r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&n)
	return n > 0
}

// mergeChanges sums quantities per product, keeping first-seen order.
func mergeChanges(changes []StockChange) []StockChange {
	index := make(map[string]int, len(changes))
	merged := make([]StockChange, 0, len(changes))
	for _, ch := range changes {
		if i, ok := index[ch.ProductID]; ok {
			merged[i].Quantity += ch.Quantity
			continue
		}
		index[ch.ProductID] = len(merged)
		merged = append(merged, ch)
	}
	return merged
}
