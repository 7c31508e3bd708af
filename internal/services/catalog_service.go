package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"pcstore/internal/database"
	"pcstore/internal/logging"
	"pcstore/internal/models"
	"pcstore/internal/repositories"
)

// NewProductInput carries the fields an admin supplies to add a product.
// ID is optional and derived from Name when empty.
type NewProductInput struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	PowerScore float64 `json:"power_score"`
}

// CatalogService handles business logic related to the product catalog.
type CatalogService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
	log      *logrus.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		validate: newValidator(),
		log:      logging.OrDiscard(logger),
	}
}

// newValidator reports field names by their json tag so errors name the
// same field the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationError converts the first validator failure into a tagged error.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return models.NewValidationError(fe.Field(), fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag()))
	}
	return models.NewValidationError("", err.Error())
}

// ListAll retrieves every product ordered by category and name.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// ListByCategory retrieves the in-stock products of a category.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	c, err := models.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.repo.GetInStockByCategory(ctx, c)
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// AddProduct validates the input and stores a new product.
func (s *CatalogService) AddProduct(ctx context.Context, in NewProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("name", "name must not be empty")
	}
	if !finite(in.Price) {
		return nil, models.NewValidationError("price", "price must be a finite number")
	}
	if !finite(in.PowerScore) {
		return nil, models.NewValidationError("power_score", "power_score must be a finite number")
	}
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:         strings.TrimSpace(in.ID),
		Name:       in.Name,
		Category:   category,
		Price:      in.Price,
		Stock:      in.Stock,
		PowerScore: in.PowerScore,
	}
	if product.ID == "" {
		product.ID = models.ProductIDFromName(in.Name)
	}
	if err := s.validate.Struct(product); err != nil {
		return nil, validationError(err)
	}
	if !category.HasPowerScore() && product.PowerScore != 0 {
		return nil, models.NewValidationError("power_score", fmt.Sprintf("power_score only applies to cpu and gpu products, got category %s", category))
	}

	if _, err := s.repo.GetByID(ctx, product.ID); err == nil {
		return nil, models.NewDuplicateIDError(product.ID)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.log.Infof("Catalog: added product %s (%s) with stock %d", product.ID, product.Category, product.Stock)
	return product, nil
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// RemoveProduct deletes a product. Carts holding the product keep their snapshot.
func (s *CatalogService) RemoveProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Catalog: removed product %s", id)
	return nil
}

// AdjustStock applies stock += delta atomically in storage.
func (s *CatalogService) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	if err := s.repo.AdjustStock(ctx, id, delta); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Seed loads the sample inventory when the catalog is empty.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	return database.SeedProducts(ctx, s.repo, s.log)
}
