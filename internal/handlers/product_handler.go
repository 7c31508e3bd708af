package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pcstore/internal/logging"
	"pcstore/internal/services"
)

// ProductHandler handles single-product lookups and admin catalog management.
type ProductHandler struct {
	service *services.CatalogService
	log     *logrus.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: logging.OrDiscard(logger)}
}

// RegisterRoutes registers the product routes. Mutating routes go through adminOnly.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	products := router.Group("/products")
	products.Get("/:id", h.HandleGetProduct)
	products.Post("/", adminOnly, h.HandleCreateProduct)
	products.Delete("/:id", adminOnly, h.HandleDeleteProduct)
	products.Patch("/:id/stock", adminOnly, h.HandleAdjustStock)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct adds a product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.NewProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	product, err := h.service.AddProduct(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleDeleteProduct removes a product from the catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.RemoveProduct(c.UserContext(), id); err != nil {
		return respondError(c, h.log, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product " + id + " deleted successfully",
	})
}

type adjustStockRequest struct {
	Delta *int `json:"delta"`
}

// HandleAdjustStock applies a signed stock delta.
func (h *ProductHandler) HandleAdjustStock(c *fiber.Ctx) error {
	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if req.Delta == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "delta is required",
			"kind":    "validation",
			"field":   "delta",
		})
	}

	product, err := h.service.AdjustStock(c.UserContext(), c.Params("id"), *req.Delta)
	if err != nil {
		return respondError(c, h.log, "Could not adjust stock", err)
	}
	return c.JSON(product)
}
