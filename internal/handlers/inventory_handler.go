package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pcstore/internal/logging"
	"pcstore/internal/services"
)

// InventoryHandler serves the public catalog.
type InventoryHandler struct {
	service *services.CatalogService
	log     *logrus.Logger
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.CatalogService, logger *logrus.Logger) *InventoryHandler {
	return &InventoryHandler{service: service, log: logging.OrDiscard(logger)}
}

// RegisterRoutes registers the inventory routes with the Fiber app.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventory := router.Group("/inventory")
	inventory.Get("/", h.HandleListAll)
	inventory.Get("/:category", h.HandleListByCategory)
}

// HandleListAll returns every product ordered by category and name.
func (h *InventoryHandler) HandleListAll(c *fiber.Ctx) error {
	products, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "Could not retrieve inventory", err)
	}
	return c.JSON(products)
}

// HandleListByCategory returns the in-stock products of a category.
// A valid category without stock answers 404.
func (h *InventoryHandler) HandleListByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	products, err := h.service.ListByCategory(c.UserContext(), category)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve inventory", err)
	}
	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("No products in stock for category %s", category),
		})
	}
	return c.JSON(products)
}
