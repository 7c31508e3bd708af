package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pcstore/internal/cart"
	"pcstore/internal/logging"
	"pcstore/internal/middleware"
	"pcstore/internal/models"
	"pcstore/internal/repositories"
	"pcstore/internal/services"
)

// CartHandler handles the per-session cart and its checkout.
type CartHandler struct {
	catalog  *services.CatalogService
	checkout *services.CheckoutService
	carts    repositories.CartStore
	log      *logrus.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(catalog *services.CatalogService, checkout *services.CheckoutService, carts repositories.CartStore, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		catalog:  catalog,
		checkout: checkout,
		carts:    carts,
		log:      logging.OrDiscard(logger),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", middleware.CartSession())
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Delete("/", h.HandleClear)
	cartRoutes.Post("/finalize", h.HandleFinalize)
	cartRoutes.Delete("/:index", h.HandleRemoveItem)
}

type cartView struct {
	Items    []models.CartLine       `json:"items"`
	Total    float64                 `json:"total"`
	Analysis models.BottleneckReport `json:"analysis"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{Items: c.Items(), Total: c.Total(), Analysis: c.BottleneckAnalysis()}
}

func (h *CartHandler) load(c *fiber.Ctx) (*cart.Cart, error) {
	return h.carts.Load(c.UserContext(), middleware.SessionID(c))
}

func (h *CartHandler) save(c *fiber.Ctx, sc *cart.Cart) error {
	return h.carts.Save(c.UserContext(), middleware.SessionID(c), sc)
}

// HandleGetCart returns the cart lines, total and bottleneck analysis.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	sc, err := h.load(c)
	if err != nil {
		return respondError(c, h.log, "Could not load cart", err)
	}
	return c.JSON(viewOf(sc))
}

type addItemRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// HandleAddItem looks the product up in the catalog and stages it in the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if req.ID == "" {
		return respondError(c, h.log, "Could not add item", models.NewValidationError("id", "id is required"))
	}

	product, err := h.catalog.GetProductByID(c.UserContext(), req.ID)
	if err != nil {
		return respondError(c, h.log, "Could not add item", err)
	}

	sc, err := h.load(c)
	if err != nil {
		return respondError(c, h.log, "Could not load cart", err)
	}
	if err := sc.AddItem(*product, req.Quantity); err != nil {
		return respondError(c, h.log, "Could not add item", err)
	}
	if err := h.save(c, sc); err != nil {
		return respondError(c, h.log, "Could not save cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("%s added to the cart", product.Name),
		"cart":    viewOf(sc),
	})
}

// HandleRemoveItem removes the line at the 0-based index.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return respondError(c, h.log, "Could not remove item", models.NewValidationError("index", "index must be an integer"))
	}

	sc, err := h.load(c)
	if err != nil {
		return respondError(c, h.log, "Could not load cart", err)
	}
	removed, err := sc.RemoveItem(index)
	if err != nil {
		return respondError(c, h.log, "Could not remove item", err)
	}
	if err := h.save(c, sc); err != nil {
		return respondError(c, h.log, "Could not save cart", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s removed from the cart", removed.Name),
		"removed": removed,
		"cart":    viewOf(sc),
	})
}

// HandleClear empties the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.carts.Delete(c.UserContext(), middleware.SessionID(c)); err != nil {
		return respondError(c, h.log, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
		"cart":    viewOf(cart.New()),
	})
}

// HandleFinalize checks the cart out and returns the receipt.
func (h *CartHandler) HandleFinalize(c *fiber.Ctx) error {
	sc, err := h.load(c)
	if err != nil {
		return respondError(c, h.log, "Could not load cart", err)
	}
	receipt, err := h.checkout.Checkout(c.UserContext(), sc)
	if err != nil {
		return respondError(c, h.log, "Checkout failed", err)
	}
	if err := h.carts.Delete(c.UserContext(), middleware.SessionID(c)); err != nil {
		h.log.Warnf("Failed to clear cart for session %s after checkout: %v", middleware.SessionID(c), err)
	}
	return c.JSON(fiber.Map{
		"message": "Purchase completed",
		"receipt": receipt,
	})
}
