// Package server assembles the fiber application from its services.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"pcstore/internal/handlers"
	"pcstore/internal/logging"
	"pcstore/internal/middleware"
	"pcstore/internal/repositories"
	"pcstore/internal/services"
)

// Deps are the collaborators the HTTP layer is built on.
type Deps struct {
	Catalog  *services.CatalogService
	Checkout *services.CheckoutService
	Auth     *services.AuthService
	Carts    repositories.CartStore
	Logger   *logrus.Logger
	// RequestLog enables fiber's request logger middleware.
	RequestLog bool
}

type route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var routeIndex = []route{
	{fiber.MethodGet, "/api/inventory", "List every product"},
	{fiber.MethodGet, "/api/inventory/:category", "List in-stock products of a category"},
	{fiber.MethodGet, "/api/products/:id", "Get a product"},
	{fiber.MethodPost, "/api/products", "Add a product (admin)"},
	{fiber.MethodDelete, "/api/products/:id", "Delete a product (admin)"},
	{fiber.MethodPatch, "/api/products/:id/stock", "Adjust stock by {delta} (admin)"},
	{fiber.MethodPost, "/api/auth/login", "Admin login"},
	{fiber.MethodGet, "/api/cart", "Cart items, total and bottleneck analysis"},
	{fiber.MethodPost, "/api/cart", "Add {id, quantity} to the cart"},
	{fiber.MethodDelete, "/api/cart/:index", "Remove a cart line"},
	{fiber.MethodDelete, "/api/cart", "Clear the cart"},
	{fiber.MethodPost, "/api/cart/finalize", "Check out the cart"},
	{fiber.MethodGet, "/api/receipts/:id", "Get a receipt"},
}

// New builds the fiber app with every route registered.
func New(deps Deps) *fiber.App {
	log := logging.OrDiscard(deps.Logger)

	app := fiber.New(fiber.Config{
		AppName:               "pcstore",
		DisableStartupMessage: true,
	})
	if deps.RequestLog {
		app.Use(logger.New(logger.Config{Output: log.Writer()}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "PC components store API",
			"routes":  routeIndex,
		})
	})

	adminOnly := middleware.AdminRequired(deps.Auth, log)

	handlers.NewInventoryHandler(deps.Catalog, log).RegisterRoutes(api)
	handlers.NewProductHandler(deps.Catalog, log).RegisterRoutes(api, adminOnly)
	handlers.NewAuthHandler(deps.Auth, log).RegisterRoutes(api)
	handlers.NewCartHandler(deps.Catalog, deps.Checkout, deps.Carts, log).RegisterRoutes(api)
	handlers.NewReceiptHandler(deps.Checkout, log).RegisterRoutes(api)

	return app
}
