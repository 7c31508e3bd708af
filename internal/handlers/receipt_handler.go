package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pcstore/internal/logging"
	"pcstore/internal/services"
)

// ReceiptHandler serves stored receipts.
type ReceiptHandler struct {
	service *services.CheckoutService
	log     *logrus.Logger
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(service *services.CheckoutService, logger *logrus.Logger) *ReceiptHandler {
	return &ReceiptHandler{service: service, log: logging.OrDiscard(logger)}
}

// RegisterRoutes registers the receipt routes with the Fiber app.
func (h *ReceiptHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/receipts/:id", h.HandleGetReceipt)
}

// HandleGetReceipt retrieves a receipt by its ID.
func (h *ReceiptHandler) HandleGetReceipt(c *fiber.Ctx) error {
	receipt, err := h.service.GetReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve receipt", err)
	}
	return c.JSON(receipt)
}
