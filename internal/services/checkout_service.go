package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"pcstore/internal/cart"
	"pcstore/internal/logging"
	"pcstore/internal/models"
	"pcstore/internal/repositories"
)

// EventPublisher delivers sale events to downstream consumers.
type EventPublisher interface {
	PublishSaleCompleted(ctx context.Context, event models.SaleEvent) error
}

// CheckoutService finalizes carts into receipts. Stock is reserved only here:
// every line is withdrawn in one all-or-nothing step.
type CheckoutService struct {
	products  repositories.ProductRepository
	receipts  repositories.ReceiptRepository
	publisher EventPublisher
	log       *logrus.Logger
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(products repositories.ProductRepository, receipts repositories.ReceiptRepository, publisher EventPublisher, logger *logrus.Logger) *CheckoutService {
	return &CheckoutService{
		products:  products,
		receipts:  receipts,
		publisher: publisher,
		log:       logging.OrDiscard(logger),
	}
}

// Checkout withdraws the cart's stock, stores a receipt and clears the cart.
// On failure neither stock nor the cart is changed.
func (s *CheckoutService) Checkout(ctx context.Context, c *cart.Cart) (*models.Receipt, error) {
	if c.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	items := c.Items()
	changes := make([]repositories.StockChange, 0, len(items))
	lines := make([]models.ReceiptLine, 0, len(items))
	for _, item := range items {
		changes = append(changes, repositories.StockChange{ProductID: item.ProductID, Quantity: item.Quantity})
		subtotal := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, models.ReceiptLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal.InexactFloat64(),
		})
	}

	if err := s.products.Withdraw(ctx, changes); err != nil {
		s.log.Warnf("Checkout rejected: %v", err)
		return nil, err
	}

	receipt := &models.Receipt{
		ID:        uuid.New().String(),
		Lines:     lines,
		Total:     c.TotalDecimal().InexactFloat64(),
		CreatedAt: time.Now(),
	}
	if err := s.receipts.Create(ctx, receipt); err != nil {
		s.restock(ctx, changes)
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	c.Clear()
	s.log.Infof("Checkout completed: receipt %s, %d lines, total %.2f", receipt.ID, len(receipt.Lines), receipt.Total)

	if s.publisher != nil {
		if err := s.publisher.PublishSaleCompleted(ctx, models.NewSaleEvent(receipt)); err != nil {
			s.log.Warnf("Failed to publish sale event for receipt %s: %v", receipt.ID, err)
		}
	}
	return receipt, nil
}

// GetReceipt retrieves a stored receipt by its ID.
func (s *CheckoutService) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	return s.receipts.GetByID(ctx, id)
}

// restock returns withdrawn stock after a failed receipt write.
func (s *CheckoutService) restock(ctx context.Context, changes []repositories.StockChange) {
	for _, ch := range changes {
		if err := s.products.AdjustStock(ctx, ch.ProductID, ch.Quantity); err != nil {
			s.log.Errorf("Failed to restock %d units of product %s: %v", ch.Quantity, ch.ProductID, err)
		}
	}
}
