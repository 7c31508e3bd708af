// Package cart holds the in-memory staging of a purchase.
//
// A Cart is owned by its caller (an HTTP session, a CLI process) and is not
// safe for concurrent use. It never touches the catalog: stock is reconciled
// by the checkout service.
package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"pcstore/internal/models"
)

type line struct {
	ProductID  string          `json:"id"`
	Name       string          `json:"name"`
	Category   models.Category `json:"category"`
	UnitPrice  float64         `json:"price"`
	PowerScore float64         `json:"power_score"`
	Quantity   int             `json:"quantity"`
}

func (l line) subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l line) view() models.CartLine {
	return models.CartLine{
		ProductID:  l.ProductID,
		Name:       l.Name,
		Category:   l.Category,
		UnitPrice:  l.UnitPrice,
		PowerScore: l.PowerScore,
		Quantity:   l.Quantity,
		Subtotal:   l.subtotal().InexactFloat64(),
	}
}

// Cart is an ordered list of lines, at most one per product id.
type Cart struct {
	lines []line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem stages quantity units of product. Only the requested quantity is
// checked against the product's current stock; a repeated add increments the
// existing line without re-validating the accumulated total.
func (c *Cart) AddItem(product models.Product, quantity int) error {
	if quantity <= 0 {
		return models.NewValidationError("quantity", "quantity must be a positive integer")
	}
	if quantity > product.Stock {
		return models.NewInsufficientStockError(product.ID, quantity, product.Stock)
	}

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, line{
		ProductID:  product.ID,
		Name:       product.Name,
		Category:   product.Category,
		UnitPrice:  product.Price,
		PowerScore: product.PowerScore,
		Quantity:   quantity,
	})
	return nil
}

// RemoveItem removes and returns the line at the 0-based index.
func (c *Cart) RemoveItem(index int) (models.CartLine, error) {
	if index < 0 || index >= len(c.lines) {
		return models.CartLine{}, &models.Error{
			Kind:    models.KindNotFound,
			Field:   "index",
			Message: fmt.Sprintf("cart index %d out of range (cart has %d lines)", index, len(c.lines)),
		}
	}
	removed := c.lines[index]
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return removed.view(), nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.CartLine {
	items := make([]models.CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, l.view())
	}
	return items
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total returns the sum of all line subtotals.
func (c *Cart) Total() float64 {
	return c.TotalDecimal().InexactFloat64()
}

// TotalDecimal returns the exact sum of all line subtotals.
func (c *Cart) TotalDecimal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.subtotal())
	}
	return total
}

type snapshot struct {
	Lines []line `json:"lines"`
}

// MarshalJSON encodes the cart for session storage.
func (c *Cart) MarshalJSON() ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []line{}
	}
	return json.Marshal(snapshot{Lines: lines})
}

// UnmarshalJSON restores a cart written by MarshalJSON.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode cart: %w", err)
	}
	c.lines = s.Lines
	return nil
}
