package models

import "time"

// SaleEventType is the routing name of a completed checkout event.
const SaleEventType = "sale.completed"

// SaleEvent is published after a checkout commits.
type SaleEvent struct {
	Type       string        `json:"type"`
	ReceiptID  string        `json:"receipt_id"`
	Total      float64       `json:"total"`
	Lines      []ReceiptLine `json:"lines"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewSaleEvent builds the event for a stored receipt.
func NewSaleEvent(receipt *Receipt) SaleEvent {
	return SaleEvent{
		Type:       SaleEventType,
		ReceiptID:  receipt.ID,
		Total:      receipt.Total,
		Lines:      receipt.Lines,
		OccurredAt: receipt.CreatedAt,
	}
}
