package repositories

import (
	"context"
	"fmt"

	"pcstore/internal/models"
)

// ReceiptRepository defines the interface for receipt data access.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	GetByID(ctx context.Context, id string) (*models.Receipt, error)
}

func receiptNotFound(id string) error {
	return &models.Error{
		Kind:    models.KindNotFound,
		Field:   "id",
		ID:      id,
		Message: fmt.Sprintf("receipt with ID %s not found", id),
	}
}
