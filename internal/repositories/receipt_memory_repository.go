package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pcstore/internal/models"
)

// MemoryReceiptRepository is an in-memory implementation of ReceiptRepository.
type MemoryReceiptRepository struct {
	receipts map[string]models.Receipt
	mu       sync.RWMutex
}

// NewMemoryReceiptRepository creates a new instance of MemoryReceiptRepository.
func NewMemoryReceiptRepository() *MemoryReceiptRepository {
	return &MemoryReceiptRepository{receipts: make(map[string]models.Receipt)}
}

// Create adds a new receipt.
func (r *MemoryReceiptRepository) Create(_ context.Context, receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	stored := *receipt
	stored.Lines = append([]models.ReceiptLine(nil), receipt.Lines...)
	r.receipts[receipt.ID] = stored
	return nil
}

// GetByID returns a receipt by its ID.
func (r *MemoryReceiptRepository) GetByID(_ context.Context, id string) (*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return nil, receiptNotFound(id)
	}
	receipt.Lines = append([]models.ReceiptLine(nil), receipt.Lines...)
	return &receipt, nil
}
