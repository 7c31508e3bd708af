package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pcstore/internal/logging"
	"pcstore/internal/models"
)

// GORMReceiptRepository is a GORM implementation of ReceiptRepository.
type GORMReceiptRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewGORMReceiptRepository creates a new instance of GORMReceiptRepository.
func NewGORMReceiptRepository(db *gorm.DB, logger *logrus.Logger) *GORMReceiptRepository {
	return &GORMReceiptRepository{db: db, log: logging.OrDiscard(logger)}
}

// Create stores the receipt and its lines.
func (r *GORMReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		r.log.Errorf("Failed to store receipt %s: %v", receipt.ID, err)
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	r.log.Infof("Stored receipt %s with %d lines", receipt.ID, len(receipt.Lines))
	return nil
}

// GetByID loads a receipt with its lines in checkout order.
func (r *GORMReceiptRepository) GetByID(ctx context.Context, id string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&receipt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, receiptNotFound(id)
		}
		return nil, fmt.Errorf("failed to get receipt by ID %s: %w", id, err)
	}
	return &receipt, nil
}
