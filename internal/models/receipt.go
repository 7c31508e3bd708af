package models

import "time"

// ReceiptLine snapshots a single cart line at checkout time.
type ReceiptLine struct {
	ID        uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	ReceiptID string  `json:"-" gorm:"type:varchar(36);index;not null"`
	ProductID string  `json:"product_id" gorm:"type:varchar(100);not null"`
	Name      string  `json:"name" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"` // price captured when the item was added
	Subtotal  float64 `json:"subtotal" gorm:"not null"`
}

// Receipt is the confirmed result of a checkout.
type Receipt struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Lines     []ReceiptLine `json:"lines" gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
	Total     float64       `json:"total" gorm:"not null"`
	CreatedAt time.Time     `json:"created_at"`
}
