package models

import (
	"strings"
	"time"
	"unicode"
)

// Category classifies a product in the catalog.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryRAM         Category = "ram"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryStorage     Category = "storage"
	CategoryMotherboard Category = "motherboard"
	CategoryOther       Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryCPU,
	CategoryGPU,
	CategoryRAM,
	CategoryPSU,
	CategoryCase,
	CategoryStorage,
	CategoryMotherboard,
	CategoryOther,
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// HasPowerScore reports whether products of this category carry a meaningful power score.
func (c Category) HasPowerScore() bool {
	return c == CategoryCPU || c == CategoryGPU
}

// ParseCategory normalizes s and returns the matching category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", NewValidationError("category", "invalid category '"+s+"'")
	}
	return c, nil
}

// Product represents a PC component in the store.
type Product struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(100)"`
	Name       string    `json:"name" gorm:"not null" validate:"required,max=150"`
	Category   Category  `json:"category" gorm:"type:varchar(20);not null;index" validate:"required,oneof=cpu gpu ram psu case storage motherboard other"`
	Price      float64   `json:"price" gorm:"not null" validate:"gt=0"`
	Stock      int       `json:"stock" gorm:"not null;default:0" validate:"gte=0"`
	PowerScore float64   `json:"power_score" gorm:"not null;default:0" validate:"gte=0,lte=100"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProductIDFromName derives the stable catalog id for a product name:
// lowercased, with every whitespace character replaced by a hyphen.
func ProductIDFromName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, strings.ToLower(name))
}
