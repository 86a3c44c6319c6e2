package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"index" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2)" json:"price"`
	HSNSAC      string          `json:"hsn_sac"`
	TaxRate     decimal.Decimal `gorm:"type:numeric(6,2)" json:"tax_rate"`
	ImageURL    string          `json:"image_url"`
	InStock     bool            `gorm:"default:true" json:"in_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
