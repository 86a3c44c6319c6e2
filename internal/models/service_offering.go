package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceOffering is a non-physical catalog entry (installation, AMC, custom
// work). Kept separate from Product because it carries no stock state.
type ServiceOffering struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"index" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2)" json:"price"`
	HSNSAC      string          `json:"hsn_sac"`
	TaxRate     decimal.Decimal `gorm:"type:numeric(6,2)" json:"tax_rate"`
	ImageURL    string          `json:"image_url"`
	Active      bool            `gorm:"default:true" json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
