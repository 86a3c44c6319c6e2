package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order is a checkout submission from the storefront. OrderNo comes from the
// same fiscal-year allocator as invoice numbers, under the "order" kind.
type Order struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNo string    `gorm:"uniqueIndex" json:"order_no"`

	CustomerName  string `gorm:"index" json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	ShippingAddress datatypes.JSONType[Address] `json:"shipping_address"`

	Subtotal       decimal.Decimal `gorm:"type:numeric(14,2)" json:"subtotal"`
	ShippingAmount decimal.Decimal `gorm:"type:numeric(14,2)" json:"shipping_amount"`
	Total          decimal.Decimal `gorm:"type:numeric(14,2)" json:"total"`

	Status    string    `gorm:"index" json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots the catalog row at checkout time so later price edits
// don't rewrite history.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`

	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)" json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:numeric(14,2)" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
}
