package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TaxType selects how a line item's tax splits across GST heads.
type TaxType string

const (
	// TaxTypeCGSTSGST splits the tax half/half between CGST and SGST (intra-state supply).
	TaxTypeCGSTSGST TaxType = "cgst_sgst"
	// TaxTypeIGST books the full tax under IGST (inter-state supply).
	TaxTypeIGST TaxType = "igst"
)

// InvoiceType classifies the fiscal document.
type InvoiceType string

const (
	InvoiceTypeTax          InvoiceType = "tax_invoice"
	InvoiceTypeBillOfSupply InvoiceType = "bill_of_supply"
	InvoiceTypeCashMemo     InvoiceType = "cash_memo"
)

// QRMode discriminates the payment-QR override variant on an invoice.
type QRMode string

const (
	QRModeInherit QRMode = "inherit" // use the account-level default
	QRModeImage   QRMode = "image"   // fixed QR image URL
	QRModeUPI     QRMode = "upi"     // UPI deep link generated from a VPA
	QRModeLink    QRMode = "link"    // arbitrary payment URL
)

// Address is a structured postal address with optional tax identifiers.
type Address struct {
	Line    string `json:"line,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
	PAN     string `json:"pan,omitempty"`
}

// QROverride is the tagged payment-QR variant. Exactly one payload field is
// meaningful per mode: ImageURL for image, VPA for upi, URL for link, none for
// inherit.
type QROverride struct {
	Mode       QRMode          `json:"mode"`
	ImageURL   string          `json:"image_url,omitempty"`
	VPA        string          `json:"vpa,omitempty"`
	URL        string          `json:"url,omitempty"`
	LockAmount bool            `json:"lock_amount,omitempty"`
	Amount     decimal.Decimal `json:"amount,omitempty"`
	Note       string          `json:"note,omitempty"`
}

type Invoice struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNo     string      `gorm:"uniqueIndex" json:"invoice_no"`
	InvoiceDate   time.Time   `json:"invoice_date"`
	InvoiceType   InvoiceType `gorm:"index" json:"invoice_type"`
	PlaceOfSupply string      `json:"place_of_supply"`

	BillingAddress  datatypes.JSONType[Address] `json:"billing_address"`
	ShippingAddress datatypes.JSONType[Address] `json:"shipping_address"`

	Subtotal       decimal.Decimal `gorm:"type:numeric(14,2)" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(14,2)" json:"discount_amount"`
	ShippingAmount decimal.Decimal `gorm:"type:numeric(14,2)" json:"shipping_amount"`
	TaxCGST        decimal.Decimal `gorm:"type:numeric(14,2)" json:"tax_cgst"`
	TaxSGST        decimal.Decimal `gorm:"type:numeric(14,2)" json:"tax_sgst"`
	TaxIGST        decimal.Decimal `gorm:"type:numeric(14,2)" json:"tax_igst"`
	GrandTotal     decimal.Decimal `gorm:"type:numeric(14,2)" json:"grand_total"`

	AmountInWords string                         `json:"amount_in_words"`
	QROverride    datatypes.JSONType[QROverride] `json:"qr_override"`

	Status    string    `gorm:"index" json:"status"`
	CreatedBy string    `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

type InvoiceLineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index" json:"invoice_id"`

	Description string `json:"description"`
	HSNSAC      string `json:"hsn_sac"`

	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)" json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `gorm:"type:numeric(14,2)" json:"discount"`
	NetAmount decimal.Decimal `gorm:"type:numeric(14,2)" json:"net_amount"`

	TaxRate   decimal.Decimal `gorm:"type:numeric(6,2)" json:"tax_rate"`
	TaxType   TaxType         `json:"tax_type"`
	TaxAmount decimal.Decimal `gorm:"type:numeric(14,2)" json:"tax_amount"`
	CGST      decimal.Decimal `gorm:"type:numeric(14,2)" json:"cgst"`
	SGST      decimal.Decimal `gorm:"type:numeric(14,2)" json:"sgst"`
	IGST      decimal.Decimal `gorm:"type:numeric(14,2)" json:"igst"`

	LineTotal decimal.Decimal `gorm:"type:numeric(14,2)" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
}
