package billing

import (
	"context"
	"time"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/logger"
	"storefront-billing-backend/internal/models"
	"storefront-billing-backend/internal/repository"
	"storefront-billing-backend/internal/services/numbering"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// LineItemInput is one raw invoice line as submitted by the admin panel.
type LineItemInput struct {
	Description string          `json:"description" binding:"required"`
	HSNSAC      string          `json:"hsn_sac"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxType     models.TaxType  `json:"tax_type" binding:"required"`
}

// CreateInvoiceRequest carries the invoice header plus raw line items.
type CreateInvoiceRequest struct {
	InvoiceType     models.InvoiceType `json:"invoice_type" binding:"required"`
	InvoiceDate     time.Time          `json:"invoice_date"`
	PlaceOfSupply   string             `json:"place_of_supply"`
	BillingAddress  models.Address     `json:"billing_address"`
	ShippingAddress models.Address     `json:"shipping_address"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	ShippingAmount  decimal.Decimal    `json:"shipping_amount"`
	AmountInWords   string             `json:"amount_in_words"`
	QROverride      *models.QROverride `json:"qr_override"`
	CreatedBy       string             `json:"created_by"`
	Items           []LineItemInput    `json:"items" binding:"required"`
}

var validInvoiceTypes = map[models.InvoiceType]bool{
	models.InvoiceTypeTax:          true,
	models.InvoiceTypeBillOfSupply: true,
	models.InvoiceTypeCashMemo:     true,
}

var validTaxTypes = map[models.TaxType]bool{
	models.TaxTypeCGSTSGST: true,
	models.TaxTypeIGST:     true,
}

// Compiler turns raw invoice input into the persisted, fully computed invoice
// aggregate. It performs no local recovery: any validation, allocation, or
// persistence failure aborts the whole create operation.
type Compiler struct {
	invoiceRepo *repository.InvoiceRepository
	allocator   *numbering.Allocator
	logger      *logger.Logger
}

func NewCompiler(invoiceRepo *repository.InvoiceRepository, allocator *numbering.Allocator, log *logger.Logger) *Compiler {
	return &Compiler{
		invoiceRepo: invoiceRepo,
		allocator:   allocator,
		logger:      log,
	}
}

// CreateInvoice validates the request, computes every derived figure, mints
// the invoice number (exactly one allocation per successful compile), and
// persists header plus line items in one transaction. If the insert fails the
// allocated number is burned; gaps are accepted, duplicates are not.
func (c *Compiler) CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*models.Invoice, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}

	invoiceDate := req.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	invoiceID := uuid.New()
	items, totals := computeLines(invoiceID, req.Items)

	subtotal := totals.subtotal.Round(2)
	cgst := totals.cgst.Round(2)
	sgst := totals.sgst.Round(2)
	igst := totals.igst.Round(2)

	// header amounts are rounded once here and the same values are stored,
	// so the grand total always recomputes exactly from the persisted fields
	discount := req.DiscountAmount.Round(2)
	shipping := req.ShippingAmount.Round(2)

	grandTotal := subtotal.
		Sub(discount).
		Add(shipping).
		Add(cgst).
		Add(sgst).
		Add(igst).
		Round(2)
	if grandTotal.IsNegative() {
		return nil, apperrors.Newf(apperrors.ErrComputation, "grand total is negative: %s", grandTotal)
	}

	words := req.AmountInWords
	if words == "" {
		words = AmountInWords(grandTotal)
	}

	invoiceNo, _, err := c.allocator.Allocate(ctx, numbering.KindInvoice, invoiceDate)
	if err != nil {
		return nil, err
	}

	qr := lo.FromPtr(req.QROverride)
	if req.QROverride == nil {
		qr = models.QROverride{Mode: models.QRModeInherit}
	}

	inv := &models.Invoice{
		ID:              invoiceID,
		InvoiceNo:       invoiceNo,
		InvoiceDate:     invoiceDate,
		InvoiceType:     req.InvoiceType,
		PlaceOfSupply:   req.PlaceOfSupply,
		BillingAddress:  datatypes.NewJSONType(req.BillingAddress),
		ShippingAddress: datatypes.NewJSONType(req.ShippingAddress),
		Subtotal:        subtotal,
		DiscountAmount:  discount,
		ShippingAmount:  shipping,
		TaxCGST:         cgst,
		TaxSGST:         sgst,
		TaxIGST:         igst,
		GrandTotal:      grandTotal,
		AmountInWords:   words,
		QROverride:      datatypes.NewJSONType(qr),
		Status:          "issued",
		CreatedBy:       req.CreatedBy,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
		Items:           items,
	}

	if err := c.invoiceRepo.Create(ctx, inv); err != nil {
		c.logger.Errorw("invoice insert failed after number allocation, number burned",
			"invoice_no", invoiceNo, "error", err)
		return nil, err
	}

	c.logger.Infow("invoice created",
		"invoice_no", inv.InvoiceNo,
		"grand_total", inv.GrandTotal,
		"items", len(inv.Items))

	return inv, nil
}

type runningTotals struct {
	subtotal decimal.Decimal
	cgst     decimal.Decimal
	sgst     decimal.Decimal
	igst     decimal.Decimal
}

var two = decimal.NewFromInt(2)
var hundred = decimal.NewFromInt(100)

// computeLines materializes the stored line items and accumulates the running
// aggregates. Stored per-line figures are rounded to two decimals; aggregates
// accumulate the unrounded values and are rounded once by the caller, so
// cent-level drift from per-line rounding never reaches the invoice totals.
func computeLines(invoiceID uuid.UUID, inputs []LineItemInput) ([]models.InvoiceLineItem, runningTotals) {
	items := make([]models.InvoiceLineItem, 0, len(inputs))
	var totals runningTotals

	for _, in := range inputs {
		net := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))).Sub(in.Discount)
		tax := net.Mul(in.TaxRate).Div(hundred)

		item := models.InvoiceLineItem{
			ID:          uuid.New(),
			InvoiceID:   invoiceID,
			Description: in.Description,
			HSNSAC:      in.HSNSAC,
			UnitPrice:   in.UnitPrice.Round(2),
			Quantity:    in.Quantity,
			Discount:    in.Discount.Round(2),
			NetAmount:   net.Round(2),
			TaxRate:     in.TaxRate,
			TaxType:     in.TaxType,
			TaxAmount:   tax.Round(2),
			LineTotal:   net.Add(tax).Round(2),
			CreatedAt:   time.Now(),
		}

		totals.subtotal = totals.subtotal.Add(net)

		switch in.TaxType {
		case models.TaxTypeCGSTSGST:
			half := tax.Div(two)
			// the two stored halves always sum exactly to the rounded line tax
			item.CGST = half.Round(2)
			item.SGST = item.TaxAmount.Sub(item.CGST)
			totals.cgst = totals.cgst.Add(half)
			totals.sgst = totals.sgst.Add(half)
		case models.TaxTypeIGST:
			item.IGST = item.TaxAmount
			totals.igst = totals.igst.Add(tax)
		}

		items = append(items, item)
	}

	return items, totals
}

func (c *Compiler) validate(req *CreateInvoiceRequest) error {
	if !validInvoiceTypes[req.InvoiceType] {
		return apperrors.Newf(apperrors.ErrValidation, "unknown invoice type %q", req.InvoiceType)
	}
	if len(req.Items) == 0 {
		return apperrors.New(apperrors.ErrValidation, "invoice needs at least one line item")
	}
	if req.DiscountAmount.IsNegative() {
		return apperrors.New(apperrors.ErrValidation, "discount amount cannot be negative")
	}
	if req.ShippingAmount.IsNegative() {
		return apperrors.New(apperrors.ErrValidation, "shipping amount cannot be negative")
	}

	for i, item := range req.Items {
		if item.Quantity < 1 {
			return apperrors.Newf(apperrors.ErrValidation, "line %d: quantity must be at least 1", i+1)
		}
		if item.UnitPrice.IsNegative() {
			return apperrors.Newf(apperrors.ErrValidation, "line %d: unit price cannot be negative", i+1)
		}
		if item.Discount.IsNegative() {
			return apperrors.Newf(apperrors.ErrValidation, "line %d: discount cannot be negative", i+1)
		}
		if item.TaxRate.IsNegative() {
			return apperrors.Newf(apperrors.ErrValidation, "line %d: tax rate cannot be negative", i+1)
		}
		if !validTaxTypes[item.TaxType] {
			return apperrors.Newf(apperrors.ErrValidation, "line %d: unknown tax type %q", i+1, item.TaxType)
		}
	}

	if req.QROverride != nil {
		if err := validateQROverride(req.QROverride); err != nil {
			return err
		}
	}
	return nil
}

// validateQROverride enforces the tagged-variant shape: exactly the payload
// field matching the mode must be set.
func validateQROverride(qr *models.QROverride) error {
	switch qr.Mode {
	case models.QRModeInherit:
		if qr.ImageURL != "" || qr.VPA != "" || qr.URL != "" {
			return apperrors.New(apperrors.ErrValidation, "inherit QR mode takes no payload")
		}
	case models.QRModeImage:
		if qr.ImageURL == "" {
			return apperrors.New(apperrors.ErrValidation, "image QR mode requires image_url")
		}
	case models.QRModeUPI:
		if qr.VPA == "" {
			return apperrors.New(apperrors.ErrValidation, "upi QR mode requires vpa")
		}
	case models.QRModeLink:
		if qr.URL == "" {
			return apperrors.New(apperrors.ErrValidation, "link QR mode requires url")
		}
	default:
		return apperrors.Newf(apperrors.ErrValidation, "unknown QR mode %q", qr.Mode)
	}
	if qr.LockAmount && qr.Amount.IsNegative() {
		return apperrors.New(apperrors.ErrValidation, "locked QR amount cannot be negative")
	}
	return nil
}
