package billing

import (
	"context"
	"testing"
	"time"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/logger"
	"storefront-billing-backend/internal/models"
	"storefront-billing-backend/internal/repository"
	"storefront-billing-backend/internal/services/numbering"
	"storefront-billing-backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCompiler(t *testing.T) (*Compiler, *repository.InvoiceRepository, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	invoiceRepo := repository.NewInvoiceRepository(db)
	allocator := numbering.NewAllocator(repository.NewCounterRepository(db), logger.NewNop())
	return NewCompiler(invoiceRepo, allocator, logger.NewNop()), invoiceRepo, db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func taxInvoiceRequest(items ...LineItemInput) *CreateInvoiceRequest {
	return &CreateInvoiceRequest{
		InvoiceType: models.InvoiceTypeTax,
		InvoiceDate: time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC),
		BillingAddress: models.Address{
			Line:    "14 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: "560001",
			GSTIN:   "29ABCDE1234F1Z5",
		},
		CreatedBy: "admin@example.com",
		Items:     items,
	}
}

func TestCreateInvoiceSplitDomestic(t *testing.T) {
	compiler, _, _ := newCompiler(t)

	inv, err := compiler.CreateInvoice(context.Background(), taxInvoiceRequest(LineItemInput{
		Description: "Solar panel 540W",
		HSNSAC:      "8541",
		UnitPrice:   dec("1000"),
		Quantity:    2,
		TaxRate:     dec("18"),
		TaxType:     models.TaxTypeCGSTSGST,
	}))
	require.NoError(t, err)

	assert.Equal(t, "2000.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "180.00", inv.TaxCGST.StringFixed(2))
	assert.Equal(t, "180.00", inv.TaxSGST.StringFixed(2))
	assert.Equal(t, "0.00", inv.TaxIGST.StringFixed(2))
	assert.Equal(t, "2360.00", inv.GrandTotal.StringFixed(2))
	assert.Equal(t, "Two Thousand Three Hundred and Sixty Rupees", inv.AmountInWords)

	require.Len(t, inv.Items, 1)
	line := inv.Items[0]
	assert.Equal(t, "2000.00", line.NetAmount.StringFixed(2))
	assert.Equal(t, "360.00", line.TaxAmount.StringFixed(2))
	assert.Equal(t, "180.00", line.CGST.StringFixed(2))
	assert.Equal(t, "180.00", line.SGST.StringFixed(2))
	assert.Equal(t, "0.00", line.IGST.StringFixed(2))
	assert.Equal(t, "2360.00", line.LineTotal.StringFixed(2))

	assert.Len(t, inv.InvoiceNo, 10)
	assert.Equal(t, byte('I'), inv.InvoiceNo[0])
}

func TestCreateInvoiceInterState(t *testing.T) {
	compiler, _, _ := newCompiler(t)

	inv, err := compiler.CreateInvoice(context.Background(), taxInvoiceRequest(LineItemInput{
		Description: "Inverter installation",
		UnitPrice:   dec("500"),
		Quantity:    1,
		TaxRate:     dec("12"),
		TaxType:     models.TaxTypeIGST,
	}))
	require.NoError(t, err)

	assert.Equal(t, "60.00", inv.TaxIGST.StringFixed(2))
	assert.Equal(t, "0.00", inv.TaxCGST.StringFixed(2))
	assert.Equal(t, "0.00", inv.TaxSGST.StringFixed(2))
	assert.Equal(t, "560.00", inv.GrandTotal.StringFixed(2))

	line := inv.Items[0]
	assert.Equal(t, "60.00", line.IGST.StringFixed(2))
	assert.True(t, line.CGST.IsZero())
	assert.True(t, line.SGST.IsZero())
}

// Every line books its tax under exactly one head: CGST+SGST together, or
// IGST alone, never a mix.
func TestTaxTypeExclusivity(t *testing.T) {
	compiler, _, _ := newCompiler(t)

	inv, err := compiler.CreateInvoice(context.Background(), taxInvoiceRequest(
		LineItemInput{Description: "a", UnitPrice: dec("100"), Quantity: 1, TaxRate: dec("18"), TaxType: models.TaxTypeCGSTSGST},
		LineItemInput{Description: "b", UnitPrice: dec("200"), Quantity: 3, TaxRate: dec("5"), TaxType: models.TaxTypeIGST},
	))
	require.NoError(t, err)

	for _, line := range inv.Items {
		switch line.TaxType {
		case models.TaxTypeCGSTSGST:
			assert.True(t, line.CGST.IsPositive())
			assert.True(t, line.SGST.IsPositive())
			assert.True(t, line.IGST.IsZero())
			assert.Equal(t, line.TaxAmount.StringFixed(2), line.CGST.Add(line.SGST).StringFixed(2))
		case models.TaxTypeIGST:
			assert.True(t, line.IGST.IsPositive())
			assert.True(t, line.CGST.IsZero())
			assert.True(t, line.SGST.IsZero())
			assert.Equal(t, line.TaxAmount.StringFixed(2), line.IGST.StringFixed(2))
		}
	}
}

// Grand total must close against the persisted aggregates to the cent, and for
// rounding-free inputs the line totals close against the aggregates too.
func TestRoundingClosure(t *testing.T) {
	compiler, _, _ := newCompiler(t)

	req := taxInvoiceRequest(
		LineItemInput{Description: "a", UnitPrice: dec("1200"), Quantity: 2, Discount: dec("100"), TaxRate: dec("18"), TaxType: models.TaxTypeCGSTSGST},
		LineItemInput{Description: "b", UnitPrice: dec("450"), Quantity: 4, TaxRate: dec("5"), TaxType: models.TaxTypeIGST},
		LineItemInput{Description: "c", UnitPrice: dec("75.50"), Quantity: 10, TaxRate: dec("28"), TaxType: models.TaxTypeCGSTSGST},
	)
	req.DiscountAmount = dec("50")
	req.ShippingAmount = dec("120")

	inv, err := compiler.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	recomputed := inv.Subtotal.
		Sub(inv.DiscountAmount).
		Add(inv.ShippingAmount).
		Add(inv.TaxCGST).
		Add(inv.TaxSGST).
		Add(inv.TaxIGST).
		Round(2)
	assert.Equal(t, recomputed.StringFixed(2), inv.GrandTotal.StringFixed(2))

	lineTotalSum := decimal.Zero
	for _, line := range inv.Items {
		lineTotalSum = lineTotalSum.Add(line.LineTotal)
	}
	aggregates := inv.Subtotal.Add(inv.TaxCGST).Add(inv.TaxSGST).Add(inv.TaxIGST)
	assert.Equal(t, aggregates.StringFixed(2), lineTotalSum.StringFixed(2))
}

// Header discount and shipping are rounded before the grand total is taken,
// so a sub-cent input can never leave a stored record whose fields don't
// recompute to the stored grand total.
func TestSubCentHeaderAmountsCloseExactly(t *testing.T) {
	compiler, _, _ := newCompiler(t)

	req := taxInvoiceRequest(LineItemInput{
		Description: "mounting kit",
		UnitPrice:   dec("100"),
		Quantity:    1,
		TaxRate:     dec("0"),
		TaxType:     models.TaxTypeCGSTSGST,
	})
	req.DiscountAmount = dec("0.005")
	req.ShippingAmount = dec("10.004")

	inv, err := compiler.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "0.01", inv.DiscountAmount.StringFixed(2))
	assert.Equal(t, "10.00", inv.ShippingAmount.StringFixed(2))
	assert.Equal(t, "109.99", inv.GrandTotal.StringFixed(2))

	recomputed := inv.Subtotal.
		Sub(inv.DiscountAmount).
		Add(inv.ShippingAmount).
		Add(inv.TaxCGST).
		Add(inv.TaxSGST).
		Add(inv.TaxIGST).
		Round(2)
	assert.Equal(t, recomputed.StringFixed(2), inv.GrandTotal.StringFixed(2))
}

// Pins the rounding policy: aggregates accumulate unrounded per-line values
// and round once, so they may legitimately differ from the sum of the rounded
// per-line splits. Three 0.25 lines at 18% put 0.0675 on each half; the
// invoice carries 0.07 even though the rounded line halves sum to 0.06.
func TestAggregateRoundingPolicy(t *testing.T) {
	compiler, _, _ := newCompiler(t)

	line := LineItemInput{
		Description: "washer",
		UnitPrice:   dec("0.25"),
		Quantity:    1,
		TaxRate:     dec("18"),
		TaxType:     models.TaxTypeCGSTSGST,
	}
	inv, err := compiler.CreateInvoice(context.Background(), taxInvoiceRequest(line, line, line))
	require.NoError(t, err)

	assert.Equal(t, "0.75", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "0.07", inv.TaxCGST.StringFixed(2))
	assert.Equal(t, "0.07", inv.TaxSGST.StringFixed(2))
	assert.Equal(t, "0.89", inv.GrandTotal.StringFixed(2))

	perLineCGST := decimal.Zero
	for _, item := range inv.Items {
		perLineCGST = perLineCGST.Add(item.CGST)
	}
	assert.Equal(t, "0.06", perLineCGST.StringFixed(2))
}

func TestCreateInvoiceValidation(t *testing.T) {
	compiler, _, _ := newCompiler(t)
	ctx := context.Background()

	base := LineItemInput{Description: "x", UnitPrice: dec("10"), Quantity: 1, TaxRate: dec("18"), TaxType: models.TaxTypeCGSTSGST}

	tests := []struct {
		name   string
		mutate func(req *CreateInvoiceRequest)
	}{
		{"zero quantity", func(req *CreateInvoiceRequest) { req.Items[0].Quantity = 0 }},
		{"negative price", func(req *CreateInvoiceRequest) { req.Items[0].UnitPrice = dec("-1") }},
		{"negative discount", func(req *CreateInvoiceRequest) { req.Items[0].Discount = dec("-5") }},
		{"unknown tax type", func(req *CreateInvoiceRequest) { req.Items[0].TaxType = "vat" }},
		{"unknown invoice type", func(req *CreateInvoiceRequest) { req.InvoiceType = "proforma" }},
		{"no items", func(req *CreateInvoiceRequest) { req.Items = nil }},
		{"negative header discount", func(req *CreateInvoiceRequest) { req.DiscountAmount = dec("-1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := taxInvoiceRequest(base)
			tt.mutate(req)
			_, err := compiler.CreateInvoice(ctx, req)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestQROverrideValidation(t *testing.T) {
	compiler, _, _ := newCompiler(t)
	ctx := context.Background()
	base := LineItemInput{Description: "x", UnitPrice: dec("10"), Quantity: 1, TaxRate: dec("18"), TaxType: models.TaxTypeCGSTSGST}

	req := taxInvoiceRequest(base)
	req.QROverride = &models.QROverride{Mode: models.QRModeUPI}
	_, err := compiler.CreateInvoice(ctx, req)
	assert.True(t, apperrors.IsValidation(err))

	req = taxInvoiceRequest(base)
	req.QROverride = &models.QROverride{Mode: models.QRModeUPI, VPA: "shop@upi", LockAmount: true, Amount: dec("2360")}
	inv, err := compiler.CreateInvoice(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.QRModeUPI, inv.QROverride.Data().Mode)
	assert.Equal(t, "shop@upi", inv.QROverride.Data().VPA)
}

func TestAllocatorFailureLeavesNothingPersisted(t *testing.T) {
	compiler, _, db := newCompiler(t)
	require.NoError(t, db.Migrator().DropTable(&models.DocumentCounter{}))

	_, err := compiler.CreateInvoice(context.Background(), taxInvoiceRequest(LineItemInput{
		Description: "x", UnitPrice: dec("10"), Quantity: 1, TaxRate: dec("18"), TaxType: models.TaxTypeCGSTSGST,
	}))
	assert.True(t, apperrors.IsAllocation(err))

	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConsecutiveInvoiceNumbers(t *testing.T) {
	compiler, _, _ := newCompiler(t)
	item := LineItemInput{Description: "x", UnitPrice: dec("10"), Quantity: 1, TaxRate: dec("18"), TaxType: models.TaxTypeCGSTSGST}

	first, err := compiler.CreateInvoice(context.Background(), taxInvoiceRequest(item))
	require.NoError(t, err)
	second, err := compiler.CreateInvoice(context.Background(), taxInvoiceRequest(item))
	require.NoError(t, err)

	assert.Equal(t, first.InvoiceNo[:5], second.InvoiceNo[:5])
	assert.Equal(t, "00001", first.InvoiceNo[5:])
	assert.Equal(t, "00002", second.InvoiceNo[5:])
}

func TestAmountInWordsOverride(t *testing.T) {
	compiler, _, _ := newCompiler(t)

	req := taxInvoiceRequest(LineItemInput{
		Description: "x", UnitPrice: dec("1000"), Quantity: 2, TaxRate: dec("18"), TaxType: models.TaxTypeCGSTSGST,
	})
	req.AmountInWords = "Rupees Two Thousand Three Hundred Sixty Only"

	inv, err := compiler.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Rupees Two Thousand Three Hundred Sixty Only", inv.AmountInWords)
}

func TestInvoiceNumberImmutableOnUpdate(t *testing.T) {
	compiler, invoiceRepo, _ := newCompiler(t)

	inv, err := compiler.CreateInvoice(context.Background(), taxInvoiceRequest(LineItemInput{
		Description: "x", UnitPrice: dec("10"), Quantity: 1, TaxRate: dec("18"), TaxType: models.TaxTypeCGSTSGST,
	}))
	require.NoError(t, err)

	updated, err := invoiceRepo.Update(context.Background(), inv.ID, map[string]interface{}{
		"invoice_no": "I999999999",
		"status":     "paid",
	})
	require.NoError(t, err)

	assert.Equal(t, inv.InvoiceNo, updated.InvoiceNo)
	assert.Equal(t, "paid", updated.Status)
}
