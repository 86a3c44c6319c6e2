package orders

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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	allocator := numbering.NewAllocator(repository.NewCounterRepository(db), logger.NewNop())
	svc := NewService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		allocator,
		logger.NewNop(),
	)
	return svc, db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, inStock bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		TaxRate:   decimal.RequireFromString("18"),
		InStock:   inStock,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestPlaceOrder(t *testing.T) {
	svc, db := newService(t)
	panel := seedProduct(t, db, "Solar panel", "15000", true)
	inverter := seedProduct(t, db, "Inverter", "32000.50", true)

	order, err := svc.PlaceOrder(context.Background(), &PlaceOrderRequest{
		CustomerName:   "Asha Rao",
		CustomerEmail:  "asha@example.com",
		ShippingAmount: decimal.RequireFromString("500"),
		Items: []CartItem{
			{ProductID: panel.ID, Quantity: 2},
			{ProductID: inverter.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Len(t, order.OrderNo, 10)
	assert.Equal(t, byte('O'), order.OrderNo[0])
	assert.Equal(t, "62000.50", order.Subtotal.StringFixed(2))
	assert.Equal(t, "62500.50", order.Total.StringFixed(2))
	assert.Equal(t, "placed", order.Status)
	require.Len(t, order.Items, 2)

	// items snapshot the catalog price at checkout
	assert.Equal(t, "15000.00", order.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "30000.00", order.Items[0].LineTotal.StringFixed(2))
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	svc, db := newService(t)
	sold := seedProduct(t, db, "Battery", "9000", false)

	_, err := svc.PlaceOrder(context.Background(), &PlaceOrderRequest{
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		Items:         []CartItem{{ProductID: sold.ID, Quantity: 1}},
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, db := newService(t)
	product := seedProduct(t, db, "Battery", "9000", true)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, &PlaceOrderRequest{CustomerName: "A", CustomerEmail: "a@b.c"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.PlaceOrder(ctx, &PlaceOrderRequest{
		CustomerName:  "A",
		CustomerEmail: "a@b.c",
		Items:         []CartItem{{ProductID: product.ID, Quantity: 0}},
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.PlaceOrder(ctx, &PlaceOrderRequest{
		CustomerName:  "A",
		CustomerEmail: "a@b.c",
		Items:         []CartItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateStatus(t *testing.T) {
	svc, db := newService(t)
	product := seedProduct(t, db, "Battery", "9000", true)

	order, err := svc.PlaceOrder(context.Background(), &PlaceOrderRequest{
		CustomerName:  "A",
		CustomerEmail: "a@b.c",
		Items:         []CartItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)

	_, err = svc.UpdateStatus(context.Background(), order.ID, "teleported")
	assert.True(t, apperrors.IsValidation(err))
}
