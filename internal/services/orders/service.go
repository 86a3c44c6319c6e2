package orders

import (
	"context"
	"time"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/logger"
	"storefront-billing-backend/internal/models"
	"storefront-billing-backend/internal/repository"
	"storefront-billing-backend/internal/services/numbering"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CartItem is one storefront cart entry at checkout.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type PlaceOrderRequest struct {
	CustomerName    string          `json:"customer_name" binding:"required"`
	CustomerEmail   string          `json:"customer_email" binding:"required,email"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress models.Address  `json:"shipping_address"`
	ShippingAmount  decimal.Decimal `json:"shipping_amount"`
	Notes           string          `json:"notes"`
	Items           []CartItem      `json:"items" binding:"required"`
}

// Service handles checkout: it snapshots catalog prices, mints the order
// number from the shared fiscal-year allocator, and persists the order.
// Payment collection is out of scope; orders land in "placed" status.
type Service struct {
	orderRepo   *repository.OrderRepository
	productRepo *repository.ProductRepository
	allocator   *numbering.Allocator
	logger      *logger.Logger
}

func NewService(orderRepo *repository.OrderRepository, productRepo *repository.ProductRepository, allocator *numbering.Allocator, log *logger.Logger) *Service {
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		allocator:   allocator,
		logger:      log,
	}
}

func (s *Service) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.New(apperrors.ErrValidation, "order needs at least one item")
	}
	if req.ShippingAmount.IsNegative() {
		return nil, apperrors.New(apperrors.ErrValidation, "shipping amount cannot be negative")
	}
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return nil, apperrors.Newf(apperrors.ErrValidation, "item %d: quantity must be at least 1", i+1)
		}
	}

	orderID := uuid.New()
	now := time.Now()

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, cartItem := range req.Items {
		product, err := s.productRepo.GetByID(ctx, cartItem.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.InStock {
			return nil, apperrors.Newf(apperrors.ErrValidation, "product %s is out of stock", product.Name)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		items = append(items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  cartItem.Quantity,
			LineTotal: lineTotal.Round(2),
			CreatedAt: now,
		})
	}

	orderNo, _, err := s.allocator.Allocate(ctx, numbering.KindOrder, now)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:              orderID,
		OrderNo:         orderNo,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: datatypes.NewJSONType(req.ShippingAddress),
		Subtotal:        subtotal.Round(2),
		ShippingAmount:  req.ShippingAmount.Round(2),
		Total:           subtotal.Add(req.ShippingAmount).Round(2),
		Status:          "placed",
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Errorw("order insert failed after number allocation, number burned",
			"order_no", orderNo, "error", err)
		return nil, err
	}

	s.logger.Infow("order placed", "order_no", order.OrderNo, "total", order.Total)
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, status, cursor string, limit int) ([]models.Order, string, bool, error) {
	return s.orderRepo.List(ctx, status, cursor, limit)
}

var orderStatuses = map[string]bool{
	"placed":    true,
	"confirmed": true,
	"shipped":   true,
	"delivered": true,
	"cancelled": true,
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !orderStatuses[status] {
		return nil, apperrors.Newf(apperrors.ErrValidation, "unknown order status %q", status)
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}
