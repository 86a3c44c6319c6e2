package repository

import (
	"context"
	"errors"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order header and items together, mirroring the invoice
// write path.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabase, "order insert failed")
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrNotFound, "order not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "order lookup failed")
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, status string, cursor string, limit int) ([]models.Order, string, bool, error) {
	var orders []models.Order

	query := r.db.WithContext(ctx).
		Order("order_no ASC").
		Limit(limit + 1)

	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if cursor != "" {
		query = query.Where("order_no > ?", cursor)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, "", false, apperrors.Wrap(err, apperrors.ErrDatabase, "order list failed")
	}

	hasMore := false
	var nextCursor string
	if len(orders) > limit {
		hasMore = true
		nextCursor = orders[limit-1].OrderNo
		orders = orders[:limit]
	}
	return orders, nextCursor, hasMore, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, apperrors.ErrDatabase, "order update failed")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "order not found")
	}
	return r.GetByID(ctx, id)
}
