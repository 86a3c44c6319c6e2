package repository

import (
	"context"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/models"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabase, "contact message insert failed")
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "contact message list failed")
	}
	return messages, nil
}
