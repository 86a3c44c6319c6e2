package repository

import (
	"context"
	"errors"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.ErrValidation, "admin email already registered")
		}
		return apperrors.Wrap(err, apperrors.ErrDatabase, "admin insert failed")
	}
	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrNotFound, "admin not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "admin lookup failed")
	}
	return &admin, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]models.AdminUser, error) {
	var admins []models.AdminUser
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&admins).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "admin list failed")
	}
	return admins, nil
}

func (r *AdminRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.AdminUser, error) {
	result := r.db.WithContext(ctx).Model(&models.AdminUser{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, apperrors.ErrDatabase, "admin update failed")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "admin not found")
	}
	return r.GetByID(ctx, id)
}

func (r *AdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AdminUser{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, apperrors.ErrDatabase, "admin delete failed")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrNotFound, "admin not found")
	}
	return nil
}
