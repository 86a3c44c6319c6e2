package repository

import (
	"context"
	"errors"
	"strings"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceOfferingRepository struct {
	db *gorm.DB
}

func NewServiceOfferingRepository(db *gorm.DB) *ServiceOfferingRepository {
	return &ServiceOfferingRepository{db: db}
}

func (r *ServiceOfferingRepository) Create(ctx context.Context, s *models.ServiceOffering) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabase, "service insert failed")
	}
	return nil
}

func (r *ServiceOfferingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceOffering, error) {
	var s models.ServiceOffering
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrNotFound, "service not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "service lookup failed")
	}
	return &s, nil
}

func (r *ServiceOfferingRepository) List(ctx context.Context, search string, activeOnly bool) ([]models.ServiceOffering, error) {
	var services []models.ServiceOffering

	query := r.db.WithContext(ctx).Order("name ASC")
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Find(&services).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "service list failed")
	}
	return services, nil
}

func (r *ServiceOfferingRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.ServiceOffering, error) {
	result := r.db.WithContext(ctx).Model(&models.ServiceOffering{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, apperrors.ErrDatabase, "service update failed")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "service not found")
	}
	return r.GetByID(ctx, id)
}

func (r *ServiceOfferingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ServiceOffering{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, apperrors.ErrDatabase, "service delete failed")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrNotFound, "service not found")
	}
	return nil
}
