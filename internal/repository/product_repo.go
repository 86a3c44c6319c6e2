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

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabase, "product insert failed")
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrNotFound, "product not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "product lookup failed")
	}
	return &p, nil
}

// List supports optional name search and in-stock filtering for the storefront.
func (r *ProductRepository) List(ctx context.Context, search string, inStockOnly bool) ([]models.Product, error) {
	var products []models.Product

	query := r.db.WithContext(ctx).Order("name ASC")
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if inStockOnly {
		query = query.Where("in_stock = ?", true)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "product list failed")
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Product, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, apperrors.ErrDatabase, "product update failed")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "product not found")
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, apperrors.ErrDatabase, "product delete failed")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrNotFound, "product not found")
	}
	return nil
}
