package repository

import (
	"context"
	"errors"

	"storefront-billing-backend/internal/apperrors"
	"storefront-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB if needed
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// Create persists the invoice header and its line items in one transaction.
// The allocated number is already on the invoice; if the insert fails the
// number stays burned, it is never reused.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := inv.Items
		inv.Items = nil
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		inv.Items = items
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabase, "invoice insert failed")
	}
	return nil
}

// GetByID fetches a single invoice with its line items.
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).Preload("Items").First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.ErrNotFound, "invoice not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabase, "invoice lookup failed")
	}
	return &inv, nil
}

// List returns invoices filtered by status / type, cursor-paginated by invoice number.
func (r *InvoiceRepository) List(ctx context.Context, status string, invoiceType string, cursor string, limit int) ([]models.Invoice, string, bool, error) {
	var invoices []models.Invoice

	query := r.db.WithContext(ctx).
		Order("invoice_no ASC").
		Limit(limit + 1)

	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if invoiceType != "" {
		query = query.Where("invoice_type = ?", invoiceType)
	}
	if cursor != "" {
		query = query.Where("invoice_no > ?", cursor)
	}

	if err := query.Find(&invoices).Error; err != nil {
		return nil, "", false, apperrors.Wrap(err, apperrors.ErrDatabase, "invoice list failed")
	}

	hasMore := false
	var nextCursor string
	if len(invoices) > limit {
		hasMore = true
		nextCursor = invoices[limit-1].InvoiceNo
		invoices = invoices[:limit]
	}
	return invoices, nextCursor, hasMore, nil
}

// Update corrects header fields on an existing invoice. InvoiceNo is never
// part of the update set; the document number is immutable after creation.
func (r *InvoiceRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Invoice, error) {
	delete(fields, "invoice_no")

	result := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, apperrors.ErrDatabase, "invoice update failed")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "invoice not found")
	}
	return r.GetByID(ctx, id)
}

// Delete removes the invoice and its line items together.
func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLineItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.New(apperrors.ErrNotFound, "invoice not found")
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrDatabase, "invoice delete failed")
	}
	return nil
}
