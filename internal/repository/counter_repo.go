package repository

import (
	"context"

	"storefront-billing-backend/internal/apperrors"

	"gorm.io/gorm"
)

type CounterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

func (r *CounterRepository) DB() *gorm.DB {
	return r.db
}

// Increment performs the single atomic increment-and-fetch for a counter scope,
// creating the row on first use. The upsert and the RETURNING happen in one
// statement so two concurrent callers can never observe the same value; this is
// the only write path to document_counters. Works on Postgres and sqlite.
func (r *CounterRepository) Increment(ctx context.Context, scope, prefix string) (int64, error) {
	const query = `
		INSERT INTO document_counters (scope, prefix, next, created_at, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (scope) DO UPDATE
		SET next = document_counters.next + 1,
			updated_at = CURRENT_TIMESTAMP
		RETURNING next`

	var next int64
	result := r.db.WithContext(ctx).Raw(query, scope, prefix).Scan(&next)
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, apperrors.ErrAllocation, "counter increment failed")
	}
	if result.RowsAffected == 0 {
		return 0, apperrors.New(apperrors.ErrAllocation, "counter increment returned no row")
	}
	return next, nil
}
