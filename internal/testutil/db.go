package testutil

import (
	"path/filepath"
	"testing"

	"storefront-billing-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a throwaway sqlite database with the full schema migrated.
// Connections are capped at one so concurrent test writers serialize at the
// pool instead of tripping sqlite busy errors; the atomic-increment SQL is
// identical to what runs against Postgres.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.DocumentCounter{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Product{},
		&models.ServiceOffering{},
		&models.AdminUser{},
		&models.ContactMessage{},
	))
	return db
}
