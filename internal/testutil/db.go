// Package testutil holds shared fixtures for package tests and the local
// development stack.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/ruthvic2255/cycle-companion/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB creates a migrated in-memory SQLite database for testing
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Every pooled connection would get its own empty memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
