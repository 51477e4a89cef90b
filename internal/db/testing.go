package db

import (
	"fmt"
	"testing"

	"newsroom/internal/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenTest returns a migrated private in-memory SQLite database.
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := Open(config.DatabaseConfig{Driver: "sqlite", URL: dsn})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	conn.Logger = gormlogger.Discard

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}
