// Package testdb opens migrated in-memory SQLite databases for package tests.
package testdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/models/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a fresh database with every migration applied. It is limited
// to one connection, so code under test must use the transaction handle
// inside db.Transaction.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migrations.AutoMigrate(context.Background(), db, migrations.Options{})
	require.NoError(t, err)
	return db
}
