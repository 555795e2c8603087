package migrations_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/db/testdb"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/models/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func emptyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestRunnerIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	applied, err := migrations.AutoMigrate(ctx, db, migrations.Options{})
	require.NoError(t, err)
	assert.Zero(t, applied)

	statuses, err := migrations.NewRunner(db, migrations.All(migrations.Options{})).Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 5)
	for i, st := range statuses {
		assert.Equal(t, i+1, st.Version)
		assert.True(t, st.Applied, st.Name)
		assert.NotNil(t, st.AppliedAt)
	}
}

func TestRunnerAppliesInVersionOrder(t *testing.T) {
	db := emptyDB(t)
	ctx := context.Background()

	var order []int
	step := func(v int) migrations.Migration {
		return migrations.Migration{Version: v, Name: fmt.Sprintf("step_%d", v), Up: func(tx *gorm.DB) error {
			order = append(order, v)
			return nil
		}}
	}
	runner := migrations.NewRunner(db, []migrations.Migration{step(3), step(1), step(2)})

	n, err := runner.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2, 3}, order)

	failing := migrations.NewRunner(db, []migrations.Migration{
		step(1),
		{Version: 4, Name: "broken", Up: func(tx *gorm.DB) error { return fmt.Errorf("boom") }},
	})
	n, err = failing.Up(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "004_broken")
	assert.Zero(t, n)

	statuses, err := failing.Status(ctx)
	require.NoError(t, err)
	assert.False(t, statuses[1].Applied)
}

func TestAdminBootstrap(t *testing.T) {
	db := emptyDB(t)
	ctx := context.Background()

	_, err := migrations.AutoMigrate(ctx, db, migrations.Options{AdminEmail: " Admin@Example.com ", AdminPassword: "s3cret-pass"})
	require.NoError(t, err)

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, helpers.PasswordCompare(admin.Password, []byte("s3cret-pass")))

	require.NoError(t, migrations.EnsureAdmin(db, "Someone", "admin@example.com", "other-pass"))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdminBootstrapSkippedWithoutCredentials(t *testing.T) {
	db := testdb.New(t)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
