// Package testutil provides a migrated sqlite database and fixtures for tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"dispatch-tracker/database"
	"dispatch-tracker/logging"
	"dispatch-tracker/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewDB opens a file backed sqlite database in t.TempDir with foreign keys
// enabled and the schema migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.OpenDialector(sqlite.Open(database.SQLiteDSN(path)), logging.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: email, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateModel creates a brand and a model with the given series fields.
func CreateModel(t testing.TB, db *gorm.DB, name string, fields ...models.SeriesField) *models.ProductModel {
	t.Helper()
	brand := &models.Brand{Name: "brand-" + name}
	require.NoError(t, db.Create(brand).Error)

	model := &models.ProductModel{
		BrandID:      brand.ID,
		Name:         name,
		SeriesConfig: datatypes.NewJSONType(fields),
	}
	require.NoError(t, db.Create(model).Error)
	return model
}

var boxSeq atomic.Int64

// CreateBox creates an open box for model owned by user.
func CreateBox(t testing.TB, db *gorm.DB, model *models.ProductModel, user *models.User, total int) *models.Box {
	t.Helper()
	box := &models.Box{
		BoxNumber:  fmt.Sprintf("TEST-%06d", boxSeq.Add(1)),
		ModelID:    model.ID,
		TotalItems: total,
		CreatedBy:  user.ID,
	}
	require.NoError(t, db.Create(box).Error)
	return box
}

func CreateReferences(t testing.TB, db *gorm.DB, material string, series ...string) {
	t.Helper()
	for _, s := range series {
		require.NoError(t, db.Create(&models.SapData{Series: s, Material: material}).Error)
	}
}
