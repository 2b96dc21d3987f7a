package repositories

import (
	"context"
	"testing"
	"time"

	"dispatch-tracker/models"
	"dispatch-tracker/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedBoxFixture(t *testing.T) (*gorm.DB, *models.User, *models.ProductModel) {
	t.Helper()
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "op@example.com", models.RoleOperator)
	model := testutil.CreateModel(t, db, "ONT", models.SeriesField{Name: "SN-1", Required: true})
	return db, user, model
}

func addUnit(t *testing.T, db *gorm.DB, box *models.Box, user *models.User, serial string) *models.Equipment {
	t.Helper()
	e := &models.Equipment{
		BoxID:      box.ID,
		ScannedBy:  user.ID,
		SeriesData: datatypes.NewJSONType(map[string]string{"SN-1": serial}),
	}
	require.NoError(t, db.Create(e).Error)
	require.NoError(t, db.Create(&models.SeriesRegistry{Series: serial, EquipmentID: e.ID, BoxID: box.ID}).Error)
	return e
}

func TestBoxCreateNumbersSequentially(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	repo := NewBoxRepository(db)
	ctx := context.Background()

	first := &models.Box{ModelID: model.ID, TotalItems: 10, CreatedBy: user.ID}
	require.NoError(t, repo.Create(ctx, first))
	second, err := repo.Duplicate(ctx, first.ID, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "CAJA-000001", first.BoxNumber)
	assert.Equal(t, "CAJA-000002", second.BoxNumber)
	assert.Equal(t, models.BoxOpen, second.Status)
	assert.Equal(t, 10, second.TotalItems)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestBoxCreateValidates(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	repo := NewBoxRepository(db)

	err := repo.Create(context.Background(), &models.Box{ModelID: model.ID, TotalItems: 0, CreatedBy: user.ID})
	assert.ErrorIs(t, err, ErrInvalidState)

	err = repo.Create(context.Background(), &models.Box{ModelID: 999, TotalItems: 1, CreatedBy: user.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoxUpdateQuantityNeverBelowScanned(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	repo := NewBoxRepository(db)
	ctx := context.Background()

	box := testutil.CreateBox(t, db, model, user, 3)
	addUnit(t, db, box, user, "AAA111")
	addUnit(t, db, box, user, "BBB222")

	assert.ErrorIs(t, repo.UpdateQuantity(ctx, box.ID, 1), ErrInvalidState)
	require.NoError(t, repo.UpdateQuantity(ctx, box.ID, 2))

	other := testutil.CreateModel(t, db, "OTHER", models.SeriesField{Name: "SN"})
	assert.ErrorIs(t, repo.Update(ctx, box.ID, other.ID, 5), ErrInvalidState)

	reloaded, err := repo.FindByID(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.TotalItems)
	assert.Equal(t, model.ID, reloaded.ModelID)
}

func TestBoxListOpenWithCounts(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	repo := NewBoxRepository(db)
	ctx := context.Background()

	open := testutil.CreateBox(t, db, model, user, 3)
	addUnit(t, db, open, user, "AAA111")
	closed := testutil.CreateBox(t, db, model, user, 3)
	_, err := repo.Close(ctx, closed.ID)
	require.NoError(t, err)

	list, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, open.ID, list[0].ID)
	assert.Equal(t, int64(1), list[0].ItemCount)
	require.NotNil(t, list[0].Model)
	assert.Equal(t, "ONT", list[0].Model.Name)
}

func TestBoxClose(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	repo := NewBoxRepository(db)
	ctx := context.Background()

	box := testutil.CreateBox(t, db, model, user, 3)
	closed, err := repo.Close(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BoxClosed, closed.Status)
	assert.NotNil(t, closed.ClosedAt)

	_, err = repo.Close(ctx, box.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestBoxDeleteCascades(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	repo := NewBoxRepository(db)
	ctx := context.Background()

	box := testutil.CreateBox(t, db, model, user, 3)
	addUnit(t, db, box, user, "AAA111")

	require.NoError(t, repo.Delete(ctx, box.ID))
	assert.ErrorIs(t, repo.Delete(ctx, box.ID), ErrNotFound)

	var units, registry int64
	require.NoError(t, db.Model(&models.Equipment{}).Count(&units).Error)
	require.NoError(t, db.Model(&models.SeriesRegistry{}).Count(&registry).Error)
	assert.Zero(t, units)
	assert.Zero(t, registry)
}

func TestBoxDetailsOrdersUnitsNewestFirst(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	repo := NewBoxRepository(db)

	box := testutil.CreateBox(t, db, model, user, 3)
	older := addUnit(t, db, box, user, "AAA111")
	require.NoError(t, db.Model(older).Update("scanned_at", older.ScannedAt.Add(-time.Hour)).Error)
	newer := addUnit(t, db, box, user, "BBB222")

	details, err := repo.Details(context.Background(), box.ID)
	require.NoError(t, err)
	require.Len(t, details.Equipment, 2)
	assert.Equal(t, newer.ID, details.Equipment[0].ID)
	require.NotNil(t, details.Equipment[0].Scanner)
	assert.Equal(t, "op@example.com", details.Equipment[0].Scanner.Email)
}
