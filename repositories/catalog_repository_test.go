package repositories

import (
	"context"
	"testing"
	"time"

	"dispatch-tracker/models"
	"dispatch-tracker/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSeriesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fields  []models.SeriesField
		wantErr bool
	}{
		{"empty", nil, true},
		{"five fields", []models.SeriesField{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"}}, true},
		{"blank name", []models.SeriesField{{Name: " "}}, true},
		{"duplicate name", []models.SeriesField{{Name: "SN"}, {Name: " SN "}}, true},
		{"negative length", []models.SeriesField{{Name: "SN", Length: -1}}, true},
		{"valid", []models.SeriesField{{Name: "SN-1", Required: true}, {Name: "MAC", Length: 17}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSeriesConfig(tt.fields)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidState)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalogBrandsAndModels(t *testing.T) {
	t.Parallel()
	db := testutil.NewDB(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	brand, err := repo.CreateBrand(ctx, " Huawei ")
	require.NoError(t, err)
	assert.Equal(t, "Huawei", brand.Name)

	_, err = repo.CreateBrand(ctx, "Huawei")
	assert.ErrorIs(t, err, ErrDuplicate)

	model, err := repo.CreateModel(ctx, brand.ID, "HG8245", []models.SeriesField{{Name: "SN-1", Required: true}})
	require.NoError(t, err)

	_, err = repo.CreateModel(ctx, 999, "X", []models.SeriesField{{Name: "SN"}})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := repo.UpdateModel(ctx, model.ID, brand.ID, "HG8245H", []models.SeriesField{{Name: "SN-1"}, {Name: "MAC"}})
	require.NoError(t, err)
	assert.Equal(t, "HG8245H", updated.Name)

	loaded, err := repo.FindModel(ctx, model.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Fields(), 2)
	require.NotNil(t, loaded.Brand)
	assert.Equal(t, "Huawei", loaded.Brand.Name)

	list, err := repo.ListModels(ctx, brand.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCatalogDeleteKeepsModelsInUse(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	testutil.CreateBox(t, db, model, user, 1)

	assert.ErrorIs(t, repo.DeleteModel(ctx, model.ID), ErrInvalidState)
	assert.ErrorIs(t, repo.DeleteBrand(ctx, model.BrandID), ErrInvalidState)

	unused := testutil.CreateModel(t, db, "UNUSED", models.SeriesField{Name: "SN"})
	require.NoError(t, repo.DeleteBrand(ctx, unused.BrandID))
	_, err := repo.FindModel(ctx, unused.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	t.Parallel()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: " Ana@Example.com ", Name: "Ana"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, models.RoleOperator, user.Role)

	assert.ErrorIs(t, repo.Create(ctx, &models.User{Email: "ana@example.com"}), ErrDuplicate)
	assert.ErrorIs(t, repo.Create(ctx, &models.User{Email: "x@example.com", Role: "root"}), ErrInvalidState)

	updated, err := repo.UpdateRole(ctx, user.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	_, err = repo.UpdateRole(ctx, 999, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	t.Parallel()
	db, user, model := seedBoxFixture(t)
	ctx := context.Background()

	box := testutil.CreateBox(t, db, model, user, 2)
	addUnit(t, db, box, user, "AAA111")
	closed := testutil.CreateBox(t, db, model, user, 2)
	_, err := NewBoxRepository(db).Close(ctx, closed.ID)
	require.NoError(t, err)
	testutil.CreateReferences(t, db, "MAT", "AAA111")

	stats, err := NewDashboardRepository(db).Stats(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.BoxesToday)
	assert.Equal(t, int64(1), stats.OpenBoxes)
	assert.Equal(t, int64(1), stats.UnitsToday)
	assert.Equal(t, int64(1), stats.ReferenceSet)
	assert.Len(t, stats.RecentBoxes, 2)
}
