package scan

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dispatch-tracker/idgen"
	"dispatch-tracker/logging"
	"dispatch-tracker/models"
	"dispatch-tracker/repositories"
	"dispatch-tracker/testutil"
	"dispatch-tracker/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommitStore struct {
	units     map[types.SnowflakeID]*models.Equipment
	registry  []string
	failAt    int // 1-based registry insert that fails, 0 never
	failErr   error
	deleteErr error
	deleted   []types.SnowflakeID
}

func newFakeCommitStore() *fakeCommitStore {
	return &fakeCommitStore{units: map[types.SnowflakeID]*models.Equipment{}}
}

func (f *fakeCommitStore) CreateEquipment(_ context.Context, e *models.Equipment) error {
	e.ID = types.SnowflakeID(idgen.GenerateID())
	f.units[e.ID] = e
	return nil
}

func (f *fakeCommitStore) CreateRegistryEntry(_ context.Context, entry *models.SeriesRegistry) error {
	if f.failAt > 0 && len(f.registry)+1 == f.failAt {
		return f.failErr
	}
	f.registry = append(f.registry, entry.Series)
	return nil
}

func (f *fakeCommitStore) DeleteEquipment(_ context.Context, id types.SnowflakeID) error {
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.units, id)
	return nil
}

func TestCommitSuccess(t *testing.T) {
	t.Parallel()

	store := newFakeCommitStore()
	c := NewCommitter(store, logging.Discard(), nil)

	e := &models.Equipment{BoxID: 1}
	require.NoError(t, c.Commit(context.Background(), e, []string{"AAA111", "NA", "CCC333"}))

	assert.Contains(t, store.units, e.ID)
	assert.Equal(t, []string{"AAA111", "CCC333"}, store.registry)
	assert.Empty(t, store.deleted)
}

func TestCommitRollsBackOnSecondRegistryFailure(t *testing.T) {
	t.Parallel()

	store := newFakeCommitStore()
	store.failAt = 2
	store.failErr = fmt.Errorf("%w: UNIQUE constraint failed", repositories.ErrDuplicate)
	c := NewCommitter(store, logging.Discard(), nil)

	e := &models.Equipment{BoxID: 1}
	err := c.Commit(context.Background(), e, []string{"AAA111", "BBB222", "CCC333"})

	var commitErr *CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.True(t, commitErr.Duplicate)
	assert.Equal(t, "BBB222", commitErr.Value)
	assert.Equal(t, StateRejected, commitErr.State)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	assert.Equal(t, "serial BBB222 already exists", err.Error())

	assert.Equal(t, []types.SnowflakeID{e.ID}, store.deleted)
	assert.NotContains(t, store.units, e.ID)
	// the third value is never attempted
	assert.Equal(t, []string{"AAA111"}, store.registry)
}

func TestCommitReportsFailedCompensation(t *testing.T) {
	t.Parallel()

	store := newFakeCommitStore()
	store.failAt = 1
	store.failErr = errors.New("disk I/O error")
	store.deleteErr = errors.New("database is locked")
	c := NewCommitter(store, logging.Discard(), nil)

	err := c.Commit(context.Background(), &models.Equipment{BoxID: 1}, []string{"AAA111"})

	var commitErr *CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.False(t, commitErr.Duplicate)
	assert.Equal(t, StateRollbackIssued, commitErr.State)
	assert.EqualError(t, commitErr.CompensateErr, "database is locked")
}

func TestCommitCompensatesAgainstDatabase(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "op@example.com", models.RoleOperator)
	model := testutil.CreateModel(t, db, "M1",
		models.SeriesField{Name: "SN-1"}, models.SeriesField{Name: "SN-2"}, models.SeriesField{Name: "SN-3"})
	box := testutil.CreateBox(t, db, model, user, 10)

	repo := repositories.NewScanRepository(db)
	c := NewCommitter(repo, logging.Discard(), nil)
	ctx := context.Background()

	first := &models.Equipment{BoxID: box.ID, ScannedBy: user.ID}
	require.NoError(t, c.Commit(ctx, first, []string{"BBB222"}))

	second := &models.Equipment{BoxID: box.ID, ScannedBy: user.ID}
	err := c.Commit(ctx, second, []string{"AAA111", "BBB222", "CCC333"})

	var commitErr *CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.True(t, commitErr.Duplicate)
	assert.Equal(t, "BBB222", commitErr.Value)

	var units int64
	require.NoError(t, db.Model(&models.Equipment{}).Where("id = ?", second.ID).Count(&units).Error)
	assert.Zero(t, units)

	var series []string
	require.NoError(t, db.Model(&models.SeriesRegistry{}).Order("series").Pluck("series", &series).Error)
	assert.Equal(t, []string{"BBB222"}, series)
}
