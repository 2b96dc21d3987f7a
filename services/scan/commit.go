package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch-tracker/metrics"
	"dispatch-tracker/models"
	"dispatch-tracker/repositories"
	"dispatch-tracker/types"
)

type CommitStore interface {
	CreateEquipment(ctx context.Context, e *models.Equipment) error
	CreateRegistryEntry(ctx context.Context, entry *models.SeriesRegistry) error
	DeleteEquipment(ctx context.Context, id types.SnowflakeID) error
}

// CommitState traces how far a commit got.
type CommitState string

const (
	StatePending          CommitState = "pending"
	StateUnitCreated      CommitState = "unit_created"
	StateRegistryComplete CommitState = "registry_complete"
	StateRollbackIssued   CommitState = "rollback_issued"
	StateRejected         CommitState = "rejected"
)

// CommitError is returned by Commit when the unit could not be registered.
// When Duplicate is set, Value holds the serial that was already taken.
type CommitError struct {
	State     CommitState
	Value     string
	Duplicate bool
	// CompensateErr is set when the compensating delete itself failed.
	CompensateErr error
	Err           error
}

func (e *CommitError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("serial %s already exists", e.Value)
	}
	return fmt.Sprintf("commit %s: %v", e.State, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// Committer writes a unit and its registry rows as a saga: the unit first,
// then one registry row per populated value, deleting the unit again when a
// registry insert fails.
type Committer struct {
	store   CommitStore
	logger  *slog.Logger
	metrics *metrics.ScanMetrics
}

func NewCommitter(store CommitStore, logger *slog.Logger, m *metrics.ScanMetrics) *Committer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Committer{store: store, logger: logger, metrics: m}
}

// Commit inserts e and registers values for it.
func (c *Committer) Commit(ctx context.Context, e *models.Equipment, values []string) error {
	if err := c.store.CreateEquipment(ctx, e); err != nil {
		return &CommitError{
			State:     StateRejected,
			Duplicate: errors.Is(err, repositories.ErrDuplicate),
			Err:       err,
		}
	}

	for _, value := range values {
		if !types.IsPopulated(value) {
			continue
		}
		entry := &models.SeriesRegistry{Series: value, EquipmentID: e.ID, BoxID: e.BoxID}
		if err := c.store.CreateRegistryEntry(ctx, entry); err != nil {
			return c.compensate(ctx, e, value, err)
		}
	}
	return nil
}

func (c *Committer) compensate(ctx context.Context, e *models.Equipment, value string, cause error) error {
	c.metrics.RecordRollback()
	commitErr := &CommitError{
		State:     StateRollbackIssued,
		Value:     value,
		Duplicate: errors.Is(cause, repositories.ErrDuplicate),
		Err:       cause,
	}
	c.logger.Warn("registry insert failed, deleting unit",
		"equipment_id", e.ID,
		"box_id", e.BoxID,
		"series", value,
		"error", cause)

	// the request may already be cancelled, the delete must still run
	if err := c.store.DeleteEquipment(context.WithoutCancel(ctx), e.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		commitErr.CompensateErr = err
		c.logger.Error("compensating delete failed",
			"equipment_id", e.ID,
			"error", err)
		return commitErr
	}
	commitErr.State = StateRejected
	return commitErr
}
