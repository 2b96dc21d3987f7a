package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch-tracker/metrics"
	"dispatch-tracker/models"
	"dispatch-tracker/repositories"
	"dispatch-tracker/types"

	"gorm.io/datatypes"
)

// Store is everything a scan reads and writes.
type Store interface {
	OwnerLookup
	ReferenceLookup
	CommitStore
	FindBox(ctx context.Context, id types.SnowflakeID) (*models.Box, error)
	CountEquipment(ctx context.Context, boxID types.SnowflakeID) (int64, error)
}

type Options struct {
	// Priority is the ordered list of field names tried first when matching
	// against the reference dataset.
	Priority []string
	Logger   *slog.Logger
	Metrics  *metrics.ScanMetrics
}

type Pipeline struct {
	store     Store
	global    *GlobalChecker
	matcher   *Matcher
	committer *Committer
	logger    *slog.Logger
	metrics   *metrics.ScanMetrics
	now       func() time.Time
}

func NewPipeline(store Store, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "scan")
	return &Pipeline{
		store:     store,
		global:    NewGlobalChecker(store),
		matcher:   NewMatcher(store, opts.Priority),
		committer: NewCommitter(store, logger, opts.Metrics),
		logger:    logger,
		metrics:   opts.Metrics,
		now:       time.Now,
	}
}

// Scan validates req and, when every check passes, commits the unit.
func (p *Pipeline) Scan(ctx context.Context, req Request) Result {
	start := p.now()
	res := p.scan(ctx, req)
	p.metrics.RecordScan(string(res.Outcome), string(res.Reason), p.now().Sub(start))

	switch {
	case res.Reason == ReasonStorage:
		// logged where the error was seen
	case res.OK():
		p.logger.Info("unit scanned",
			"box_id", req.BoxID,
			"operator_id", req.OperatorID,
			"equipment_id", res.Equipment.ID,
			"matched_field", res.MatchedField)
	default:
		p.logger.Info("scan rejected",
			"box_id", req.BoxID,
			"operator_id", req.OperatorID,
			"outcome", res.Outcome,
			"reason", res.Reason)
	}
	return res
}

func (p *Pipeline) scan(ctx context.Context, req Request) Result {
	box, res, ok := p.guardBox(ctx, req.BoxID)
	if !ok {
		return res
	}

	series, err := Clean(box.Model, req.Series)
	if err != nil {
		return reject(ReasonInvalidInput, err.Error())
	}
	fields := OrderedFields(box.Model, series)

	if first, second, dup := LocalDuplicate(fields, series); dup {
		return reject(ReasonLocalDuplicate,
			fmt.Sprintf("duplicate within scan: %s and %s carry the same value", first, second))
	}

	conflict, err := p.global.Check(ctx, fields, series)
	if err != nil {
		return p.storageError(ctx, "global duplicate check", err)
	}
	if conflict != nil {
		res := reject(ReasonGlobalDuplicate, conflict.Message())
		res.Conflict = conflict.Owner
		return res
	}

	match, err := p.matcher.Match(ctx, fields, series)
	if err != nil {
		return p.storageError(ctx, "reference match", err)
	}
	if !match.Found {
		return Result{
			Outcome: OutcomeWarning,
			Reason:  ReasonUnverified,
			Message: "not found in ERP data (" + match.Summary() + ")",
			Tried:   match.Tried,
		}
	}

	equipment := &models.Equipment{
		BoxID:          box.ID,
		IsSapValidated: true,
		Material:       &match.Material,
		MatchedField:   &match.Field,
		ScannedBy:      req.OperatorID,
		ScannedAt:      p.now(),
		SeriesData:     datatypes.NewJSONType(series),
	}

	values := make([]string, 0, len(fields))
	for _, name := range fields {
		values = append(values, series[name])
	}

	if err := p.committer.Commit(ctx, equipment, values); err != nil {
		var commitErr *CommitError
		if errors.As(err, &commitErr) && commitErr.Duplicate && commitErr.CompensateErr == nil {
			msg := "serial already exists"
			if commitErr.Value != "" {
				msg = fmt.Sprintf("serial %s already exists", commitErr.Value)
			}
			return reject(ReasonGlobalDuplicate, msg)
		}
		return p.storageError(ctx, "commit", err)
	}

	return Result{
		Outcome:      OutcomeSuccess,
		Message:      fmt.Sprintf("unit registered, validated by %s", match.Field),
		MatchedField: match.Field,
		Material:     match.Material,
		Equipment:    equipment,
	}
}

func (p *Pipeline) guardBox(ctx context.Context, id types.SnowflakeID) (*models.Box, Result, bool) {
	box, err := p.store.FindBox(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, reject(ReasonBoxNotFound, "box not found"), false
	}
	if err != nil {
		return nil, p.storageError(ctx, "load box", err), false
	}
	if box.Status != models.BoxOpen {
		return nil, reject(ReasonBoxNotOpen, fmt.Sprintf("box %s is %s", box.BoxNumber, box.Status)), false
	}
	if box.Model == nil {
		return nil, p.storageError(ctx, "load box", fmt.Errorf("box %s has no model", box.BoxNumber)), false
	}

	count, err := p.store.CountEquipment(ctx, box.ID)
	if err != nil {
		return nil, p.storageError(ctx, "count units", err), false
	}
	if count >= int64(box.TotalItems) {
		return nil, reject(ReasonBoxFull, fmt.Sprintf("box %s is full (%d/%d)", box.BoxNumber, count, box.TotalItems)), false
	}
	return box, Result{}, true
}

func (p *Pipeline) storageError(ctx context.Context, stage string, err error) Result {
	p.logger.ErrorContext(ctx, "scan storage failure", "stage", stage, "error", err)
	return reject(ReasonStorage, stage+" failed: "+err.Error())
}
