package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"dispatch-tracker/models"
	"dispatch-tracker/types"

	"gorm.io/gorm"
)

type DispatchRepository struct {
	db *gorm.DB
}

func NewDispatchRepository(db *gorm.DB) *DispatchRepository {
	return &DispatchRepository{db: db}
}

// PalletDispatchResult is the outcome for one pallet of a pallet dispatch.
type PalletDispatchResult struct {
	PalletID   types.SnowflakeID  `json:"pallet_id"`
	PalletName string             `json:"pallet_name,omitempty"`
	DispatchID *types.SnowflakeID `json:"dispatch_id,omitempty"`
	BoxCount   int                `json:"box_count"`
	Success    bool               `json:"success"`
	Error      string             `json:"error,omitempty"`
}

type DispatchQuery struct {
	Page   int
	Limit  int
	Search string
}

func (q *DispatchQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	q.Search = strings.TrimSpace(q.Search)
}

// DispatchPallets dispatches every pallet on its own. A pallet without
// undispatched boxes is reported and skipped.
func (r *DispatchRepository) DispatchPallets(ctx context.Context, palletIDs []types.SnowflakeID, sapExitID string, notes *string, createdBy uint) ([]PalletDispatchResult, error) {
	sapExitID = strings.TrimSpace(sapExitID)
	if sapExitID == "" {
		return nil, invalidState("sap_exit_id is required")
	}
	if len(palletIDs) == 0 {
		return nil, invalidState("no pallets given")
	}

	results := make([]PalletDispatchResult, 0, len(palletIDs))
	for _, palletID := range palletIDs {
		res := PalletDispatchResult{PalletID: palletID}
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return r.dispatchPallet(tx, &res, sapExitID, notes, createdBy)
		})
		if err != nil {
			if !errors.Is(err, ErrInvalidState) && !errors.Is(err, ErrNotFound) {
				return results, err
			}
			res.Error = err.Error()
		} else {
			res.Success = true
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *DispatchRepository) dispatchPallet(tx *gorm.DB, res *PalletDispatchResult, sapExitID string, notes *string, createdBy uint) error {
	var pallet models.Pallet
	if err := tx.First(&pallet, "id = ?", res.PalletID).Error; err != nil {
		return classify(err)
	}
	res.PalletName = pallet.Name
	if pallet.DispatchID != nil {
		return invalidState("pallet %s is already dispatched", pallet.Name)
	}

	var boxIDs []types.SnowflakeID
	if err := tx.Model(&models.Box{}).
		Where("pallet_id = ? AND dispatch_id IS NULL", pallet.ID).
		Pluck("id", &boxIDs).Error; err != nil {
		return err
	}
	if len(boxIDs) == 0 {
		return invalidState("pallet %s has no boxes", pallet.Name)
	}

	dispatch := &models.Dispatch{
		SapExitID: sapExitID,
		Type:      models.DispatchPallet,
		PalletID:  &pallet.ID,
		CreatedBy: createdBy,
		Notes:     notes,
	}
	if err := tx.Omit("Creator", "Boxes").Create(dispatch).Error; err != nil {
		return err
	}
	if err := markDispatched(tx, boxIDs, dispatch.ID); err != nil {
		return err
	}

	now := time.Now()
	if err := tx.Model(&pallet).Updates(map[string]interface{}{
		"dispatch_id":   dispatch.ID,
		"sap_exit_id":   sapExitID,
		"dispatched_at": now,
	}).Error; err != nil {
		return err
	}

	res.DispatchID = &dispatch.ID
	res.BoxCount = len(boxIDs)
	return nil
}

// DispatchBoxes records one dispatch for loose boxes. Every box must be
// closed.
func (r *DispatchRepository) DispatchBoxes(ctx context.Context, boxIDs []types.SnowflakeID, sapExitID string, kind models.DispatchType, notes *string, createdBy uint) (*models.Dispatch, error) {
	sapExitID = strings.TrimSpace(sapExitID)
	if sapExitID == "" {
		return nil, invalidState("sap_exit_id is required")
	}
	if len(boxIDs) == 0 {
		return nil, invalidState("no boxes given")
	}
	if kind == "" {
		kind = models.DispatchBox
	}
	if !kind.Valid() {
		return nil, invalidState("unknown dispatch type %q", kind)
	}

	dispatch := &models.Dispatch{
		SapExitID: sapExitID,
		Type:      kind,
		CreatedBy: createdBy,
		Notes:     notes,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var boxes []models.Box
		if err := tx.Where("id IN ?", boxIDs).Find(&boxes).Error; err != nil {
			return err
		}
		if len(boxes) != len(uniqueIDs(boxIDs)) {
			return ErrNotFound
		}
		for _, box := range boxes {
			if box.Status != models.BoxClosed {
				return invalidState("box %s is %s, only closed boxes can be dispatched", box.BoxNumber, box.Status)
			}
		}

		if err := tx.Omit("Creator", "Boxes").Create(dispatch).Error; err != nil {
			return err
		}
		return markDispatched(tx, boxIDs, dispatch.ID)
	})
	if err != nil {
		return nil, err
	}
	return dispatch, nil
}

func markDispatched(tx *gorm.DB, boxIDs []types.SnowflakeID, dispatchID types.SnowflakeID) error {
	return tx.Model(&models.Box{}).
		Where("id IN ?", boxIDs).
		Updates(map[string]interface{}{
			"dispatch_id": dispatchID,
			"status":      models.BoxDispatched,
		}).Error
}

func uniqueIDs(ids []types.SnowflakeID) map[types.SnowflakeID]struct{} {
	set := make(map[types.SnowflakeID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// List returns the dispatch history newest first with box counts.
func (r *DispatchRepository) List(ctx context.Context, q DispatchQuery) ([]models.DispatchSummary, int64, error) {
	q.normalize()
	db := r.db.WithContext(ctx)

	filtered := func() *gorm.DB {
		query := db.Model(&models.Dispatch{})
		if q.Search != "" {
			query = query.Where("sap_exit_id LIKE ?", "%"+q.Search+"%")
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dispatches []models.Dispatch
	err := filtered().
		Preload("Creator").
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&dispatches).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.DispatchSummary, len(dispatches))
	if len(dispatches) == 0 {
		return out, total, nil
	}

	ids := make([]types.SnowflakeID, len(dispatches))
	for i, d := range dispatches {
		ids[i] = d.ID
	}
	var rows []struct {
		DispatchID types.SnowflakeID
		Total      int64
	}
	err = db.Model(&models.Box{}).
		Select("dispatch_id, COUNT(*) AS total").
		Where("dispatch_id IN ?", ids).
		Group("dispatch_id").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[types.SnowflakeID]int64, len(rows))
	for _, row := range rows {
		counts[row.DispatchID] = row.Total
	}
	for i, d := range dispatches {
		out[i] = models.DispatchSummary{Dispatch: d, BoxCount: counts[d.ID]}
	}
	return out, total, nil
}

// Details loads a dispatch with its boxes.
func (r *DispatchRepository) Details(ctx context.Context, id types.SnowflakeID) (*models.Dispatch, error) {
	var dispatch models.Dispatch
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Boxes", func(db *gorm.DB) *gorm.DB {
			return db.Order("box_number")
		}).
		Preload("Boxes.Model").
		First(&dispatch, "id = ?", id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &dispatch, nil
}
