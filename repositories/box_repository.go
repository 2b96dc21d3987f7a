package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dispatch-tracker/models"
	"dispatch-tracker/types"

	"gorm.io/gorm"
)

const (
	boxNumberPrefix   = "CAJA-"
	boxNumberAttempts = 5
)

type BoxRepository struct {
	db *gorm.DB
}

func NewBoxRepository(db *gorm.DB) *BoxRepository {
	return &BoxRepository{db: db}
}

// nextBoxNumber membaca nomor CAJA terakhir lalu menambah satu.
func (r *BoxRepository) nextBoxNumber(tx *gorm.DB) (string, error) {
	var last []string
	err := tx.Model(&models.Box{}).
		Where("box_number LIKE ?", boxNumberPrefix+"%").
		Order("box_number DESC").
		Limit(1).
		Pluck("box_number", &last).Error
	if err != nil {
		return "", err
	}

	seq := 0
	if len(last) > 0 {
		seq, _ = strconv.Atoi(strings.TrimPrefix(last[0], boxNumberPrefix))
	}
	return fmt.Sprintf("%s%06d", boxNumberPrefix, seq+1), nil
}

// Create numbers box and inserts it. Two concurrent creates may pick the
// same number, the loser retries with the next one.
func (r *BoxRepository) Create(ctx context.Context, box *models.Box) error {
	if box.TotalItems < 1 {
		return invalidState("total_items must be at least 1")
	}
	db := r.db.WithContext(ctx)

	var model models.ProductModel
	if err := db.First(&model, box.ModelID).Error; err != nil {
		return fmt.Errorf("model %d: %w", box.ModelID, classify(err))
	}

	var err error
	for attempt := 0; attempt < boxNumberAttempts; attempt++ {
		box.BoxNumber, err = r.nextBoxNumber(db)
		if err != nil {
			return err
		}
		box.ID = 0
		box.Status = models.BoxOpen
		err = classify(db.Omit("Model", "Creator", "Equipment").Create(box).Error)
		if !errors.Is(err, ErrDuplicate) {
			return err
		}
	}
	return err
}

// Duplicate creates a new open box with the model and quantity of sourceID.
func (r *BoxRepository) Duplicate(ctx context.Context, sourceID types.SnowflakeID, createdBy uint) (*models.Box, error) {
	source, err := r.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	box := &models.Box{
		ModelID:    source.ModelID,
		TotalItems: source.TotalItems,
		CreatedBy:  createdBy,
	}
	if err := r.Create(ctx, box); err != nil {
		return nil, err
	}
	return box, nil
}

func (r *BoxRepository) FindByID(ctx context.Context, id types.SnowflakeID) (*models.Box, error) {
	var box models.Box
	err := r.db.WithContext(ctx).
		Preload("Model.Brand").
		Preload("Creator").
		First(&box, "id = ?", id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &box, nil
}

// Details loads a box with its units, newest first.
func (r *BoxRepository) Details(ctx context.Context, id types.SnowflakeID) (*models.Box, error) {
	var box models.Box
	err := r.db.WithContext(ctx).
		Preload("Model.Brand").
		Preload("Creator").
		Preload("Equipment", func(db *gorm.DB) *gorm.DB {
			return db.Order("scanned_at DESC")
		}).
		Preload("Equipment.Scanner").
		First(&box, "id = ?", id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &box, nil
}

// List returns boxes newest first, filtered by status when one is given.
func (r *BoxRepository) List(ctx context.Context, status models.BoxStatus, limit int) ([]models.BoxSummary, error) {
	query := r.db.WithContext(ctx).
		Preload("Model.Brand").
		Preload("Creator").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var boxes []models.Box
	if err := query.Find(&boxes).Error; err != nil {
		return nil, err
	}
	return r.summaries(ctx, boxes)
}

func (r *BoxRepository) ListOpen(ctx context.Context) ([]models.BoxSummary, error) {
	return r.List(ctx, models.BoxOpen, 0)
}

func (r *BoxRepository) summaries(ctx context.Context, boxes []models.Box) ([]models.BoxSummary, error) {
	out := make([]models.BoxSummary, len(boxes))
	if len(boxes) == 0 {
		return out, nil
	}

	ids := make([]types.SnowflakeID, len(boxes))
	for i, b := range boxes {
		ids[i] = b.ID
	}
	counts, err := r.itemCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, b := range boxes {
		out[i] = models.BoxSummary{Box: b, ItemCount: counts[b.ID]}
	}
	return out, nil
}

func (r *BoxRepository) itemCounts(ctx context.Context, ids []types.SnowflakeID) (map[types.SnowflakeID]int64, error) {
	var rows []struct {
		BoxID types.SnowflakeID
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Select("box_id, COUNT(*) AS total").
		Where("box_id IN ?", ids).
		Group("box_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[types.SnowflakeID]int64, len(rows))
	for _, row := range rows {
		counts[row.BoxID] = row.Total
	}
	return counts, nil
}

func (r *BoxRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Box{}).Count(&count).Error
	return count, err
}

func (r *BoxRepository) countItems(tx *gorm.DB, id types.SnowflakeID) (int64, error) {
	var count int64
	err := tx.Model(&models.Equipment{}).Where("box_id = ?", id).Count(&count).Error
	return count, err
}

// UpdateQuantity changes the target quantity; it never drops below the
// number of units already scanned.
func (r *BoxRepository) UpdateQuantity(ctx context.Context, id types.SnowflakeID, quantity int) error {
	return r.Update(ctx, id, 0, quantity)
}

// Update changes model and/or quantity. A zero modelID keeps the model.
// The model can only change while the box is empty.
func (r *BoxRepository) Update(ctx context.Context, id types.SnowflakeID, modelID uint, quantity int) error {
	if quantity < 1 {
		return invalidState("total_items must be at least 1")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var box models.Box
		if err := tx.First(&box, "id = ?", id).Error; err != nil {
			return classify(err)
		}
		if box.Status == models.BoxDispatched {
			return invalidState("box %s is already dispatched", box.BoxNumber)
		}

		count, err := r.countItems(tx, id)
		if err != nil {
			return err
		}
		if int64(quantity) < count {
			return invalidState("box %s already holds %d units", box.BoxNumber, count)
		}

		updates := map[string]interface{}{"total_items": quantity}
		if modelID != 0 && modelID != box.ModelID {
			if count > 0 {
				return invalidState("box %s has units, model cannot change", box.BoxNumber)
			}
			var model models.ProductModel
			if err := tx.First(&model, modelID).Error; err != nil {
				return fmt.Errorf("model %d: %w", modelID, classify(err))
			}
			updates["model_id"] = modelID
		}
		return tx.Model(&box).Updates(updates).Error
	})
}

// Close moves an open box to closed.
func (r *BoxRepository) Close(ctx context.Context, id types.SnowflakeID) (*models.Box, error) {
	var box models.Box
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&box, "id = ?", id).Error; err != nil {
			return classify(err)
		}
		if box.Status != models.BoxOpen {
			return invalidState("box %s is %s", box.BoxNumber, box.Status)
		}
		now := time.Now()
		box.Status = models.BoxClosed
		box.ClosedAt = &now
		return tx.Model(&box).Updates(map[string]interface{}{
			"status":    box.Status,
			"closed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &box, nil
}

// Delete removes a box with all its units and their registry rows.
func (r *BoxRepository) Delete(ctx context.Context, id types.SnowflakeID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("box_id = ?", id).Delete(&models.SeriesRegistry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("box_id = ?", id).Delete(&models.Equipment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Box{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
