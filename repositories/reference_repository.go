package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dispatch-tracker/models"
	"dispatch-tracker/types"

	"gorm.io/gorm"
)

const DefaultReferenceBatchSize = 1000

// ErrNoReferenceRecords is returned when a replace carries no usable row.
var ErrNoReferenceRecords = errors.New("no valid reference records")

// ReferenceRecord is one uploaded row of the ERP extract.
type ReferenceRecord struct {
	Series   string `json:"series"`
	Material string `json:"material"`
	Status   string `json:"status"`
}

type ReferenceRepository struct {
	db        *gorm.DB
	batchSize int
}

func NewReferenceRepository(db *gorm.DB, batchSize int) *ReferenceRepository {
	if batchSize <= 0 {
		batchSize = DefaultReferenceBatchSize
	}
	return &ReferenceRepository{db: db, batchSize: batchSize}
}

// Replace swaps the whole dataset for records in one transaction and
// returns the number of rows stored.
func (r *ReferenceRepository) Replace(ctx context.Context, records []ReferenceRecord) (int, error) {
	rows := make([]models.SapData, 0, len(records))
	for _, rec := range records {
		series := types.NormalizeSerial(rec.Series)
		if series == "" {
			continue
		}
		status := strings.TrimSpace(rec.Status)
		if status == "" {
			status = "pending"
		}
		rows = append(rows, models.SapData{
			Series:   series,
			Material: strings.TrimSpace(rec.Material),
			Status:   status,
		})
	}
	if len(rows) == 0 {
		return 0, ErrNoReferenceRecords
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SapData{}).Error; err != nil {
			return fmt.Errorf("clear reference data: %w", err)
		}
		if err := tx.CreateInBatches(rows, r.batchSize).Error; err != nil {
			return fmt.Errorf("insert reference data: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *ReferenceRepository) Clear(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SapData{})
	return res.RowsAffected, res.Error
}

func (r *ReferenceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SapData{}).Count(&count).Error
	return count, err
}
