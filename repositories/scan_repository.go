package repositories

import (
	"context"
	"fmt"

	"dispatch-tracker/models"
	"dispatch-tracker/types"

	"gorm.io/gorm"
)

// ScanRepository is the storage used by the scan pipeline.
type ScanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// SeriesOwner tells who already holds a serial value.
type SeriesOwner struct {
	Series      string            `json:"series"`
	EquipmentID types.SnowflakeID `json:"equipment_id"`
	BoxID       types.SnowflakeID `json:"box_id"`
	BoxNumber   string            `json:"box_number"`
	OwnerEmail  string            `json:"owner_email"`
}

func (r *ScanRepository) FindBox(ctx context.Context, id types.SnowflakeID) (*models.Box, error) {
	var box models.Box
	if err := r.db.WithContext(ctx).Preload("Model").First(&box, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &box, nil
}

func (r *ScanRepository) CountEquipment(ctx context.Context, boxID types.SnowflakeID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Equipment{}).Where("box_id = ?", boxID).Count(&count).Error
	return count, err
}

// FindSeriesOwner returns ErrNotFound when nobody holds value.
func (r *ScanRepository) FindSeriesOwner(ctx context.Context, value string) (*SeriesOwner, error) {
	var owners []SeriesOwner
	err := r.db.WithContext(ctx).
		Table("global_series_registry AS r").
		Select("r.series, r.equipment_id, r.box_id, b.box_number, u.email AS owner_email").
		Joins("JOIN equipment e ON e.id = r.equipment_id").
		Joins("JOIN boxes b ON b.id = r.box_id").
		Joins("LEFT JOIN users u ON u.id = e.scanned_by").
		Where("r.series = ?", value).
		Limit(1).
		Scan(&owners).Error
	if err != nil {
		return nil, fmt.Errorf("lookup series %s: %w", value, err)
	}
	if len(owners) == 0 {
		return nil, ErrNotFound
	}
	return &owners[0], nil
}

// FindReferences returns the reference rows whose series is one of values.
// values must already be normalized.
func (r *ScanRepository) FindReferences(ctx context.Context, values []string) ([]models.SapData, error) {
	if len(values) == 0 {
		return nil, nil
	}
	var rows []models.SapData
	if err := r.db.WithContext(ctx).Where("series IN ?", values).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lookup reference data: %w", err)
	}
	return rows, nil
}

func (r *ScanRepository) CreateEquipment(ctx context.Context, e *models.Equipment) error {
	return classify(r.db.WithContext(ctx).Omit("Registry").Create(e).Error)
}

// CreateRegistryEntry fails with ErrDuplicate when the series is taken.
func (r *ScanRepository) CreateRegistryEntry(ctx context.Context, entry *models.SeriesRegistry) error {
	return classify(r.db.WithContext(ctx).Create(entry).Error)
}

// DeleteEquipment removes a unit together with its registry rows.
func (r *ScanRepository) DeleteEquipment(ctx context.Context, id types.SnowflakeID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("equipment_id = ?", id).Delete(&models.SeriesRegistry{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Equipment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// EquipmentHit is a search result row.
type EquipmentHit struct {
	models.Equipment
	BoxNumber    string           `json:"box_number"`
	BoxStatus    models.BoxStatus `json:"box_status"`
	ScannerEmail string           `json:"scanner_email"`
}

// Search finds units whose serial contains query, plus units of boxes whose
// number contains it. Results are newest first with duplicates removed.
func (r *ScanRepository) Search(ctx context.Context, query string) ([]EquipmentHit, error) {
	like := "%" + query + "%"
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("equipment AS e").
			Select("e.*, b.box_number, b.status AS box_status, u.email AS scanner_email").
			Joins("JOIN boxes b ON b.id = e.box_id").
			Joins("LEFT JOIN users u ON u.id = e.scanned_by").
			Order("e.scanned_at DESC")
	}

	var bySeries []EquipmentHit
	err := base().
		Where("e.id IN (?)", r.db.Model(&models.SeriesRegistry{}).Select("equipment_id").Where("series LIKE ?", like)).
		Limit(20).
		Scan(&bySeries).Error
	if err != nil {
		return nil, err
	}

	var byBox []EquipmentHit
	err = base().
		Where("e.box_id IN (?)", r.db.Model(&models.Box{}).Select("id").Where("box_number LIKE ?", like)).
		Limit(50).
		Scan(&byBox).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[types.SnowflakeID]bool, len(bySeries)+len(byBox))
	out := make([]EquipmentHit, 0, len(bySeries)+len(byBox))
	for _, hit := range append(bySeries, byBox...) {
		if seen[hit.ID] {
			continue
		}
		seen[hit.ID] = true
		out = append(out, hit)
	}
	return out, nil
}
