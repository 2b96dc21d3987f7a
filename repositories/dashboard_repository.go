package repositories

import (
	"context"
	"time"

	"dispatch-tracker/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	BoxesToday   int64               `json:"boxes_today"`
	OpenBoxes    int64               `json:"open_boxes"`
	UnitsToday   int64               `json:"units_today"`
	ReferenceSet int64               `json:"reference_rows"`
	RecentBoxes  []models.BoxSummary `json:"recent_boxes"`
}

type DashboardRepository struct {
	db    *gorm.DB
	boxes *BoxRepository
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db, boxes: NewBoxRepository(db)}
}

// Stats counts activity since local midnight of now.
func (r *DashboardRepository) Stats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}
	if err := db.Model(&models.Box{}).Where("created_at >= ?", midnight).Count(&stats.BoxesToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Box{}).Where("status = ?", models.BoxOpen).Count(&stats.OpenBoxes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Equipment{}).Where("scanned_at >= ?", midnight).Count(&stats.UnitsToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.SapData{}).Count(&stats.ReferenceSet).Error; err != nil {
		return nil, err
	}

	recent, err := r.boxes.List(ctx, "", 5)
	if err != nil {
		return nil, err
	}
	stats.RecentBoxes = recent
	return stats, nil
}
