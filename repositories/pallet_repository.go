package repositories

import (
	"context"
	"fmt"
	"strings"

	"dispatch-tracker/models"
	"dispatch-tracker/types"

	"gorm.io/gorm"
)

type PalletRepository struct {
	db *gorm.DB
}

func NewPalletRepository(db *gorm.DB) *PalletRepository {
	return &PalletRepository{db: db}
}

// Create inserts a pallet, naming it TARIMA-NNN when name is blank.
func (r *PalletRepository) Create(ctx context.Context, name string, createdBy uint) (*models.Pallet, error) {
	db := r.db.WithContext(ctx)
	name = strings.TrimSpace(name)
	if name == "" {
		var count int64
		if err := db.Model(&models.Pallet{}).Count(&count).Error; err != nil {
			return nil, err
		}
		name = fmt.Sprintf("TARIMA-%03d", count+1)
	}

	pallet := &models.Pallet{Name: name, CreatedBy: createdBy}
	if err := db.Omit("Creator", "Boxes").Create(pallet).Error; err != nil {
		return nil, classify(err)
	}
	return pallet, nil
}

// ListActive returns pallets not yet dispatched with their boxes.
func (r *PalletRepository) ListActive(ctx context.Context) ([]models.Pallet, error) {
	var pallets []models.Pallet
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Boxes", func(db *gorm.DB) *gorm.DB {
			return db.Order("box_number")
		}).
		Preload("Boxes.Model").
		Where("dispatch_id IS NULL").
		Order("created_at DESC").
		Find(&pallets).Error
	return pallets, err
}

// Details loads a pallet with boxes and their units.
func (r *PalletRepository) Details(ctx context.Context, id types.SnowflakeID) (*models.Pallet, error) {
	var pallet models.Pallet
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Boxes", func(db *gorm.DB) *gorm.DB {
			return db.Order("box_number")
		}).
		Preload("Boxes.Model.Brand").
		Preload("Boxes.Equipment", func(db *gorm.DB) *gorm.DB {
			return db.Order("scanned_at")
		}).
		Preload("Boxes.Equipment.Scanner").
		First(&pallet, "id = ?", id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &pallet, nil
}

// AddBox puts a box on a pallet. The box must not be dispatched nor sit on
// another pallet.
func (r *PalletRepository) AddBox(ctx context.Context, palletID, boxID types.SnowflakeID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pallet models.Pallet
		if err := tx.First(&pallet, "id = ?", palletID).Error; err != nil {
			return fmt.Errorf("pallet: %w", classify(err))
		}
		if pallet.DispatchID != nil {
			return invalidState("pallet %s is already dispatched", pallet.Name)
		}

		var box models.Box
		if err := tx.First(&box, "id = ?", boxID).Error; err != nil {
			return fmt.Errorf("box: %w", classify(err))
		}
		if box.DispatchID != nil || box.Status == models.BoxDispatched {
			return invalidState("box %s is already dispatched", box.BoxNumber)
		}
		if box.PalletID != nil && *box.PalletID != palletID {
			return invalidState("box %s is on another pallet", box.BoxNumber)
		}
		return tx.Model(&box).Update("pallet_id", palletID).Error
	})
}

func (r *PalletRepository) RemoveBox(ctx context.Context, boxID types.SnowflakeID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var box models.Box
		if err := tx.First(&box, "id = ?", boxID).Error; err != nil {
			return classify(err)
		}
		if box.DispatchID != nil {
			return invalidState("box %s is already dispatched", box.BoxNumber)
		}
		return tx.Model(&box).Update("pallet_id", nil).Error
	})
}

// Delete detaches the pallet's boxes and removes it. Dispatched pallets are
// kept for the dispatch history.
func (r *PalletRepository) Delete(ctx context.Context, id types.SnowflakeID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pallet models.Pallet
		if err := tx.First(&pallet, "id = ?", id).Error; err != nil {
			return classify(err)
		}
		if pallet.DispatchID != nil {
			return invalidState("pallet %s is already dispatched", pallet.Name)
		}
		if err := tx.Model(&models.Box{}).Where("pallet_id = ?", id).Update("pallet_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&pallet).Error
	})
}
