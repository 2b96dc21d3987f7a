package models

import (
	"time"

	"dispatch-tracker/idgen"
	"dispatch-tracker/types"

	"gorm.io/gorm"
)

type BoxStatus string

const (
	BoxOpen       BoxStatus = "open"
	BoxClosed     BoxStatus = "closed"
	BoxDispatched BoxStatus = "dispatched"
)

type Box struct {
	ID         types.SnowflakeID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	BoxNumber  string             `json:"box_number" gorm:"uniqueIndex;size:32;not null"`
	ModelID    uint               `json:"model_id" gorm:"index;not null"`
	Model      *ProductModel      `json:"model,omitempty"`
	TotalItems int                `json:"total_items" gorm:"not null"`
	Status     BoxStatus          `json:"status" gorm:"size:20;index;default:'open';not null"`
	PalletID   *types.SnowflakeID `json:"pallet_id" gorm:"index"`
	DispatchID *types.SnowflakeID `json:"dispatch_id" gorm:"index"`
	CreatedBy  uint               `json:"created_by" gorm:"index"`
	Creator    *User              `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	ClosedAt   *time.Time         `json:"closed_at"`
	CreatedAt  time.Time          `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Equipment  []Equipment        `json:"items,omitempty" gorm:"foreignKey:BoxID;constraint:OnDelete:CASCADE"`
}

func (b *Box) BeforeCreate(tx *gorm.DB) error {
	if b.ID == 0 {
		b.ID = types.SnowflakeID(idgen.GenerateID())
	}
	if b.Status == "" {
		b.Status = BoxOpen
	}
	return nil
}

// BoxSummary is a box row with its scanned unit count.
type BoxSummary struct {
	Box
	ItemCount int64 `json:"item_count"`
}
