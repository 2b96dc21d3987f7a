package models

import (
	"time"

	"dispatch-tracker/idgen"
	"dispatch-tracker/types"

	"gorm.io/gorm"
)

type Pallet struct {
	ID           types.SnowflakeID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name         string             `json:"name" gorm:"size:100;not null"`
	CreatedBy    uint               `json:"created_by" gorm:"index"`
	Creator      *User              `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	DispatchID   *types.SnowflakeID `json:"dispatch_id" gorm:"index"`
	SapExitID    string             `json:"sap_exit_id"`
	DispatchedAt *time.Time         `json:"dispatched_at"`
	CreatedAt    time.Time          `json:"created_at"`
	Boxes        []Box              `json:"boxes,omitempty" gorm:"foreignKey:PalletID"`
}

func (p *Pallet) BeforeCreate(tx *gorm.DB) error {
	if p.ID == 0 {
		p.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}

type DispatchType string

const (
	DispatchPallet DispatchType = "PALLET"
	DispatchBox    DispatchType = "BOX"
)

func (t DispatchType) Valid() bool {
	return t == DispatchPallet || t == DispatchBox
}

// Dispatch records boxes leaving the warehouse under an ERP exit reference.
type Dispatch struct {
	ID        types.SnowflakeID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	SapExitID string             `json:"sap_exit_id" gorm:"index;size:100;not null"`
	Type      DispatchType       `json:"type" gorm:"size:10;not null"`
	PalletID  *types.SnowflakeID `json:"pallet_id" gorm:"index"`
	CreatedBy uint               `json:"created_by" gorm:"index"`
	Creator   *User              `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Notes     *string            `json:"notes"`
	CreatedAt time.Time          `json:"created_at" gorm:"index"`
	Boxes     []Box              `json:"boxes,omitempty" gorm:"foreignKey:DispatchID"`
}

func (d *Dispatch) BeforeCreate(tx *gorm.DB) error {
	if d.ID == 0 {
		d.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}

// DispatchSummary is a dispatch row with its box count.
type DispatchSummary struct {
	Dispatch
	BoxCount int64 `json:"box_count"`
}
