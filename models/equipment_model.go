package models

import (
	"time"

	"dispatch-tracker/idgen"
	"dispatch-tracker/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Equipment is one physical unit scanned into a box.
type Equipment struct {
	ID             types.SnowflakeID                     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	BoxID          types.SnowflakeID                     `json:"box_id" gorm:"index;not null"`
	SeriesData     datatypes.JSONType[map[string]string] `json:"series_data"`
	IsSapValidated bool                                  `json:"is_sap_validated"`
	Material       *string                               `json:"material"`
	MatchedField   *string                               `json:"matched_field"`
	ScannedBy      uint                                  `json:"scanned_by" gorm:"index"`
	Scanner        *User                                 `json:"scanner,omitempty" gorm:"foreignKey:ScannedBy"`
	ScannedAt      time.Time                             `json:"scanned_at" gorm:"index"`
	Registry       []SeriesRegistry                      `json:"-" gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
}

func (Equipment) TableName() string {
	return "equipment"
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == 0 {
		e.ID = types.SnowflakeID(idgen.GenerateID())
	}
	if e.ScannedAt.IsZero() {
		e.ScannedAt = time.Now()
	}
	return nil
}

// Series returns the scanned field values.
func (e *Equipment) Series() map[string]string {
	return e.SeriesData.Data()
}

// SeriesRegistry holds one row per populated serial value in the system.
// The unique index on Series is what guarantees a serial is used once.
type SeriesRegistry struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	Series      string            `json:"series" gorm:"uniqueIndex;size:191;not null"`
	EquipmentID types.SnowflakeID `json:"equipment_id" gorm:"index;not null"`
	BoxID       types.SnowflakeID `json:"box_id" gorm:"index;not null"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (SeriesRegistry) TableName() string {
	return "global_series_registry"
}
