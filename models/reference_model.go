package models

import "time"

// SapData is one row of the ERP extract. Series is stored upper-cased and
// without whitespace.
type SapData struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Series    string    `json:"series" gorm:"index;size:191;not null"`
	Material  string    `json:"material"`
	Status    string    `json:"status" gorm:"size:50;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
}

func (SapData) TableName() string {
	return "sap_data"
}
