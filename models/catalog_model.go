package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Brand struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:191;not null"`
}

// SeriesField describes one serial number captured per unit of a model.
// Length is the maximum accepted length, 0 means unlimited.
type SeriesField struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Required bool   `json:"required" yaml:"required"`
	Length   int    `json:"length,omitempty" yaml:"length" validate:"gte=0"`
}

type ProductModel struct {
	gorm.Model
	BrandID      uint                              `json:"brand_id" gorm:"index;not null"`
	Brand        *Brand                            `json:"brand,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Name         string                            `json:"name" gorm:"not null"`
	SeriesConfig datatypes.JSONType[[]SeriesField] `json:"series_config"`
}

func (ProductModel) TableName() string {
	return "product_models"
}

// Fields returns the configured series fields in capture order.
func (m *ProductModel) Fields() []SeriesField {
	return m.SeriesConfig.Data()
}

// Field looks a field up by its exact name.
func (m *ProductModel) Field(name string) (SeriesField, bool) {
	for _, f := range m.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return SeriesField{}, false
}
