package database

import (
	"dispatch-tracker/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.ProductModel{},
		&models.Pallet{},
		&models.Dispatch{},
		&models.Box{},
		&models.Equipment{},
		&models.SeriesRegistry{},
		&models.SapData{},
	)
}
