package database

import (
	"errors"
	"fmt"
	"os"

	"dispatch-tracker/models"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedFile is the YAML document accepted by the seed command.
//
//	users:
//	  - email: admin@example.com
//	    role: super_admin
//	brands:
//	  - name: Acme
//	    models:
//	      - name: Router X1
//	        series:
//	          - {name: SN-1, required: true, length: 12}
type SeedFile struct {
	Users  []SeedUser  `yaml:"users"`
	Brands []SeedBrand `yaml:"brands"`
}

type SeedUser struct {
	Email string      `yaml:"email"`
	Name  string      `yaml:"name"`
	Role  models.Role `yaml:"role"`
}

type SeedBrand struct {
	Name   string      `yaml:"name"`
	Models []SeedModel `yaml:"models"`
}

type SeedModel struct {
	Name   string               `yaml:"name"`
	Series []models.SeriesField `yaml:"series"`
}

func LoadSeedFile(path string) (*SeedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed SeedFile
	if err := yaml.Unmarshal(b, &seed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &seed, nil
}

// RunSeeders inserts whatever in seed does not exist yet. Existing rows are
// left untouched.
func RunSeeders(db *gorm.DB, seed *SeedFile) error {
	for _, u := range seed.Users {
		if u.Role == "" {
			u.Role = models.RoleOperator
		}
		if !u.Role.Valid() {
			return fmt.Errorf("user %s: invalid role %q", u.Email, u.Role)
		}
		user := models.User{Email: u.Email, Name: u.Name, Role: u.Role}
		if err := firstOrCreate(db, &models.User{}, &user, "email = ?", u.Email); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for _, b := range seed.Brands {
		brand := models.Brand{Name: b.Name}
		if err := firstOrCreate(db, &brand, &brand, "name = ?", b.Name); err != nil {
			return fmt.Errorf("seed brand %s: %w", b.Name, err)
		}
		for _, m := range b.Models {
			model := models.ProductModel{
				BrandID:      brand.ID,
				Name:         m.Name,
				SeriesConfig: datatypes.NewJSONType(m.Series),
			}
			if err := firstOrCreate(db, &models.ProductModel{}, &model, "brand_id = ? AND name = ?", brand.ID, m.Name); err != nil {
				return fmt.Errorf("seed model %s: %w", m.Name, err)
			}
		}
	}
	return nil
}

// firstOrCreate loads the row matching query into existing, or creates row.
func firstOrCreate(db *gorm.DB, existing, row interface{}, query string, args ...interface{}) error {
	err := db.Where(query, args...).First(existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(row).Error
}
