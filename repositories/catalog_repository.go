package repositories

import (
	"context"
	"fmt"
	"strings"

	"dispatch-tracker/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidState("brand name is required")
	}
	brand := &models.Brand{Name: name}
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, classify(err)
	}
	return brand, nil
}

func (r *CatalogRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.WithContext(ctx).Order("name").Find(&brands).Error
	return brands, err
}

// DeleteBrand removes a brand and its models. Brands whose models are used
// by a box are kept.
func (r *CatalogRepository) DeleteBrand(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var used int64
		err := tx.Model(&models.Box{}).
			Where("model_id IN (?)", tx.Model(&models.ProductModel{}).Select("id").Where("brand_id = ?", id)).
			Count(&used).Error
		if err != nil {
			return err
		}
		if used > 0 {
			return invalidState("brand %d has models in use by %d boxes", id, used)
		}
		if err := tx.Unscoped().Where("brand_id = ?", id).Delete(&models.ProductModel{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&models.Brand{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ValidateSeriesConfig checks a model's field list: 1 to 4 fields with
// distinct, non-empty names.
func ValidateSeriesConfig(fields []models.SeriesField) ([]models.SeriesField, error) {
	if len(fields) == 0 || len(fields) > 4 {
		return nil, invalidState("a model needs between 1 and 4 series fields, got %d", len(fields))
	}
	seen := make(map[string]bool, len(fields))
	out := make([]models.SeriesField, len(fields))
	for i, f := range fields {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			return nil, invalidState("series field %d has no name", i+1)
		}
		if f.Length < 0 {
			return nil, invalidState("series field %s has a negative length", f.Name)
		}
		if seen[f.Name] {
			return nil, invalidState("series field %s is defined twice", f.Name)
		}
		seen[f.Name] = true
		out[i] = f
	}
	return out, nil
}

func (r *CatalogRepository) CreateModel(ctx context.Context, brandID uint, name string, fields []models.SeriesField) (*models.ProductModel, error) {
	model := &models.ProductModel{BrandID: brandID}
	if err := r.applyModel(ctx, model, name, fields); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Omit("Brand").Create(model).Error; err != nil {
		return nil, classify(err)
	}
	return model, nil
}

// UpdateModel replaces name, brand and series config of a model.
func (r *CatalogRepository) UpdateModel(ctx context.Context, id, brandID uint, name string, fields []models.SeriesField) (*models.ProductModel, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, classify(err)
	}
	model.BrandID = brandID
	if err := r.applyModel(ctx, &model, name, fields); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Omit("Brand").Save(&model).Error; err != nil {
		return nil, classify(err)
	}
	return &model, nil
}

func (r *CatalogRepository) applyModel(ctx context.Context, model *models.ProductModel, name string, fields []models.SeriesField) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidState("model name is required")
	}
	cleaned, err := ValidateSeriesConfig(fields)
	if err != nil {
		return err
	}
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, model.BrandID).Error; err != nil {
		return fmt.Errorf("brand %d: %w", model.BrandID, classify(err))
	}
	model.Name = name
	model.SeriesConfig = datatypes.NewJSONType(cleaned)
	return nil
}

func (r *CatalogRepository) FindModel(ctx context.Context, id uint) (*models.ProductModel, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Preload("Brand").First(&model, id).Error; err != nil {
		return nil, classify(err)
	}
	return &model, nil
}

// ListModels returns all models, or those of one brand when brandID is set.
func (r *CatalogRepository) ListModels(ctx context.Context, brandID uint) ([]models.ProductModel, error) {
	query := r.db.WithContext(ctx).Preload("Brand").Order("name")
	if brandID != 0 {
		query = query.Where("brand_id = ?", brandID)
	}
	var list []models.ProductModel
	err := query.Find(&list).Error
	return list, err
}

func (r *CatalogRepository) DeleteModel(ctx context.Context, id uint) error {
	var used int64
	if err := r.db.WithContext(ctx).Model(&models.Box{}).Where("model_id = ?", id).Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return invalidState("model %d is used by %d boxes", id, used)
	}
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.ProductModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
