package repository

import (
	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindAll() ([]model.Brand, error)
	FindByID(id uint) (*model.Brand, error)
	NameExists(name string, excludeID uint) (bool, error)
	Update(brand *model.Brand) error
	DeleteByIDs(ids []uint) (int64, error)
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(brand *model.Brand) error {
	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}
	return nil
}

func (r *brandRepository) FindAll() ([]model.Brand, error) {
	var brands []model.Brand
	if err := r.db.Order("name ASC").Find(&brands).Error; err != nil {
		logger.Error("Failed to list brands in database", err)
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) FindByID(id uint) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.Preload("Products").First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) NameExists(name string, excludeID uint) (bool, error) {
	query := r.db.Model(&model.Brand{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *brandRepository) Update(brand *model.Brand) error {
	if err := r.db.Save(brand).Error; err != nil {
		logger.Error("Failed to update brand in database", err, map[string]interface{}{
			"brand_id": brand.ID,
		})
		return err
	}
	return nil
}

func (r *brandRepository) DeleteByIDs(ids []uint) (int64, error) {
	result := r.db.Where("id IN ?", ids).Delete(&model.Brand{})
	if result.Error != nil {
		logger.Error("Failed to delete brands in database", result.Error, map[string]interface{}{
			"ids": ids,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
