package repository

import (
	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type PromoRepository interface {
	Create(promo *model.Promo) error
	FindByKind(kind model.PromoKind) ([]model.Promo, error)
	FindByID(id uint) (*model.Promo, error)
	SlugExists(kind model.PromoKind, slug string, excludeID uint) (bool, error)
	Update(promo *model.Promo) error
	DeleteByIDs(kind model.PromoKind, ids []uint) (int64, error)
}

type promoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) Create(promo *model.Promo) error {
	logger.Debug("Creating promo in database", map[string]interface{}{
		"kind":       promo.Kind,
		"slug":       promo.Slug,
		"product_id": promo.ProductID,
	})

	if err := r.db.Create(promo).Error; err != nil {
		logger.Error("Failed to create promo in database", err, map[string]interface{}{
			"kind": promo.Kind,
			"slug": promo.Slug,
		})
		return err
	}
	return nil
}

func (r *promoRepository) FindByKind(kind model.PromoKind) ([]model.Promo, error) {
	var promos []model.Promo
	err := r.db.Preload("Product").
		Where("kind = ?", kind).
		Order("created_at DESC").
		Find(&promos).Error
	if err != nil {
		logger.Error("Failed to list promos in database", err, map[string]interface{}{
			"kind": kind,
		})
		return nil, err
	}
	return promos, nil
}

func (r *promoRepository) FindByID(id uint) (*model.Promo, error) {
	var promo model.Promo
	if err := r.db.Preload("Product").First(&promo, id).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoRepository) SlugExists(kind model.PromoKind, slug string, excludeID uint) (bool, error) {
	query := r.db.Model(&model.Promo{}).Where("kind = ? AND slug = ?", kind, slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *promoRepository) Update(promo *model.Promo) error {
	if err := r.db.Save(promo).Error; err != nil {
		logger.Error("Failed to update promo in database", err, map[string]interface{}{
			"promo_id": promo.ID,
		})
		return err
	}
	return nil
}

func (r *promoRepository) DeleteByIDs(kind model.PromoKind, ids []uint) (int64, error) {
	result := r.db.Where("kind = ? AND id IN ?", kind, ids).Delete(&model.Promo{})
	if result.Error != nil {
		logger.Error("Failed to delete promos in database", result.Error, map[string]interface{}{
			"kind": kind,
			"ids":  ids,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
