package repository

import (
	"strings"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type HashtagRepository interface {
	Create(hashtag *model.Hashtag) error
	FindAll() ([]model.Hashtag, error)
	FindByID(id uint) (*model.Hashtag, error)
	FindOrCreateByName(name string) (*model.Hashtag, error)
	Update(hashtag *model.Hashtag) error
	DeleteByIDs(ids []uint) (int64, error)
}

type hashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

func (r *hashtagRepository) Create(hashtag *model.Hashtag) error {
	if err := r.db.Create(hashtag).Error; err != nil {
		logger.Error("Failed to create hashtag in database", err, map[string]interface{}{
			"name": hashtag.Name,
		})
		return err
	}
	return nil
}

func (r *hashtagRepository) FindAll() ([]model.Hashtag, error) {
	var hashtags []model.Hashtag
	if err := r.db.Order("name ASC").Find(&hashtags).Error; err != nil {
		logger.Error("Failed to list hashtags in database", err)
		return nil, err
	}
	return hashtags, nil
}

func (r *hashtagRepository) FindByID(id uint) (*model.Hashtag, error) {
	var hashtag model.Hashtag
	if err := r.db.Preload("Products").First(&hashtag, id).Error; err != nil {
		return nil, err
	}
	return &hashtag, nil
}

// FindOrCreateByName implements connect-or-create: the trimmed name either
// matches an existing row, which is reused, or a fresh one is inserted.
func (r *hashtagRepository) FindOrCreateByName(name string) (*model.Hashtag, error) {
	trimmed := strings.TrimSpace(name)

	var hashtag model.Hashtag
	err := r.db.Where("name = ?", trimmed).First(&hashtag).Error
	if err == nil {
		return &hashtag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashtag = model.Hashtag{Name: trimmed}
	if err := r.db.Create(&hashtag).Error; err != nil {
		logger.Error("Failed to create hashtag in database", err, map[string]interface{}{
			"name": trimmed,
		})
		return nil, err
	}
	return &hashtag, nil
}

func (r *hashtagRepository) Update(hashtag *model.Hashtag) error {
	if err := r.db.Save(hashtag).Error; err != nil {
		logger.Error("Failed to update hashtag in database", err, map[string]interface{}{
			"hashtag_id": hashtag.ID,
		})
		return err
	}
	return nil
}

func (r *hashtagRepository) DeleteByIDs(ids []uint) (int64, error) {
	// drop product associations first, then the hashtag rows
	if err := r.db.Exec("DELETE FROM product_hashtags WHERE hashtag_id IN ?", ids).Error; err != nil {
		logger.Error("Failed to clear hashtag associations", err, map[string]interface{}{
			"ids": ids,
		})
		return 0, err
	}

	result := r.db.Where("id IN ?", ids).Delete(&model.Hashtag{})
	if result.Error != nil {
		logger.Error("Failed to delete hashtags in database", result.Error, map[string]interface{}{
			"ids": ids,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
