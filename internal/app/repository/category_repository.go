package repository

import (
	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
	FindChildren(parentID uint) ([]model.Category, error)
	CountChildren(parentID uint) (int64, error)
	SlugExists(slug string, excludeID uint) (bool, error)
	ProductCounts() (map[uint]int, error)
	Update(category *model.Category) error
	DeleteByIDs(ids []uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name":           category.Name,
		"slug":           category.Slug,
		"parent_id":      category.ParentID,
		"category_level": category.Level,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
			"slug": category.Slug,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("level ASC, name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories in database", err)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindChildren(parentID uint) ([]model.Category, error) {
	var children []model.Category
	if err := r.db.Where("parent_id = ?", parentID).Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (r *categoryRepository) CountChildren(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Category{}).Where("parent_id = ?", parentID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	query := r.db.Model(&model.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ProductCounts returns the number of products directly attached to each
// category, keyed by category id.
func (r *categoryRepository) ProductCounts() (map[uint]int, error) {
	type row struct {
		CategoryID uint
		Count      int
	}

	var rows []row
	err := r.db.Model(&model.Product{}).
		Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate product counts", err)
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

// DeleteByIDs removes the given categories in one batch and reports how many
// rows went away. Descendant collection happens in the service layer.
func (r *categoryRepository) DeleteByIDs(ids []uint) (int64, error) {
	result := r.db.Where("id IN ?", ids).Delete(&model.Category{})
	if result.Error != nil {
		logger.Error("Failed to delete categories in database", result.Error, map[string]interface{}{
			"ids": ids,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
