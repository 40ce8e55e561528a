package service

import (
	"context"
	"errors"
	"strings"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"github.com/karimelh/vitrine-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNameExists    = errors.New("a product with this name already exists")
	ErrProductNameMissing   = errors.New("product name is required")
	ErrProductInvalidPrice  = errors.New("price must be greater than zero")
	ErrProductInvalidStock  = errors.New("stock cannot be negative")
	ErrProductImageRequired = errors.New("at least one image is required")
	ErrCategoryNotLeaf      = errors.New("select a sub-sub-category (leaf category)")
)

type PropertyInput struct {
	Name  string
	Value string
}

type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	Discount      float64
	Stock         int
	IsNew         bool
	IsPublished   bool
	CategoryID    uint
	BrandID       *uint
	Images        []string // new image URLs, kept in upload order
	MainImage     string   // optional override; defaults to the first image
	DeletedImages []string // update only: URLs to drop before appending
	Hashtags      []string
	Properties    []PropertyInput
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProducts(ids []uint) (int64, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	hashtagRepo  repository.HashtagRepository
	db           *gorm.DB
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	hashtagRepo repository.HashtagRepository,
	db *gorm.DB,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		hashtagRepo:  hashtagRepo,
		db:           db,
	}
}

// applyRating computes the derived rating as the arithmetic mean of review
// ratings, 0 when the product has none. Never persisted.
func applyRating(product *model.Product) {
	if len(product.Reviews) == 0 {
		product.Rating = 0
		return
	}

	sum := 0
	for _, review := range product.Reviews {
		sum += review.Rating
	}
	product.Rating = float64(sum) / float64(len(product.Reviews))
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	for i := range products {
		applyRating(&products[i])
	}
	return products, nil
}

func (s *productService) GetProductBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	applyRating(product)
	return product, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	applyRating(product)
	return product, nil
}

func (s *productService) validate(input ProductInput, requireImages bool) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductNameMissing
	}
	if input.Price <= 0 {
		return ErrProductInvalidPrice
	}
	if input.Stock < 0 {
		return ErrProductInvalidStock
	}
	if requireImages && len(input.Images) == 0 {
		return ErrProductImageRequired
	}
	return nil
}

// requireLeafCategory rejects any category that still has children; only
// leaves may carry products.
func (s *productService) requireLeafCategory(categoryID uint) error {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	children, err := s.categoryRepo.CountChildren(categoryID)
	if err != nil {
		return err
	}
	if children > 0 {
		logger.Warn("Rejected product write: category is not a leaf", map[string]interface{}{
			"category_id": categoryID,
			"children":    children,
		})
		return ErrCategoryNotLeaf
	}
	return nil
}

func (s *productService) connectHashtags(names []string) ([]model.Hashtag, error) {
	var hashtags []model.Hashtag
	seen := make(map[string]bool)

	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true

		hashtag, err := s.hashtagRepo.FindOrCreateByName(trimmed)
		if err != nil {
			return nil, err
		}
		hashtags = append(hashtags, *hashtag)
	}
	return hashtags, nil
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	if err := s.validate(input, true); err != nil {
		return nil, err
	}

	logger.Info("Creating product", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	taken, err := s.productRepo.NameExists(input.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrProductNameExists
	}

	if err := s.requireLeafCategory(input.CategoryID); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(input.Name, 0, s.productRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	hashtags, err := s.connectHashtags(input.Hashtags)
	if err != nil {
		return nil, err
	}

	images := make([]model.ProductImage, 0, len(input.Images))
	for i, url := range input.Images {
		images = append(images, model.ProductImage{URL: url, Position: i})
	}

	main := input.Images[0]
	if input.MainImage != "" {
		main = input.MainImage
	}

	properties := make([]model.ProductProperty, 0, len(input.Properties))
	for _, property := range input.Properties {
		properties = append(properties, model.ProductProperty{
			Name:  property.Name,
			Value: property.Value,
		})
	}

	product := &model.Product{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		Stock:       input.Stock,
		IsNew:       input.IsNew,
		IsPublished: input.IsPublished,
		Image:       main,
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		Images:      images,
		Properties:  properties,
		Hashtags:    hashtags,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	redis.InvalidateCategoryTree(context.Background())

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return product, nil
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	if err := s.validate(input, false); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	taken, err := s.productRepo.NameExists(input.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrProductNameExists
	}

	if err := s.requireLeafCategory(input.CategoryID); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(input.Name, id, s.productRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	hashtags, err := s.connectHashtags(input.Hashtags)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// partial image replacement: drop the explicitly deleted URLs, then
		// append the new uploads after the surviving ones
		if len(input.DeletedImages) > 0 {
			if err := tx.Where("product_id = ? AND url IN ?", id, input.DeletedImages).
				Delete(&model.ProductImage{}).Error; err != nil {
				return err
			}
		}

		var remaining []model.ProductImage
		if err := tx.Where("product_id = ?", id).Order("position ASC").Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			remaining[i].Position = i
			if err := tx.Save(&remaining[i]).Error; err != nil {
				return err
			}
		}
		for i, url := range input.Images {
			image := model.ProductImage{ProductID: id, URL: url, Position: len(remaining) + i}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			remaining = append(remaining, image)
		}

		main := product.Image
		switch {
		case input.MainImage != "":
			main = input.MainImage
		case len(remaining) > 0:
			main = remaining[0].URL
		default:
			// every image was deleted and none added; keeping the old URL
			// would point at a removed image
			main = ""
		}

		product.Name = input.Name
		product.Slug = slug
		product.Description = input.Description
		product.Price = input.Price
		product.Discount = input.Discount
		product.Stock = input.Stock
		product.IsNew = input.IsNew
		product.IsPublished = input.IsPublished
		product.Image = main
		product.CategoryID = input.CategoryID
		product.BrandID = input.BrandID
		product.Images = nil
		product.Properties = nil
		product.Reviews = nil
		product.Hashtags = nil

		if err := tx.Save(product).Error; err != nil {
			return err
		}

		if len(input.Properties) > 0 {
			if err := tx.Where("product_id = ?", id).Delete(&model.ProductProperty{}).Error; err != nil {
				return err
			}
			for _, property := range input.Properties {
				row := model.ProductProperty{ProductID: id, Name: property.Name, Value: property.Value}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		// hashtag set replacement is clear-then-reconnect, not a diff
		if err := tx.Model(product).Association("Hashtags").Clear(); err != nil {
			return err
		}
		if len(hashtags) > 0 {
			if err := tx.Model(product).Association("Hashtags").Append(&hashtags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	redis.InvalidateCategoryTree(context.Background())

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
		"slug":       slug,
	})
	return s.GetProductByID(id)
}

// DeleteProducts removes products by id with an all-or-nothing existence
// check: if any requested id is missing, nothing is deleted.
func (s *productService) DeleteProducts(ids []uint) (int64, error) {
	found, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return 0, err
	}
	if len(found) != len(dedupe(ids)) {
		logger.Warn("Product delete rejected: some ids do not exist", map[string]interface{}{
			"requested": ids,
			"found":     len(found),
		})
		return 0, ErrProductNotFound
	}

	var deleted int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id IN ?", ids).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id IN ?", ids).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id IN ?", ids).Delete(&model.ProductProperty{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_hashtags WHERE product_id IN ?", ids).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&model.Product{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete products", err, map[string]interface{}{
			"ids": ids,
		})
		return 0, err
	}

	redis.InvalidateCategoryTree(context.Background())

	logger.Info("Products deleted", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
