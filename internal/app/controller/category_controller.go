package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	apperrors "github.com/karimelh/vitrine-backend/internal/errors"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    *uint  `json:"parent_id"`
}

// GetTree returns the full category tree with product counts
// GET /api/categories
func (ctrl *CategoryController) GetTree(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tree, err := ctrl.categoryService.GetTree()
	if err != nil {
		log.Error("Failed to build category tree", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": tree,
	})
}

// GetCategoryBySlug returns one category
// GET /api/categories/:slug
func (ctrl *CategoryController) GetCategoryBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category, err := ctrl.categoryService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Category not found",
			})
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"slug": c.Param("slug"),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch category",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory creates a category (admin only)
// POST /api/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	category, err := ctrl.categoryService.CreateCategory(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
	})
	if err != nil {
		ctrl.respondCategoryError(c, err, "Failed to create category")
		return
	}

	log.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory updates a category (admin only)
// PUT /api/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
	})
	if err != nil {
		ctrl.respondCategoryError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategories deletes categories and their whole subtrees (admin only)
// DELETE /api/categories?id=1&id=2 or ?id=1,2
func (ctrl *CategoryController) DeleteCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ids, err := parseIDList(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := ctrl.categoryService.DeleteCategories(ids)
	if err != nil {
		ctrl.respondCategoryError(c, err, "Failed to delete categories")
		return
	}

	log.Info("Categories deleted", map[string]interface{}{
		"ids":     ids,
		"deleted": deleted,
	})

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

func (ctrl *CategoryController) respondCategoryError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, service.ErrCategoryMaxDepth):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add child to a level-3 category"})
	case errors.Is(err, service.ErrCategorySelfParent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A category cannot be its own parent"})
	case errors.Is(err, service.ErrCategoryChildParent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A category cannot be moved under one of its children"})
	case errors.Is(err, service.ErrCategoryNameMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
	default:
		log.Error(fallback, err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, fallback)
	}
}
