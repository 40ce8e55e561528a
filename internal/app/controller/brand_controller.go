package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	apperrors "github.com/karimelh/vitrine-backend/internal/errors"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type BrandController struct {
	brandService service.BrandService
}

func NewBrandController(brandService service.BrandService) *BrandController {
	return &BrandController{
		brandService: brandService,
	}
}

type BrandRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// ListBrands returns all brands
// GET /api/brands
func (ctrl *BrandController) ListBrands(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	brands, err := ctrl.brandService.ListBrands()
	if err != nil {
		log.Error("Failed to fetch brands", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch brands",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
		"count":  len(brands),
	})
}

// CreateBrand creates a brand (admin only)
// POST /api/brands
func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	brand, err := ctrl.brandService.CreateBrand(service.BrandInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		ctrl.respondBrandError(c, err, "Failed to create brand")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"brand": brand,
	})
}

// UpdateBrand updates a brand (admin only)
// PUT /api/brands/:id
func (ctrl *BrandController) UpdateBrand(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	brand, err := ctrl.brandService.UpdateBrand(id, service.BrandInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		ctrl.respondBrandError(c, err, "Failed to update brand")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brand": brand,
	})
}

// DeleteBrands deletes brands (admin only)
// DELETE /api/brands?id=1&id=2 or ?id=1,2
func (ctrl *BrandController) DeleteBrands(c *gin.Context) {
	ids, err := parseIDList(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := ctrl.brandService.DeleteBrands(ids)
	if err != nil {
		ctrl.respondBrandError(c, err, "Failed to delete brands")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

func (ctrl *BrandController) respondBrandError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrBrandNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
	case errors.Is(err, service.ErrBrandNameExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Brand name already exists"})
	case errors.Is(err, service.ErrBrandNameMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name is required"})
	default:
		log.Error(fallback, err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, fallback)
	}
}
