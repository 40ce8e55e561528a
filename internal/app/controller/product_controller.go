package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	apperrors "github.com/karimelh/vitrine-backend/internal/errors"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductPropertyRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type ProductRequest struct {
	Name          string                   `json:"name" binding:"required"`
	Description   string                   `json:"description"`
	Price         float64                  `json:"price" binding:"required,gt=0"`
	Discount      float64                  `json:"discount" binding:"gte=0"`
	Stock         int                      `json:"stock" binding:"gte=0"`
	IsNew         bool                     `json:"is_new"`
	IsPublished   bool                     `json:"is_published"`
	CategoryID    uint                     `json:"category_id" binding:"required"`
	BrandID       *uint                    `json:"brand_id"`
	Images        []string                 `json:"images"`
	MainImage     string                   `json:"main_image"`
	DeletedImages []string                 `json:"deleted_images"`
	Hashtags      []string                 `json:"hashtags"`
	Properties    []ProductPropertyRequest `json:"properties"`
}

func (req ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Discount:      req.Discount,
		Stock:         req.Stock,
		IsNew:         req.IsNew,
		IsPublished:   req.IsPublished,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Images:        req.Images,
		MainImage:     req.MainImage,
		DeletedImages: req.DeletedImages,
		Hashtags:      req.Hashtags,
	}
	for _, p := range req.Properties {
		input.Properties = append(input.Properties, service.PropertyInput{
			Name:  p.Name,
			Value: p.Value,
		})
	}
	return input
}

// ListProducts returns products with optional filters
// GET /api/products?category_id=&brand_id=&search=&limit=&offset=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search: c.Query("search"),
	}

	// the storefront only ever sees published products; admins pass all=true
	if c.Query("all") != "true" {
		filter.PublishedOnly = true
	} else if role, ok := middleware.GetUserRole(c); !ok || role != "admin" {
		filter.PublishedOnly = true
	}

	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			cid := uint(id)
			filter.CategoryID = &cid
		}
	}
	if v := c.Query("brand_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			bid := uint(id)
			filter.BrandID = &bid
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	products, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductBySlug returns a single product
// GET /api/products/:slug
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	product, err := ctrl.productService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"slug": c.Param("slug"),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product (admin only)
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := ctrl.productService.CreateProduct(req.toInput())
	if err != nil {
		ctrl.respondProductError(c, err, "Failed to create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct updates a product (admin only)
// PUT /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req.toInput())
	if err != nil {
		ctrl.respondProductError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProducts deletes products; all listed ids must exist
// DELETE /api/products?id=1&id=2 or ?id=1,2
func (ctrl *ProductController) DeleteProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ids, err := parseIDList(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := ctrl.productService.DeleteProducts(ids)
	if err != nil {
		ctrl.respondProductError(c, err, "Failed to delete products")
		return
	}

	log.Info("Products deleted", map[string]interface{}{
		"ids":     ids,
		"deleted": deleted,
	})

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

func (ctrl *ProductController) respondProductError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
	case errors.Is(err, service.ErrCategoryNotLeaf):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select a sub-sub-category (leaf category)"})
	case errors.Is(err, service.ErrProductNameExists):
		c.JSON(http.StatusConflict, gin.H{"error": "A product with this name already exists"})
	case errors.Is(err, service.ErrProductNameMissing),
		errors.Is(err, service.ErrProductInvalidPrice),
		errors.Is(err, service.ErrProductInvalidStock),
		errors.Is(err, service.ErrProductImageRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error(fallback, err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, fallback)
	}
}
