package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	apperrors "github.com/karimelh/vitrine-backend/internal/errors"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

// PromoController serves one promo kind; the router instantiates it three
// times for banners, promotions and publications.
type PromoController struct {
	promoService service.PromoService
	kind         model.PromoKind
	plural       string // key used in list responses ("banners", ...)
}

func NewPromoController(promoService service.PromoService, kind model.PromoKind, plural string) *PromoController {
	return &PromoController{
		promoService: promoService,
		kind:         kind,
		plural:       plural,
	}
}

type PromoRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	DesktopImage string `json:"desktop_image"`
	MobileImage  string `json:"mobile_image"`
	Image        string `json:"image"` // legacy single-image field
	ProductID    uint   `json:"product_id" binding:"required"`
}

func (req PromoRequest) toInput() service.PromoInput {
	return service.PromoInput{
		Title:        req.Title,
		Description:  req.Description,
		DesktopImage: req.DesktopImage,
		MobileImage:  req.MobileImage,
		LegacyImage:  req.Image,
		ProductID:    req.ProductID,
	}
}

// List returns all entries of this kind
func (ctrl *PromoController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	promos, err := ctrl.promoService.ListPromos(ctrl.kind)
	if err != nil {
		log.Error("Failed to fetch promos", err, map[string]interface{}{
			"kind": ctrl.kind,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch " + ctrl.plural,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		ctrl.plural: promos,
		"count":     len(promos),
	})
}

// Create adds an entry (admin only)
func (ctrl *PromoController) Create(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	promo, err := ctrl.promoService.CreatePromo(ctrl.kind, req.toInput())
	if err != nil {
		ctrl.respondPromoError(c, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"promo": promo,
	})
}

// Update edits an entry (admin only)
func (ctrl *PromoController) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	promo, err := ctrl.promoService.UpdatePromo(ctrl.kind, id, req.toInput())
	if err != nil {
		ctrl.respondPromoError(c, err, "Failed to update entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"promo": promo,
	})
}

// Delete removes entries (admin only)
func (ctrl *PromoController) Delete(c *gin.Context) {
	ids, err := parseIDList(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := ctrl.promoService.DeletePromos(ctrl.kind, ids)
	if err != nil {
		ctrl.respondPromoError(c, err, "Failed to delete entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

func (ctrl *PromoController) respondPromoError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrPromoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Linked product not found"})
	case errors.Is(err, service.ErrPromoImageRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Desktop and mobile images are required"})
	case errors.Is(err, service.ErrPromoTitleMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
	default:
		log.Error(fallback, err, map[string]interface{}{
			"kind": ctrl.kind,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, fallback)
	}
}
