package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	apperrors "github.com/karimelh/vitrine-backend/internal/errors"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type ReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// CreateReview posts a review for a product
// POST /api/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	review, err := ctrl.reviewService.CreateReview(service.ReviewInput{
		ProductID: req.ProductID,
		Author:    req.Author,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		ctrl.respondReviewError(c, err, "Failed to create review")
		return
	}

	log.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"review": review,
	})
}

// ListProductReviews returns the reviews of one product
// GET /api/reviews?product_id=1
func (ctrl *ReviewController) ListProductReviews(c *gin.Context) {
	productID, err := parseUintQuery(c, "product_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	reviews, err := ctrl.reviewService.ListProductReviews(productID)
	if err != nil {
		ctrl.respondReviewError(c, err, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// DeleteReviews removes reviews (admin only)
// DELETE /api/reviews?id=1&id=2
func (ctrl *ReviewController) DeleteReviews(c *gin.Context) {
	ids, err := parseIDList(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := ctrl.reviewService.DeleteReviews(ids)
	if err != nil {
		ctrl.respondReviewError(c, err, "Failed to delete reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

func (ctrl *ReviewController) respondReviewError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, service.ErrReviewInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
	case errors.Is(err, service.ErrReviewAuthorMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review author is required"})
	default:
		log.Error(fallback, err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, fallback)
	}
}
