package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	apperrors "github.com/karimelh/vitrine-backend/internal/errors"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type HashtagController struct {
	hashtagService service.HashtagService
}

func NewHashtagController(hashtagService service.HashtagService) *HashtagController {
	return &HashtagController{
		hashtagService: hashtagService,
	}
}

type HashtagRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListHashtags returns all hashtags
// GET /api/hashtags
func (ctrl *HashtagController) ListHashtags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	hashtags, err := ctrl.hashtagService.ListHashtags()
	if err != nil {
		log.Error("Failed to fetch hashtags", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch hashtags",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hashtags": hashtags,
		"count":    len(hashtags),
	})
}

// CreateHashtag creates (or reuses) a hashtag (admin only)
// POST /api/hashtags
func (ctrl *HashtagController) CreateHashtag(c *gin.Context) {
	var req HashtagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	hashtag, err := ctrl.hashtagService.CreateHashtag(req.Name)
	if err != nil {
		ctrl.respondHashtagError(c, err, "Failed to create hashtag")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"hashtag": hashtag,
	})
}

// UpdateHashtag renames a hashtag (admin only)
// PUT /api/hashtags/:id
func (ctrl *HashtagController) UpdateHashtag(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hashtag ID"})
		return
	}

	var req HashtagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	hashtag, err := ctrl.hashtagService.UpdateHashtag(id, req.Name)
	if err != nil {
		ctrl.respondHashtagError(c, err, "Failed to update hashtag")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hashtag": hashtag,
	})
}

// DeleteHashtags deletes hashtags and their product links (admin only)
// DELETE /api/hashtags?id=1&id=2 or ?id=1,2
func (ctrl *HashtagController) DeleteHashtags(c *gin.Context) {
	ids, err := parseIDList(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := ctrl.hashtagService.DeleteHashtags(ids)
	if err != nil {
		ctrl.respondHashtagError(c, err, "Failed to delete hashtags")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

func (ctrl *HashtagController) respondHashtagError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrHashtagNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Hashtag not found"})
	case errors.Is(err, service.ErrHashtagNameMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hashtag name is required"})
	default:
		log.Error(fallback, err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, fallback)
	}
}
