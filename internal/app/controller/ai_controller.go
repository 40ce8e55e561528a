package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type AIController struct {
	aiService service.AIService
}

func NewAIController(aiService service.AIService) *AIController {
	return &AIController{
		aiService: aiService,
	}
}

type AISearchRequest struct {
	VoiceCommand string `json:"voiceCommand" binding:"required"`
}

type AIGenerateRequest struct {
	Fields     []string `json:"fields"`
	Prompt     string   `json:"prompt" binding:"required"`
	Priorities []string `json:"priorities"`
	Hashtags   []string `json:"hashtags"`
}

// Search matches a spoken or typed request against the catalogue
// POST /api/ai-search
func (ctrl *AIController) Search(c *gin.Context) {
	var req AISearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := ctrl.aiService.SearchProducts(req.VoiceCommand)
	if err != nil {
		ctrl.respondAIError(c, err, "Search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": result.Products,
		"message":  result.Message,
	})
}

// Generate drafts product form fields from a description (admin only)
// POST /api/ai-generate
func (ctrl *AIController) Generate(c *gin.Context) {
	var req AIGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	fill, err := ctrl.aiService.GenerateProductForm(service.FormFillRequest{
		Fields:     req.Fields,
		Prompt:     req.Prompt,
		Priorities: req.Priorities,
		Hashtags:   req.Hashtags,
	})
	if err != nil {
		ctrl.respondAIError(c, err, "Generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"defaultValues": fill.DefaultValues,
		"properties":    fill.Properties,
		"hashtags":      fill.Hashtags,
		"message":       fill.Message,
	})
}

func (ctrl *AIController) respondAIError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrAIQueryMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A prompt is required"})
	case errors.Is(err, service.ErrAINotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI features are not configured"})
	case errors.Is(err, service.ErrAIUpstream), errors.Is(err, service.ErrAIMalformedReply):
		log.Error(fallback, err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		log.Error(fallback, err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
