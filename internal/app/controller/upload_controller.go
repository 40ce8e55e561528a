package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/middleware"
	"github.com/karimelh/vitrine-backend/internal/storage"
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
}

// folders an upload may target, keyed by the entity the image belongs to
var allowedUploadFolders = map[string]bool{
	"products":     true,
	"categories":   true,
	"brands":       true,
	"hashtags":     true,
	"banners":      true,
	"promotions":   true,
	"publications": true,
	"services":     true,
	"users":        true,
}

type UploadController struct {
	store       storage.Storage
	maxFileSize int64
}

func NewUploadController(store storage.Storage, maxFileSize int64) *UploadController {
	return &UploadController{
		store:       store,
		maxFileSize: maxFileSize,
	}
}

// Upload stores an image and returns its public URL (admin only)
// POST /api/upload/:folder  (multipart field "file")
func (ctrl *UploadController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	folder := c.Param("folder")
	if !allowedUploadFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown upload folder",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A file is required",
		})
		return
	}

	if err := storage.ValidateFileSize(fileHeader.Size, ctrl.maxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := storage.ValidateContentType(contentType, allowedImageTypes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	url, err := ctrl.store.Save(c.Request.Context(), folder, fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		log.Error("Failed to store uploaded file", err, map[string]interface{}{
			"folder":   folder,
			"filename": fileHeader.Filename,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store file",
		})
		return
	}

	log.Info("File uploaded", map[string]interface{}{
		"folder": folder,
		"url":    url,
	})

	c.JSON(http.StatusCreated, gin.H{
		"url": url,
	})
}
