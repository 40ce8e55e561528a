package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage saves uploaded files under an entity folder (products, categories,
// banners...) and returns the public URL they are served from.
type Storage interface {
	Save(ctx context.Context, folder, filename, contentType string, size int64, r io.Reader) (string, error)
}

// ValidateFileSize rejects files over the configured limit.
func ValidateFileSize(size, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}
	return nil
}

// ValidateContentType rejects content types outside the allow list.
func ValidateContentType(contentType string, allowedTypes []string) error {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}
