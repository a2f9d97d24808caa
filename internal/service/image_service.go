// Package service contains the domain orchestration layer between HTTP
// handlers and repositories.
package service

import (
	"fmt"
	"os"
	"path/filepath"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/google/uuid"
)

const (
	// DefaultImageUploadDir is used when no upload directory is configured.
	DefaultImageUploadDir       = "/tmp/inkwell/uploads/images"
	defaultImageMaxUploadSizeMB = 10
)

// ImageService persists validated image attachments as opaque blobs
// addressable by a generated path. Content is stored as uploaded, never
// re-encoded.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewImageService creates an ImageService from config, falling back to defaults.
func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := defaultImageMaxUploadSizeMB

	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
	}

	return &ImageService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Save sniff-validates content and writes it under the upload directory.
// Returns the generated relative path used to address the blob.
func (s *ImageService) Save(content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	format, err := validation.SniffImage(content)
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	ext := format
	if format == "jpeg" {
		ext = "jpg"
	}
	rel := filepath.ToSlash(filepath.Join("posts", uuid.NewString()+"."+ext))
	abs := filepath.Join(s.uploadDir, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	return rel, nil
}
