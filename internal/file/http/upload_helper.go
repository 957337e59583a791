package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/car-rental-backend/internal/auth"
	"github.com/nekogravitycat/car-rental-backend/internal/file"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/response"
)

// multipartOverhead leaves room for boundaries and other form fields on top of the file itself.
const multipartOverhead = 1 << 20

// FileUploadConfig describes one upload endpoint.
type FileUploadConfig struct {
	FormFieldName string   // defaults to "file"
	MaxSizeBytes  int64    // 0 = no limit
	AllowedTypes  []string // empty = any MIME type
	ResizeImage   bool     // re-encode as JPEG within 1000x1000

	// AfterUpload links the stored file to its owner, e.g. a car.
	// On error the upload is rolled back.
	AfterUpload func(ctx context.Context, fileID string) error
}

// HandleFileUpload stores the uploaded file, runs AfterUpload and answers
// with the public URLs. The file is deleted again if AfterUpload fails.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	if config.MaxSizeBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxSizeBytes+multipartOverhead)
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, file.ErrFileTooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldName + " is required"})
		return
	}

	ctx := c.Request.Context()
	f, err := h.fileService.Upload(ctx, file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       auth.GetUserID(c),
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
		ResizeImage:  config.ResizeImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(ctx, f.ID); err != nil {
			if delErr := h.fileService.Delete(ctx, f.ID); delErr != nil {
				zap.L().Warn("upload rollback failed", zap.String("file_id", f.ID), zap.Error(delErr))
			}
			response.Error(c, err)
			return
		}
	}

	resp := FileUploadResponse{
		Message: "file uploaded successfully",
		FileID:  f.ID,
		URL:     file.FileURL(f.ID),
	}
	if f.ThumbnailPath != nil {
		thumb := file.ThumbnailURL(f.ID)
		resp.ThumbnailURL = &thumb
	}

	c.JSON(http.StatusCreated, resp)
}
