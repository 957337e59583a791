package file

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "file not found")
	ErrThumbnailUnavailable = apperror.New(http.StatusNotFound, "thumbnail not available")
	ErrFileTooLarge         = apperror.New(http.StatusRequestEntityTooLarge, "file too large")
	ErrUnsupportedType      = apperror.New(http.StatusUnsupportedMediaType, "unsupported file type")
	ErrInvalidImage         = apperror.New(http.StatusBadRequest, "file is not a valid image")
)

// File represents an uploaded file such as a car photo.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string  // relative to the storage root
	ThumbnailPath *string // relative to the storage root
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}
