package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/car-rental-backend/internal/pkg/storage"
)

const (
	maxImageDimension = 1000
	thumbnailSize     = 200
)

// UploadInput describes a single uploaded file and the rules it must satisfy.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	MaxSizeBytes int64    // 0 means no limit
	AllowedTypes []string // empty means any type
	ResizeImage  bool     // re-encode as JPEG bounded by 1000x1000
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	log     *zap.Logger
}

func NewService(repo Repository, store storage.Storage, log *zap.Logger) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		log:     log,
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	header := in.FileHeader
	if in.MaxSizeBytes > 0 && header.Size > in.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrUnsupportedType
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	filename := header.Filename
	ext := strings.ToLower(filepath.Ext(filename))
	isImage := strings.HasPrefix(contentType, "image/")

	if in.ResizeImage {
		resized, err := s.imgProc.Fit(bytes.NewReader(fileBytes), maxImageDimension, maxImageDimension)
		if err != nil {
			return nil, ErrInvalidImage
		}
		fileBytes = resized.Bytes()
		contentType = "image/jpeg"
		ext = ".jpg"
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
		isImage = true
	}

	fileID := uuid.New().String()

	// Sharded layout: upload/ab/<uuid>.ext
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	if isImage {
		thumbPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
		if err := s.saveThumbnail(ctx, thumbPath, fileBytes); err != nil {
			// The original is usable without a thumbnail.
			s.log.Warn("thumbnail generation failed", zap.String("file_id", fileID), zap.Error(err))
		} else {
			thumbnailPath = &thumbPath
		}
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(fileBytes)),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeBlobs(ctx, f)
		return nil, err
	}

	return f, nil
}

func (s *service) saveThumbnail(ctx context.Context, path string, content []byte) error {
	thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(content), thumbnailSize, thumbnailSize)
	if err != nil {
		return err
	}
	return s.storage.Save(ctx, path, thumb)
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.removeBlobs(ctx, f)
	return s.repo.Delete(ctx, id)
}

func (s *service) removeBlobs(ctx context.Context, f *File) {
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		s.log.Warn("failed to delete stored file", zap.String("path", f.StoragePath), zap.Error(err))
	}
	if f.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *f.ThumbnailPath); err != nil {
			s.log.Warn("failed to delete stored thumbnail", zap.String("path", *f.ThumbnailPath), zap.Error(err))
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}

	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if f.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailUnavailable
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, f, nil
}
