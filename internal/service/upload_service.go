package service

import (
	"context"
	"fmt"
	"io"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/media"
)

// UploadService forwards files to the media host.
type UploadService interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type uploadService struct {
	uploader media.Uploader
}

// NewUploadService creates a new upload service.
func NewUploadService(uploader media.Uploader) UploadService {
	return &uploadService{uploader: uploader}
}

// Upload returns the public URL of the stored file.
func (s *uploadService) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	url, err := s.uploader.Upload(ctx, filename, file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	return url, nil
}
