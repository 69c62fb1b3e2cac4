package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned by Disabled.
var ErrNotConfigured = errors.New("media host is not configured")

// Uploader stores a file on the media host and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// Cloudinary uploads to a Cloudinary account.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

var _ Uploader = (*Cloudinary)(nil)

// NewCloudinary builds a client from account credentials.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

// Upload streams file to Cloudinary and returns its secure URL.
func (c *Cloudinary) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   c.folder,
		PublicID: publicID(filename),
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("media host returned no url")
	}
	return res.SecureURL, nil
}

// publicID derives a readable id from the uploaded file name. The random
// suffix keeps two uploads of "photo.jpg" from overwriting each other.
func publicID(filename string) string {
	suffix := uuid.NewString()[:8]
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, base)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// Disabled is used when no media host credentials are configured.
type Disabled struct{}

// Upload always fails with ErrNotConfigured.
func (Disabled) Upload(context.Context, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
