package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Buckets group stored objects by purpose. Object keys are "<bucket>/<owner>/<name>".
const (
	BucketProfiles     = "profiles"
	BucketAttachments  = "attachments"
	BucketCompanyLogos = "company-logos"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")

	ErrInvalidFileType = errors.New("invalid file type")
	ErrInvalidImage    = errors.New("file is not a readable image")
)

// URLResolver is implemented by storages whose public URLs map back to object keys.
type URLResolver interface {
	KeyFromURL(url string) (string, bool)
}

type FileStorage interface {
	// Upload uploads a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL generates a presigned/public URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
