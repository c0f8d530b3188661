package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// MaxImageDimension bounds the longer side of stored profile pictures and logos.
const MaxImageDimension = 1024

var (
	imageExts      = []string{".jpg", ".jpeg", ".png"}
	attachmentExts = []string{".jpg", ".jpeg", ".png", ".pdf"}
)

type FileService interface {
	// UploadProfilePicture stores an employee avatar in the profiles bucket and returns its public URL.
	UploadProfilePicture(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadLeaveAttachment stores a time-off supporting document in the attachments bucket.
	UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadCompanyLogo stores a logo in the company-logos bucket.
	UploadCompanyLogo(ctx context.Context, companyID string, file io.Reader, filename string) (string, error)

	// DeleteByURL removes a previously uploaded file. URLs from other hosts are ignored.
	DeleteByURL(ctx context.Context, url string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadProfilePicture(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return s.uploadImage(ctx, storage.BucketProfiles, employeeID, file, filename)
}

func (s *fileServiceImpl) UploadCompanyLogo(ctx context.Context, companyID string, file io.Reader, filename string) (string, error) {
	return s.uploadImage(ctx, storage.BucketCompanyLogos, companyID, file, filename)
}

func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(attachmentExts, ext) {
		return "", fmt.Errorf("%w: only jpg, jpeg, png, pdf allowed", storage.ErrInvalidFileType)
	}

	contentType := "application/pdf"
	if ext != ".pdf" {
		contentType = imageContentType(ext)
	}

	newFilename := fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.New().String(), ext)
	key := path.Join(storage.BucketAttachments, employeeID, newFilename)

	return s.put(ctx, file, key, contentType)
}

func (s *fileServiceImpl) DeleteByURL(ctx context.Context, url string) error {
	resolver, ok := s.storage.(storage.URLResolver)
	if !ok {
		return nil
	}
	key, ok := resolver.KeyFromURL(url)
	if !ok {
		return nil
	}
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) uploadImage(ctx context.Context, bucket, owner string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(imageExts, ext) {
		return "", fmt.Errorf("%w: only jpg, jpeg, png allowed", storage.ErrInvalidFileType)
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	body, err := downscaleImage(buffer, MaxImageDimension)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", owner, uuid.New().String(), ext)
	key := path.Join(bucket, owner, newFilename)

	return s.put(ctx, bytes.NewReader(body), key, imageContentType(ext))
}

func (s *fileServiceImpl) put(ctx context.Context, body io.Reader, key, contentType string) (string, error) {
	uploadedKey, err := s.storage.Upload(ctx, body, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	url, err := s.storage.GetURL(ctx, uploadedKey, 0)
	if err != nil {
		return "", fmt.Errorf("failed to build file url: %w", err)
	}
	return url, nil
}

func imageContentType(ext string) string {
	if ext == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}

// downscaleImage shrinks images whose longer side exceeds maxDim, keeping aspect
// ratio and the original encoding. Smaller images are returned unchanged.
func downscaleImage(buffer []byte, maxDim int) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidImage, err)
	}
	if cfg.Width <= maxDim && cfg.Height <= maxDim {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidImage, err)
	}

	width, height := cfg.Width, cfg.Height
	if width >= height {
		height = max(1, height*maxDim/width)
		width = maxDim
	} else {
		width = max(1, width*maxDim/height)
		height = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var out bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&out, dst)
	default:
		err = jpeg.Encode(&out, dst, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return out.Bytes(), nil
}
