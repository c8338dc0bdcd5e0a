package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"notaryflow/internal/config"
	"notaryflow/internal/domain"
	"notaryflow/internal/port"
)

// UploadInput is the DTO for custom document upload requests.
type UploadInput struct {
	SessionID string
	File      multipart.File
	Header    *multipart.FileHeader
}

// UploadResult describes a stored custom document.
type UploadResult struct {
	// URL is the canonical s3://bucket/key location stored in form data.
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}

// UploadService stores user-provided PDFs for the upload-your-document flow.
type UploadService interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	PresignURL(ctx context.Context, canonicalURL string) (string, error)
}

type uploadService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(storage port.ObjectStorage, cfg *config.S3Config) UploadService {
	return &uploadService{storage: storage, cfg: cfg}
}

func (s *uploadService) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(input.Header.Filename))
	if ext != ".pdf" {
		return nil, domain.ErrUnsupportedFile
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check: the extension alone is not trusted.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if detected := http.DetectContentType(buf[:n]); detected != "application/pdf" {
		return nil, domain.ErrUnsupportedFile
	}

	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	key := fmt.Sprintf("uploads/%s/%s/%s", input.SessionID, uuid.New(), input.Header.Filename)

	log.Printf("uploadService.Upload: storing %s (%d bytes) for session %s",
		input.Header.Filename, input.Header.Size, input.SessionID)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: "application/pdf",
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("uploadService.Upload: storage upload failed for session %s: %v", input.SessionID, err)
		return nil, domain.ErrUploadFailed
	}

	return &UploadResult{
		URL:      fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key),
		FileName: input.Header.Filename,
		Size:     input.Header.Size,
	}, nil
}

// PresignURL exchanges a canonical s3:// URL for a time-limited download
// URL. Non-canonical URLs (external artifacts written by collaborators) are
// returned unchanged.
func (s *uploadService) PresignURL(ctx context.Context, canonicalURL string) (string, error) {
	rest, ok := strings.CutPrefix(canonicalURL, "s3://")
	if !ok {
		return canonicalURL, nil
	}

	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", fmt.Errorf("uploadService.PresignURL: malformed canonical URL %q", canonicalURL)
	}

	url, err := s.storage.GetPresignedURL(ctx, bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("uploadService.PresignURL: %w", err)
	}
	return url, nil
}
