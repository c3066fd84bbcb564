package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"

	"habitat-portal-backend/internal/logger"
)

// signedURLTTL is how long upload-time download URLs stay valid. The stored
// path is the durable reference; URLs can always be re-signed.
const signedURLTTL = 7 * 24 * time.Hour

// GCSStorage implements ObjectStorage on the platform's storage bucket.
type GCSStorage struct {
	bucket *gcs.BucketHandle
}

func NewGCSStorage(bucket *gcs.BucketHandle) *GCSStorage {
	return &GCSStorage{bucket: bucket}
}

func (s *GCSStorage) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	logger.ExternalServiceCall("storage", "upload", "path", path, "content_type", contentType)

	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		logger.ExternalServiceResult("storage", "upload", err, "path", path)
		return "", fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		logger.ExternalServiceResult("storage", "upload", err, "path", path)
		return "", fmt.Errorf("finalize object %s: %w", path, err)
	}
	logger.ExternalServiceResult("storage", "upload", nil, "path", path)

	return s.SignedDownloadURL(ctx, path, signedURLTTL)
}

func (s *GCSStorage) SignedDownloadURL(_ context.Context, path string, expiresIn time.Duration) (string, error) {
	url, err := s.bucket.SignedURL(path, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(expiresIn),
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", path, err)
	}
	return url, nil
}

func (s *GCSStorage) Exists(ctx context.Context, path string) (bool, int64, error) {
	attrs, err := s.bucket.Object(path).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("stat object %s: %w", path, err)
	}
	return true, attrs.Size, nil
}

func (s *GCSStorage) Delete(ctx context.Context, path string) error {
	logger.ExternalServiceCall("storage", "delete", "path", path)
	err := s.bucket.Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		// Metadata can outlive the object; nothing left to remove.
		return nil
	}
	logger.ExternalServiceResult("storage", "delete", err, "path", path)
	if err != nil {
		return fmt.Errorf("delete object %s: %w", path, err)
	}
	return nil
}
