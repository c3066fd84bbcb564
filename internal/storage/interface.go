package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStorage is the boundary to the file store backing document
// distribution and unit galleries. Backed by the platform bucket in
// production and by the local filesystem in development and tests.
type ObjectStorage interface {
	// Upload writes the object and returns a download URL for it.
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)

	// SignedDownloadURL returns a time-limited download URL for an
	// existing object.
	SignedDownloadURL(ctx context.Context, path string, expiresIn time.Duration) (string, error)

	// Exists checks if an object exists and returns its size.
	Exists(ctx context.Context, path string) (bool, int64, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
