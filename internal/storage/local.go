package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements ObjectStorage on the local filesystem for
// development and tests. URLs are served by the dev file handler under
// baseURL; they are not actually signed.
type LocalStorage struct {
	baseURL string
	rootDir string
}

func NewLocalStorage(baseURL, rootDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", rootDir, err)
	}
	return &LocalStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		rootDir: rootDir,
	}, nil
}

func (s *LocalStorage) fullPath(path string) string {
	return filepath.Join(s.rootDir, filepath.FromSlash(path))
}

func (s *LocalStorage) Upload(_ context.Context, path, _ string, r io.Reader) (string, error) {
	full := s.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write file %s: %w", path, err)
	}
	return s.url(path), nil
}

func (s *LocalStorage) SignedDownloadURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return s.url(path), nil
}

func (s *LocalStorage) Exists(_ context.Context, path string) (bool, int64, error) {
	info, err := os.Stat(s.fullPath(path))
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStorage) Delete(_ context.Context, path string) error {
	err := os.Remove(s.fullPath(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Open reads a stored file (used by the dev file handler).
func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	return os.Open(s.fullPath(path))
}

func (s *LocalStorage) url(path string) string {
	return s.baseURL + "/files/" + path
}
