package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files on the local filesystem.
type LocalStorage struct {
	baseDir   string // root directory on disk, e.g. "data/uploads"
	urlPrefix string // prefix the files are served under, e.g. "/admin/uploads"
}

func NewLocalStorage(baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// Dir is the root directory files are written to.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("storage: close: %w", err)
	}

	return s.urlPrefix + "/" + key, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	dest := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove: %w", err)
	}
	return nil
}
