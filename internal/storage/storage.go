package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// ErrInvalidKey is returned for keys that are empty, absolute or escape the store root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Storage saves the files attached to project submissions.
// A local filesystem implementation is provided; an object store can replace it.
type Storage interface {
	// Save stores data under key and returns the reference recorded on the submission.
	Save(ctx context.Context, key string, data io.Reader, contentType string) (ref string, err error)

	// Delete removes the file stored under key. Missing files are not an error.
	Delete(ctx context.Context, key string) error
}

// AttachmentKey builds a unique key "attachments/YYYY/MM/<random><ext>" for an
// uploaded file. Only the extension of filename is kept.
func AttachmentKey(now time.Time, filename string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	return path.Join("attachments", now.Format("2006/01"), hex.EncodeToString(b)+ext)
}

func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidKey
	}
	return clean, nil
}
