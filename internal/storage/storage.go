// Package storage provides media object storage for user-uploaded images.
// Images are normalized to a JPEG master plus a WebP variant and addressed
// by a deterministic content hash.
package storage

import (
	"context"
	"path"
	"strings"
)

// ObjectStore persists uploaded images and serves them by URL.
type ObjectStore interface {
	// Upload decodes, normalizes and stores the image, returning the public
	// URL of the JPEG master.
	Upload(ctx context.Context, userID uint, content []byte, contentType string) (string, error)
	// Destroy removes the object and all its variants.
	Destroy(ctx context.Context, objectID string) error
}

// ObjectIDFromURL extracts the object ID from a media URL.
// "/media/i/<hash>/master.jpg" yields "<hash>".
func ObjectIDFromURL(url string) string {
	trimmed := strings.TrimSuffix(url, "/")
	dir := path.Dir(trimmed)
	if dir == "." || dir == "/" {
		return ""
	}
	return path.Base(dir)
}
