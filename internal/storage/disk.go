package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	MasterMaxSize = 2048
	JPEGQuality   = 82
	WebPQuality   = 70

	DefaultMaxUploadSizeMB = 10
)

// DiskStore stores images under a root directory and serves them from a base
// URL path (mounted via the static file handler).
type DiskStore struct {
	root               string
	baseURL            string
	maxUploadSizeBytes int64
}

// NewDiskStore creates a DiskStore rooted at root, serving URLs under baseURL.
// The root directory is created if it does not exist.
func NewDiskStore(root, baseURL string, maxUploadSizeMB int) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("media root directory is required")
	}
	if err := os.MkdirAll(filepath.Join(root, "i"), 0o750); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = DefaultMaxUploadSizeMB
	}
	return &DiskStore{
		root:               root,
		baseURL:            strings.TrimSuffix(baseURL, "/"),
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}, nil
}

// Root returns the directory the store writes into.
func (s *DiskStore) Root() string {
	return s.root
}

func (s *DiskStore) Upload(_ context.Context, userID uint, content []byte, contentType string) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("no file content")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return "", fmt.Errorf("file too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024))
	}

	detected := http.DetectContentType(content)
	if !isAllowedImageMIME(detected) {
		return "", fmt.Errorf("invalid image type %q", detected)
	}
	if provided := normalizeContentType(contentType); strings.HasPrefix(provided, "image/") && !isAllowedImageMIME(provided) {
		return "", fmt.Errorf("invalid image type %q", provided)
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("invalid image file: %w", err)
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)

	encodedJPG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return "", err
	}
	encodedWebP, err := encodeWebP(master, WebPQuality)
	if err != nil {
		return "", err
	}

	hash := objectHash(userID, encodedJPG)

	jpgPath := filepath.Join(s.root, "i", hash, "master.jpg")
	webpPath := filepath.Join(s.root, "i", hash, "master.webp")

	if err := writeBytesToFile(jpgPath, encodedJPG); err != nil {
		return "", err
	}
	if err := writeBytesToFile(webpPath, encodedWebP); err != nil {
		_ = os.Remove(jpgPath)
		return "", err
	}

	return fmt.Sprintf("%s/i/%s/master.jpg", s.baseURL, hash), nil
}

func (s *DiskStore) Destroy(_ context.Context, objectID string) error {
	if !isValidObjectID(objectID) {
		return fmt.Errorf("invalid object id %q", objectID)
	}
	return os.RemoveAll(filepath.Join(s.root, "i", objectID))
}

// isValidObjectID checks that the id is strictly lowercase hex (SHA-256 style).
// This prevents path traversal via crafted IDs.
func isValidObjectID(id string) bool {
	if len(id) == 0 || len(id) > 128 {
		return false
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func objectHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
