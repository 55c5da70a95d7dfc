// Package upload validates and persists uploaded image files under a
// configured root and derives their public URLs.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bijoux-catalog/internal/logger"
	"bijoux-catalog/internal/models"
)

const (
	menuItemsDir = "menu-items"

	// MaxFileSize is the upload size cap in bytes (5 MiB).
	MaxFileSize = 5 * 1024 * 1024
)

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ValidationError marks a rejection caused by the client's input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// File is an in-memory uploaded file with its declared metadata. The
// mime type is trusted as declared; content is not inspected.
type File struct {
	Data     []byte
	MimeType string
	Size     int64
	Filename string
}

type Service struct {
	root    string
	prefix  string
	baseURL string
	log     *logger.Logger
}

// NewService ensures the upload root and its menu-items subdirectory
// exist. A failure here is fatal to startup and is returned to the
// caller rather than swallowed.
func NewService(cfg *models.Config, log *logger.Logger) (*Service, error) {
	const op = "upload.NewService"

	root := cfg.UploadPath
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(filepath.Join(root, menuItemsDir), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return &Service{
		root:    root,
		prefix:  strings.TrimPrefix(filepath.ToSlash(filepath.Clean(root)), "/"),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log.WithContext("upload"),
	}, nil
}

// Prefix is the leading path segment of stored relative paths, derived
// from the configured root ("uploads" for the default root).
func (s *Service) Prefix() string {
	return s.prefix
}

// Store validates the file and writes it under <root>/menu-items with a
// random uuid name, preserving the original extension. It returns the
// relative path callers persist on the menu item.
func (s *Service) Store(file *File) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", invalid("no image file provided")
	}
	if _, ok := allowedMimeTypes[strings.ToLower(file.MimeType)]; !ok {
		return "", invalid("unsupported image type %q: allowed types are jpeg, jpg, png, gif, webp", file.MimeType)
	}
	if file.Size > MaxFileSize {
		return "", invalid("image exceeds the %d byte size limit", MaxFileSize)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := os.WriteFile(filepath.Join(s.root, menuItemsDir, name), file.Data, 0o644); err != nil {
		s.log.Error("failed to save image file", err)
		return "", invalid("failed to save image file")
	}
	return s.prefix + "/" + menuItemsDir + "/" + name, nil
}

// Delete removes a previously stored image. It is best-effort: an empty
// path, a missing file, or a removal failure never surface to the
// caller. Failures are logged with the path for context.
func (s *Service) Delete(relPath string) {
	if relPath == "" {
		return
	}

	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(relPath, "/")))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		s.log.Warn(fmt.Sprintf("refusing to delete path outside upload root: %s", relPath))
		return
	}

	if _, err := os.Stat(clean); err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn(fmt.Sprintf("could not stat image %s: %v", clean, err))
		}
		return
	}
	if err := os.Remove(clean); err != nil {
		s.log.Warn(fmt.Sprintf("failed to delete image %s: %v", clean, err))
	}
}

// URL derives the public URL for a stored relative path. An empty path
// yields an empty URL. A single leading slash is tolerated.
func (s *Service) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimPrefix(relPath, "/")
}
