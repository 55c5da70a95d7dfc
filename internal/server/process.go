package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"bijoux-catalog/internal/models"
)

const thumbSize = 256

// ProcessThumbnail generates a thumbnail for a stored image. The input
// is the relative path as returned by the upload service, resolved
// against the working directory the same way deletes are. A missing
// source is not an error worth retrying; callers log and move on.
func ProcessThumbnail(relPath string, cfg *models.Config) error {
	const op = "server.processThumbnail"

	src := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(relPath, "/")))
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	thumb := imaging.Thumbnail(img, thumbSize, thumbSize, imaging.Lanczos)

	dstDir := filepath.Join(cfg.UploadPath, "menu-items", "thumbs")
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if err := imaging.Save(thumb, filepath.Join(dstDir, base+"_thumb.jpg")); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}
