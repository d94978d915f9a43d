package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// CreateThumb writes a width-constrained thumbnail next to the original under
// a thumb/ subdirectory, keeping the aspect ratio.
func CreateThumb(id, dir, ext string, width int) (string, error) {
	src, err := imaging.Open(filepath.Join(dir, id+ext))
	if err != nil {
		return "", fmt.Errorf("failed to open image for thumbnail: %w", err)
	}

	thumb := imaging.Resize(src, width, 0, imaging.Lanczos)

	thumbDir := filepath.Join(dir, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	thumbPath := filepath.Join(thumbDir, id+ext)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return thumbPath, nil
}
