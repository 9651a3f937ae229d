package storage

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// LocalImageFetcher loads resistor photos from a directory on disk.
// Locations are paths relative to the configured root; absolute paths
// and parent traversal are rejected.
type LocalImageFetcher struct {
	root string
}

// NewLocalImageFetcher creates a filesystem-backed image fetcher rooted
// at the given directory.
func NewLocalImageFetcher(root string) (ImageFetcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("image root not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image root %s is not a directory", root)
	}
	return &LocalImageFetcher{root: root}, nil
}

// FetchImage loads and decodes one image file under the root.
func (l *LocalImageFetcher) FetchImage(ctx context.Context, location string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := filepath.Clean(location)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return nil, fmt.Errorf("image path must be relative to the image root")
	}

	img, err := imaging.Open(filepath.Join(l.root, cleaned), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load local image: %w", err)
	}
	return img, nil
}
