package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"solar-leads/models"
)

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNGs writes images to dir as <layer>.png, or <layer>-<i>.png when
// the layer renders more than one image. It returns the written paths.
func WritePNGs(dir string, id models.LayerID, images []*image.RGBA) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", dir, err)
	}

	paths := make([]string, 0, len(images))
	for i, img := range images {
		name := fmt.Sprintf("%s.png", id)
		if len(images) > 1 {
			name = fmt.Sprintf("%s-%02d.png", id, i)
		}
		path := filepath.Join(dir, name)

		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("failed to create %q: %w", path, err)
		}
		if err := EncodePNG(f, img); err != nil {
			f.Close()
			return paths, fmt.Errorf("failed to encode %q: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
