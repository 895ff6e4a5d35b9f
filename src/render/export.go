package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

const (
	DefaultWidth  = 1200
	DefaultHeight = 800

	minWidth  = 400
	minHeight = 300
)

// FigureSize applies the default and minimum figure dimensions.
func FigureSize(w, h int) (int, int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}
	return w, h
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("write png: nil image")
	}
	return png.Encode(w, img)
}

// SavePNG writes img to path, creating parent directories as needed.
func SavePNG(path string, img image.Image) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := WritePNG(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
