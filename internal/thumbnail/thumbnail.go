// Package thumbnail renders fixed-width copies of stored images.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrInvalidWidth = errors.New("thumbnail width must be positive")

// Generate scales the image at src to width pixels wide, keeping the aspect
// ratio, and writes it to dst. PNG, GIF and WebP sources are written as PNG,
// anything else as JPEG.
func Generate(src, dst string, width int) error {
	if width <= 0 {
		return ErrInvalidWidth
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("decode %s: empty image", src)
	}

	height := max(1, b.Dy()*width/b.Dx())
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)

	out, err := os.CreateTemp(filepath.Dir(dst), ".thumb-*")
	if err != nil {
		return err
	}
	defer os.Remove(out.Name())

	switch format {
	case "png", "gif", "webp":
		err = png.Encode(out, scaled)
	default:
		err = jpeg.Encode(out, scaled, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		out.Close()
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Rename(out.Name(), dst)
}
