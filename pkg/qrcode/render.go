package qrcode

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// maxImageSide bounds the rendered PNG side in pixels.
const maxImageSide = 1 << 15

const (
	whiteIndex uint8 = 0
	blackIndex uint8 = 1
)

// render draws the module grid black on white, moduleSize pixels per
// module, with border light modules on every side.
func render(modules [][]bool, moduleSize, border int) (*image.Paletted, error) {
	span := len(modules) + 2*border
	if border > maxImageSide || moduleSize > maxImageSide/span {
		return nil, fmt.Errorf("%w: %d modules at %dpx", ErrImageTooLarge, span, moduleSize)
	}
	side := span * moduleSize

	img := image.NewPaletted(image.Rect(0, 0, side, side), color.Palette{color.White, color.Black})
	// Pix is zero-filled, which is whiteIndex.

	for r, row := range modules {
		for c, dark := range row {
			if !dark {
				continue
			}
			x0 := (c + border) * moduleSize
			y0 := (r + border) * moduleSize
			for y := y0; y < y0+moduleSize; y++ {
				off := img.PixOffset(x0, y)
				for i := 0; i < moduleSize; i++ {
					img.Pix[off+i] = blackIndex
				}
			}
		}
	}

	return img, nil
}

// writePNGFile encodes img to a temp file beside path and renames it over path.
func writePNGFile(path string, img image.Image) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".qr-*.png.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = png.Encode(tmp, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move into place: %w", err)
	}
	return nil
}
