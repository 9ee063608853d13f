package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Normalize decodes raw image bytes and brings them to sticker geometry:
// transparency is flattened onto an opaque white background, both dimensions
// are capped at maxSize (downscale only, aspect preserved), and toSquare
// pads the shorter side to a centered square. The output is always opaque.
func Normalize(data []byte, maxSize int, toSquare bool) (*image.NRGBA, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return NormalizeImage(src, maxSize, toSquare), nil
}

// NormalizeImage is Normalize for an already decoded image.
func NormalizeImage(src image.Image, maxSize int, toSquare bool) *image.NRGBA {
	img := imaging.Clone(src)

	// Сводим альфа-канал на белый фон, дальше по конвейеру только непрозрачный RGB
	if !img.Opaque() {
		bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		img = imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
	}

	// Только уменьшение: изображения в пределах maxSize остаются как есть
	img = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)

	if toSquare {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		if w != h {
			side := w
			if h > side {
				side = h
			}
			img = imaging.PasteCenter(imaging.New(side, side, color.White), img)
		}
	}

	return img
}
