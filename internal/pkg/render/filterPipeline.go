package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"
)

// Имена фильтров, поддерживаемых пайплайном
const (
	FilterGrayscale = "grayscale"
	FilterInvert    = "invert"
	FilterPosterize = "posterize"
	FilterSolarize  = "solarize"
)

const (
	posterizeLevels   = 4
	solarizeThreshold = 128
)

// ApplyFilter applies one named per-pixel transform and returns a new image.
// Unknown names are a hard error, the input is never passed through silently.
func ApplyFilter(img *image.NRGBA, name string) (*image.NRGBA, error) {
	switch name {
	case FilterGrayscale:
		return imaging.Grayscale(img), nil
	case FilterInvert:
		return imaging.Invert(img), nil
	case FilterPosterize:
		return imaging.AdjustFunc(img, posterize), nil
	case FilterSolarize:
		return imaging.AdjustFunc(img, solarize), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFilter, name)
	}
}

// IsSupportedFilter reports whether name is a known filter.
func IsSupportedFilter(name string) bool {
	switch name {
	case FilterGrayscale, FilterInvert, FilterPosterize, FilterSolarize:
		return true
	}
	return false
}

// SupportedFilters returns the known filter names sorted alphabetically.
func SupportedFilters() []string {
	names := []string{FilterGrayscale, FilterInvert, FilterPosterize, FilterSolarize}
	sort.Strings(names)
	return names
}

// posterize снижает глубину каждого канала до posterizeLevels уровней
func posterize(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: posterizeChannel(c.R),
		G: posterizeChannel(c.G),
		B: posterizeChannel(c.B),
		A: c.A,
	}
}

func posterizeChannel(v uint8) uint8 {
	const step = 255 / (posterizeLevels - 1)
	return uint8((int(v) + step/2) / step * step)
}

// solarize инвертирует тона начиная с порога
func solarize(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: solarizeChannel(c.R),
		G: solarizeChannel(c.G),
		B: solarizeChannel(c.B),
		A: c.A,
	}
}

func solarizeChannel(v uint8) uint8 {
	if v < solarizeThreshold {
		return v
	}
	return 255 - v
}
