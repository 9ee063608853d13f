package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	memeEdgeInset = 10
	memeSidePad   = 20
	strokeWidth   = 2
)

// ComposeMeme draws caption text over a normalized image using the classic
// two-slot convention: the first wrapped line is anchored near the top edge,
// the second near the bottom edge, and a single line is centered. Lines
// beyond the second are dropped. Every line is drawn as white fill over a
// black outline so it stays legible on arbitrary backgrounds.
func ComposeMeme(img *image.NRGBA, text string, h FontHandle) (*image.NRGBA, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: meme text is empty", ErrInvalidRequest)
	}

	out := imaging.Clone(img)
	width := out.Bounds().Dx()
	height := out.Bounds().Dy()

	lines := WrapText(text, h, width-2*memeSidePad)

	if len(lines) == 1 {
		drawStrokedLine(out, lines[0], h, (height-lines[0].Height)/2)
		return out, nil
	}

	drawStrokedLine(out, lines[0], h, memeEdgeInset)
	drawStrokedLine(out, lines[1], h, height-memeEdgeInset-lines[1].Height)
	return out, nil
}

// drawStrokedLine рисует строку по горизонтальному центру: контур восемью
// смещениями, затем заливка поверх
func drawStrokedLine(dst *image.NRGBA, line Line, h FontHandle, top int) {
	x := (dst.Bounds().Dx() - line.Width) / 2
	y := top + h.Ascent()

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: h.Face,
	}
	for dx := -strokeWidth; dx <= strokeWidth; dx += strokeWidth {
		for dy := -strokeWidth; dy <= strokeWidth; dy += strokeWidth {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.P(x+dx, y+dy)
			d.DrawString(line.Text)
		}
	}

	d.Src = image.NewUniform(color.White)
	d.Dot = fixed.P(x, y)
	d.DrawString(line.Text)
}
