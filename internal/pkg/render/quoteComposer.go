package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	quoteCanvasSize    = 512
	quoteMargin        = 20
	quoteTopOffset     = 50
	quoteMaxLines      = 8
	quoteAuthorInset   = 60
	quoteRuleHalfWidth = 40
)

// QuoteFaces bundles the handles a quote card needs: body text, the smaller
// attribution line and the oversized decorative marks.
type QuoteFaces struct {
	Body   FontHandle
	Author FontHandle
	Mark   FontHandle
}

// ComposeQuote renders a fixed 512x512 quote card: vertical gradient
// background, decorative quotation marks in opposite corners, centered
// wrapped body capped at eight lines (excess is dropped) and a right-aligned
// dash-prefixed attribution with a short rule beneath it. An empty author
// skips the attribution block.
func ComposeQuote(text, author string, faces QuoteFaces) (*image.NRGBA, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: quote text is empty", ErrInvalidRequest)
	}

	dc := gg.NewContext(quoteCanvasSize, quoteCanvasSize)

	// Фон: вертикальный градиент от белого к светло-серому
	grad := gg.NewLinearGradient(0, 0, 0, quoteCanvasSize)
	grad.AddColorStop(0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	grad.AddColorStop(1, color.NRGBA{R: 0xe6, G: 0xe8, B: 0xef, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, quoteCanvasSize, quoteCanvasSize)
	dc.Fill()

	// Декоративные кавычки в противоположных углах
	dc.SetFontFace(faces.Mark.Face)
	dc.SetRGBA(0.72, 0.74, 0.8, 1)
	dc.DrawStringAnchored(`"`, 46, 52, 0.5, 0.5)
	dc.DrawStringAnchored(`"`, quoteCanvasSize-46, quoteCanvasSize-36, 0.5, 0.5)

	// Тело цитаты, не больше quoteMaxLines строк
	lines := WrapText(text, faces.Body, quoteCanvasSize-2*quoteMargin)
	if len(lines) > quoteMaxLines {
		lines = lines[:quoteMaxLines]
	}

	dc.SetFontFace(faces.Body.Face)
	dc.SetRGB(0.16, 0.17, 0.2)
	y := quoteTopOffset
	for _, line := range lines {
		dc.DrawStringAnchored(line.Text, quoteCanvasSize/2, float64(y+faces.Body.Ascent()), 0.5, 0)
		y += line.Height
	}

	if author != "" {
		attribution := "— " + author
		top := quoteCanvasSize - quoteAuthorInset

		dc.SetFontFace(faces.Author.Face)
		dc.SetRGB(0.42, 0.44, 0.5)
		dc.DrawStringAnchored(attribution, quoteCanvasSize-quoteMargin, float64(top+faces.Author.Ascent()), 1, 0)

		// Короткая линейка по центру под атрибуцией
		center := float64(quoteCanvasSize-quoteMargin) - float64(faces.Author.TextWidth(attribution))/2
		ruleY := float64(top + faces.Author.LineHeight() + 6)
		dc.SetLineWidth(1)
		dc.DrawLine(center-quoteRuleHalfWidth, ruleY, center+quoteRuleHalfWidth, ruleY)
		dc.Stroke()
	}

	return imaging.Clone(dc.Image()), nil
}
