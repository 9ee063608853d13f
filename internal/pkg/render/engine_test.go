package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEngine собирает движок на встроенном растровом шрифте,
// без файловых и сетевых источников
func testEngine() *Engine {
	return NewEngine(NewResolver(FontSources{}, NewFontCache()), Options{})
}

// TestRenderValidation тестирует отбраковку некорректных запросов до рендеринга
func TestRenderValidation(t *testing.T) {
	img := encodePNGBytes(t, newBlackImage(8, 8))

	tests := []struct {
		name    string
		req     CompositionRequest
		wantErr error
	}{
		{
			name:    "meme without image",
			req:     CompositionRequest{Kind: KindMeme, Text: "hello"},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "meme without text",
			req:     CompositionRequest{Kind: KindMeme, Image: img},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "quote without text",
			req:     CompositionRequest{Kind: KindQuote, Author: "someone"},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "quote without author",
			req:     CompositionRequest{Kind: KindQuote, Text: "wisdom"},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "filter without image",
			req:     CompositionRequest{Kind: KindFilter, Filter: FilterInvert},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "filter with unknown name",
			req:     CompositionRequest{Kind: KindFilter, Image: img, Filter: "sepia"},
			wantErr: ErrUnsupportedFilter,
		},
		{
			name:    "sticker without image",
			req:     CompositionRequest{Kind: KindSticker},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "unknown kind",
			req:     CompositionRequest{Kind: Kind("gifify"), Image: img},
			wantErr: ErrInvalidRequest,
		},
	}

	eng := testEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Render(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestRenderDecodeError тестирует реакцию на нечитаемые байты изображения
func TestRenderDecodeError(t *testing.T) {
	_, err := testEngine().Render(CompositionRequest{
		Kind:  KindSticker,
		Image: []byte("definitely not an image"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

// TestRenderMemeEndToEnd тестирует полный цикл: JPEG на входе,
// нормализация до лимита и подписи в обоих слотах на PNG-выходе
func TestRenderMemeEndToEnd(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 800, 600))
	fillNRGBA(src, color.NRGBA{R: 90, G: 90, B: 90, A: 255})

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, &jpeg.Options{Quality: 90}))

	data, err := testEngine().Render(CompositionRequest{
		Kind:  KindMeme,
		Image: buf.Bytes(),
		Text:  "HELLO\nWORLD",
	})
	require.NoError(t, err)

	out, err := decodeNRGBA(data)
	require.NoError(t, err)

	require.Equal(t, 512, out.Bounds().Dx())
	require.Equal(t, 384, out.Bounds().Dy())

	h := builtinHandle()
	topBandMax := memeEdgeInset + h.LineHeight() + strokeWidth
	bottomBandMin := out.Bounds().Dy() - memeEdgeInset - h.LineHeight() - strokeWidth

	sawTop, sawBottom := false, false
	for _, y := range whiteRows(out) {
		if y <= topBandMax {
			sawTop = true
		}
		if y >= bottomBandMin {
			sawBottom = true
		}
	}
	assert.True(t, sawTop, "no top caption after the full pipeline")
	assert.True(t, sawBottom, "no bottom caption after the full pipeline")
}

// TestRenderStickerSquare тестирует стикер с дополнением до квадрата
func TestRenderStickerSquare(t *testing.T) {
	content := color.NRGBA{R: 20, G: 60, B: 200, A: 255}
	src := image.NewNRGBA(image.Rect(0, 0, 300, 200))
	fillNRGBA(src, content)

	data, err := testEngine().Render(CompositionRequest{
		Kind:   KindSticker,
		Image:  encodePNGBytes(t, src),
		Square: true,
	})
	require.NoError(t, err)

	out, err := decodeNRGBA(data)
	require.NoError(t, err)

	require.Equal(t, 300, out.Bounds().Dx())
	require.Equal(t, 300, out.Bounds().Dy())

	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(150, 10))
	assert.Equal(t, content, out.NRGBAAt(150, 150))
}

// TestRenderQuote тестирует карточку цитаты без входного изображения
func TestRenderQuote(t *testing.T) {
	data, err := testEngine().Render(CompositionRequest{
		Kind:   KindQuote,
		Text:   "brevity is the soul of wit",
		Author: "shakespeare",
	})
	require.NoError(t, err)

	out, err := decodeNRGBA(data)
	require.NoError(t, err)

	assert.Equal(t, 512, out.Bounds().Dx())
	assert.Equal(t, 512, out.Bounds().Dy())
}

// TestRenderFilter тестирует применение фильтра через движок
func TestRenderFilter(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	fillNRGBA(src, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	data, err := testEngine().Render(CompositionRequest{
		Kind:   KindFilter,
		Image:  encodePNGBytes(t, src),
		Filter: FilterInvert,
	})
	require.NoError(t, err)

	out, err := decodeNRGBA(data)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 245, G: 235, B: 225, A: 255}, out.NRGBAAt(5, 5))
}

// decodeNRGBA декодирует PNG-байты обратно в NRGBA для проверок
func decodeNRGBA(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}
