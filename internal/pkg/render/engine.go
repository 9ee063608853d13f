// Package render is the text-to-image engine behind the sticker service:
// it normalizes source images, resolves fonts across unreliable
// environments, wraps text by real glyph metrics and composes meme captions,
// quote cards and pixel filters into PNG bytes.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kind selects the composition a request asks for.
type Kind string

const (
	KindMeme    Kind = "meme"
	KindQuote   Kind = "quote"
	KindFilter  Kind = "filter"
	KindSticker Kind = "sticker"
)

// CompositionRequest carries everything one render needs. Image holds raw
// encoded bytes of any common raster format; the result is always PNG.
type CompositionRequest struct {
	Kind   Kind   `json:"kind"`
	Image  []byte `json:"image,omitempty"`
	Text   string `json:"text,omitempty"`
	Author string `json:"author,omitempty"`
	Filter string `json:"filter,omitempty"`
	Square bool   `json:"square,omitempty"`
}

// Validate fails fast on impossible requests before any pixel work starts.
func (r *CompositionRequest) Validate() error {
	switch r.Kind {
	case KindMeme:
		if len(r.Image) == 0 {
			return fmt.Errorf("%w: meme needs a source image", ErrInvalidRequest)
		}
		if strings.TrimSpace(r.Text) == "" {
			return fmt.Errorf("%w: meme needs caption text", ErrInvalidRequest)
		}
	case KindQuote:
		if strings.TrimSpace(r.Text) == "" {
			return fmt.Errorf("%w: quote needs body text", ErrInvalidRequest)
		}
		if strings.TrimSpace(r.Author) == "" {
			return fmt.Errorf("%w: quote needs an author", ErrInvalidRequest)
		}
	case KindFilter:
		if len(r.Image) == 0 {
			return fmt.Errorf("%w: filter needs a source image", ErrInvalidRequest)
		}
		if !IsSupportedFilter(r.Filter) {
			return fmt.Errorf("%w: %q", ErrUnsupportedFilter, r.Filter)
		}
	case KindSticker:
		if len(r.Image) == 0 {
			return fmt.Errorf("%w: sticker needs a source image", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, r.Kind)
	}
	return nil
}

// Options are the fixed layout parameters of the engine.
type Options struct {
	MaxSize         int
	MemeFontSize    int
	QuoteFontSize   int
	QuoteAuthorSize int
	QuoteMarkSize   int
}

// DefaultOptions is the classic sticker geometry: 512px cap, 40px meme
// captions, 30/20px quote body and attribution.
func DefaultOptions() Options {
	return Options{
		MaxSize:         512,
		MemeFontSize:    40,
		QuoteFontSize:   30,
		QuoteAuthorSize: 20,
		QuoteMarkSize:   72,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxSize <= 0 {
		o.MaxSize = def.MaxSize
	}
	if o.MemeFontSize <= 0 {
		o.MemeFontSize = def.MemeFontSize
	}
	if o.QuoteFontSize <= 0 {
		o.QuoteFontSize = def.QuoteFontSize
	}
	if o.QuoteAuthorSize <= 0 {
		o.QuoteAuthorSize = def.QuoteAuthorSize
	}
	if o.QuoteMarkSize <= 0 {
		o.QuoteMarkSize = def.QuoteMarkSize
	}
	return o
}

// Engine ties the resolver and the composers together. It is safe for
// concurrent use: every Render call is self-contained, the only shared
// state is the lock-guarded font cache inside the resolver.
type Engine struct {
	resolver *Resolver
	opts     Options
}

func NewEngine(resolver *Resolver, opts Options) *Engine {
	return &Engine{resolver: resolver, opts: opts.withDefaults()}
}

// Render validates the request, runs the matching composition and returns
// encoded PNG bytes. Transforms are all-or-nothing: on error no partially
// modified image is returned.
func (e *Engine) Render(req CompositionRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Kind {
	case KindMeme:
		img, err := Normalize(req.Image, e.opts.MaxSize, false)
		if err != nil {
			return nil, err
		}
		out, err := ComposeMeme(img, req.Text, e.resolver.Resolve(e.opts.MemeFontSize))
		if err != nil {
			return nil, err
		}
		return encodePNG(out)

	case KindQuote:
		faces := QuoteFaces{
			Body:   e.resolver.Resolve(e.opts.QuoteFontSize),
			Author: e.resolver.Resolve(e.opts.QuoteAuthorSize),
			Mark:   e.resolver.Resolve(e.opts.QuoteMarkSize),
		}
		out, err := ComposeQuote(req.Text, req.Author, faces)
		if err != nil {
			return nil, err
		}
		return encodePNG(out)

	case KindFilter:
		img, err := Normalize(req.Image, e.opts.MaxSize, false)
		if err != nil {
			return nil, err
		}
		out, err := ApplyFilter(img, req.Filter)
		if err != nil {
			return nil, err
		}
		return encodePNG(out)

	default:
		// KindSticker: Validate уже отсёк неизвестные виды
		img, err := Normalize(req.Image, e.opts.MaxSize, req.Square)
		if err != nil {
			return nil, err
		}
		return encodePNG(img)
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
