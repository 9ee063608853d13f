package render

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// BuiltinSource is the Source value of the terminal bitmap fallback.
const BuiltinSource = "builtin"

// FontSources is the ordered font lookup chain: filesystem paths first,
// then one remote URL. A successful download is persisted to DownloadTo so
// the next resolution finds it on disk instead of going to the network.
type FontSources struct {
	Paths      []string
	URL        string
	DownloadTo string
}

// FontHandle binds a font to one pixel size. Handles are minted per request
// because rasterizer faces cache hinting state and are not safe to share;
// the parsed font behind them is shared through FontCache.
type FontHandle struct {
	Face   font.Face
	Size   int
	Source string
}

func (h FontHandle) TextWidth(s string) int {
	return font.MeasureString(h.Face, s).Ceil()
}

func (h FontHandle) LineHeight() int {
	return h.Face.Metrics().Height.Ceil()
}

func (h FontHandle) Ascent() int {
	return h.Face.Metrics().Ascent.Ceil()
}

// FontCache хранит распарсенные шрифты по источнику
type FontCache struct {
	mu    sync.RWMutex
	fonts map[string]*truetype.Font
}

func NewFontCache() *FontCache {
	return &FontCache{fonts: make(map[string]*truetype.Font)}
}

func (c *FontCache) get(key string) (*truetype.Font, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.fonts[key]
	return f, ok
}

// put возвращает уже сохранённый шрифт, если ключ успел занять другой writer
func (c *FontCache) put(key string, f *truetype.Font) *truetype.Font {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.fonts[key]; ok {
		return existing
	}
	c.fonts[key] = f
	return f
}

type fontProvider interface {
	name() string
	tryResolve(size int) (FontHandle, error)
}

type fileProvider struct {
	path  string
	cache *FontCache
}

func (p *fileProvider) name() string { return p.path }

func (p *fileProvider) tryResolve(size int) (FontHandle, error) {
	f, ok := p.cache.get(p.path)
	if !ok {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return FontHandle{}, err
		}
		parsed, err := truetype.Parse(data)
		if err != nil {
			return FontHandle{}, fmt.Errorf("parse font %s: %w", p.path, err)
		}
		f = p.cache.put(p.path, parsed)
	}
	return newHandle(f, size, p.path), nil
}

type remoteProvider struct {
	url    string
	saveTo string
	client *http.Client
	cache  *FontCache
}

func (p *remoteProvider) name() string { return p.url }

func (p *remoteProvider) tryResolve(size int) (FontHandle, error) {
	f, ok := p.cache.get(p.url)
	if !ok {
		parsed, err := p.fromDisk()
		if err != nil {
			parsed, err = p.fromNetwork()
			if err != nil {
				return FontHandle{}, err
			}
		}
		f = p.cache.put(p.url, parsed)
	}
	return newHandle(f, size, p.url), nil
}

// fromDisk пробует копию, сохранённую прошлой загрузкой: после рестарта
// процесса резолв не ходит в сеть повторно
func (p *remoteProvider) fromDisk() (*truetype.Font, error) {
	if p.saveTo == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(p.saveTo)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

func (p *remoteProvider) fromNetwork() (*truetype.Font, error) {
	data, err := p.download()
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse downloaded font: %w", err)
	}

	// Персистим скачанный шрифт, ошибка записи не прерывает резолв
	if p.saveTo != "" {
		if err := os.MkdirAll(filepath.Dir(p.saveTo), 0755); err == nil {
			_ = os.WriteFile(p.saveTo, data, 0644)
		}
	}

	return parsed, nil
}

func (p *remoteProvider) download() ([]byte, error) {
	resp, err := p.client.Get(p.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("font download: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func newHandle(f *truetype.Font, size int, source string) FontHandle {
	face := truetype.NewFace(f, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return FontHandle{Face: face, Size: size, Source: source}
}

func builtinHandle() FontHandle {
	return FontHandle{
		Face:   basicfont.Face7x13,
		Size:   basicfont.Face7x13.Height,
		Source: BuiltinSource,
	}
}

// Resolver walks the provider chain in order and returns the first handle
// that loads. Resolve never fails: individual source failures (missing
// file, corrupt font, network error) are swallowed, and full exhaustion
// degrades to the built-in bitmap font with a warning.
type Resolver struct {
	providers []fontProvider
}

func NewResolver(src FontSources, cache *FontCache) *Resolver {
	if cache == nil {
		cache = NewFontCache()
	}

	providers := make([]fontProvider, 0, len(src.Paths)+1)
	for _, path := range src.Paths {
		providers = append(providers, &fileProvider{path: path, cache: cache})
	}
	if src.URL != "" {
		providers = append(providers, &remoteProvider{
			url:    src.URL,
			saveTo: src.DownloadTo,
			client: &http.Client{Timeout: 10 * time.Second},
			cache:  cache,
		})
	}
	return &Resolver{providers: providers}
}

func (r *Resolver) Resolve(size int) FontHandle {
	for _, p := range r.providers {
		h, err := p.tryResolve(size)
		if err == nil {
			return h
		}
	}

	logrus.Warn("no usable font source, falling back to builtin bitmap font")
	return builtinHandle()
}
