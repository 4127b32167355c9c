// Package fonts resolves a font family name to a gg text face.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-text/typesetting/fontscan"
	"github.com/gogpu/gg/text"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"host-overlay/src/logutil"
)

// ErrFamilyNotFound is returned by Resolver.Source when no installed font
// matches the family.
var ErrFamilyNotFound = errors.New("fonts: family not installed")

// Loader turns a family and a size into a face.
type Loader func(family string, size float64) (text.Face, error)

// Resolver looks fonts up in the system font index. The index is built on
// first use and cached under CacheDir.
type Resolver struct {
	CacheDir string

	once    sync.Once
	scanErr error
	fm      *fontscan.FontMap
	mu      sync.Mutex
	sources map[string]*text.FontSource
}

// NewResolver returns a Resolver caching its index in cacheDir, or in the
// user cache directory when cacheDir is empty.
func NewResolver(cacheDir string) *Resolver {
	if cacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(dir, "host-overlay", "fonts")
		}
	}
	return &Resolver{CacheDir: cacheDir, sources: map[string]*text.FontSource{}}
}

type scanLogger struct{}

func (scanLogger) Printf(format string, args ...interface{}) {
	logutil.Logger().Debug(fmt.Sprintf(format, args...), "component", "fontscan")
}

func (r *Resolver) index() (*fontscan.FontMap, error) {
	r.once.Do(func() {
		r.fm = fontscan.NewFontMap(scanLogger{})
		r.scanErr = r.fm.UseSystemFonts(r.CacheDir)
	})
	return r.fm, r.scanErr
}

// Source returns the font source of an installed family. Sources are cached.
func (r *Resolver) Source(family string) (*text.FontSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if src, ok := r.sources[family]; ok {
		return src, nil
	}

	fm, err := r.index()
	if err != nil {
		return nil, errors.Wrap(err, "fonts: scanning system fonts")
	}
	for _, loc := range fm.FindSystemFonts(family) {
		// gg reads the first face of a file only
		if loc.Index != 0 {
			continue
		}
		src, err := text.NewFontSourceFromFile(loc.File)
		if err != nil {
			logutil.Logger().Debug("skipping unreadable font", "file", loc.File, "err", err)
			continue
		}
		r.sources[family] = src
		return src, nil
	}
	return nil, errors.Wrap(ErrFamilyNotFound, family)
}

// Load returns a face of family at size, falling back to Go Regular when
// the family is not installed.
func (r *Resolver) Load(family string, size float64) (text.Face, error) {
	src, err := r.Source(family)
	if err != nil {
		logutil.Logger().Warn("font family unavailable, using Go Regular", "family", family, "err", err)
		return Fallback(size)
	}
	return src.Face(size), nil
}

var (
	fallbackOnce sync.Once
	fallbackSrc  *text.FontSource
	fallbackErr  error
)

// Fallback returns the embedded Go Regular face at size.
func Fallback(size float64) (text.Face, error) {
	fallbackOnce.Do(func() {
		fallbackSrc, fallbackErr = text.NewFontSource(goregular.TTF)
	})
	if fallbackErr != nil {
		return nil, errors.Wrap(fallbackErr, "fonts: parsing Go Regular")
	}
	return fallbackSrc.Face(size), nil
}

// FallbackLoader ignores the family and always loads Go Regular.
func FallbackLoader(_ string, size float64) (text.Face, error) {
	return Fallback(size)
}
