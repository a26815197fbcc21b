// Package source loads input artwork as decoded images ready for packing.
//
// Standard rasters (PNG, JPEG, GIF, BMP, TIFF, WebP) are decoded directly;
// JPEG orientation tags are honored. Silhouette Studio .studio3 documents are
// opened by scanning the raw bytes for embedded PNG streams and decoding the
// largest one. Every loaded image is optionally resampled by a uniform scale
// factor and normalized to NRGBA so it carries an alpha channel.
//
// Loading never panics on bad input: each failure is a coded error from
// [github.com/duplexsheet/duplexsheet/pkg/errors] that the caller logs before
// skipping the file.
package source

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/duplexsheet/duplexsheet/pkg/cache"
	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/observability"
)

// ExtStudio3 is the extension of Silhouette Studio documents.
const ExtStudio3 = ".studio3"

// extensions lists the recognized input extensions, lowercase.
var extensions = []string{".png", ".jpg", ".jpeg", ExtStudio3, ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Extensions returns the recognized input file extensions.
func Extensions() []string {
	return append([]string(nil), extensions...)
}

// Supported reports whether name has a recognized extension (case-insensitive).
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Loader decodes input files. The zero value loads at scale 1 without caching.
type Loader struct {
	Scale float64     // uniform resample factor; 0 is treated as 1
	Cache cache.Cache // optional store for decoded images
	Keyer cache.Keyer // optional; defaults to cache.DefaultKeyer
}

// NewLoader creates a loader. A nil cache disables caching.
func NewLoader(scale float64, c cache.Cache, k cache.Keyer) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return &Loader{Scale: scale, Cache: c, Keyer: k}
}

// Load reads, decodes and scales the file at path.
//
// Cache failures are not reported: a broken cache only costs decoding time.
func (l *Loader) Load(ctx context.Context, path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported file type %q", ext)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", filepath.Base(path))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "read %s", filepath.Base(path))
	}

	scale := l.scale()
	var key string
	if l.Cache != nil {
		keyer := l.Keyer
		if keyer == nil {
			keyer = cache.NewDefaultKeyer()
		}
		key = keyer.ImageKey(cache.Hash(data), cache.ImageKeyOpts{Scale: scale, Format: ext})
		if img, ok := l.cached(ctx, key); ok {
			return img, nil
		}
	}

	img, err := Decode(ext, data)
	if err != nil {
		return nil, err
	}
	img = Scale(img, scale)

	if l.Cache != nil {
		l.store(ctx, key, img)
	}
	return img, nil
}

func (l *Loader) scale() float64 {
	if l.Scale == 0 {
		return 1
	}
	return l.Scale
}

func (l *Loader) cached(ctx context.Context, key string) (*image.NRGBA, bool) {
	data, hit, err := l.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "image")
		return nil, false
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		_ = l.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "image")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "image")
	return imaging.Clone(img), true
}

func (l *Loader) store(ctx context.Context, key string, img *image.NRGBA) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return
	}
	if err := l.Cache.Set(ctx, key, buf.Bytes(), cache.DefaultTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "image", buf.Len())
	}
}

// Decode decodes data according to the lowercase file extension ext.
func Decode(ext string, data []byte) (*image.NRGBA, error) {
	if ext == ExtStudio3 {
		span, ok := ExtractPNG(data)
		if !ok {
			return nil, errors.New(errors.ErrCodeNoEmbeddedImage, "no embedded PNG found in %d bytes", len(data))
		}
		data = span
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s image", strings.TrimPrefix(ext, "."))
	}
	return imaging.Clone(img), nil
}

// Scale resamples img by factor with a Lanczos filter. Target dimensions are
// rounded to the nearest pixel and never drop below one. A factor of 1
// returns img unchanged.
func Scale(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*factor)))
	h := max(1, int(math.Round(float64(b.Dy())*factor)))
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
