package source

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/duplexsheet/duplexsheet/pkg/cache"
	"github.com/duplexsheet/duplexsheet/pkg/errors"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.New(w, h, color.NRGBA{R: 200, A: 128})); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func size(img image.Image) [2]int {
	return [2]int{img.Bounds().Dx(), img.Bounds().Dy()}
}

func TestLoadPNG(t *testing.T) {
	path := writeFile(t, t.TempDir(), "card.png", encodePNG(t, 30, 20))

	img, err := NewLoader(1, nil, nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if size(img) != [2]int{30, 20} {
		t.Errorf("size = %v, want [30 20]", size(img))
	}
	if a := img.NRGBAAt(0, 0).A; a != 128 {
		t.Errorf("alpha = %d, want 128 (alpha must survive loading)", a)
	}
}

func TestLoadJPEGGetsAlpha(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, imaging.New(16, 8, color.NRGBA{G: 255, A: 255}), nil); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "photo.JPG", buf.Bytes())

	img, err := NewLoader(1, nil, nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if size(img) != [2]int{16, 8} {
		t.Errorf("size = %v, want [16 8]", size(img))
	}
	if a := img.NRGBAAt(3, 3).A; a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
}

func TestLoadStudio3(t *testing.T) {
	var data bytes.Buffer
	data.WriteString("header")
	data.Write(encodePNG(t, 8, 8))
	data.WriteString("gap")
	data.Write(encodePNG(t, 64, 48))

	path := writeFile(t, t.TempDir(), "design.studio3", data.Bytes())

	img, err := NewLoader(1, nil, nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if size(img) != [2]int{64, 48} {
		t.Errorf("size = %v, want the larger embedded image [64 48]", size(img))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	noPNG := writeFile(t, dir, "empty.studio3", []byte("no images in here"))
	corrupt := writeFile(t, dir, "broken.png", []byte("\x89PNG\r\n\x1a\nnot really"))
	text := writeFile(t, dir, "notes.txt", []byte("hello"))

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"no embedded image", noPNG, errors.ErrCodeNoEmbeddedImage},
		{"corrupt png", corrupt, errors.ErrCodeDecode},
		{"unsupported", text, errors.ErrCodeUnsupported},
		{"missing", filepath.Join(dir, "missing.png"), errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewLoader(1, nil, nil).Load(context.Background(), tt.path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if img != nil {
				t.Error("Load() should not return an image on failure")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
			if !errors.IsRecoverable(err) {
				t.Error("load failures should be recoverable")
			}
		})
	}
}

func TestScale(t *testing.T) {
	src := imaging.New(100, 50, color.NRGBA{A: 255})

	tests := []struct {
		factor float64
		want   [2]int
	}{
		{1, [2]int{100, 50}},
		{1.35, [2]int{135, 68}}, // 67.5 rounds to 68
		{0.5, [2]int{50, 25}},
		{0.001, [2]int{1, 1}},
	}

	for _, tt := range tests {
		if got := size(Scale(src, tt.factor)); got != tt.want {
			t.Errorf("Scale(%v) = %v, want %v", tt.factor, got, tt.want)
		}
	}
}

func TestLoadUsesCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "card.png", encodePNG(t, 20, 10))

	c, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	l := NewLoader(2, c, nil)

	first, err := l.Load(ctx, path)
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if size(first) != [2]int{40, 20} {
		t.Fatalf("size = %v, want [40 20]", size(first))
	}

	key := cache.NewDefaultKeyer().ImageKey(cache.Hash(encodePNG(t, 20, 10)), cache.ImageKeyOpts{Scale: 2, Format: ".png"})
	if _, hit, _ := c.Get(ctx, key); !hit {
		t.Fatal("decoded image should be cached")
	}

	second, err := l.Load(ctx, path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if size(second) != size(first) {
		t.Errorf("cached size = %v, want %v", size(second), size(first))
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.png", true},
		{"a.PNG", true},
		{"a.jpeg", true},
		{"a.jpg", true},
		{"a.studio3", true},
		{"a.webp", true},
		{"a.txt", false},
		{"png", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.name); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
