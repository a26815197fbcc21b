package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/duplexsheet/duplexsheet/pkg/sheet/layout"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	transparent = color.NRGBA{}
)

// twoTone returns a w x h image whose left half is red and right half blue.
func twoTone(w, h int) *image.NRGBA {
	img := imaging.New(w, h, blue)
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			img.SetNRGBA(x, y, red)
		}
	}
	return img
}

func TestRenderCanvasSize(t *testing.T) {
	g := layout.Geometry{PageWidth: 120, PageHeight: 80, Margin: 10, Spacing: 5}
	s := Render(layout.Page{}, g)

	for name, c := range map[string]*image.NRGBA{"front": s.Front, "back": s.Back} {
		if c.Bounds().Dx() != 120 || c.Bounds().Dy() != 80 {
			t.Errorf("%s size = %v, want 120x80", name, c.Bounds().Size())
		}
		if got := c.NRGBAAt(0, 0); got != transparent {
			t.Errorf("%s background = %v, want transparent", name, got)
		}
	}
}

func TestRenderMirrorsBack(t *testing.T) {
	g := layout.Geometry{PageWidth: 100, PageHeight: 60, Margin: 5, Spacing: 10}
	item := layout.NewItem("card", twoTone(20, 10))
	page := layout.Pack([]layout.Item{item}, g).Pages[0]
	pl := layout.Place(page, g)[0]

	s := Render(page, g)

	// Front: left column red, right column blue.
	if got := s.Front.NRGBAAt(pl.X, pl.Y); got != red {
		t.Errorf("front left pixel = %v, want red", got)
	}
	if got := s.Front.NRGBAAt(pl.X+19, pl.Y); got != blue {
		t.Errorf("front right pixel = %v, want blue", got)
	}

	// Back: mirrored position and mirrored content.
	if pl.BackX != 100-pl.X-20 {
		t.Fatalf("BackX = %d, want %d", pl.BackX, 100-pl.X-20)
	}
	if got := s.Back.NRGBAAt(pl.BackX, pl.Y); got != blue {
		t.Errorf("back left pixel = %v, want blue", got)
	}
	if got := s.Back.NRGBAAt(pl.BackX+19, pl.Y+9); got != red {
		t.Errorf("back right pixel = %v, want red", got)
	}

	// Flipping the back canvas must reproduce the front.
	flipped := imaging.FlipH(s.Back)
	for y := 0; y < g.PageHeight; y++ {
		for x := 0; x < g.PageWidth; x++ {
			if flipped.NRGBAAt(x, y) != s.Front.NRGBAAt(x, y) {
				t.Fatalf("flipped back differs from front at (%d,%d)", x, y)
			}
		}
	}
}

func TestRenderKeepsTransparency(t *testing.T) {
	g := layout.Geometry{PageWidth: 40, PageHeight: 40, Margin: 0, Spacing: 0}
	img := imaging.New(10, 10, transparent)
	img.SetNRGBA(5, 5, red)
	page := layout.Pack([]layout.Item{layout.NewItem("dot", img)}, g).Pages[0]
	pl := layout.Place(page, g)[0]

	s := Render(page, g)

	if got := s.Front.NRGBAAt(pl.X, pl.Y); got != transparent {
		t.Errorf("transparent pixel = %v, want transparent", got)
	}
	if got := s.Front.NRGBAAt(pl.X+5, pl.Y+5); got != red {
		t.Errorf("opaque pixel = %v, want red", got)
	}
}

func TestRenderSkipsItemsWithoutPixels(t *testing.T) {
	g := layout.Geometry{PageWidth: 40, PageHeight: 40, Margin: 0, Spacing: 0}
	page := layout.Pack([]layout.Item{{ID: "ghost", Width: 10, Height: 10}}, g).Pages[0]

	s := Render(page, g)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if s.Front.NRGBAAt(x, y) != transparent {
				t.Fatalf("pixel (%d,%d) painted for an item without an image", x, y)
			}
		}
	}
}

func TestRenderOffsetBounds(t *testing.T) {
	g := layout.Geometry{PageWidth: 50, PageHeight: 50, Margin: 0, Spacing: 0}
	// Source image whose bounds do not start at the origin.
	src := imaging.New(30, 30, transparent)
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			src.SetNRGBA(x, y, red)
		}
	}
	sub := src.SubImage(image.Rect(10, 10, 20, 20))
	page := layout.Pack([]layout.Item{layout.NewItem("sub", sub)}, g).Pages[0]
	pl := layout.Place(page, g)[0]

	s := Render(page, g)
	if got := s.Front.NRGBAAt(pl.X, pl.Y); got != red {
		t.Errorf("front pixel = %v, want red", got)
	}
	if got := s.Back.NRGBAAt(pl.BackX+9, pl.Y+9); got != red {
		t.Errorf("back pixel = %v, want red", got)
	}
}
