// Package compose renders packed pages into front and back canvases.
//
// The front canvas receives every image at its placed position. The back
// canvas receives the left-right mirror of every image at the mirrored
// position, so a sheet flipped about its vertical centerline and fed back
// through a single-sided printer puts each back image behind its front.
package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/duplexsheet/duplexsheet/pkg/sheet/layout"
)

// Sheet holds both sides of one printed page.
type Sheet struct {
	Front *image.NRGBA
	Back  *image.NRGBA
}

// Render draws p onto two transparent canvases of the page size.
//
// Images are composited with their own alpha as mask, so transparent artwork
// keeps its shape. Items without pixel content only reserve space. Render
// never fails for a page produced by [layout.Pack].
func Render(p layout.Page, g layout.Geometry) Sheet {
	s := Sheet{
		Front: imaging.New(g.PageWidth, g.PageHeight, color.NRGBA{}),
		Back:  imaging.New(g.PageWidth, g.PageHeight, color.NRGBA{}),
	}
	for _, pl := range layout.Place(p, g) {
		img := pl.Item.Image
		if img == nil {
			continue
		}
		paste(s.Front, img, pl.X, pl.Y)
		paste(s.Back, imaging.FlipH(img), pl.BackX, pl.Y)
	}
	return s
}

// paste composites src over dst with its top-left corner at (x, y).
func paste(dst *image.NRGBA, src image.Image, x, y int) {
	b := src.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(dst, r, src, b.Min, draw.Over)
}
