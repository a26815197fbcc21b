package layout

import "image"

// Item is one image to place. ID is usually the source filename. Image may be
// nil when only the geometry is of interest (planning, tests).
type Item struct {
	ID     string
	Width  int
	Height int
	Image  image.Image
}

// NewItem builds an item sized to img's bounds.
func NewItem(id string, img image.Image) Item {
	b := img.Bounds()
	return Item{ID: id, Width: b.Dx(), Height: b.Dy(), Image: img}
}

// Row is a sealed shelf of items laid out left to right.
type Row struct {
	Items  []Item
	Width  int // sum of item widths plus spacing between them
	Height int // tallest item
}

// Page is a sealed stack of rows laid out top to bottom.
type Page struct {
	Rows   []Row
	Height int // sum of row heights plus spacing between them
}

// Items returns the page's items in placement order.
func (p Page) Items() []Item {
	var out []Item
	for _, r := range p.Rows {
		out = append(out, r.Items...)
	}
	return out
}

// Result is the outcome of [Pack].
type Result struct {
	Pages    []Page
	Rejected []Item // items wider than the content width, in input order
}

// Items returns every placed item in emitted order.
func (r Result) Items() []Item {
	var out []Item
	for _, p := range r.Pages {
		out = append(out, p.Items()...)
	}
	return out
}

// Placement is where one item lands on both sides of a sheet.
type Placement struct {
	Item  Item
	X     int // front left edge
	BackX int // back left edge, mirrored about the page width
	Y     int // top edge, identical on both sides
}
