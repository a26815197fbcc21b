package layout

// Place computes front and back coordinates for every item on p.
//
// The content block starts at floor((PageHeight-p.Height)/2); each row starts
// at floor((PageWidth-row.Width)/2). The back x-coordinate mirrors the front
// one about the full page width, so BackX+X+Width == PageWidth for every item.
func Place(p Page, g Geometry) []Placement {
	out := make([]Placement, 0, len(p.Items()))
	y := floorDiv(g.PageHeight-p.Height, 2)
	for _, r := range p.Rows {
		x := floorDiv(g.PageWidth-r.Width, 2)
		for _, it := range r.Items {
			out = append(out, Placement{
				Item:  it,
				X:     x,
				BackX: g.PageWidth - x - it.Width,
				Y:     y,
			})
			x += it.Width + g.Spacing
		}
		y += r.Height + g.Spacing
	}
	return out
}

// floorDiv divides rounding toward negative infinity. An oversized row makes
// the numerator negative, where Go's truncating division would round up.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
