package layout

// Pack distributes items over pages in a single greedy pass.
//
// Items wider than the content width are returned in Result.Rejected and take
// no space. A row is sealed as soon as the next item would push it past the
// content width; a page is sealed as soon as the next sealed row would push it
// past the content height. A page with no rows accepts any row, so a single row
// taller than the content height still gets a page of its own.
func Pack(items []Item, g Geometry) Result {
	var (
		res  Result
		page Page
		row  Row
	)
	maxW, maxH := g.ContentWidth(), g.ContentHeight()

	placeRow := func(r Row) {
		if len(page.Rows) > 0 && page.Height+g.Spacing+r.Height > maxH {
			res.Pages = append(res.Pages, page)
			page = Page{}
		}
		if len(page.Rows) > 0 {
			page.Height += g.Spacing
		}
		page.Rows = append(page.Rows, r)
		page.Height += r.Height
	}

	for _, it := range items {
		if it.Width > maxW {
			res.Rejected = append(res.Rejected, it)
			continue
		}
		if len(row.Items) > 0 {
			if row.Width+g.Spacing+it.Width <= maxW {
				row.Items = append(row.Items, it)
				row.Width += g.Spacing + it.Width
				row.Height = max(row.Height, it.Height)
				continue
			}
			placeRow(row)
		}
		row = Row{Items: []Item{it}, Width: it.Width, Height: it.Height}
	}

	if len(row.Items) > 0 {
		placeRow(row)
	}
	if len(page.Rows) > 0 {
		res.Pages = append(res.Pages, page)
	}
	return res
}
