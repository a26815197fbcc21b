// Package layout packs images onto pages and computes where each one lands.
//
// # Packing
//
// [Pack] is a greedy shelf packer. Items are taken strictly in input order and
// appended to the current row while the row still fits the page's content
// width; a row that cannot take the next item is sealed and stacked onto the
// current page, which is itself sealed once the next row would overflow the
// content height. Items are never rotated or reordered, so the same input
// always produces the same pages.
//
//	res := layout.Pack(items, geom)
//	for _, it := range res.Rejected {
//	    log.Warn("too wide", "item", it.ID)
//	}
//
// # Placement
//
// [Place] turns a packed page into absolute pixel coordinates. The content
// block is centered vertically and every row is centered horizontally on its
// own. Each placement also carries the mirrored x-coordinate for the back of
// the sheet: flipping the printed front left-to-right about the page's vertical
// centerline lands every back image exactly on its front counterpart.
//
//	for _, pl := range layout.Place(page, geom) {
//	    // pl.X, pl.Y on the front; pl.BackX, pl.Y on the back
//	}
package layout
