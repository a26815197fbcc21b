package pipeline

import (
	"context"
	"time"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/observability"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/layout"
)

// Plan packs items into pages for the configured geometry. Items wider than
// the printable area are logged and left out of the pages; they are listed
// in the result's Rejected field.
func (r *Runner) Plan(ctx context.Context, items []layout.Item, opts Options) layout.Result {
	g := opts.Geometry()

	start := time.Now()
	res := layout.Pack(items, g)
	observability.Pipeline().OnPackComplete(ctx, len(items), len(res.Pages), len(res.Rejected), time.Since(start))

	for _, it := range res.Rejected {
		r.Logger.Warn("rejected", "file", it.ID, "code", errors.ErrCodeOversizeItem, "reason", errors.UserMessage(Rejection(it, g)))
	}
	for i, p := range res.Pages {
		if p.Height > g.ContentHeight() {
			r.Logger.Warn("row taller than printable area", "page", i+1, "height", p.Height, "max", g.ContentHeight())
		}
	}
	return res
}

// Rejection returns the OVERSIZE_ITEM error describing why the packer left
// it out of every page.
func Rejection(it layout.Item, g layout.Geometry) error {
	return errors.New(errors.ErrCodeOversizeItem, "%d px wide, printable width is %d px", it.Width, g.ContentWidth())
}
