package pipeline

import (
	"context"
	"time"

	"github.com/duplexsheet/duplexsheet/pkg/observability"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/compose"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/sink"
)

// Render composites and writes every page of result.Layout into
// opts.OutputDir, appending the written paths to result.Files. The rendered
// sheets are returned only when opts.PDF needs them; otherwise each page is
// released as soon as it is on disk.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) ([]compose.Sheet, error) {
	var sheets []compose.Sheet
	for i, page := range result.Layout.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := i + 1

		start := time.Now()
		sheet := compose.Render(page, result.Geometry)
		files, err := sink.WriteSheet(opts.OutputDir, n, sheet, opts.Resolution())
		observability.Pipeline().OnPageWritten(ctx, n, files, time.Since(start), err)
		if err != nil {
			return nil, err
		}

		result.Files = append(result.Files, files...)
		r.Logger.Debug("wrote page", "page", n, "rows", len(page.Rows), "items", len(page.Items()))
		if opts.PDF {
			sheets = append(sheets, sheet)
		}
	}
	return sheets, nil
}
