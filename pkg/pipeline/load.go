package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/observability"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/layout"
	"github.com/duplexsheet/duplexsheet/pkg/source"
)

// Load decodes every recognized file in opts.InputDir, in lexicographic
// order. Files that fail to load are logged and returned as skipped; only a
// missing input directory or cancellation stops the stage.
func (r *Runner) Load(ctx context.Context, opts Options) ([]layout.Item, []Skipped, error) {
	paths, err := source.List(opts.InputDir)
	if os.IsNotExist(err) {
		return nil, nil, errors.New(errors.ErrCodeNoInput, "input directory %s does not exist", opts.InputDir)
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFilesystem, err, "list %s", opts.InputDir)
	}
	r.Logger.Debug("found input files", "dir", opts.InputDir, "count", len(paths))

	loader := source.NewLoader(opts.Scale, r.Cache, r.Keyer)
	var (
		items   []layout.Item
		skipped []Skipped
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		name := filepath.Base(path)

		start := time.Now()
		observability.Pipeline().OnLoadStart(ctx, path)
		img, err := loader.Load(ctx, path)
		observability.Pipeline().OnLoadComplete(ctx, path, time.Since(start), err)

		if err != nil {
			if !errors.IsRecoverable(err) {
				return nil, nil, err
			}
			r.Logger.Warn("skipping file", "file", name, "reason", errors.UserMessage(err))
			skipped = append(skipped, Skipped{File: name, Err: err})
			continue
		}
		item := layout.NewItem(name, img)
		r.Logger.Info("loaded", "file", name, "size", fmt.Sprintf("%dx%d", item.Width, item.Height))
		items = append(items, item)
	}
	return items, skipped, nil
}
