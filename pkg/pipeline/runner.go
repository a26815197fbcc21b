package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/duplexsheet/duplexsheet/pkg/cache"
	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/compose"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/sink"
)

// KeyPrefix scopes decoded-image cache keys to the current decoder generation.
const KeyPrefix = "v1:"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer scoped by [KeyPrefix] is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), KeyPrefix)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Prepare creates the input and output directories and removes the sheets,
// PDF and manifest of a previous run from the output directory.
func (r *Runner) Prepare(opts Options) error {
	for _, dir := range []string{opts.InputDir, opts.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeFilesystem, err, "create %s", dir)
		}
	}
	removed, err := sink.Clean(opts.OutputDir)
	if err != nil {
		return err
	}
	if len(removed) > 0 {
		r.Logger.Debug("removed previous output", "dir", opts.OutputDir, "files", len(removed))
	}
	return nil
}

// Execute runs the complete load → pack → render → write pipeline.
//
// It returns an ErrCodeNoInput error, without writing any sheet, when the
// input directory holds no recognized files, none of them decodes, or every
// decoded image is too wide for the page. The partial result is returned
// alongside so callers can still report skipped and rejected files.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := r.Prepare(opts); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:    uuid.NewString(),
		Geometry: opts.Geometry(),
	}
	logger := r.Logger.With("run", result.RunID[:8])
	logger.Debug("geometry",
		"page", []int{result.Geometry.PageWidth, result.Geometry.PageHeight},
		"margin", result.Geometry.Margin,
		"spacing", result.Geometry.Spacing)

	// Stage 1: Load
	loadStart := time.Now()
	items, skipped, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Skipped = skipped
	result.Stats.Loaded = len(items)
	result.Stats.LoadTime = time.Since(loadStart)
	if len(items) == 0 {
		return result, errors.New(errors.ErrCodeNoInput, "no usable images in %s", opts.InputDir)
	}
	logger.Info("loaded images", "count", len(items), "skipped", len(skipped), "duration", result.Stats.LoadTime)

	// Stage 2: Pack
	packStart := time.Now()
	result.Layout = r.Plan(ctx, items, opts)
	result.Stats.PackTime = time.Since(packStart)
	result.Stats.Pages = len(result.Layout.Pages)
	if len(result.Layout.Pages) == 0 {
		return result, errors.New(errors.ErrCodeNoInput, "every image is wider than the printable area")
	}
	logger.Info("packed pages", "pages", result.Stats.Pages, "rejected", len(result.Layout.Rejected), "duration", result.Stats.PackTime)

	// Stages 3 and 4: Render and write
	renderStart := time.Now()
	sheets, err := r.Render(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	if opts.PDF {
		path, err := r.writePDF(sheets, opts)
		if err != nil {
			return nil, err
		}
		result.PDF = path
	}
	result.Stats.RenderTime = time.Since(renderStart)

	if opts.Manifest {
		path := filepath.Join(opts.OutputDir, sink.ManifestName)
		m := sink.BuildManifest(result.Layout, result.Geometry,
			sink.WithRunID(result.RunID),
			sink.WithDPI(opts.Resolution()),
			sink.WithSkipped(SkippedFiles(result.Skipped)),
			sink.WithPrintOrder(),
		)
		if err := sink.WriteManifest(path, m); err != nil {
			return nil, err
		}
		result.Manifest = path
	}

	logger.Info("wrote sheets", "files", len(result.Files), "duration", result.Stats.RenderTime)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) writePDF(sheets []compose.Sheet, opts Options) (string, error) {
	data, err := sink.RenderPDF(sheets, opts.Resolution())
	if err != nil {
		return "", err
	}
	path := filepath.Join(opts.OutputDir, sink.PDFName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	r.Logger.Debug("wrote pdf", "path", path, "pages", 2*len(sheets))
	return path, nil
}
