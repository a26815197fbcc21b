// Package pipeline provides the complete duplex sheet pipeline.
//
// This package implements the load → pack → render → write pipeline used by
// every CLI command. By centralizing this logic, the render, plan and preview
// commands see exactly the same packing for the same inputs.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Enumerate the input directory and decode every recognized file
//  2. Pack: Group the images into rows and rows into pages
//  3. Render: Composite each page onto a front and a mirrored back canvas
//  4. Write: Persist both sides as DPI-tagged PNGs, plus an optional print
//     PDF and run manifest
//
// Files that cannot be decoded and images wider than the printable area are
// reported and skipped; they never abort a run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.InputDir = "artwork"
//	result, err := runner.Execute(ctx, opts)
//	if errors.Is(err, errors.ErrCodeNoInput) {
//	    // nothing to print
//	}
//	fmt.Println(result.PrintOrder())
//
// Run individual stages:
//
//	items, skipped, err := runner.Load(ctx, opts)
//	packed := runner.Plan(ctx, items, opts)
package pipeline

import (
	"time"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/layout"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/sink"
	"github.com/duplexsheet/duplexsheet/pkg/units"
)

// =============================================================================
// Default Values - Single Source of Truth for every command
// =============================================================================

const (
	// DefaultPageWidthMM and DefaultPageHeightMM describe an A4 sheet.
	DefaultPageWidthMM  = 210.0
	DefaultPageHeightMM = 297.0

	// DefaultDPI is the print resolution.
	DefaultDPI = 300

	// DefaultMarginMM is the uniform border kept free on every side.
	DefaultMarginMM = 15.0

	// DefaultSpacingMM is the gap between neighboring images and rows.
	DefaultSpacingMM = 15.0

	// DefaultScale leaves images at their native pixel size.
	DefaultScale = 1.0

	// DefaultInputDir and DefaultOutputDir are relative to the working directory.
	DefaultInputDir  = "input"
	DefaultOutputDir = "output"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. The struct tags let
// the CLI decode it straight from TOML or YAML config files.
type Options struct {
	PageWidthMM  float64 `json:"page_width_mm" toml:"page_width_mm" yaml:"page_width_mm"`
	PageHeightMM float64 `json:"page_height_mm" toml:"page_height_mm" yaml:"page_height_mm"`
	DPI          int     `json:"dpi" toml:"dpi" yaml:"dpi"`
	MarginMM     float64 `json:"margin_mm" toml:"margin_mm" yaml:"margin_mm"`
	SpacingMM    float64 `json:"spacing_mm" toml:"spacing_mm" yaml:"spacing_mm"`
	Scale        float64 `json:"scale" toml:"scale" yaml:"scale"`

	InputDir  string `json:"input_dir" toml:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" toml:"output_dir" yaml:"output_dir"`

	PDF      bool `json:"pdf,omitempty" toml:"pdf" yaml:"pdf"`                // also write a print-ordered PDF
	Manifest bool `json:"manifest,omitempty" toml:"manifest" yaml:"manifest"` // also write a JSON manifest
}

// DefaultOptions returns options for A4 at 300 DPI with 15 mm margin and spacing.
func DefaultOptions() Options {
	return Options{
		PageWidthMM:  DefaultPageWidthMM,
		PageHeightMM: DefaultPageHeightMM,
		DPI:          DefaultDPI,
		MarginMM:     DefaultMarginMM,
		SpacingMM:    DefaultSpacingMM,
		Scale:        DefaultScale,
		InputDir:     DefaultInputDir,
		OutputDir:    DefaultOutputDir,
	}
}

// SetDefaults fills fields whose zero value is never meaningful. Margin and
// spacing are left alone because zero is a valid choice for both.
func (o *Options) SetDefaults() {
	if o.PageWidthMM == 0 {
		o.PageWidthMM = DefaultPageWidthMM
	}
	if o.PageHeightMM == 0 {
		o.PageHeightMM = DefaultPageHeightMM
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.InputDir == "" {
		o.InputDir = DefaultInputDir
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
}

// Validate checks the physical configuration and the derived pixel geometry.
func (o *Options) Validate() error {
	switch {
	case o.PageWidthMM <= 0 || o.PageHeightMM <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "page size must be positive, got %gx%g mm", o.PageWidthMM, o.PageHeightMM)
	case o.DPI <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must be positive, got %d", o.DPI)
	case o.MarginMM < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "margin must not be negative, got %g mm", o.MarginMM)
	case o.SpacingMM < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "spacing must not be negative, got %g mm", o.SpacingMM)
	case o.Scale <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Scale)
	case o.InputDir == "" || o.OutputDir == "":
		return errors.New(errors.ErrCodeInvalidConfig, "input and output directories are required")
	}
	return o.Geometry().Validate()
}

// Resolution returns the configured DPI.
func (o *Options) Resolution() units.DPI { return units.DPI(o.DPI) }

// Geometry derives the pixel geometry of a page.
func (o *Options) Geometry() layout.Geometry {
	return layout.NewGeometry(o.Resolution(), o.PageWidthMM, o.PageHeightMM, o.MarginMM, o.SpacingMM)
}

// =============================================================================
// Result
// =============================================================================

// Skipped is an input file that could not be used.
type Skipped struct {
	File string
	Err  error
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and the manifest.
	RunID string

	// Geometry is the pixel geometry every page was packed into.
	Geometry layout.Geometry

	// Layout holds the packed pages and the rejected oversize items.
	Layout layout.Result

	// Skipped lists files that failed to load, in enumeration order.
	Skipped []Skipped

	// Files lists the written sheet paths, front then back for each page.
	Files []string

	// PDF and Manifest are the extra output paths, empty when not written.
	PDF      string
	Manifest string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Loaded     int
	Pages      int
	LoadTime   time.Duration
	PackTime   time.Duration
	RenderTime time.Duration
}

// PrintOrder returns the sheet file names in the order they must be printed:
// every front ascending, then every back descending.
func (r *Result) PrintOrder() []string {
	return sink.PrintOrder(len(r.Layout.Pages))
}

// SkippedFiles converts skipped inputs to manifest entries.
func SkippedFiles(s []Skipped) []sink.SkippedFile {
	out := make([]sink.SkippedFile, 0, len(s))
	for _, sk := range s {
		out = append(out, sink.SkippedFile{File: sk.File, Reason: string(errors.GetCode(sk.Err))})
	}
	return out
}
