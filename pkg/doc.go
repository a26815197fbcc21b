// Package pkg provides the core libraries for duplexsheet.
//
// # Overview
//
// duplexsheet prepares artwork for manual duplex printing. It packs images
// into rows and rows into pages, centers each row and each page's content,
// and renders every page twice: a front sheet and a back sheet whose images
// are mirrored left to right, so that after the paper is turned over each
// back image lands behind its front image. The pkg directory is organized
// into three areas:
//
//  1. [sheet] - Domain logic (packing, compositing, writing sheets)
//  2. [source] - Input decoding (raster files and .studio3 documents)
//  3. [pipeline] - Orchestration (load → pack → render → write)
//
// # Architecture
//
// The typical data flow through duplexsheet:
//
//	Input directory
//	       ↓
//	  [source] package (list, decode, scale)
//	       ↓
//	  [sheet/layout] package (rows, pages, placements)
//	       ↓
//	  [sheet/compose] package (front and mirrored back canvases)
//	       ↓
//	  [sheet/sink] package (DPI-tagged PNGs, print PDF, manifest)
//
// # Quick Start
//
//	import (
//	    "github.com/duplexsheet/duplexsheet/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	for _, name := range res.PrintOrder() {
//	    fmt.Println(name)
//	}
//
// # Main Packages
//
// ## Domain Logic
//
// [sheet/layout] - The shelf packer. Items are taken in input order; a row
// is sealed when the next item would overflow the printable width, a page
// when the next row would overflow the printable height. [sheet/layout.Place]
// computes front and mirrored back coordinates.
//
// [sheet/compose] - Alpha compositing of a packed page onto transparent front
// and back canvases.
//
// [sheet/sink] - Output files: PNG sheets with a pHYs resolution chunk, the
// print-ordered PDF and the JSON run manifest.
//
// [units] - Millimeter to pixel conversion at a print resolution.
//
// ## Input
//
// [source] - Directory listing, decoding of PNG, JPEG, GIF, BMP, TIFF and
// WebP, extraction of embedded PNGs from .studio3 files, and uniform scaling.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline used by every CLI command.
//
// [cache] - Content-addressed store for decoded images. FileCache for the
// CLI, NullCache to disable caching.
//
// [observability] - Hooks for metrics and tracing of pipeline stages and
// cache operations.
//
// [errors] - Structured error codes shared by all packages.
//
// [buildinfo] - Version information injected at build time.
//
// [sheet]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/sheet
// [sheet/layout]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/sheet/layout
// [sheet/layout.Place]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/sheet/layout#Place
// [sheet/compose]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/sheet/compose
// [sheet/sink]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/sheet/sink
// [units]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/units
// [source]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/source
// [pipeline]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/cache
// [observability]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/observability
// [errors]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/duplexsheet/duplexsheet/pkg/buildinfo
package pkg
