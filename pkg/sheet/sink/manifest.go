package sink

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/layout"
	"github.com/duplexsheet/duplexsheet/pkg/units"
)

// Manifest describes one packing run.
type Manifest struct {
	RunID      string          `json:"run_id" yaml:"run_id"`
	Generated  time.Time       `json:"generated" yaml:"generated"`
	DPI        int             `json:"dpi" yaml:"dpi"`
	Geometry   layout.Geometry `json:"geometry" yaml:"geometry"`
	Pages      []ManifestPage  `json:"pages" yaml:"pages"`
	Rejected   []SkippedFile   `json:"rejected,omitempty" yaml:"rejected,omitempty"`
	Skipped    []SkippedFile   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	PrintOrder []string        `json:"print_order,omitempty" yaml:"print_order,omitempty"`
}

// ManifestPage is one page of a [Manifest].
type ManifestPage struct {
	Number int                 `json:"number" yaml:"number"`
	Front  string              `json:"front" yaml:"front"`
	Back   string              `json:"back" yaml:"back"`
	Height int                 `json:"height" yaml:"height"`
	Rows   []ManifestRow       `json:"rows" yaml:"rows"`
	Items  []ManifestPlacement `json:"items" yaml:"items"`
}

// ManifestRow summarizes a row by its size and members.
type ManifestRow struct {
	Width  int      `json:"width" yaml:"width"`
	Height int      `json:"height" yaml:"height"`
	Items  []string `json:"items" yaml:"items"`
}

// ManifestPlacement is where one item landed.
type ManifestPlacement struct {
	ID     string `json:"id" yaml:"id"`
	X      int    `json:"x" yaml:"x"`
	BackX  int    `json:"back_x" yaml:"back_x"`
	Y      int    `json:"y" yaml:"y"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// SkippedFile is an input that could not be loaded.
type SkippedFile struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"reason" yaml:"reason"`
}

// ManifestOption configures [BuildManifest].
type ManifestOption func(*Manifest)

// WithRunID sets the run identifier instead of a fresh random UUID.
func WithRunID(id string) ManifestOption { return func(m *Manifest) { m.RunID = id } }

// WithGenerated sets the timestamp instead of the current time.
func WithGenerated(t time.Time) ManifestOption { return func(m *Manifest) { m.Generated = t } }

// WithDPI records the print resolution.
func WithDPI(dpi units.DPI) ManifestOption { return func(m *Manifest) { m.DPI = int(dpi) } }

// WithSkipped records inputs that failed to load.
func WithSkipped(s []SkippedFile) ManifestOption { return func(m *Manifest) { m.Skipped = s } }

// WithPrintOrder includes the print order of the output files.
func WithPrintOrder() ManifestOption {
	return func(m *Manifest) { m.PrintOrder = PrintOrder(len(m.Pages)) }
}

// BuildManifest describes res packed with g.
func BuildManifest(res layout.Result, g layout.Geometry, opts ...ManifestOption) Manifest {
	m := Manifest{
		RunID:     uuid.NewString(),
		Generated: time.Now().UTC(),
		Geometry:  g,
		Pages:     make([]ManifestPage, 0, len(res.Pages)),
	}
	for i, p := range res.Pages {
		mp := ManifestPage{
			Number: i + 1,
			Front:  SheetName(i+1, Front),
			Back:   SheetName(i+1, Back),
			Height: p.Height,
		}
		for _, r := range p.Rows {
			mr := ManifestRow{Width: r.Width, Height: r.Height}
			for _, it := range r.Items {
				mr.Items = append(mr.Items, it.ID)
			}
			mp.Rows = append(mp.Rows, mr)
		}
		for _, pl := range layout.Place(p, g) {
			mp.Items = append(mp.Items, ManifestPlacement{
				ID:     pl.Item.ID,
				X:      pl.X,
				BackX:  pl.BackX,
				Y:      pl.Y,
				Width:  pl.Item.Width,
				Height: pl.Item.Height,
			})
		}
		m.Pages = append(m.Pages, mp)
	}
	for _, it := range res.Rejected {
		m.Rejected = append(m.Rejected, SkippedFile{File: it.ID, Reason: string(errors.ErrCodeOversizeItem)})
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// RenderJSON returns m as indented JSON.
func (m Manifest) RenderJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// WriteManifest writes m as JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := m.RenderJSON()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	return nil
}
