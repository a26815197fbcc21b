package layout

import (
	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/units"
)

// Geometry is the pixel geometry of a page. It is derived once from the
// physical configuration and stays constant for a run.
type Geometry struct {
	PageWidth  int `json:"page_width" yaml:"page_width"`
	PageHeight int `json:"page_height" yaml:"page_height"`
	Margin     int `json:"margin" yaml:"margin"`
	Spacing    int `json:"spacing" yaml:"spacing"`
}

// NewGeometry converts physical page dimensions in millimeters to pixels.
func NewGeometry(dpi units.DPI, widthMM, heightMM, marginMM, spacingMM float64) Geometry {
	return Geometry{
		PageWidth:  dpi.MMToPx(widthMM),
		PageHeight: dpi.MMToPx(heightMM),
		Margin:     dpi.MMToPx(marginMM),
		Spacing:    dpi.MMToPx(spacingMM),
	}
}

// ContentWidth is the widest row a page can hold.
func (g Geometry) ContentWidth() int { return g.PageWidth - 2*g.Margin }

// ContentHeight is the tallest stack of rows a page can hold.
func (g Geometry) ContentHeight() int { return g.PageHeight - 2*g.Margin }

// Validate reports whether the geometry leaves a usable content area.
func (g Geometry) Validate() error {
	switch {
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "page size must be positive, got %dx%d px", g.PageWidth, g.PageHeight)
	case g.Margin < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "margin must not be negative, got %d px", g.Margin)
	case g.Spacing < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "spacing must not be negative, got %d px", g.Spacing)
	case g.ContentWidth() <= 0 || g.ContentHeight() <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "margins leave no content area (%dx%d px)", g.ContentWidth(), g.ContentHeight())
	}
	return nil
}
