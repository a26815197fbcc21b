// Package units converts physical lengths to pixel counts at a print resolution.
//
// Lengths in configuration are millimeters; everything downstream of the
// configuration works in whole pixels. Conversion truncates toward zero so a
// converted length never exceeds the physical one.
package units

import "math"

// MMPerInch is the number of millimeters in one inch.
const MMPerInch = 25.4

// DPI is a print resolution in dots per inch.
type DPI int

// MMToPx converts millimeters to whole pixels, truncating the fraction.
func (d DPI) MMToPx(mm float64) int {
	return int(mm * float64(d) / MMPerInch)
}

// PxToMM converts a pixel count back to millimeters.
func (d DPI) PxToMM(px int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(px) * MMPerInch / float64(d)
}

// DotsPerMM returns the resolution as dots per millimeter.
func (d DPI) DotsPerMM() float64 { return float64(d) / MMPerInch }

// PixelsPerMeter returns the resolution in the unit used by the PNG pHYs chunk.
func (d DPI) PixelsPerMeter() uint32 {
	return uint32(math.Round(float64(d) * 1000 / MMPerInch))
}
