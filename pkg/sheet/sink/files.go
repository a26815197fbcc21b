package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/compose"
	"github.com/duplexsheet/duplexsheet/pkg/units"
)

// Output file names.
const (
	sheetPrefix  = "layout_sheet_"
	ManifestName = "layout_manifest.json"
	PDFName      = "layout_print.pdf"
)

// Side identifies one face of a sheet.
type Side string

const (
	Front Side = "front"
	Back  Side = "back"
)

// SheetName returns the file name of page n (1-based) on the given side.
func SheetName(n int, side Side) string {
	return fmt.Sprintf("%s%02d_%s.png", sheetPrefix, n, side)
}

// PrintOrder lists the files of a run with the given number of pages in the
// order they must be printed: all fronts ascending, then all backs descending.
func PrintOrder(pages int) []string {
	out := make([]string, 0, 2*pages)
	for n := 1; n <= pages; n++ {
		out = append(out, SheetName(n, Front))
	}
	for n := pages; n >= 1; n-- {
		out = append(out, SheetName(n, Back))
	}
	return out
}

// isOutput reports whether name belongs to a previous run's output.
func isOutput(name string) bool {
	if name == ManifestName || name == PDFName {
		return true
	}
	return strings.HasPrefix(name, sheetPrefix) && strings.HasSuffix(strings.ToLower(name), ".png")
}

// Clean deletes previous output files from dir and returns their names.
// Other files are left alone. A missing directory is not an error.
func Clean(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFilesystem, err, "read output directory")
	}
	var removed []string
	for _, e := range entries {
		if e.IsDir() || !isOutput(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, errors.Wrap(errors.ErrCodeFilesystem, err, "remove %s", e.Name())
		}
		removed = append(removed, e.Name())
	}
	return removed, nil
}

// WriteSheet writes both sides of page n into dir and returns the two paths,
// front first.
func WriteSheet(dir string, n int, s compose.Sheet, dpi units.DPI) ([]string, error) {
	front := filepath.Join(dir, SheetName(n, Front))
	if err := writePNGFile(front, s.Front, dpi); err != nil {
		return nil, err
	}
	back := filepath.Join(dir, SheetName(n, Back))
	if err := writePNGFile(back, s.Back, dpi); err != nil {
		return nil, err
	}
	return []string{front, back}, nil
}
