package sink

import (
	"bytes"
	"image"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/sheet/compose"
	"github.com/duplexsheet/duplexsheet/pkg/units"
)

// RenderPDF builds one print-ready document from the rendered sheets: every
// front in page order followed by every back in reverse page order (see
// [PrintOrder]). Each PDF page has the physical size of the sheet at dpi.
func RenderPDF(sheets []compose.Sheet, dpi units.DPI) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeNoInput, "no sheets to write")
	}

	pages := pdfPages(sheets)

	var buf bytes.Buffer
	b := sheets[0].Front.Bounds()
	width, height := dpi.PxToMM(b.Dx()), dpi.PxToMM(b.Dy())
	writer := pdf.New(&buf, width, height, nil)
	for i, img := range pages {
		if i > 0 {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.DrawImage(0, 0, img, canvas.DPMM(dpi.DotsPerMM()))
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "finish pdf")
	}
	return buf.Bytes(), nil
}

// pdfPages lists the sheet images in [PrintOrder]: fronts 1..N, then backs N..1.
func pdfPages(sheets []compose.Sheet) []image.Image {
	pages := make([]image.Image, 0, 2*len(sheets))
	for _, s := range sheets {
		pages = append(pages, s.Front)
	}
	for i := len(sheets) - 1; i >= 0; i-- {
		pages = append(pages, sheets[i].Back)
	}
	return pages
}
