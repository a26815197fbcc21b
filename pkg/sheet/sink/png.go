package sink

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/units"
)

// ihdrEnd is the offset just past the PNG signature and IHDR chunk, which
// always come first and have fixed sizes.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// EncodePNG writes img as PNG with a pHYs chunk declaring dpi, so print
// dialogs size the sheet correctly at 100%.
func EncodePNG(w io.Writer, img image.Image, dpi units.DPI) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	data := buf.Bytes()
	if len(data) < ihdrEnd || string(data[12:16]) != "IHDR" {
		return errors.New(errors.ErrCodeInternal, "unexpected png header")
	}

	for _, part := range [][]byte{data[:ihdrEnd], physChunk(dpi), data[ihdrEnd:]} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}

// physChunk builds a pHYs chunk with equal x/y density in pixels per meter.
func physChunk(dpi units.DPI) []byte {
	ppm := dpi.PixelsPerMeter()
	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], ppm)
	binary.BigEndian.PutUint32(chunk[12:], ppm)
	chunk[16] = 1 // unit: meter
	binary.BigEndian.PutUint32(chunk[17:], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}

func writePNGFile(path string, img image.Image, dpi units.DPI) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create %s", path)
	}
	if err := EncodePNG(f, img, dpi); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "close %s", path)
	}
	return nil
}
