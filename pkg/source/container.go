package source

import "bytes"

// PNG stream markers: the 8-byte signature and the complete IEND chunk
// (length, type and CRC), which always closes a PNG stream.
var (
	pngStart = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	pngEnd   = []byte{'I', 'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82}
)

// ExtractLargest scans data for byte spans that open with start and close
// with the first following end (end included), and returns the largest one.
//
// Scanning resumes after each complete span; a start marker without a
// matching end is skipped one byte at a time. On equal sizes the earlier span
// wins. The returned slice aliases data.
func ExtractLargest(data, start, end []byte) ([]byte, bool) {
	if len(start) == 0 || len(end) == 0 {
		return nil, false
	}
	var best []byte
	for off := 0; off < len(data); {
		i := bytes.Index(data[off:], start)
		if i < 0 {
			break
		}
		s := off + i
		j := bytes.Index(data[s:], end)
		if j < 0 {
			off = s + 1
			continue
		}
		e := s + j + len(end)
		if e-s > len(best) {
			best = data[s:e]
		}
		off = e
	}
	return best, best != nil
}

// ExtractPNG returns the largest complete PNG stream embedded in data.
// Container formats such as .studio3 carry thumbnails next to the artwork;
// the biggest raster is the one meant for printing.
func ExtractPNG(data []byte) ([]byte, bool) {
	return ExtractLargest(data, pngStart, pngEnd)
}
