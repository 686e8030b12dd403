// Package filter reverses the five PNG scanline filters (None, Sub, Up,
// Average, Paeth) defined by filter method 0, turning the DEFLATE
// engine's raw output (one filter-type byte followed by filtered bytes
// per row) into a flat grid of unfiltered, still byte-packed pixel rows.
package filter

import "errors"

// ErrUnknownFilterType is returned when a scanline's leading filter-type
// byte is outside 0..4.
var ErrUnknownFilterType = errors.New("filter: unknown scanline filter type")

// ErrTruncated is returned when filtered is shorter than height rows of
// (1 filter byte + linebytes) bytes. Bytes past the last row are ignored.
var ErrTruncated = errors.New("filter: truncated filtered scanline data")

// Reconstruct reverses PNG's per-scanline filtering. filtered holds
// height rows, each (1 + linebytes) bytes: a filter-type byte followed by
// linebytes of filtered sample data. bytewidth is ceil(bpp/8), used as
// the filter's "previous pixel" stride (distance "a"/"c" look back by).
// The returned slice holds height*linebytes unfiltered bytes with no
// filter-type bytes and no inter-row padding.
func Reconstruct(filtered []byte, width, height, linebytes, bytewidth int) ([]byte, error) {
	rowStride := 1 + linebytes
	if len(filtered) < height*rowStride {
		return nil, ErrTruncated
	}

	recon := make([]byte, height*linebytes)
	var prevRecon []byte

	for y := 0; y < height; y++ {
		rowStart := y * rowStride
		filterType := filtered[rowStart]
		filt := filtered[rowStart+1 : rowStart+1+linebytes]
		row := recon[y*linebytes : y*linebytes+linebytes]

		if err := reconstructRow(filterType, filt, row, prevRecon, bytewidth); err != nil {
			return nil, err
		}
		prevRecon = row
	}
	return recon, nil
}

// reconstructRow applies the inverse of one scanline filter. prev is the
// previous row's reconstructed bytes (nil for the first row).
func reconstructRow(filterType byte, filt, recon, prev []byte, bytewidth int) error {
	switch filterType {
	case 0: // None
		copy(recon, filt)
	case 1: // Sub
		for x := range filt {
			var a byte
			if x >= bytewidth {
				a = recon[x-bytewidth]
			}
			recon[x] = filt[x] + a
		}
	case 2: // Up
		for x := range filt {
			var b byte
			if prev != nil {
				b = prev[x]
			}
			recon[x] = filt[x] + b
		}
	case 3: // Average
		for x := range filt {
			var a, b int
			if x >= bytewidth {
				a = int(recon[x-bytewidth])
			}
			if prev != nil {
				b = int(prev[x])
			}
			recon[x] = filt[x] + byte((a+b)/2)
		}
	case 4: // Paeth
		for x := range filt {
			var a, b, c byte
			if x >= bytewidth {
				a = recon[x-bytewidth]
			}
			if prev != nil {
				b = prev[x]
			}
			if x >= bytewidth && prev != nil {
				c = prev[x-bytewidth]
			}
			recon[x] = filt[x] + paeth(a, b, c)
		}
	default:
		return ErrUnknownFilterType
	}
	return nil
}

// paeth is the PNG Paeth predictor: whichever of a, b, c is closest to
// p = a + b - c, tie-breaking a < b < c.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
