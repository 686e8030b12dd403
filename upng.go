package upng

import (
	"errors"
	"fmt"
	"os"

	"github.com/nanopng/upng/internal/chunk"
	"github.com/nanopng/upng/internal/filter"
	"github.com/nanopng/upng/internal/pack"
	"github.com/nanopng/upng/internal/pool"
	"github.com/nanopng/upng/internal/zlib"
)

// Decoder is the image handle described by spec §3: it owns the decoded
// pixel buffer (once decoded), the header metadata, and a sticky error.
// A Decoder is not safe for concurrent use by multiple goroutines;
// distinct Decoders may be used concurrently (spec §5).
type Decoder struct {
	state State

	source []byte // borrowed, or owned when NewFromFile read it
	owned  bool

	hdr     chunk.Header
	format  Format
	buffer  []byte

	err       ErrorCode
	errOrigin string
}

// NewFromBytes creates a Decoder over a borrowed byte slice; the
// Decoder never takes ownership of data and never mutates it.
func NewFromBytes(data []byte) *Decoder {
	return &Decoder{source: data}
}

// NewFromFile creates a Decoder by reading path into memory with
// os.ReadFile (the "byte-slice loader" external collaborator spec §1
// assumes). The Decoder owns this buffer. Unlike NewFromBytes, a failed
// read does not panic or return a Go error: it is recorded as the
// sticky ErrNotFound, matching how every other failure in this API is
// surfaced, so every Decoder method works uniformly off d.Error().
func NewFromFile(path string) *Decoder {
	data, err := os.ReadFile(path)
	if err != nil {
		d := &Decoder{}
		d.fail(ErrNotFound, "new_from_file: "+err.Error())
		return d
	}
	return &Decoder{source: data, owned: true}
}

// fail records a sticky error and transitions to StateError. Once set,
// no later call may clear or overwrite it (spec §7's "sticky error").
func (d *Decoder) fail(code ErrorCode, origin string) error {
	if d.state == StateError {
		return d.asError()
	}
	d.state = StateError
	d.err = code
	d.errOrigin = origin
	d.buffer = nil
	return d.asError()
}

// asError renders the sticky ErrorCode as a Go error, or nil if OK.
func (d *Decoder) asError() error {
	if d.err == ErrOK {
		return nil
	}
	return fmt.Errorf("upng: %s: %s", d.err, d.errOrigin)
}

// Header parses the PNG signature and IHDR chunk, validating the
// (color type, bit depth) combination, and transitions New -> Header.
// It is idempotent: calling it again in Header or Decoded state is a
// cheap no-op that returns the same result as the first call. In Error
// state it is a no-op that returns the stored error.
func (d *Decoder) Header() error {
	if d == nil {
		return fmt.Errorf("upng: %s: nil decoder", ErrBadParam)
	}
	if d.state == StateError {
		return d.asError()
	}
	if d.state != StateNew {
		return nil
	}

	hdr, err := chunk.ParseHeader(d.source)
	if err != nil {
		if errors.Is(err, chunk.ErrNoSignature) {
			return d.fail(ErrNotPng, "header: "+err.Error())
		}
		return d.fail(ErrMalformed, "header: "+err.Error())
	}
	if hdr.Width == 0 || hdr.Height == 0 {
		return d.fail(ErrMalformed, "header: zero width or height")
	}

	format := resolveFormat(hdr.ColorType, hdr.BitDepth)
	if format == BadFormat {
		return d.fail(ErrBadFormat, "header: illegal color type/depth combination")
	}

	d.hdr = hdr
	d.format = format
	d.state = StateHeader
	return nil
}

// Decode runs the full pipeline: chunk scan, zlib/DEFLATE, scanline
// reconstruction, and (for sub-byte depths with row padding) bit
// unpacking. It implicitly calls Header if not yet done, and is a no-op
// returning nil if already Decoded. In Error state it is a no-op that
// returns the stored error.
func (d *Decoder) Decode() error {
	if d == nil {
		return fmt.Errorf("upng: %s: nil decoder", ErrBadParam)
	}
	if d.state == StateError {
		return d.asError()
	}
	if d.state == StateNew {
		if err := d.Header(); err != nil {
			return err
		}
	}
	if d.state == StateDecoded {
		return nil
	}

	bpp := int(d.hdr.BitDepth) * components(d.hdr.ColorType)
	width := int(d.hdr.Width)
	height := int(d.hdr.Height)
	bytewidth := (bpp + 7) / 8
	linebytes := (width*bpp + 7) / 8
	decompressedSize := height * (1 + linebytes)

	idat, err := chunk.CollectIDAT(d.source)
	if err != nil {
		return d.fail(ErrMalformed, "decode: chunk scan: "+err.Error())
	}

	filtered, err := zlib.Inflate(idat, decompressedSize)
	if err != nil {
		return d.fail(ErrMalformed, "decode: inflate: "+err.Error())
	}
	defer pool.PutScanlineBuffer(filtered)

	recon, err := filter.Reconstruct(filtered, width, height, linebytes, bytewidth)
	if err != nil {
		return d.fail(ErrMalformed, "decode: scanline filter: "+err.Error())
	}

	out := recon
	if bpp < 8 && linebytes*8 != width*bpp {
		out = pack.Unpack(recon, width, height, bpp, linebytes)
	}

	d.buffer = out
	d.state = StateDecoded
	return nil
}

// Free releases the decoded pixel buffer and, if this Decoder owns its
// input (created via NewFromFile), the input buffer too. Go's garbage
// collector reclaims the underlying memory once nothing references it;
// Free exists to match spec §4.9/§5's explicit resource-release step and
// to drop large buffers eagerly rather than waiting on the collector.
// The handle remains safe to query afterwards: Buffer and Size read as
// empty, while header metadata (Width, Height, format) is kept, matching
// spec §7's "the handle remains freeable".
func (d *Decoder) Free() {
	d.buffer = nil
	if d.owned {
		d.source = nil
	}
}

// Width returns the image width. Meaningful once state is Header or
// Decoded.
func (d *Decoder) Width() uint32 { return d.hdr.Width }

// Height returns the image height. Meaningful once state is Header or
// Decoded.
func (d *Decoder) Height() uint32 { return d.hdr.Height }

// BitDepth returns the per-channel sample bit depth.
func (d *Decoder) BitDepth() int { return int(d.hdr.BitDepth) }

// Components returns the number of channels for the image's color type.
func (d *Decoder) Components() int { return components(d.hdr.ColorType) }

// BitsPerPixel returns depth * components(color_type).
func (d *Decoder) BitsPerPixel() int { return d.BitDepth() * d.Components() }

// PixelSize returns the pixel size in bytes, rounded up: ceil(bpp/8).
// (spec §9 fixes the source's `bits += bits % 8` rounding bug, which
// only rounds up when bits%8==0 — backwards. This simply computes
// ceil(bpp/8) directly.)
func (d *Decoder) PixelSize() int {
	bpp := d.BitsPerPixel()
	return (bpp + 7) / 8
}

// ColorFormat returns the resolved Format (spec §6.3). Meaningful once
// state is Header or Decoded; BadFormat before then or when Header itself
// failed. An error during Decode leaves the resolved format in place.
func (d *Decoder) ColorFormat() Format { return d.format }

// Buffer returns the decoded pixel bytes. Meaningful only once state is
// Decoded; nil otherwise.
func (d *Decoder) Buffer() []byte { return d.buffer }

// Size returns len(Buffer()).
func (d *Decoder) Size() int { return len(d.buffer) }

// Error returns the sticky ErrorCode (ErrOK if none).
func (d *Decoder) Error() ErrorCode { return d.err }

// ErrorOrigin names the decode stage that produced the current error
// (empty string if Error() is ErrOK). This is the Go-native analogue of
// upng_get_error_line from the original C/Rust source: since Go has no
// preprocessor __LINE__, the origin names the stage rather than a
// source line number (see SPEC_FULL.md's supplemented-features note).
func (d *Decoder) ErrorOrigin() string { return d.errOrigin }

// State returns the handle's current lifecycle state.
func (d *Decoder) State() State { return d.state }
