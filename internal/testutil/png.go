// Package testutil builds small, hand-valid PNG/zlib/DEFLATE byte
// streams for tests across this module, so each package's tests don't
// need to hand-encode bit patterns.
package testutil

import (
	"encoding/binary"
	"hash/crc32"
)

// StoredZlib wraps raw in a minimal valid zlib stream (RFC 1950 header
// 0x78 0x01, i.e. CM=8/CINFO=7/FLG=1) containing a single DEFLATE stored
// block (BTYPE 00). raw must be under 65536 bytes.
func StoredZlib(raw []byte) []byte {
	if len(raw) > 0xFFFF {
		panic("testutil: StoredZlib: raw too large for a single stored block")
	}
	out := []byte{0x78, 0x01}
	out = append(out, 0x01) // BFINAL=1, BTYPE=00, rest of byte padding
	var lenBuf [4]byte
	binary.LittleEndian.PutUint16(lenBuf[0:2], uint16(len(raw)))
	binary.LittleEndian.PutUint16(lenBuf[2:4], uint16(len(raw))^0xFFFF)
	out = append(out, lenBuf[:]...)
	out = append(out, raw...)
	// Adler-32 trailer: never checked by this decoder, but included for
	// byte-stream realism.
	out = append(out, 0, 0, 0, 1)
	return out
}

// BuildPNG assembles a complete, well-formed PNG byte stream: signature,
// IHDR, a single IDAT chunk wrapping StoredZlib(filteredRaw), and IEND.
// filteredRaw must already include the leading filter-type byte on each
// scanline (typically all zero, i.e. filter type None).
func BuildPNG(width, height uint32, colorType, depth byte, filteredRaw []byte) []byte {
	var buf []byte
	buf = append(buf, 0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = depth
	ihdr[9] = colorType
	ihdr[10] = 0 // compression
	ihdr[11] = 0 // filter
	ihdr[12] = 0 // interlace
	buf = appendChunk(buf, "IHDR", ihdr)

	buf = appendChunk(buf, "IDAT", StoredZlib(filteredRaw))
	buf = appendChunk(buf, "IEND", nil)
	return buf
}

// appendChunk appends one PNG chunk (length, type, payload, CRC-32 of
// type+payload) to buf.
func appendChunk(buf []byte, typ string, payload []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, typ...)
	buf = append(buf, payload...)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(payload)
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc.Sum32())
	buf = append(buf, crcBuf[:]...)
	return buf
}

// UnknownCriticalChunkPNG returns a PNG with a well-formed IHDR followed
// immediately by an unrecognised critical chunk ("ZZZZ" — an all-
// uppercase type has bit 5 of its first byte clear, marking it critical)
// before any IDAT, to exercise the chunk scanner's critical-chunk
// rejection.
func UnknownCriticalChunkPNG(width, height uint32, colorType, depth byte) []byte {
	var buf []byte
	buf = append(buf, 0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A)
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = depth
	ihdr[9] = colorType
	buf = appendChunk(buf, "IHDR", ihdr)
	buf = appendChunk(buf, "ZZZZ", []byte("unknown critical chunk"))
	buf = appendChunk(buf, "IEND", nil)
	return buf
}
