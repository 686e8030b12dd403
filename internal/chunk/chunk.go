// Package chunk scans a PNG byte stream: it verifies the signature,
// parses the IHDR header, walks the chunk sequence collecting IDAT
// payloads, and rejects unknown critical chunks. Ancillary chunks are
// detected and skipped; their contents are never interpreted, per spec's
// "ancillary chunks beyond detection" non-goal.
package chunk

import (
	"encoding/binary"
	"errors"
)

// Signature is the 8-byte PNG file signature.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

const (
	signatureSize  = 8
	ihdrHeaderSize = 8 // length(4) + type(4)
	ihdrPayloadLen = 13
	chunkHeaderLen = 8 // length(4) + type(4)
	chunkCRCLen    = 4
	maxChunkLength = 0x7FFFFFFF // spec: reject length > INT_MAX
)

// Errors returned by this package. Every one of them maps to spec's
// single Malformed error kind at the decoder façade.
var (
	ErrNoSignature       = errors.New("chunk: missing or corrupt PNG signature")
	ErrNoIHDR            = errors.New("chunk: first chunk is not IHDR")
	ErrBadIHDRLength     = errors.New("chunk: IHDR chunk has wrong length")
	ErrUnsupportedCompr  = errors.New("chunk: unsupported compression method")
	ErrUnsupportedFilter = errors.New("chunk: unsupported filter method")
	ErrInterlaced        = errors.New("chunk: interlaced images are not supported")
	ErrTruncatedChunk    = errors.New("chunk: chunk header or payload runs past end of data")
	ErrChunkTooLarge     = errors.New("chunk: declared chunk length exceeds INT_MAX")
	ErrCriticalUnknown   = errors.New("chunk: unknown critical chunk")
	ErrNoIEND            = errors.New("chunk: stream ends before IEND")
)

// Header holds the fields decoded from the IHDR chunk.
type Header struct {
	Width, Height               uint32
	BitDepth, ColorType          byte
	Compression, Filter, Interlace byte
}

// ParseHeader validates the 8-byte signature and decodes the mandatory
// first IHDR chunk (spec §4.6 steps 1-3).
func ParseHeader(data []byte) (Header, error) {
	if len(data) < signatureSize+ihdrHeaderSize+ihdrPayloadLen {
		return Header{}, ErrNoSignature
	}
	var sig [8]byte
	copy(sig[:], data[:8])
	if sig != Signature {
		return Header{}, ErrNoSignature
	}

	length := binary.BigEndian.Uint32(data[8:12])
	typ := string(data[12:16])
	if typ != "IHDR" {
		return Header{}, ErrNoIHDR
	}
	if length != ihdrPayloadLen {
		return Header{}, ErrBadIHDRLength
	}

	payload := data[16 : 16+ihdrPayloadLen]
	hdr := Header{
		Width:       binary.BigEndian.Uint32(payload[0:4]),
		Height:      binary.BigEndian.Uint32(payload[4:8]),
		BitDepth:    payload[8],
		ColorType:   payload[9],
		Compression: payload[10],
		Filter:      payload[11],
		Interlace:   payload[12],
	}
	if hdr.Compression != 0 {
		return Header{}, ErrUnsupportedCompr
	}
	if hdr.Filter != 0 {
		return Header{}, ErrUnsupportedFilter
	}
	if hdr.Interlace != 0 {
		return Header{}, ErrInterlaced
	}
	return hdr, nil
}

// chunkOffset is the byte offset of the first chunk after IHDR:
// 8 (signature) + 8 (IHDR header) + 13 (IHDR payload) + 4 (IHDR CRC).
const chunkOffset = signatureSize + chunkHeaderLen + ihdrPayloadLen + chunkCRCLen

// isCritical reports whether a chunk type is critical (bit 5 of the
// first type byte is clear), per spec's GLOSSARY definition.
func isCritical(typ string) bool {
	return typ[0]&0x20 == 0
}

// CollectIDAT walks the chunk sequence starting after IHDR, concatenating
// every IDAT chunk's payload into one contiguous buffer, stopping at
// IEND. It rejects any unknown critical chunk and any chunk whose
// declared extent runs past the end of data (spec §4.6 steps 5-7).
//
// The walk runs in two passes — first to total the IDAT length (and
// validate every chunk along the way), second to copy payloads — so
// that both passes observe the identical chunk sequence and neither
// reads a zeroed length or a stale pointer.
func CollectIDAT(data []byte) ([]byte, error) {
	total, err := walkChunks(data, nil)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, total)
	_, err = walkChunks(data, func(typ string, payload []byte) {
		if typ == "IDAT" {
			out = append(out, payload...)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walkChunks scans every chunk from chunkOffset to IEND, invoking visit
// (if non-nil) with each chunk's type and payload, and returns the total
// byte length of all IDAT payloads seen.
func walkChunks(data []byte, visit func(typ string, payload []byte)) (int, error) {
	pos := chunkOffset
	total := 0
	sawIEND := false

	for pos < len(data) {
		if pos+chunkHeaderLen > len(data) {
			return 0, ErrTruncatedChunk
		}
		length := binary.BigEndian.Uint32(data[pos : pos+4])
		if length > maxChunkLength {
			return 0, ErrChunkTooLarge
		}
		typ := string(data[pos+4 : pos+8])

		payloadStart := pos + chunkHeaderLen
		payloadEnd := payloadStart + int(length)
		if payloadEnd+chunkCRCLen > len(data) {
			return 0, ErrTruncatedChunk
		}
		payload := data[payloadStart:payloadEnd]

		switch typ {
		case "IDAT":
			total += len(payload)
			if visit != nil {
				visit(typ, payload)
			}
		case "IEND":
			sawIEND = true
		default:
			if isCritical(typ) {
				return 0, ErrCriticalUnknown
			}
			// Ancillary: detected, not interpreted.
		}

		pos = payloadEnd + chunkCRCLen
		if sawIEND {
			break
		}
	}

	if !sawIEND {
		return 0, ErrNoIEND
	}
	return total, nil
}
