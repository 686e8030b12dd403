// Package zlib validates the 2-byte zlib stream header (RFC 1950) and
// forwards the payload to the DEFLATE engine. The Adler-32 trailer is
// never checked, matching spec's explicit non-goal of checksum
// verification.
package zlib

import (
	"errors"

	"github.com/nanopng/upng/internal/deflate"
	"github.com/nanopng/upng/internal/pool"
)

// Errors returned by Inflate.
var (
	ErrTooShort           = errors.New("zlib: stream shorter than 2-byte header")
	ErrUnsupportedMethod  = errors.New("zlib: compression method is not deflate")
	ErrWindowTooLarge     = errors.New("zlib: window size exceeds 32 KiB")
	ErrHeaderChecksum     = errors.New("zlib: header checksum (CMF*256+FLG mod 31) failed")
)

// Inflate validates the zlib header at the start of data and decompresses
// the DEFLATE payload that follows into a buffer pre-sized to outSize
// bytes. It returns that buffer cut to the number of bytes actually
// decoded.
//
// The returned slice is drawn from the scanline-buffer pool (package
// pool) rather than freshly allocated; callers that are done with it
// before discarding it should return it with pool.PutScanlineBuffer so a
// later Inflate call (e.g. decoding the next file in a batch) can reuse
// the backing array instead of growing the heap again.
func Inflate(data []byte, outSize int) ([]byte, error) {
	if len(data) < 2 {
		return nil, ErrTooShort
	}
	cmf := data[0]
	flg := data[1]

	if cmf&0x0F != 8 {
		return nil, ErrUnsupportedMethod
	}
	if (cmf>>4)&0x0F > 7 {
		return nil, ErrWindowTooLarge
	}
	if (uint(cmf)*256+uint(flg))%31 != 0 {
		return nil, ErrHeaderChecksum
	}

	out := pool.GetScanlineBuffer(outSize)
	n, err := deflate.Inflate(data[2:], out)
	if err != nil {
		pool.PutScanlineBuffer(out)
		return nil, err
	}
	return out[:n], nil
}
