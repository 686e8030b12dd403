// Package pool reuses the decompressed-scanline buffer across Decode
// calls. A PNG decode needs exactly one scratch buffer of this kind: the
// inflated IDAT stream, sized height*(1+linebytes) per spec's decode
// pipeline, which filter.Reconstruct then consumes and zlib.Inflate's
// caller discards once reconstruction is done. Repeated decoding (e.g.
// cmd/upngdump scanning a glob of files) reuses the same backing arrays
// instead of allocating fresh ones per file. Buffers are bucketed by size
// class because scanline-buffer size varies enormously with image
// dimensions, from a few bytes (tiny fixtures) to many megabytes.
package pool

import "sync"

// Size classes for the scanline-buffer pool.
const (
	Size256B = 256
	Size1K   = 1024
	Size4K   = 4096
	Size16K  = 16384
	Size64K  = 65536
	Size256K = 262144
	Size1M   = 1048576
)

// bucketIndex returns the pool index for a given scanline-buffer size.
func bucketIndex(size int) int {
	switch {
	case size <= Size256B:
		return 0
	case size <= Size1K:
		return 1
	case size <= Size4K:
		return 2
	case size <= Size16K:
		return 3
	case size <= Size64K:
		return 4
	case size <= Size256K:
		return 5
	default:
		return 6
	}
}

var sizes = [7]int{Size256B, Size1K, Size4K, Size16K, Size64K, Size256K, Size1M}

var pools [7]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// GetScanlineBuffer returns a byte slice of at least the requested size,
// sized to hold one Decode call's worth of inflated scanline bytes
// (height*(1+linebytes)). The returned slice has length == size and may
// have a larger capacity. The caller must call PutScanlineBuffer once
// filter.Reconstruct has consumed it.
func GetScanlineBuffer(size int) []byte {
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// PutScanlineBuffer returns a scanline buffer obtained from
// GetScanlineBuffer to the pool. Slices smaller than Size256B are not
// pooled.
func PutScanlineBuffer(b []byte) {
	c := cap(b)
	if c < Size256B {
		return
	}
	idx := bucketIndex(c)
	b = b[:c]
	pools[idx].Put(&b)
}
