package deflate

import (
	"bytes"
	"testing"
)

// bitWriter assembles a raw (no zlib wrapper) DEFLATE bitstream for tests,
// matching bitio.Reader's LSB-first-within-byte convention.
type bitWriter struct {
	bytes []byte
	nbits int
}

func (w *bitWriter) writeBit(b uint) {
	byteIdx := w.nbits / 8
	if byteIdx >= len(w.bytes) {
		w.bytes = append(w.bytes, 0)
	}
	if b != 0 {
		w.bytes[byteIdx] |= 1 << uint(w.nbits%8)
	}
	w.nbits++
}

// lsb writes n bits of v, least-significant bit first (non-Huffman fields:
// BFINAL, BTYPE, length/distance extra bits).
func (w *bitWriter) lsb(v uint32, n int) {
	for i := 0; i < n; i++ {
		w.writeBit(uint(v>>uint(i)) & 1)
	}
}

// msb writes n bits of a Huffman code, most-significant bit first.
func (w *bitWriter) msb(code uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		w.writeBit(uint(code>>uint(i)) & 1)
	}
}

func TestInflateStoredBlock(t *testing.T) {
	var w bitWriter
	w.lsb(1, 1) // BFINAL=1
	w.lsb(0, 2) // BTYPE=00
	raw := []byte{0xAA, 0xBB, 0xCC}
	// AlignToByte discards the rest of this byte.
	stream := append(append([]byte{}, w.bytes...), 0x03, 0x00, 0xFC, 0xFF)
	stream = append(stream, raw...)

	out := make([]byte, 3)
	n, err := Inflate(stream, out)
	if err != nil {
		t.Fatalf("Inflate: %v", err)
	}
	if n != 3 || !bytes.Equal(out, raw) {
		t.Errorf("Inflate = (%d, %v), want (3, %v)", n, out, raw)
	}
}

func TestInflateStoredBlockBadLen(t *testing.T) {
	var w bitWriter
	w.lsb(1, 1)
	w.lsb(0, 2)
	stream := append(append([]byte{}, w.bytes...), 0x03, 0x00, 0x00, 0x00) // NLEN wrong
	out := make([]byte, 3)
	if _, err := Inflate(stream, out); err != ErrStoredLen {
		t.Errorf("Inflate = %v, want ErrStoredLen", err)
	}
}

func TestInflateFixedHuffmanLiterals(t *testing.T) {
	var w bitWriter
	w.lsb(1, 1) // BFINAL=1
	w.lsb(1, 2) // BTYPE=01 fixed
	w.msb(0x71, 8) // 'A' = 65, fixed code 65+48
	w.msb(0x00, 7) // end-of-block, symbol 256

	out := make([]byte, 1)
	n, err := Inflate(w.bytes, out)
	if err != nil {
		t.Fatalf("Inflate: %v", err)
	}
	if n != 1 || out[0] != 'A' {
		t.Errorf("Inflate = (%d, %q), want (1, \"A\")", n, out)
	}
}

func TestInflateFixedHuffmanBackreference(t *testing.T) {
	var w bitWriter
	w.lsb(1, 1)
	w.lsb(1, 2)
	w.msb(0x71, 8) // 'A'
	w.msb(0x72, 8) // 'B'
	w.msb(0x73, 8) // 'C'
	w.msb(0x01, 7) // length symbol 257 (base length 3, 0 extra bits)
	w.msb(0x02, 5) // distance symbol 2 (base distance 3, 0 extra bits)
	w.msb(0x00, 7) // end-of-block

	out := make([]byte, 6)
	n, err := Inflate(w.bytes, out)
	if err != nil {
		t.Fatalf("Inflate: %v", err)
	}
	want := "ABCABC"
	if n != 6 || string(out) != want {
		t.Errorf("Inflate = (%d, %q), want (6, %q)", n, out, want)
	}
}

func TestInflateTruncatedFails(t *testing.T) {
	out := make([]byte, 3)
	if _, err := Inflate(nil, out); err == nil {
		t.Fatal("Inflate of empty input should fail")
	}
}

func TestInflateReservedBlockTypeFails(t *testing.T) {
	var w bitWriter
	w.lsb(1, 1)
	w.lsb(3, 2) // BTYPE=11 reserved
	out := make([]byte, 1)
	if _, err := Inflate(w.bytes, out); err != ErrReserved {
		t.Errorf("Inflate = %v, want ErrReserved", err)
	}
}
