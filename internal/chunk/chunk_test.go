package chunk

import (
	"testing"

	"github.com/nanopng/upng/internal/testutil"
)

func TestParseHeaderValid(t *testing.T) {
	data := testutil.BuildPNG(1, 1, 2, 8, []byte{0, 0, 0, 0})
	hdr, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.Width != 1 || hdr.Height != 1 || hdr.BitDepth != 8 || hdr.ColorType != 2 {
		t.Errorf("ParseHeader = %+v, unexpected field values", hdr)
	}
}

func TestParseHeaderBadSignature(t *testing.T) {
	data := append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, make([]byte, 21)...)
	if _, err := ParseHeader(data); err != ErrNoSignature {
		t.Errorf("ParseHeader = %v, want ErrNoSignature", err)
	}
}

func TestParseHeaderInterlaced(t *testing.T) {
	data := testutil.BuildPNG(1, 1, 2, 8, []byte{0, 0, 0, 0})
	// Flip the interlace byte (last byte of the 13-byte IHDR payload,
	// located at offset 8+8+12 = 28).
	data[28] = 1
	if _, err := ParseHeader(data); err != ErrInterlaced {
		t.Errorf("ParseHeader = %v, want ErrInterlaced", err)
	}
}

func TestCollectIDATConcatenatesPayload(t *testing.T) {
	data := testutil.BuildPNG(1, 1, 2, 8, []byte{0, 1, 2, 3})
	idat, err := CollectIDAT(data)
	if err != nil {
		t.Fatalf("CollectIDAT: %v", err)
	}
	if len(idat) == 0 {
		t.Fatal("CollectIDAT returned empty payload")
	}
}

func TestCollectIDATRejectsUnknownCriticalChunk(t *testing.T) {
	data := testutil.UnknownCriticalChunkPNG(1, 1, 2, 8)
	if _, err := CollectIDAT(data); err != ErrCriticalUnknown {
		t.Errorf("CollectIDAT = %v, want ErrCriticalUnknown", err)
	}
}

func TestCollectIDATRejectsMissingIEND(t *testing.T) {
	data := testutil.BuildPNG(1, 1, 2, 8, []byte{0, 0, 0, 0})
	// Truncate the stream before IEND is reached.
	truncated := data[:len(data)-12]
	if _, err := CollectIDAT(truncated); err == nil {
		t.Fatal("CollectIDAT over a stream missing IEND should fail")
	}
}

func TestIsCriticalBitFive(t *testing.T) {
	if !isCritical("IDAT") {
		t.Error("IDAT (uppercase) should be critical")
	}
	if isCritical("tEXt") {
		t.Error("tEXt (lowercase first letter) should be ancillary")
	}
}
