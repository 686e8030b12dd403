package zlib

import (
	"bytes"
	"testing"

	"github.com/nanopng/upng/internal/testutil"
)

func TestInflateStoredPayload(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}
	stream := testutil.StoredZlib(raw)

	out, err := Inflate(stream, len(raw))
	if err != nil {
		t.Fatalf("Inflate: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("Inflate = %v, want %v", out, raw)
	}
}

func TestInflateTooShort(t *testing.T) {
	if _, err := Inflate([]byte{0x78}, 0); err != ErrTooShort {
		t.Errorf("Inflate = %v, want ErrTooShort", err)
	}
}

func TestInflateBadMethod(t *testing.T) {
	// CM nibble = 7, not 8 (deflate).
	if _, err := Inflate([]byte{0x77, 0x01}, 0); err != ErrUnsupportedMethod {
		t.Errorf("Inflate = %v, want ErrUnsupportedMethod", err)
	}
}

func TestInflateBadHeaderChecksum(t *testing.T) {
	// 0x78, 0x02: (0x78*256+0x02) % 31 != 0
	if _, err := Inflate([]byte{0x78, 0x02}, 0); err != ErrHeaderChecksum {
		t.Errorf("Inflate = %v, want ErrHeaderChecksum", err)
	}
}
