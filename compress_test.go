package md1img

import (
	"bytes"
	"errors"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	in := bytes.Repeat([]byte("md1 firmware block "), 64)
	for _, comp := range []Compression{CompNone, CompGzip, CompXZ} {
		t.Run("comp="+comp.String(), func(t *testing.T) {
			stored, err := compressPayload(comp, in)
			if err != nil {
				t.Fatalf("compress: %v", err)
			}
			if sniffCompression(stored) != comp {
				t.Fatalf("sniff = %s, want %s", sniffCompression(stored), comp)
			}
			out, err := decompressPayload(comp, stored, 1<<20)
			if err != nil {
				t.Fatalf("decompress: %v", err)
			}
			if !bytes.Equal(out, in) {
				t.Fatal("round trip mismatch")
			}
		})
	}
}

func TestCompress_UnknownTag(t *testing.T) {
	if _, err := compressPayload(Compression(9), []byte("x")); !errors.Is(err, ErrCompression) {
		t.Fatalf("expected ErrCompression, got %v", err)
	}
	if _, err := decompressPayload(Compression(9), []byte("x"), 1<<20); !errors.Is(err, ErrCompression) {
		t.Fatalf("expected ErrCompression, got %v", err)
	}
}

func TestDecompress_MissingSignature(t *testing.T) {
	raw := []byte("definitely not a compressed stream")
	if _, err := decompressPayload(CompGzip, raw, 1<<20); !errors.Is(err, ErrCompression) {
		t.Fatalf("gzip: expected ErrCompression, got %v", err)
	}
	if _, err := decompressPayload(CompXZ, raw, 1<<20); !errors.Is(err, ErrCompression) {
		t.Fatalf("xz: expected ErrCompression, got %v", err)
	}
}

func TestDecompress_MalformedStream(t *testing.T) {
	// Valid signature, garbage body.
	bad := append(append([]byte(nil), gzipMagic...), bytes.Repeat([]byte{0xAA}, 32)...)
	if _, err := decompressPayload(CompGzip, bad, 1<<20); !errors.Is(err, ErrCompression) {
		t.Fatalf("expected ErrCompression, got %v", err)
	}
}

func TestDecompress_BombCap(t *testing.T) {
	stored, err := compressPayload(CompGzip, make([]byte, 4096))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := decompressPayload(CompGzip, stored, 16); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestSniffCompression(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Compression
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, CompGzip},
		{"xz", []byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0x01}, CompXZ},
		{"raw", []byte("plain"), CompNone},
		{"short", []byte{0x1f}, CompNone},
		{"empty", nil, CompNone},
	}
	for _, tt := range tests {
		if got := sniffCompression(tt.data); got != tt.want {
			t.Errorf("%s: sniff = %s, want %s", tt.name, got, tt.want)
		}
	}
}
