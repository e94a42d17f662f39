package md1img

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// sniffCompression detects the payload transform from its leading
// signature bytes. Payloads without a recognized signature are raw.
func sniffCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompGzip
	case bytes.HasPrefix(data, xzMagic):
		return CompXZ
	default:
		return CompNone
	}
}

// compressPayload applies the transform selected by comp. CompNone is
// the identity.
func compressPayload(comp Compression, data []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return data, nil
	case CompGzip:
		return gzipCompress(data)
	case CompXZ:
		return xzCompress(data)
	default:
		return nil, fmt.Errorf("%w: unknown compression tag %d", ErrCompression, comp)
	}
}

// decompressPayload reverses the transform selected by comp. It fails
// with ErrCompression when the tag claims a format whose signature is
// absent or whose stream is malformed, and enforces maxUncompressed to
// prevent decompression bombs.
func decompressPayload(comp Compression, data []byte, maxUncompressed uint64) ([]byte, error) {
	switch comp {
	case CompNone:
		return data, nil
	case CompGzip:
		if !bytes.HasPrefix(data, gzipMagic) {
			return nil, fmt.Errorf("%w: missing gzip signature", ErrCompression)
		}
		return gzipDecompress(data, maxUncompressed)
	case CompXZ:
		if !bytes.HasPrefix(data, xzMagic) {
			return nil, fmt.Errorf("%w: missing xz signature", ErrCompression)
		}
		return xzDecompress(data, maxUncompressed)
	default:
		return nil, fmt.Errorf("%w: unknown compression tag %d", ErrCompression, comp)
	}
}

func gzipCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// gzipDecompress inflates a gzip stream, capped at max bytes.
func gzipDecompress(in []byte, max uint64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	defer zr.Close()
	return readCapped(zr, max)
}

func xzCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := xw.Write(in); err != nil {
		_ = xw.Close()
		return nil, err
	}
	if err := xw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// xzDecompress inflates an xz stream, capped at max bytes.
func xzDecompress(in []byte, max uint64) ([]byte, error) {
	xr, err := xz.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	return readCapped(xr, max)
}

// readCapped reads at most max bytes; one byte more means the stream
// expanded beyond the allowed size.
func readCapped(r io.Reader, max uint64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, int64(max)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	if uint64(len(b)) > max {
		return nil, fmt.Errorf("%w: payload expands beyond %d bytes", ErrLimitExceeded, max)
	}
	return b, nil
}
