package md1img

import (
	"bytes"
	"encoding/binary"
)

// entryHeader mirrors the 512-byte little-endian on-disk header.
//
// The stored payload length lives in DataSize. Entries written by this
// package additionally declare the uncompressed payload length in
// DsizeExtend and the compression tag in ImgType; both are zero in
// images produced by other tools, which negotiate compression by
// payload signature instead.
type entryHeader struct {
	Magic1      uint32
	DataSize    uint32
	Name        [nameSize]byte
	Base        uint32
	Mode        uint32
	Magic2      uint32
	DataOffset  uint32
	HdrVersion  uint32
	ImgType     uint32
	ImgListEnd  uint32
	AlignSize   uint32
	DsizeExtend uint32
	MaddrExtend uint32
	// Reserved bytes (432 of them, 0xFF-filled) complete the header.
}

// decodeEntryHeader parses the fixed header region. b must be at least
// headerSize bytes.
func decodeEntryHeader(b []byte) entryHeader {
	var h entryHeader
	h.Magic1 = binary.LittleEndian.Uint32(b[0:4])
	h.DataSize = binary.LittleEndian.Uint32(b[4:8])
	copy(h.Name[:], b[8:40])
	h.Base = binary.LittleEndian.Uint32(b[40:44])
	h.Mode = binary.LittleEndian.Uint32(b[44:48])
	h.Magic2 = binary.LittleEndian.Uint32(b[48:52])
	h.DataOffset = binary.LittleEndian.Uint32(b[52:56])
	h.HdrVersion = binary.LittleEndian.Uint32(b[56:60])
	h.ImgType = binary.LittleEndian.Uint32(b[60:64])
	h.ImgListEnd = binary.LittleEndian.Uint32(b[64:68])
	h.AlignSize = binary.LittleEndian.Uint32(b[68:72])
	h.DsizeExtend = binary.LittleEndian.Uint32(b[72:76])
	h.MaddrExtend = binary.LittleEndian.Uint32(b[76:80])
	return h
}

// encodeEntryHeader renders the header for e. The reserved region is
// 0xFF-filled, matching headers produced by MediaTek tooling.
func encodeEntryHeader(e *Entry) [headerSize]byte {
	var b [headerSize]byte
	binary.LittleEndian.PutUint32(b[0:4], magic1)
	binary.LittleEndian.PutUint32(b[4:8], e.StoredSize)
	copy(b[8:40], e.Name)
	binary.LittleEndian.PutUint32(b[40:44], e.Base)
	binary.LittleEndian.PutUint32(b[44:48], e.Mode)
	binary.LittleEndian.PutUint32(b[48:52], magic2)
	binary.LittleEndian.PutUint32(b[52:56], headerSize)
	binary.LittleEndian.PutUint32(b[56:60], e.HdrVersion)
	if e.Compression != CompNone {
		binary.LittleEndian.PutUint32(b[60:64], uint32(e.Compression))
		binary.LittleEndian.PutUint32(b[72:76], e.UncompressedSize)
	}
	for i := 80; i < headerSize; i++ {
		b[i] = 0xFF
	}
	return b
}

// valid reports whether both magic constants match.
func (h entryHeader) valid() bool {
	return h.Magic1 == magic1 && h.Magic2 == magic2
}

// entryName returns the NUL-trimmed name field.
func (h entryHeader) entryName() string {
	if i := bytes.IndexByte(h.Name[:], 0); i >= 0 {
		return string(h.Name[:i])
	}
	return string(h.Name[:])
}
