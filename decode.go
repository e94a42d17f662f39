package md1img

import "fmt"

// Parse reads an MD1 container image from data.
//
// The buffer is scanned from offset 0. Each entry is a fixed-size
// header followed by exactly the declared number of payload bytes; the
// next entry starts on the following 16-byte boundary. A header whose
// magic does not match before any entry has been read means data is
// not an MD1 image (ErrFormat). After at least one valid entry, a bad
// magic (or a tail too short to hold a header) is the end-of-entries
// sentinel and scanning stops.
//
// The md1_file_map entry, if present, is decoded into the image's name
// mapping and removed from the regular listing.
func Parse(data []byte, opts ...ReadOption) (*Image, error) {
	cfg := newReadConfig(opts)
	img := NewImage()
	offset := 0
	count := 0
	for offset+headerSize <= len(data) {
		h := decodeEntryHeader(data[offset : offset+headerSize])
		if !h.valid() {
			if count == 0 {
				return nil, fmt.Errorf("%w: bad magic at offset 0", ErrFormat)
			}
			break
		}
		if count >= cfg.limits.MaxEntries {
			return nil, fmt.Errorf("%w: more than %d entries", ErrLimitExceeded, cfg.limits.MaxEntries)
		}
		if uint64(h.DataSize) > cfg.limits.MaxEntryStoredSize {
			return nil, fmt.Errorf("%w: entry %q stores %d bytes", ErrLimitExceeded, h.entryName(), h.DataSize)
		}
		if h.DataOffset < headerSize {
			return nil, fmt.Errorf("%w: entry %q data offset %d overlaps header", ErrFormat, h.entryName(), h.DataOffset)
		}
		payloadStart := offset + int(h.DataOffset)
		payloadEnd := payloadStart + int(h.DataSize)
		if payloadStart > len(data) || payloadEnd > len(data) {
			return nil, fmt.Errorf("%w: entry %q declares %d payload bytes, %d remain",
				ErrTruncated, h.entryName(), h.DataSize, len(data)-min(payloadStart, len(data)))
		}
		e := &Entry{
			Name:             h.entryName(),
			UncompressedSize: h.DsizeExtend,
			StoredSize:       h.DataSize,
			Base:             h.Base,
			Mode:             h.Mode,
			HdrVersion:       h.HdrVersion,
			Offset:           int64(offset),
			Data:             append([]byte(nil), data[payloadStart:payloadEnd]...),
		}
		e.Compression = sniffCompression(e.Data)
		if e.Compression == CompNone && e.UncompressedSize == 0 {
			e.UncompressedSize = e.StoredSize
		}
		cfg.logger.Debug("parsed entry",
			"name", e.Name, "offset", fmt.Sprintf("0x%08x", offset),
			"stored", e.StoredSize, "compression", e.Compression.String())
		if e.Name == MapFileName {
			if uint64(e.StoredSize) > cfg.limits.MaxMappingLen {
				return nil, fmt.Errorf("%w: file map is %d bytes", ErrLimitExceeded, e.StoredSize)
			}
			img.mapping = decodeFileMap(e.Data, cfg.logger)
		} else {
			if err := img.Add(e); err != nil {
				return nil, err
			}
		}
		count++
		offset = align(payloadEnd)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %d bytes is too small for a header", ErrFormat, len(data))
	}
	return img, nil
}
