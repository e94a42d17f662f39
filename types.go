package md1img

const (
	// Magic constants identifying a valid MD1 entry header.
	magic1 uint32 = 0x58881688
	magic2 uint32 = 0x58891689

	// headerSize is the fixed on-disk header size in bytes. The payload
	// normally starts immediately after it (data_offset == headerSize).
	headerSize = 512

	// nameSize is the fixed width of the NUL-padded name field. Names are
	// limited to nameSize-1 bytes so at least one NUL terminator remains.
	nameSize = 32

	// entryAlign is the boundary every entry must start on.
	entryAlign = 16
)

// MapFileName is the reserved entry name of the filename mapping table.
// The mapping entry translates internal (in-container) names to external
// (on-disk) names and is excluded from the regular file listing.
const MapFileName = "md1_file_map"

// MetaInfoName is the sidecar file recording header fields of unpacked
// entries so a later repack can restore them.
const MetaInfoName = "meta_info"

// Compression selects the payload transform for an entry.
type Compression uint32

const (
	CompNone Compression = 0
	CompGzip Compression = 1
	CompXZ   Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompGzip:
		return "gzip"
	case CompXZ:
		return "xz"
	default:
		return "unknown"
	}
}

// suffix returns the conventional on-disk name suffix for entries stored
// with this transform. MD1 images name compressed entries with the
// compressor extension (e.g. "modem.bin.gz").
func (c Compression) suffix() string {
	switch c {
	case CompGzip:
		return ".gz"
	case CompXZ:
		return ".xz"
	default:
		return ""
	}
}

// Entry is one logical file stored inside the container: its decoded
// header fields plus an owned copy of the stored (possibly compressed)
// payload. Invariant: len(Data) == StoredSize.
type Entry struct {
	// Name is the internal (in-container) entry name.
	Name string
	// UncompressedSize is the declared original payload length. Zero on
	// entries parsed from images that do not declare it; zero means the
	// post-decompression length check is skipped.
	UncompressedSize uint32
	// StoredSize is the on-disk payload length.
	StoredSize uint32
	// Compression is the payload transform. For parsed images it is
	// negotiated by payload signature sniffing.
	Compression Compression

	// Header fields carried through unpack/repack unchanged.
	Base       uint32
	Mode       uint32
	HdrVersion uint32

	// Offset is the entry's position in the source image. Informative;
	// set by Parse, recomputed by Serialize.
	Offset int64

	// Data is the stored payload.
	Data []byte
}

// align rounds n up to the next entry boundary.
func align(n int) int {
	if r := n % entryAlign; r != 0 {
		n += entryAlign - r
	}
	return n
}
