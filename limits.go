package md1img

type Limits struct {
	MaxEntries           int
	MaxEntryStoredSize   uint64 // stored payload length as declared in the header
	MaxEntryUncompressed uint64 // payload bytes after decompression
	MaxMappingLen        uint64
}

func defaultLimits() Limits {
	return Limits{
		MaxEntries:           4096,
		MaxEntryStoredSize:   1 << 30, // 1 GiB stored payload cap
		MaxEntryUncompressed: 2 << 30, // 2 GiB
		MaxMappingLen:        1 << 20, // 1 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxEntries == 0 {
		l.MaxEntries = d.MaxEntries
	}
	if l.MaxEntryStoredSize == 0 {
		l.MaxEntryStoredSize = d.MaxEntryStoredSize
	}
	if l.MaxEntryUncompressed == 0 {
		l.MaxEntryUncompressed = d.MaxEntryUncompressed
	}
	if l.MaxMappingLen == 0 {
		l.MaxMappingLen = d.MaxMappingLen
	}
	return l
}
