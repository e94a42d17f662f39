package md1img

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// entryMeta holds the header fields an unpack preserves for repacking.
type entryMeta struct {
	Base       uint32
	Mode       uint32
	HdrVersion uint32
}

// parseMetaInfo reads a meta_info sidecar: blank-line separated blocks
// of key=value records, each block introduced by a name= record. Values
// are hexadecimal. Unparseable values are ignored.
func parseMetaInfo(data []byte) map[string]entryMeta {
	result := make(map[string]entryMeta)
	var name string
	var meta entryMeta
	flush := func() {
		if name != "" {
			result[name] = meta
		}
		name = ""
		meta = entryMeta{}
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			flush()
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if key == "name" {
			flush()
			name = value
			continue
		}
		v, err := strconv.ParseUint(strings.TrimPrefix(value, "0x"), 16, 32)
		if err != nil {
			continue
		}
		switch key {
		case "base":
			meta.Base = uint32(v)
		case "mode":
			meta.Mode = uint32(v)
		case "hdr_version":
			meta.HdrVersion = uint32(v)
		}
	}
	flush()
	return result
}

// formatMetaInfo renders the sidecar for the given entries, sorted by
// internal name.
func formatMetaInfo(entries []*Entry) []byte {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	var buf bytes.Buffer
	for _, e := range sorted {
		fmt.Fprintf(&buf, "name=%s\n", e.Name)
		fmt.Fprintf(&buf, "base=0x%08x\n", e.Base)
		fmt.Fprintf(&buf, "mode=0x%08x\n", e.Mode)
		fmt.Fprintf(&buf, "hdr_version=0x%08x\n", e.HdrVersion)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
