package md1img

import (
	"bufio"
	"bytes"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// decodeFileMap parses a mapping entry payload: newline-delimited
// internal<TAB>external records. Malformed records are skipped; when a
// logger is supplied they are reported as warnings.
func decodeFileMap(data []byte, logger *log.Logger) map[string]string {
	m := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(strings.Trim(sc.Text(), "\x00"))
		if line == "" {
			continue
		}
		internal, external, ok := strings.Cut(line, "\t")
		if !ok || internal == "" || external == "" {
			if logger != nil {
				logger.Warn("skipping malformed file map record", "record", line)
			}
			continue
		}
		m[internal] = external
	}
	return m
}

// encodeFileMap renders the mapping payload with records sorted by
// internal name, so serialization stays deterministic.
func encodeFileMap(m map[string]string) []byte {
	internals := make([]string, 0, len(m))
	for internal := range m {
		internals = append(internals, internal)
	}
	sort.Strings(internals)
	var buf bytes.Buffer
	for _, internal := range internals {
		buf.WriteString(internal)
		buf.WriteByte('\t')
		buf.WriteString(m[internal])
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
