package md1img

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config carries the behavioral settings passed into the pack and
// unpack engines. It is a plain value; the calling layer owns it.
type Config struct {
	// Compression is the payload transform applied when packing.
	Compression Compression
	// DryRun reports intended writes without performing any.
	DryRun bool
	// Backup copies pre-existing files aside before they are
	// overwritten.
	Backup bool
	// BackupDir receives backups; empty means next to the original.
	BackupDir string
}

// configJSON is the external JSON representation of Config.
type configJSON struct {
	Compression string `json:"compression_format"`
	DryRun      bool   `json:"dry_run"`
	Backup      bool   `json:"backup"`
	BackupDir   string `json:"backup_dir,omitempty"`
}

// ParseCompression converts a format name into its tag. GZ/GZIP,
// XZ/LZMA and NONE/RAW are accepted, case-insensitively; the empty
// string means no compression. Anything else is rejected here, at
// construction, rather than at use.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToUpper(s) {
	case "", "NONE", "RAW":
		return CompNone, nil
	case "GZ", "GZIP":
		return CompGzip, nil
	case "XZ", "LZMA":
		return CompXZ, nil
	default:
		return CompNone, fmt.Errorf("%w: unknown compression format %q (valid: NONE, GZIP, XZ)", ErrConfig, s)
	}
}

// LoadConfig reads a JSON configuration file. Decoding is strict:
// unrecognized fields are rejected, not silently ignored.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var raw configJSON
	if err := dec.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
	}
	comp, err := ParseCompression(raw.Compression)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Compression: comp,
		DryRun:      raw.DryRun,
		Backup:      raw.Backup,
		BackupDir:   raw.BackupDir,
	}, nil
}

// Save writes the configuration as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(configJSON{
		Compression: strings.ToUpper(c.Compression.String()),
		DryRun:      c.DryRun,
		Backup:      c.Backup,
		BackupDir:   c.BackupDir,
	}, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
