package md1img

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want Compression
	}{
		{"", CompNone},
		{"none", CompNone},
		{"RAW", CompNone},
		{"gz", CompGzip},
		{"GZIP", CompGzip},
		{"xz", CompXZ},
		{"lzma", CompXZ},
	}
	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		if err != nil {
			t.Errorf("ParseCompression(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCompression(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseCompression_Unknown(t *testing.T) {
	if _, err := ParseCompression("brotli"); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadConfig_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"compression_format": "gzip", "dry_run": false, "frobnicate": true}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadConfig_RejectsUnknownCompression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"compression_format": "zstd"}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := Config{
		Compression: CompXZ,
		DryRun:      true,
		Backup:      true,
		BackupDir:   "/tmp/backups",
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}
