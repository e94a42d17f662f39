package md1img

import (
	"fmt"
	"os"
	"path/filepath"
)

// Extract writes every regular entry of img into dir.
//
// Each payload is decompressed according to the entry's tag, or by
// signature sniffing when no tag is set, and its length is verified
// against the declared uncompressed size. Output names are resolved
// through the image's mapping (internal to external) when a pair
// exists.
//
// Extraction is best effort: a corrupt or unwritable entry is recorded
// in the report and the remaining entries still extract. cfg.DryRun
// reports intended writes without performing any; cfg.Backup copies a
// pre-existing file at the destination before it is overwritten.
//
// Unless dry-running, a meta_info sidecar is also written so header
// fields survive a later repack.
func Extract(img *Image, dir string, cfg Config, opts ...ReadOption) (*ExtractReport, error) {
	rc := newReadConfig(opts)
	report := &ExtractReport{DryRun: cfg.DryRun}
	if !cfg.DryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	for _, e := range img.entries {
		res := ExtractResult{
			Name:        e.Name,
			Path:        filepath.Join(dir, img.ExternalName(e.Name)),
			Compression: e.Compression,
		}
		data, err := entryData(e, rc.limits)
		if err != nil {
			res.Err = err
			rc.logger.Error("extraction failed", "entry", e.Name, "err", err)
			report.Results = append(report.Results, res)
			continue
		}
		res.Size = len(data)
		if cfg.DryRun {
			rc.logger.Info("dry run: would write", "path", res.Path, "bytes", len(data))
			report.Results = append(report.Results, res)
			continue
		}
		if err := writeEntryFile(res.Path, data, cfg, rc); err != nil {
			res.Err = err
			rc.logger.Error("extraction failed", "entry", e.Name, "err", err)
			report.Results = append(report.Results, res)
			continue
		}
		rc.logger.Info("extracted", "entry", e.Name, "path", res.Path, "bytes", len(data))
		report.Results = append(report.Results, res)
	}
	if !cfg.DryRun && len(img.entries) > 0 {
		metaPath := filepath.Join(dir, MetaInfoName)
		if err := os.WriteFile(metaPath, formatMetaInfo(img.entries), 0o644); err != nil {
			return report, err
		}
	}
	return report, nil
}

// entryData decompresses and length-checks an entry's payload.
func entryData(e *Entry, lim Limits) ([]byte, error) {
	comp := e.Compression
	if comp == CompNone {
		comp = sniffCompression(e.Data)
	}
	out, err := decompressPayload(comp, e.Data, lim.MaxEntryUncompressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCorruptEntry, e.Name, err)
	}
	if e.UncompressedSize != 0 && uint64(len(out)) != uint64(e.UncompressedSize) {
		return nil, fmt.Errorf("%w: %q decompressed to %d bytes, header declares %d",
			ErrCorruptEntry, e.Name, len(out), e.UncompressedSize)
	}
	return out, nil
}

func writeEntryFile(path string, data []byte, cfg Config, rc readConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if cfg.Backup {
		bak, err := backupFile(path, cfg.BackupDir)
		if err != nil {
			return err
		}
		if bak != "" {
			rc.logger.Info("backed up", "path", path, "backup", bak)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
