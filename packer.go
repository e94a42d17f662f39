package md1img

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type packSource struct {
	path string
	name string // logical name
}

// Packer accumulates source files and builds container images from
// them. Packing is strict: any source read failure aborts the whole
// operation, because a container cannot be partially valid.
//
// A Packer is not safe for concurrent use.
type Packer struct {
	cfg     Config
	wc      writeConfig
	sources []packSource
	meta    map[string]entryMeta
}

func NewPacker(cfg Config, opts ...WriteOption) *Packer {
	return &Packer{
		cfg:  cfg,
		wc:   newWriteConfig(opts),
		meta: make(map[string]entryMeta),
	}
}

// AddSource registers a file for packing under the given logical name.
// An empty logical name defaults to the file's base name.
func (p *Packer) AddSource(path, logicalName string) error {
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("add source: %w", err)
	}
	if !st.Mode().IsRegular() {
		return fmt.Errorf("add source %s: not a regular file", path)
	}
	if logicalName == "" {
		logicalName = filepath.Base(path)
	}
	p.sources = append(p.sources, packSource{path: path, name: logicalName})
	p.wc.logger.Debug("added source", "path", path, "name", logicalName)
	return nil
}

// AddDirectory registers every regular file in dir. A meta_info sidecar
// is loaded to restore header fields; it and any md1_file_map sidecar
// are not packed as entries.
func (p *Packer) AddDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("add directory: %w", err)
	}
	for _, de := range entries {
		if !de.Type().IsRegular() {
			continue
		}
		switch de.Name() {
		case MetaInfoName:
			raw, err := os.ReadFile(filepath.Join(dir, de.Name()))
			if err != nil {
				return fmt.Errorf("read %s: %w", MetaInfoName, err)
			}
			p.meta = parseMetaInfo(raw)
			p.wc.logger.Debug("loaded meta info", "entries", len(p.meta))
		case MapFileName:
			// Regenerated at build time from the logical names.
		default:
			if err := p.AddSource(filepath.Join(dir, de.Name()), de.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build assembles the container model. Sources are processed in
// lexicographic order of their logical names so that packing the same
// input twice yields byte-identical output. Each payload is compressed
// per the packer's configuration; the on-disk name gains the matching
// suffix. The filename mapping is recorded for every entry and is
// serialized as the final md1_file_map entry.
//
// An empty source set builds a container holding only the mapping
// entry.
func (p *Packer) Build() (*Image, error) {
	sources := make([]packSource, len(p.sources))
	copy(sources, p.sources)
	sort.Slice(sources, func(i, j int) bool { return sources[i].name < sources[j].name })

	img := NewImage()
	for _, src := range sources {
		raw, err := os.ReadFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("read source %q: %w", src.name, err)
		}
		payload, err := compressPayload(p.cfg.Compression, raw)
		if err != nil {
			return nil, err
		}
		internal := src.name + p.cfg.Compression.suffix()
		e := &Entry{
			Name:             internal,
			UncompressedSize: uint32(len(raw)),
			StoredSize:       uint32(len(payload)),
			Compression:      p.cfg.Compression,
			Data:             payload,
		}
		if m, ok := p.meta[internal]; ok {
			e.Base, e.Mode, e.HdrVersion = m.Base, m.Mode, m.HdrVersion
		}
		if err := img.Add(e); err != nil {
			return nil, err
		}
		img.SetMapping(internal, src.name)
		p.wc.logger.Debug("packed entry",
			"name", internal, "stored", len(payload), "uncompressed", len(raw),
			"compression", p.cfg.Compression.String())
	}
	return img, nil
}

// WriteFile serializes img and writes it to path. Under DryRun the
// layout is computed and logged but nothing is written; under Backup a
// pre-existing file at path is copied aside first. The image is staged
// through a temporary file so a failed pack never leaves a partially
// written container behind.
func (p *Packer) WriteFile(img *Image, path string) error {
	data, err := Serialize(img)
	if err != nil {
		return err
	}
	if p.cfg.DryRun {
		p.wc.logger.Info("dry run: would write image",
			"path", path, "bytes", len(data), "entries", img.Len())
		return nil
	}
	if p.cfg.Backup {
		bak, err := backupFile(path, p.cfg.BackupDir)
		if err != nil {
			return err
		}
		if bak != "" {
			p.wc.logger.Info("backed up", "path", path, "backup", bak)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	p.wc.logger.Info("wrote image", "path", path, "bytes", len(data), "entries", img.Len())
	return nil
}
