package md1img

import "fmt"

// Image is an in-memory MD1 container: an ordered sequence of entries
// (order is the on-disk order) plus the decoded filename mapping.
//
// The mapping entry itself is never part of the regular listing; it is
// decoded into the mapping on Parse and re-synthesized as the last
// entry on Serialize.
//
// An Image is not safe for concurrent mutation.
type Image struct {
	entries []*Entry
	mapping map[string]string // internal name -> external name
}

func NewImage() *Image {
	return &Image{mapping: make(map[string]string)}
}

// Names returns the internal entry names in on-disk order. The mapping
// entry is excluded.
func (img *Image) Names() []string {
	names := make([]string, len(img.entries))
	for i, e := range img.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns the regular entries in on-disk order. The returned
// slice must not be mutated.
func (img *Image) Entries() []*Entry {
	return img.entries
}

// Get returns the entry with the given internal name.
func (img *Image) Get(name string) (*Entry, error) {
	for _, e := range img.entries {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, name)
}

// Add appends e to the container. An entry named MapFileName replaces
// the mapping instead of joining the listing. Internal names of regular
// entries must be unique.
func (img *Image) Add(e *Entry) error {
	if len(e.Name) > nameSize-1 {
		return fmt.Errorf("%w: entry name %q exceeds %d bytes", ErrFormat, e.Name, nameSize-1)
	}
	if e.StoredSize == 0 && len(e.Data) > 0 {
		e.StoredSize = uint32(len(e.Data))
	}
	if int(e.StoredSize) != len(e.Data) {
		return fmt.Errorf("%w: %q payload is %d bytes, header declares %d",
			ErrCorruptEntry, e.Name, len(e.Data), e.StoredSize)
	}
	if e.Name == MapFileName {
		img.mapping = decodeFileMap(e.Data, nil)
		return nil
	}
	for _, existing := range img.entries {
		if existing.Name == e.Name {
			return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
	}
	img.entries = append(img.entries, e)
	return nil
}

// Mapping returns a copy of the internal-to-external name table.
func (img *Image) Mapping() map[string]string {
	m := make(map[string]string, len(img.mapping))
	for k, v := range img.mapping {
		m[k] = v
	}
	return m
}

// SetMapping records an internal-to-external name pair.
func (img *Image) SetMapping(internal, external string) {
	img.mapping[internal] = external
}

// ExternalName resolves name through the mapping, falling back to the
// internal name when no pair exists.
func (img *Image) ExternalName(name string) string {
	if ext, ok := img.mapping[name]; ok {
		return ext
	}
	return name
}

// Len returns the number of regular entries.
func (img *Image) Len() int {
	return len(img.entries)
}
