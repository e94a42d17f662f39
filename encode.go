package md1img

import (
	"bytes"
	"fmt"
)

// Serialize renders img as container bytes: for every entry, the fixed
// header, the stored payload, then zero padding up to the next 16-byte
// boundary. The mapping entry is always written last; no trailing
// sentinel follows it, since the absence of further valid magic marks
// the end of the entry table.
//
// Output is byte-identical across repeated invocations for the same
// image; nothing time-dependent enters the stream.
func Serialize(img *Image) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range img.entries {
		if err := writeEntry(&buf, e); err != nil {
			return nil, err
		}
	}
	mapPayload := encodeFileMap(img.mapping)
	mapEntry := &Entry{
		Name:       MapFileName,
		StoredSize: uint32(len(mapPayload)),
		Data:       mapPayload,
	}
	if err := writeEntry(&buf, mapEntry); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntry(buf *bytes.Buffer, e *Entry) error {
	if int(e.StoredSize) != len(e.Data) {
		return fmt.Errorf("%w: %q payload is %d bytes, header declares %d",
			ErrCorruptEntry, e.Name, len(e.Data), e.StoredSize)
	}
	if len(e.Name) > nameSize-1 {
		return fmt.Errorf("%w: entry name %q exceeds %d bytes", ErrFormat, e.Name, nameSize-1)
	}
	h := encodeEntryHeader(e)
	buf.Write(h[:])
	buf.Write(e.Data)
	if pad := align(buf.Len()) - buf.Len(); pad > 0 {
		buf.Write(make([]byte, pad))
	}
	return nil
}
