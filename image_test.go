package md1img

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestImageGet_NotFound(t *testing.T) {
	img := NewImage()
	if _, err := img.Get("nope"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestImageAdd_DuplicateName(t *testing.T) {
	img := NewImage()
	if err := img.Add(&Entry{Name: "a.bin", Data: []byte("a")}); err != nil {
		t.Fatal(err)
	}
	if err := img.Add(&Entry{Name: "a.bin", Data: []byte("b")}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestImageAdd_PayloadSizeMismatch(t *testing.T) {
	img := NewImage()
	err := img.Add(&Entry{Name: "a.bin", StoredSize: 10, Data: []byte("abc")})
	if !errors.Is(err, ErrCorruptEntry) {
		t.Fatalf("expected ErrCorruptEntry, got %v", err)
	}
}

func TestImageAdd_MapEntryFeedsMapping(t *testing.T) {
	img := NewImage()
	if err := img.Add(&Entry{Name: MapFileName, Data: []byte("md1rom\tmodem.img\n")}); err != nil {
		t.Fatal(err)
	}
	if img.Len() != 0 {
		t.Fatalf("mapping entry must not join the listing, Len() = %d", img.Len())
	}
	if got := img.ExternalName("md1rom"); got != "modem.img" {
		t.Fatalf("ExternalName = %q", got)
	}
}

func TestDecodeFileMap_SkipsMalformedRecords(t *testing.T) {
	payload := []byte("good\tok\nno-tab-here\n\t\n\n\tmissing-internal\n")
	m := decodeFileMap(payload, nil)
	want := map[string]string{"good": "ok"}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("decodeFileMap = %v, want %v", m, want)
	}
}

func TestEncodeFileMap_SortedAndParseable(t *testing.T) {
	m := map[string]string{"b.gz": "b", "a.gz": "a"}
	got := encodeFileMap(m)
	want := []byte("a.gz\ta\nb.gz\tb\n")
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeFileMap = %q, want %q", got, want)
	}
	if back := decodeFileMap(got, nil); !reflect.DeepEqual(back, m) {
		t.Fatalf("round trip = %v, want %v", back, m)
	}
}

func TestMetaInfoRoundTrip(t *testing.T) {
	entries := []*Entry{
		{Name: "b.bin", Base: 0x2000, Mode: 0x1, HdrVersion: 2},
		{Name: "a.bin", Base: 0x1000},
	}
	meta := parseMetaInfo(formatMetaInfo(entries))
	if len(meta) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(meta))
	}
	if meta["b.bin"] != (entryMeta{Base: 0x2000, Mode: 0x1, HdrVersion: 2}) {
		t.Fatalf("b.bin meta = %+v", meta["b.bin"])
	}
	if meta["a.bin"].Base != 0x1000 {
		t.Fatalf("a.bin meta = %+v", meta["a.bin"])
	}
}

func TestParseMetaInfo_IgnoresJunk(t *testing.T) {
	raw := []byte("garbage line\nname=a.bin\nbase=not-hex\nmode=0x5\n")
	meta := parseMetaInfo(raw)
	if meta["a.bin"] != (entryMeta{Mode: 0x5}) {
		t.Fatalf("meta = %+v", meta["a.bin"])
	}
}
