// Package md1img reads and writes MD1 firmware container images, the
// format MediaTek modems use to bundle their firmware files.
//
// # File Format Overview
//
// An MD1 image is a concatenation of entries. Each entry is:
//   - A 512-byte fixed header with two magic constants, a NUL-padded
//     name, the stored payload length, and passthrough fields
//   - The stored payload, possibly gzip- or xz-compressed
//   - Zero padding up to the next 16-byte boundary
//
// There is no trailing sentinel: the entry table ends where the next
// header's magic stops matching. A reserved entry named md1_file_map
// carries newline-delimited internal<TAB>external name records that
// translate in-container names to on-disk filenames.
//
// # Basic Usage
//
// To unpack an image:
//
//	data, _ := os.ReadFile("md1img.img")
//	img, err := md1img.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := md1img.Extract(img, "out", md1img.Config{})
//
// To pack a directory:
//
//	p := md1img.NewPacker(md1img.Config{Compression: md1img.CompGzip})
//	if err := p.AddDirectory("out"); err != nil {
//		log.Fatal(err)
//	}
//	img, err := p.Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = p.WriteFile(img, "md1img.img")
//
// Extraction is best effort: corrupt entries are recorded in the
// returned report while the remaining entries still extract. Packing
// is strict and aborts on the first failure, so a half-built container
// is never produced.
//
// # Security Considerations
//
// Parsing and extraction enforce configurable [Limits] on entry
// counts, stored sizes, and decompressed sizes to guard against
// oversized allocations and decompression bombs.
package md1img
