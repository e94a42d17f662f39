package md1img

import "errors"

var (
	ErrFormat        = errors.New("md1img: not an MD1 image")
	ErrTruncated     = errors.New("md1img: truncated image")
	ErrCorruptEntry  = errors.New("md1img: corrupt entry")
	ErrCompression   = errors.New("md1img: bad compressed stream")
	ErrDuplicateName = errors.New("md1img: duplicate entry name")
	ErrEntryNotFound = errors.New("md1img: entry not found")
	ErrConfig        = errors.New("md1img: invalid configuration")
	ErrLimitExceeded = errors.New("md1img: limit exceeded")
)
