package segments

import "errors"

var (
	// ErrEmptyRange: end is not after start.
	ErrEmptyRange = errors.New("end must be after start")
	// ErrNoSegments: the batch is empty.
	ErrNoSegments = errors.New("no segments requested")
	// ErrDuplicateRange: the same start/end pair was requested twice.
	ErrDuplicateRange = errors.New("duplicate segment range")
	// ErrNotRegular: the source is missing or not a regular file.
	ErrNotRegular = errors.New("source is not a regular file")
	// ErrNoTimestamp: neither birth nor modification time is usable.
	ErrNoTimestamp = errors.New("source has no usable timestamp")
)
