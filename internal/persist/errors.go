package persist

import "errors"

var (
	// ErrNotFound is returned by a Backend when nothing has been stored yet.
	ErrNotFound = errors.New("no snapshot stored")
	// ErrStale reports a stored snapshot that belongs to another day.
	ErrStale = errors.New("snapshot is not from today")
	// ErrCorrupt wraps documents that cannot be decoded.
	ErrCorrupt = errors.New("snapshot is corrupt")
)
