package persist

import "github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"

// Backend stores the most recent snapshot.
// Read returns ErrNotFound when nothing was written yet and an error wrapping
// ErrCorrupt when the stored document cannot be decoded.
type Backend interface {
	Read() (scheduler.Snapshot, error)
	Write(s scheduler.Snapshot) error
	Close() error
}
