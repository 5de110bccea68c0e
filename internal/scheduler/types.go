package scheduler

import (
	"fmt"
	"time"
)

// WaitingEntry is a patient waiting to be served.
// Entries are values and are never modified after creation.
type WaitingEntry struct {
	Severity   int
	Sequence   int
	Name       string
	Department string
}

// less reports whether e is served before o.
func (e WaitingEntry) less(o WaitingEntry) bool {
	if e.Severity != o.Severity {
		return e.Severity < o.Severity
	}
	return e.Sequence < o.Sequence
}

// ServedRecord is an entry of the served log.
type ServedRecord struct {
	Name       string
	Severity   int
	Department string
	ServedAt   time.Time
}

// ServiceResult is returned by ServeNext. Empty is set when nobody was
// waiting, in which case Record is the zero value.
type ServiceResult struct {
	Empty  bool
	Record ServedRecord
}

// String renders the result the way the front desk announces it.
func (r ServiceResult) String() string {
	if r.Empty {
		return "No patients in queue."
	}
	return fmt.Sprintf("Serving: %s (Severity: %d, Department: %s)",
		r.Record.Name, r.Record.Severity, r.Record.Department)
}

// Snapshot is the complete persisted state for one calendar day.
type Snapshot struct {
	Date    Date
	Waiting []WaitingEntry
	Counter int
	Served  []ServedRecord
}

// EmptySnapshot returns the state of a queue nobody has touched on day d.
func EmptySnapshot(d Date) Snapshot {
	return Snapshot{
		Date:    d,
		Waiting: []WaitingEntry{},
		Served:  []ServedRecord{},
	}
}

// Equal reports whether two snapshots hold the same state.
// Served timestamps are compared with time.Time.Equal.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Date != o.Date || s.Counter != o.Counter ||
		len(s.Waiting) != len(o.Waiting) || len(s.Served) != len(o.Served) {
		return false
	}
	for i := range s.Waiting {
		if s.Waiting[i] != o.Waiting[i] {
			return false
		}
	}
	for i, r := range s.Served {
		q := o.Served[i]
		if r.Name != q.Name || r.Severity != q.Severity ||
			r.Department != q.Department || !r.ServedAt.Equal(q.ServedAt) {
			return false
		}
	}
	return true
}
