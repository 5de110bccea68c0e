package scheduler

import "fmt"

// Persister stores dated snapshots for the scheduler.
//
// Load never fails the caller. When nothing usable is stored it returns an
// empty snapshot for today, saves it immediately, and explains the
// substitution in the report. Save reports its outcome instead of returning
// an error so that a storage fault cannot abort a queue operation.
type Persister interface {
	Load(today Date) (Snapshot, LoadReport)
	Save(s Snapshot) SaveOutcome
}

// SaveOutcome is the result of a Save. The zero value means success.
type SaveOutcome struct {
	Err error
}

// OK reports whether the save succeeded.
func (o SaveOutcome) OK() bool { return o.Err == nil }

func (o SaveOutcome) String() string {
	if o.Err == nil {
		return "ok"
	}
	return fmt.Sprintf("failed: %v", o.Err)
}

// LoadReport describes how Load arrived at its snapshot.
type LoadReport struct {
	// Restored is set when today's stored snapshot was used as is.
	Restored bool
	// Discarded holds the reason stored state was not used. It is nil when
	// Restored is set.
	Discarded error
	// Saved is the outcome of persisting the fresh snapshot. It is the zero
	// value when Restored is set.
	Saved SaveOutcome
}

// SeverityHook receives one call per served patient so that an external
// histogram can drop the served severity. Implementations must clamp at zero.
type SeverityHook interface {
	DecrementSeverity(severity int)
}

// memoryPersister keeps nothing. It backs a Scheduler created without a
// Persister.
type memoryPersister struct{}

func (memoryPersister) Load(today Date) (Snapshot, LoadReport) {
	return EmptySnapshot(today), LoadReport{Discarded: ErrNoPersister}
}

func (memoryPersister) Save(Snapshot) SaveOutcome { return SaveOutcome{} }
