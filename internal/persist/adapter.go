package persist

import (
	"errors"
	"fmt"

	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

// Adapter implements scheduler.Persister on top of a Backend.
type Adapter struct {
	backend Backend
	log     logger.Logger
}

var _ scheduler.Persister = (*Adapter)(nil)

// history is implemented by backends that keep one snapshot per day.
type history interface {
	Days() ([]scheduler.Date, error)
}

// NewAdapter wraps b. A nil logger discards diagnostics.
func NewAdapter(b Backend, l logger.Logger) *Adapter {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Adapter{backend: b, log: l}
}

// Load returns the stored snapshot when it is dated today. A missing,
// unreadable or stale snapshot is replaced by an empty one for today, which
// is saved before Load returns.
func (a *Adapter) Load(today scheduler.Date) (scheduler.Snapshot, scheduler.LoadReport) {
	a.logHistory()
	snap, err := a.backend.Read()
	if err == nil && snap.Date == today {
		return snap, scheduler.LoadReport{Restored: true}
	}
	if err == nil {
		err = fmt.Errorf("%w: stored %s, today %s", ErrStale, snap.Date, today)
	}
	if !errors.Is(err, ErrNotFound) {
		a.log.Warning("persist: discarding stored snapshot: %v", err)
	}

	fresh := scheduler.EmptySnapshot(today)
	return fresh, scheduler.LoadReport{
		Discarded: err,
		Saved:     a.Save(fresh),
	}
}

func (a *Adapter) logHistory() {
	h, ok := a.backend.(history)
	if !ok {
		return
	}
	days, err := h.Days()
	switch {
	case err != nil:
		a.log.Warning("persist: list stored days: %v", err)
	case len(days) > 0:
		a.log.Info("persist: %d day(s) on record, %s to %s", len(days), days[0], days[len(days)-1])
	}
}

// Save writes s. Failures are returned in the outcome, never raised.
func (a *Adapter) Save(s scheduler.Snapshot) scheduler.SaveOutcome {
	if err := a.backend.Write(s); err != nil {
		return scheduler.SaveOutcome{Err: err}
	}
	return scheduler.SaveOutcome{}
}

// Close releases the backend.
func (a *Adapter) Close() error {
	return a.backend.Close()
}
