package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"time"

	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

// Options configures a Scheduler. Every field is optional.
type Options struct {
	// Persister stores snapshots. Nil keeps the queue in memory only.
	Persister Persister
	// Hook is told about every served severity. Nil disables the callback.
	// Hooks run while the scheduler lock is held and must not call back
	// into the Scheduler.
	Hook SeverityHook
	// Now is the clock used for served timestamps and the calendar day.
	Now func() time.Time
	// Logger receives persistence and rollover diagnostics.
	Logger logger.Logger
}

// Scheduler owns the waiting heap, the sequence counter and the served log.
// All methods are safe for concurrent use; mutations are serialized so the
// heap, the counter and the persisted snapshot always move together.
type Scheduler struct {
	mu       sync.Mutex
	waiting  waitingHeap
	counter  int
	served   []ServedRecord
	day      Date
	store    Persister
	hook     SeverityHook
	now      func() time.Time
	log      logger.Logger
	lastSave SaveOutcome
	loaded   LoadReport
}

// New creates a Scheduler seeded from the persister's snapshot for today.
// Load is called exactly once.
func New(opts Options) *Scheduler {
	s := &Scheduler{
		store: opts.Persister,
		hook:  opts.Hook,
		now:   opts.Now,
		log:   opts.Logger,
	}
	if s.store == nil {
		s.store = memoryPersister{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.NewNopLogger()
	}

	today := DateOf(s.now())
	snap, report := s.store.Load(today)
	s.loaded = report
	s.lastSave = report.Saved
	switch {
	case report.Restored:
		s.log.Info("scheduler: restored %d waiting, %d served for %s", len(snap.Waiting), len(snap.Served), snap.Date)
	case report.Discarded != nil && !errors.Is(report.Discarded, ErrNoPersister):
		s.log.Warning("scheduler: starting empty for %s: %v", today, report.Discarded)
	}
	if !report.Saved.OK() {
		s.log.Warning("scheduler: could not persist fresh snapshot: %v", report.Saved.Err)
	}
	s.restore(snap)
	return s
}

// restore replaces the in-memory state with snap.
func (s *Scheduler) restore(snap Snapshot) {
	s.day = snap.Date
	s.waiting = make(waitingHeap, len(snap.Waiting))
	copy(s.waiting, snap.Waiting)
	heap.Init(&s.waiting)

	// Never hand out a sequence that is already on the heap, even if the
	// stored counter lags behind.
	next := snap.Counter
	for _, e := range snap.Waiting {
		if e.Sequence >= next {
			next = e.Sequence + 1
		}
	}
	s.counter = next

	s.served = make([]ServedRecord, len(snap.Served))
	copy(s.served, snap.Served)
}

// AddPatient queues a patient and returns the created entry.
// Input is expected to be validated by the caller.
func (s *Scheduler) AddPatient(name string, severity int, department string) WaitingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := WaitingEntry{
		Severity:   severity,
		Sequence:   s.counter,
		Name:       name,
		Department: department,
	}
	s.counter++
	heapPush(&s.waiting, e)
	s.persistLocked()
	return e
}

// ServeNext removes the entry with the smallest (severity, sequence) key and
// appends it to the served log. An empty queue yields a result with Empty set.
func (s *Scheduler) ServeNext() ServiceResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.waiting.Len() == 0 {
		return ServiceResult{Empty: true}
	}
	e := heapPop(&s.waiting)
	rec := ServedRecord{
		Name:       e.Name,
		Severity:   e.Severity,
		Department: e.Department,
		ServedAt:   s.now().Local().Truncate(time.Second),
	}
	s.served = append(s.served, rec)
	if s.hook != nil {
		s.hook.DecrementSeverity(e.Severity)
	}
	s.persistLocked()
	return ServiceResult{Record: rec}
}

// ListWaiting returns the waiting entries in service order.
func (s *Scheduler) ListWaiting() []WaitingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting.sortedCopy()
}

// ListServed returns the served log in service order.
func (s *Scheduler) ListServed() []ServedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ServedRecord, len(s.served))
	copy(out, s.served)
	return out
}

// ResetDay discards every waiting entry and the served log and restarts the
// sequence counter at zero.
func (s *Scheduler) ResetDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Info("scheduler: reset with %d waiting, %d served", s.waiting.Len(), len(s.served))
	s.restore(EmptySnapshot(DateOf(s.now())))
	s.persistLocked()
}

// Rollover applies the date-scoped validity rule to a running scheduler.
// When the calendar day has changed since the state was recorded the state
// is discarded exactly like a stale snapshot at load time. It reports
// whether a rollover happened.
func (s *Scheduler) Rollover() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := DateOf(s.now())
	if today == s.day {
		return false
	}
	s.log.Info("scheduler: day changed %s -> %s, dropping %d waiting, %d served",
		s.day, today, s.waiting.Len(), len(s.served))
	s.restore(EmptySnapshot(today))
	s.persistLocked()
	return true
}

// Snapshot returns a copy of the current state, waiting entries in service order.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Day returns the calendar day the current state belongs to.
func (s *Scheduler) Day() Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

// Len returns the number of waiting entries.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting.Len()
}

// LastSave returns the outcome of the most recent save.
func (s *Scheduler) LastSave() SaveOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSave
}

// LoadReport returns how the initial state was obtained.
func (s *Scheduler) LoadReport() LoadReport {
	return s.loaded
}

func (s *Scheduler) snapshotLocked() Snapshot {
	served := make([]ServedRecord, len(s.served))
	copy(served, s.served)
	return Snapshot{
		Date:    s.day,
		Waiting: s.waiting.sortedCopy(),
		Counter: s.counter,
		Served:  served,
	}
}

// persistLocked writes the current state. A failed save leaves the
// in-memory state untouched; the next successful save catches up.
func (s *Scheduler) persistLocked() {
	out := s.store.Save(s.snapshotLocked())
	if !out.OK() && s.lastSave.OK() {
		s.log.Warning("scheduler: save failed, continuing in memory: %v", out.Err)
	} else if out.OK() && !s.lastSave.OK() {
		s.log.Info("scheduler: saves recovered")
	}
	s.lastSave = out
}
