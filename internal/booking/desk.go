// Package booking is the admission desk in front of the scheduler. It
// validates requests, refuses duplicates and keeps the analytics histogram in
// step with admissions.
package booking

import (
	"fmt"
	"strings"
	"sync"

	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

// DefaultDepartments are accepted when no department list is configured.
var DefaultDepartments = []string{
	"Emergency",
	"Cardiology",
	"Pediatrics",
	"Surgery",
	"General Medicine",
	"Addiction control",
}

// Rules bounds what the desk accepts. An empty Departments list accepts any
// non-empty department.
type Rules struct {
	MinSeverity int
	MaxSeverity int
	Departments []string
}

// Recorder is the admission side of the analytics histogram.
type Recorder interface {
	IncrementSeverity(department string, severity int)
	Reset()
}

// Desk admits patients into a Scheduler.
type Desk struct {
	mu    sync.Mutex
	sched *scheduler.Scheduler
	stats Recorder
	rules Rules
	log   logger.Logger
}

// NewDesk returns a desk in front of s. stats may be nil.
func NewDesk(s *scheduler.Scheduler, stats Recorder, rules Rules, l logger.Logger) *Desk {
	if rules.MinSeverity == 0 && rules.MaxSeverity == 0 {
		rules.MinSeverity, rules.MaxSeverity = 1, 10
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Desk{sched: s, stats: stats, rules: rules, log: l}
}

// Scheduler returns the scheduler behind the desk.
func (d *Desk) Scheduler() *scheduler.Scheduler { return d.sched }

// Admit validates the request and queues the patient. The department is
// matched case-insensitively against the configured list and stored in its
// configured spelling.
func (d *Desk) Admit(name string, severity int, department string) (scheduler.WaitingEntry, error) {
	name = strings.TrimSpace(name)
	department = strings.TrimSpace(department)

	if name == "" {
		return scheduler.WaitingEntry{}, &InputError{Field: "name", Reason: "must not be empty"}
	}
	if severity < d.rules.MinSeverity || severity > d.rules.MaxSeverity {
		return scheduler.WaitingEntry{}, &InputError{
			Field:  "severity",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", d.rules.MinSeverity, d.rules.MaxSeverity, severity),
		}
	}
	department, err := d.department(department)
	if err != nil {
		return scheduler.WaitingEntry{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range d.sched.ListWaiting() {
		if e.Name == name && e.Department == department {
			return scheduler.WaitingEntry{}, fmt.Errorf("%w for %s in %s", ErrDuplicate, name, department)
		}
	}
	entry := d.sched.AddPatient(name, severity, department)
	if d.stats != nil {
		d.stats.IncrementSeverity(department, severity)
	}
	d.log.Info("booking: admitted %s (severity %d) to %s as #%d", name, severity, department, entry.Sequence)
	return entry, nil
}

func (d *Desk) department(dept string) (string, error) {
	if dept == "" {
		return "", &InputError{Field: "department", Reason: "must not be empty"}
	}
	if len(d.rules.Departments) == 0 {
		return dept, nil
	}
	for _, known := range d.rules.Departments {
		if strings.EqualFold(known, dept) {
			return known, nil
		}
	}
	return "", &InputError{
		Field:  "department",
		Reason: fmt.Sprintf("unknown department %q (known: %s)", dept, strings.Join(d.rules.Departments, ", ")),
	}
}

// ServeNext serves the most urgent waiting patient.
func (d *Desk) ServeNext() scheduler.ServiceResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	res := d.sched.ServeNext()
	if !res.Empty {
		d.log.Info("booking: %s", res)
	}
	return res
}

// ResetQueue empties the queue and the served log and leaves the histogram
// alone.
func (d *Desk) ResetQueue() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sched.ResetDay()
}

// Rollover resets the queue if the calendar day has changed.
func (d *Desk) Rollover() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sched.Rollover()
}

// ClearHistory empties the queue, the served log and the histogram.
func (d *Desk) ClearHistory() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sched.ResetDay()
	if d.stats != nil {
		d.stats.Reset()
	}
}
