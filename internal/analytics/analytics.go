// Package analytics keeps the admission histogram: how many patients of each
// severity are currently accounted for, and how many visits each department
// has seen since the last reset.
package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

// Severity bounds used when Options leaves them unset.
const (
	DefaultMinSeverity = 1  // most urgent
	DefaultMaxSeverity = 10 // least urgent
)

// Options configures a Tracker.
type Options struct {
	// Fs and Path locate the persisted histogram. A nil Fs keeps the
	// histogram in memory.
	Fs   afero.Fs
	Path string
	// MinSeverity and MaxSeverity bound the tracked range. Zero values
	// select 1 and 10.
	MinSeverity int
	MaxSeverity int
	Logger      logger.Logger
}

// Tracker is the severity histogram. It is safe for concurrent use and
// satisfies the scheduler's SeverityHook.
type Tracker struct {
	mu       sync.Mutex
	fs       afero.Fs
	path     string
	min, max int
	severity map[int]int
	depts    map[string]int
	log      logger.Logger
}

type document struct {
	Severity    map[int]int    `json:"severity"`
	Departments map[string]int `json:"departments"`
}

// New creates a Tracker and loads the persisted histogram. An unreadable
// file yields a zeroed histogram.
func New(opts Options) *Tracker {
	t := &Tracker{
		fs:   opts.Fs,
		path: opts.Path,
		min:  opts.MinSeverity,
		max:  opts.MaxSeverity,
		log:  opts.Logger,
	}
	if t.min == 0 && t.max == 0 {
		t.min, t.max = DefaultMinSeverity, DefaultMaxSeverity
	}
	if t.log == nil {
		t.log = logger.NewNopLogger()
	}
	t.zero()
	if err := t.load(); err != nil {
		t.log.Warning("analytics: starting with an empty histogram: %v", err)
	}
	return t
}

func (t *Tracker) zero() {
	t.severity = make(map[int]int, t.max-t.min+1)
	for s := t.min; s <= t.max; s++ {
		t.severity[s] = 0
	}
	t.depts = make(map[string]int)
}

func (t *Tracker) inRange(severity int) bool {
	return severity >= t.min && severity <= t.max
}

func (t *Tracker) load() error {
	if t.fs == nil {
		return nil
	}
	data, err := afero.ReadFile(t.fs, t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", t.path, err)
	}
	for s, n := range doc.Severity {
		if t.inRange(s) && n > 0 {
			t.severity[s] = n
		}
	}
	for d, n := range doc.Departments {
		if n > 0 {
			t.depts[d] = n
		}
	}
	return nil
}

// saveLocked writes the histogram. Failures are logged and the in-memory
// state is kept.
func (t *Tracker) saveLocked() {
	if t.fs == nil {
		return
	}
	data, err := json.Marshal(document{Severity: t.severity, Departments: t.depts})
	if err == nil {
		err = t.fs.MkdirAll(filepath.Dir(t.path), 0o755)
	}
	if err == nil {
		err = afero.WriteFile(t.fs, t.path, data, 0o644)
	}
	if err != nil {
		t.log.Warning("analytics: save %s failed: %v", t.path, err)
	}
}

// IncrementSeverity records an admission. Out of range severities are ignored.
func (t *Tracker) IncrementSeverity(department string, severity int) {
	if !t.inRange(severity) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.severity[severity]++
	if department != "" {
		t.depts[department]++
	}
	t.saveLocked()
}

// DecrementSeverity records a served patient. The bucket never drops below
// zero and out of range severities are ignored.
func (t *Tracker) DecrementSeverity(severity int) {
	if !t.inRange(severity) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.severity[severity] == 0 {
		return
	}
	t.severity[severity]--
	t.saveLocked()
}

// Severity returns a copy of the histogram with every bucket present.
func (t *Tracker) Severity() map[int]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[int]int, len(t.severity))
	for k, v := range t.severity {
		out[k] = v
	}
	return out
}

// Departments returns a copy of the per-department visit counts.
func (t *Tracker) Departments() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.depts))
	for k, v := range t.depts {
		out[k] = v
	}
	return out
}

// Range returns the tracked severity bounds.
func (t *Tracker) Range() (lo, hi int) {
	return t.min, t.max
}

// Reset zeroes every counter and persists the result.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.zero()
	t.saveLocked()
}
