// Package rollover runs the daily reset of the admission queue.
//
// A Watcher sleeps until the next occurrence of a cron expression (midnight by
// default), never longer than a minute at a time so clock jumps are noticed,
// and then asks its target to roll over. The target decides whether the day
// actually changed.
package rollover

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

const maxSleepCap = 60 * time.Second

// Target is rolled over when the cron expression fires.
type Target interface {
	Rollover() bool
}

// Options configures a Watcher.
type Options struct {
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger logger.Logger
	// OnRollover runs after the target reported a rollover.
	OnRollover func()
}

// Watcher fires Target.Rollover on a cron schedule.
type Watcher struct {
	expr   string
	target Target
	now    func() time.Time
	log    logger.Logger
	notify func()
	next   time.Time
}

// New validates expr and returns a Watcher for target.
func New(expr string, target Target, opts Options) (*Watcher, error) {
	if !gronx.New().IsValid(expr) {
		return nil, fmt.Errorf("invalid cron expression %q", expr)
	}
	w := &Watcher{
		expr:   expr,
		target: target,
		now:    opts.Now,
		log:    opts.Logger,
		notify: opts.OnRollover,
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.log == nil {
		w.log = logger.NewNopLogger()
	}
	return w, nil
}

// Next returns the next scheduled firing, computing it on first use.
func (w *Watcher) Next() (time.Time, error) {
	if w.next.IsZero() {
		next, err := gronx.NextTickAfter(w.expr, w.now(), false)
		if err != nil {
			return time.Time{}, err
		}
		w.next = next
	}
	return w.next, nil
}

// Run blocks until ctx is done. It must not be called concurrently with
// itself or Check.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		next, err := w.Next()
		if err != nil {
			w.log.Error("rollover: no next occurrence for %q: %v", w.expr, err)
			return
		}
		dur := next.Sub(w.now())
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		if timer == nil {
			timer = time.NewTimer(dur)
		} else {
			timer.Reset(dur)
		}

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			w.Check()
		}
	}
}

// Check fires the target if the scheduled time has been reached and
// schedules the following occurrence. It reports whether the target rolled
// over.
func (w *Watcher) Check() bool {
	next, err := w.Next()
	if err != nil {
		return false
	}
	now := w.now()
	if now.Before(next) {
		return false
	}
	w.next = time.Time{}

	rolled := w.target.Rollover()
	if rolled {
		w.log.Info("rollover: queue reset for the new day")
		if w.notify != nil {
			w.notify()
		}
	}
	return rolled
}
