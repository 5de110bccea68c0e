package scheduler

import "errors"

// ErrNoPersister is reported by Load when the scheduler runs purely in memory.
var ErrNoPersister = errors.New("no persister configured")
