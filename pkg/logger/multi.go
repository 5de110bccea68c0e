package logger

// MultiLogger fans every message out to several backends. The daemon uses it
// to write to the console and the log file at once.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger writing to all of loggers in order. Nil
// entries are skipped so optional backends can be passed unconditionally.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{loggers: make([]Logger, 0, len(loggers))}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) each(f func(Logger)) {
	for _, l := range m.loggers {
		f(l)
	}
}

// Info writes to every backend.
func (m *MultiLogger) Info(format string, args ...interface{}) {
	m.each(func(l Logger) { l.Info(format, args...) })
}

func (m *MultiLogger) Warning(format string, args ...interface{}) {
	m.each(func(l Logger) { l.Warning(format, args...) })
}

// Error writes to every backend, in the order they were given to
// NewMultiLogger.
func (m *MultiLogger) Error(format string, args ...interface{}) {
	m.each(func(l Logger) { l.Error(format, args...) })
}

// Close closes every backend, even after a failure, and returns the first
// error.
func (m *MultiLogger) Close() error {
	var first error
	m.each(func(l Logger) {
		if err := l.Close(); err != nil && first == nil {
			first = err
		}
	})
	return first
}

var _ Logger = (*MultiLogger)(nil)
