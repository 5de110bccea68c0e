// Package daemon runs the hms service: it owns the listener, hands it to the
// HTTP server and coordinates a graceful shutdown.
package daemon

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"
)

var (
	// ErrAlreadyRunning is returned when Start() is called on a running daemon.
	ErrAlreadyRunning = errors.New("daemon is already running")

	// ErrNotRunning is returned when Shutdown() is called on a stopped daemon.
	ErrNotRunning = errors.New("daemon is not running")

	// ErrShutdownTimeout is returned when shutdown exceeds the configured timeout.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// DefaultAddr is used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:3850"

// Config holds the configuration for the daemon runner.
type Config struct {
	// Addr is the TCP address to listen on. Port 0 picks an ephemeral port.
	Addr string

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// A zero value means no timeout.
	ShutdownTimeout time.Duration
}

// Dependencies holds the pluggable parts of the runner.
type Dependencies struct {
	// ListenerFactory creates network listeners.
	// If nil, net.Listen is used.
	ListenerFactory func(network, address string) (net.Listener, error)

	// Serve is run on the listener in its own goroutine. It should return
	// once the listener is closed. If nil, the listener is only held open.
	Serve func(net.Listener) error

	// ShutdownFunc is called during shutdown to clean up resources.
	ShutdownFunc func() error
}

// Runner manages the daemon lifecycle.
type Runner struct {
	config   *Config
	deps     *Dependencies
	running  bool
	mu       sync.Mutex
	cancel   context.CancelFunc
	listener net.Listener
}

// New creates a runner. Nil arguments select defaults.
func New(config *Config, deps *Dependencies) *Runner {
	if config == nil {
		config = &Config{}
	}
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if deps == nil {
		deps = &Dependencies{}
	}
	if deps.ListenerFactory == nil {
		deps.ListenerFactory = net.Listen
	}
	return &Runner{config: config, deps: deps}
}

func (r *Runner) Config() *Config {
	return r.config
}

// Addr returns the bound address, or nil when not running.
func (r *Runner) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return nil
	}
	return r.listener.Addr()
}

// Start listens, runs Serve and blocks until the context is canceled or
// Serve fails. Returns ErrAlreadyRunning if the daemon is already started.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}

	ctx, r.cancel = context.WithCancel(ctx)

	// Create listener BEFORE setting running=true to avoid race condition
	listener, err := r.deps.ListenerFactory("tcp", r.config.Addr)
	if err != nil {
		r.cancel()
		r.mu.Unlock()
		return err
	}
	r.listener = listener
	r.running = true
	r.mu.Unlock()

	serveErr := make(chan error, 1)
	if r.deps.Serve != nil {
		go func() { serveErr <- r.deps.Serve(listener) }()
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-serveErr:
	}

	r.cleanupOnStop()
	return err
}

func (r *Runner) cleanupOnStop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
	r.closeListener()
}

// closeListener closes the listener if it exists. Caller must hold the mutex.
func (r *Runner) closeListener() {
	if r.listener != nil {
		_ = r.listener.Close()
		r.listener = nil
	}
}

// Shutdown gracefully stops the daemon.
// Returns ErrNotRunning if the daemon is not running.
// Returns ErrShutdownTimeout if the shutdown function exceeds the configured timeout.
func (r *Runner) Shutdown() error {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()
	if !running {
		return ErrNotRunning
	}

	if err := r.executeShutdownFunc(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
	r.closeListener()
	return nil
}

func (r *Runner) executeShutdownFunc() error {
	if r.deps.ShutdownFunc == nil {
		return nil
	}
	if r.config.ShutdownTimeout <= 0 {
		return r.deps.ShutdownFunc()
	}

	done := make(chan error, 1)
	go func() {
		done <- r.deps.ShutdownFunc()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.config.ShutdownTimeout):
		r.forceStop()
		return ErrShutdownTimeout
	}
}

// forceStop stops the daemon without waiting for cleanup.
func (r *Runner) forceStop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
}

// IsRunning returns true if the daemon is currently running.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
