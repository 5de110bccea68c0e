package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/analytics"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/booking"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/config"
	idaemon "github.com/thedakshnailwal/Hospital-Management-System/internal/daemon"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/persist"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/rollover"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/server"
	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

// logFileName is the daemon log kept next to the configuration.
const logFileName = "daemon.log"

// DaemonComponents holds every initialized daemon component.
type DaemonComponents struct {
	Config    *config.Config
	Store     *persist.Adapter
	Stats     *analytics.Tracker
	Scheduler *scheduler.Scheduler
	Desk      *booking.Desk
	RPC       *server.RPCServer
	Web       *server.WebServer
	Rollover  *rollover.Watcher
	Runner    *idaemon.Runner

	logger  logger.Logger
	logFile io.Closer
}

// Run serves until ctx is canceled, running the rollover watcher alongside
// the HTTP server, then shuts the runner down.
func (c *DaemonComponents) Run(ctx context.Context) error {
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.Rollover.Run(rctx)

	c.logger.Info("daemon: serving %s on %s (store %s)",
		c.Scheduler.Day(), c.Config.Listen, c.Config.Store.Backend)
	errc := make(chan error, 1)
	go func() { errc <- c.Runner.Start(rctx) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	if err := c.Runner.Shutdown(); err != nil && !errors.Is(err, idaemon.ErrNotRunning) {
		c.logger.Warning("daemon: shutdown: %v", err)
	}
	err := <-errc
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// Close releases component resources in reverse order of initialization.
func (c *DaemonComponents) Close() {
	if c.RPC != nil {
		c.RPC.Close()
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil && c.logger != nil {
			c.logger.Error("daemon: close store: %v", err)
		}
	}
	if c.logger != nil {
		c.logger.Info("daemon: stopped")
		_ = c.logger.Close()
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}

// initDaemonComponents loads the configuration in dir and builds the
// component graph: config, logger, persistence, analytics, scheduler,
// booking desk, RPC server, rollover watcher and runner. On error every
// partially initialized component is released.
var initDaemonComponents = func(fsys afero.Fs, dir string, bArgs BuildArgs, console io.Writer) (*DaemonComponents, error) {
	cfg, err := config.Load(fsys, dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureSecret(fsys); err != nil {
		return nil, err
	}
	c := &DaemonComponents{Config: cfg}

	loggers := []logger.Logger{
		logger.NewSlogLogger(console, logger.ParseLevel(cfg.Log.Level), cfg.Log.Format),
	}
	if f, err := fsys.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
		c.logFile = f
		loggers = append(loggers, logger.NewStandardLogger(log.New(f, "", log.LstdFlags)))
	}
	c.logger = logger.NewMultiLogger(loggers...)

	var backend persist.Backend
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		if err := fsys.MkdirAll(filepath.Dir(cfg.Store.Path), 0o700); err != nil {
			c.Close()
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		db, err := persist.OpenSQLite(cfg.Store.Path)
		if err != nil {
			c.logger.Error("daemon: open sqlite store: %v", err)
			c.Close()
			return nil, err
		}
		backend = db
	default:
		backend = persist.NewFileBackend(fsys, cfg.Store.Path)
	}
	c.Store = persist.NewAdapter(backend, c.logger)

	c.Stats = analytics.New(analytics.Options{
		Fs:          fsys,
		Path:        cfg.Analytics.Path,
		MinSeverity: cfg.Severity.Min,
		MaxSeverity: cfg.Severity.Max,
		Logger:      c.logger,
	})
	c.Scheduler = scheduler.New(scheduler.Options{
		Persister: c.Store,
		Hook:      c.Stats,
		Logger:    c.logger,
	})
	c.Desk = booking.NewDesk(c.Scheduler, c.Stats, booking.Rules{
		MinSeverity: cfg.Severity.Min,
		MaxSeverity: cfg.Severity.Max,
		Departments: cfg.Departments,
	}, c.logger)

	c.RPC = server.NewRPCServer(&server.RPCConfig{
		Secret:    cfg.Secret,
		Version:   bArgs.Version,
		Commit:    bArgs.Commit,
		BuildType: bArgs.BuildType,
	}, c.Desk, c.Stats, nil, c.logger)
	c.Web = server.NewWebServer(c.logger, c.RPC)

	c.Rollover, err = rollover.New(cfg.Rollover.Cron, c.Desk, rollover.Options{
		Logger: c.logger,
		OnRollover: func() {
			c.RPC.NotifyReset(common.ResetRollover)
		},
	})
	if err != nil {
		c.logger.Error("daemon: rollover: %v", err)
		c.Close()
		return nil, err
	}

	c.Runner = idaemon.New(&idaemon.Config{
		Addr:            cfg.Listen,
		ShutdownTimeout: DEF_SHUTDOWN_TIMEOUT,
	}, &idaemon.Dependencies{
		Serve: c.Web.Serve,
		ShutdownFunc: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), DEF_SHUTDOWN_TIMEOUT)
			defer cancel()
			return c.Web.Shutdown(ctx)
		},
	})
	return c, nil
}
