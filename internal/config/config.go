// Package config loads the hms configuration file.
//
// The configuration lives in <dir>/config.yaml where dir is HMS_CONFIG_DIR or
// the user's configuration directory joined with "hms". A missing file is not
// an error; every field has a default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adhocore/gronx"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/booking"
)

const (
	// FileName is the configuration file inside the configuration directory.
	FileName = "config.yaml"
	// TokenFileName holds the generated RPC secret.
	TokenFileName = "rpc.token"

	// DefaultListen is the daemon address when none is configured.
	DefaultListen = "127.0.0.1:3850"
	// DefaultCron rolls the queue over at local midnight.
	DefaultCron = "0 0 * * *"

	// Store backends.
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// StoreConfig selects where the daily snapshot is kept. Path defaults to
// queue.json or queue.db in the configuration directory.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// AnalyticsConfig locates the persisted severity histogram.
type AnalyticsConfig struct {
	Path string `yaml:"path"`
}

// RolloverConfig schedules the day-change check.
type RolloverConfig struct {
	Cron string `yaml:"cron"`
}

// LogConfig controls the daemon log. Format is "text" or "json".
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SeverityConfig is the accepted severity range, inclusive.
type SeverityConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Config is the daemon and client configuration.
type Config struct {
	Listen      string          `yaml:"listen"`
	Secret      string          `yaml:"secret"`
	Store       StoreConfig     `yaml:"store"`
	Analytics   AnalyticsConfig `yaml:"analytics"`
	Rollover    RolloverConfig  `yaml:"rollover"`
	Log         LogConfig       `yaml:"log"`
	Departments []string        `yaml:"departments"`
	Severity    SeverityConfig  `yaml:"severity"`

	// Dir is the directory the configuration was loaded from. Relative
	// paths are resolved against it.
	Dir string `yaml:"-"`
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if dir := os.Getenv(common.ConfigDirEnv); dir != "" {
		return filepath.Abs(dir)
	}
	cdr, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(cdr, "hms"), nil
}

// Default returns the configuration used when no file exists.
func Default(dir string) *Config {
	c := &Config{
		Listen:      DefaultListen,
		Store:       StoreConfig{Backend: BackendFile},
		Rollover:    RolloverConfig{Cron: DefaultCron},
		Log:         LogConfig{Level: "info", Format: "text"},
		Departments: append([]string(nil), booking.DefaultDepartments...),
		Severity:    SeverityConfig{Min: 1, Max: 10},
		Dir:         dir,
	}
	c.fillPaths()
	return c
}

// Load reads <dir>/config.yaml from fsys, applies environment overrides and
// validates the result.
func Load(fsys afero.Fs, dir string) (*Config, error) {
	c := Default(dir)
	c.Store.Path, c.Analytics.Path = "", ""

	data, err := afero.ReadFile(fsys, filepath.Join(dir, FileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", FileName, err)
		}
	}
	c.Dir = dir

	if v := os.Getenv(common.ListenEnv); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(common.SecretEnv); v != "" {
		c.Secret = v
	}
	if os.Getenv(common.DebugEnv) == "1" {
		c.Log.Level = "debug"
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate normalizes c and rejects values the daemon cannot run with.
func (c *Config) Validate() error {
	c.Listen = strings.TrimSpace(c.Listen)
	if c.Listen == "" {
		c.Listen = DefaultListen
	}

	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case "":
		c.Store.Backend = BackendFile
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalid, c.Store.Backend)
	}

	if c.Rollover.Cron == "" {
		c.Rollover.Cron = DefaultCron
	}
	if !gronx.New().IsValid(c.Rollover.Cron) {
		return fmt.Errorf("%w: rollover cron %q", ErrInvalid, c.Rollover.Cron)
	}

	if c.Severity.Min == 0 && c.Severity.Max == 0 {
		c.Severity = SeverityConfig{Min: 1, Max: 10}
	}
	if c.Severity.Min < 0 || c.Severity.Min > c.Severity.Max {
		return fmt.Errorf("%w: severity range %d..%d", ErrInvalid, c.Severity.Min, c.Severity.Max)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text":
		c.Log.Format = "text"
	case "json":
		c.Log.Format = "json"
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}

	seen := make(map[string]bool, len(c.Departments))
	depts := c.Departments[:0]
	for _, d := range c.Departments {
		d = strings.TrimSpace(d)
		key := strings.ToLower(d)
		if d == "" || seen[key] {
			continue
		}
		seen[key] = true
		depts = append(depts, d)
	}
	c.Departments = depts

	c.fillPaths()
	return nil
}

func (c *Config) fillPaths() {
	if c.Store.Path == "" {
		name := "queue.json"
		if c.Store.Backend == BackendSQLite {
			name = "queue.db"
		}
		c.Store.Path = name
	}
	if c.Analytics.Path == "" {
		c.Analytics.Path = "analytics.json"
	}
	c.Store.Path = c.resolve(c.Store.Path)
	c.Analytics.Path = c.resolve(c.Analytics.Path)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// EnsureSecret fills an empty Secret from <dir>/rpc.token, generating and
// writing a new token when the file does not exist yet.
func (c *Config) EnsureSecret(fsys afero.Fs) error {
	if c.Secret != "" {
		return nil
	}
	path := filepath.Join(c.Dir, TokenFileName)
	data, err := afero.ReadFile(fsys, path)
	if err == nil && strings.TrimSpace(string(data)) != "" {
		c.Secret = strings.TrimSpace(string(data))
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := fsys.MkdirAll(c.Dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	token := uuid.NewString()
	if err := afero.WriteFile(fsys, path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.Secret = token
	return nil
}

// ReadSecret returns the token a client should present. Unlike EnsureSecret
// it never creates the token file.
func (c *Config) ReadSecret(fsys afero.Fs) (string, error) {
	if c.Secret != "" {
		return c.Secret, nil
	}
	path := filepath.Join(c.Dir, TokenFileName)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("read rpc token (is the daemon running?): %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// URL returns the daemon base URL for scheme "http" or "ws".
func (c *Config) URL(scheme string) string {
	host := c.Listen
	if strings.HasPrefix(host, ":") || strings.HasPrefix(host, "0.0.0.0:") {
		host = "127.0.0.1" + host[strings.Index(host, ":"):]
	}
	return scheme + "://" + host
}
