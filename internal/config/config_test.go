package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
)

const testDir = "/etc/hms"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{common.ListenEnv, common.SecretEnv, common.DebugEnv} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, fsys afero.Fs, body string) {
	t.Helper()
	if err := afero.WriteFile(fsys, filepath.Join(testDir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load(afero.NewMemMapFs(), testDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Listen != DefaultListen || c.Store.Backend != BackendFile || c.Rollover.Cron != DefaultCron {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.Store.Path != filepath.Join(testDir, "queue.json") {
		t.Errorf("Store.Path = %q", c.Store.Path)
	}
	if c.Analytics.Path != filepath.Join(testDir, "analytics.json") {
		t.Errorf("Analytics.Path = %q", c.Analytics.Path)
	}
	if len(c.Departments) != 6 || c.Severity.Min != 1 || c.Severity.Max != 10 {
		t.Errorf("Departments = %v, Severity = %+v", c.Departments, c.Severity)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, `
listen: 0.0.0.0:9000
secret: s3cret
store:
  backend: SQLite
analytics:
  path: /var/lib/hms/hist.json
rollover:
  cron: "30 6 * * *"
log:
  level: debug
  format: JSON
departments: [Emergency, " Radiology ", emergency, ""]
severity:
  min: 1
  max: 5
`)
	c, err := Load(fsys, testDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Listen != "0.0.0.0:9000" || c.Secret != "s3cret" {
		t.Errorf("Listen/Secret = %q/%q", c.Listen, c.Secret)
	}
	if c.Store.Backend != BackendSQLite || c.Store.Path != filepath.Join(testDir, "queue.db") {
		t.Errorf("Store = %+v", c.Store)
	}
	if c.Analytics.Path != "/var/lib/hms/hist.json" {
		t.Errorf("Analytics.Path = %q", c.Analytics.Path)
	}
	if c.Log.Format != "json" || c.Log.Level != "debug" {
		t.Errorf("Log = %+v", c.Log)
	}
	if strings.Join(c.Departments, "|") != "Emergency|Radiology" {
		t.Errorf("Departments = %q", c.Departments)
	}
	if c.Severity.Max != 5 {
		t.Errorf("Severity = %+v", c.Severity)
	}
	if got := c.URL("ws"); got != "ws://127.0.0.1:9000" {
		t.Errorf("URL(ws) = %q", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(common.ListenEnv, "127.0.0.1:4000")
	t.Setenv(common.SecretEnv, "from-env")
	t.Setenv(common.DebugEnv, "1")
	c, err := Load(afero.NewMemMapFs(), testDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Listen != "127.0.0.1:4000" || c.Secret != "from-env" || c.Log.Level != "debug" {
		t.Errorf("overrides not applied: %+v", c)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
	}{
		{"backend", "store:\n  backend: postgres\n"},
		{"cron", "rollover:\n  cron: \"every day\"\n"},
		{"severity", "severity:\n  min: 7\n  max: 3\n"},
		{"log format", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			writeConfig(t, fsys, tt.body)
			if _, err := Load(fsys, testDir); !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	clearEnv(t)
	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, "listen: [unterminated\n")
	if _, err := Load(fsys, testDir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnsureSecretGeneratesOnce(t *testing.T) {
	fsys := afero.NewMemMapFs()
	c := Default(testDir)
	if err := c.EnsureSecret(fsys); err != nil {
		t.Fatalf("EnsureSecret: %v", err)
	}
	if len(c.Secret) != 36 {
		t.Fatalf("Secret = %q, want a uuid", c.Secret)
	}

	again := Default(testDir)
	if err := again.EnsureSecret(fsys); err != nil {
		t.Fatalf("EnsureSecret: %v", err)
	}
	if again.Secret != c.Secret {
		t.Errorf("second EnsureSecret = %q, want persisted %q", again.Secret, c.Secret)
	}

	client := Default(testDir)
	got, err := client.ReadSecret(fsys)
	if err != nil || got != c.Secret {
		t.Errorf("ReadSecret = %q, %v", got, err)
	}
}

func TestEnsureSecretKeepsConfigured(t *testing.T) {
	fsys := afero.NewMemMapFs()
	c := Default(testDir)
	c.Secret = "fixed"
	if err := c.EnsureSecret(fsys); err != nil {
		t.Fatal(err)
	}
	if ok, _ := afero.Exists(fsys, filepath.Join(testDir, TokenFileName)); ok {
		t.Error("token file should not be written when a secret is configured")
	}
}

func TestReadSecretMissing(t *testing.T) {
	if _, err := Default(testDir).ReadSecret(afero.NewMemMapFs()); err == nil {
		t.Fatal("expected error without token file")
	}
}

func TestDirFromEnv(t *testing.T) {
	t.Setenv(common.ConfigDirEnv, "/tmp/hms-test")
	dir, err := Dir()
	if err != nil || dir != "/tmp/hms-test" {
		t.Errorf("Dir() = %q, %v", dir, err)
	}
}
