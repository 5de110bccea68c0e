package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/config"
)

// captureOutput runs f with os.Stdout and os.Stderr redirected to pipes and
// returns what was written.
func captureOutput(f func()) (stdout, stderr string) {
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)
	go func() {
		var b bytes.Buffer
		_, _ = io.Copy(&b, rOut)
		outC <- b.String()
	}()
	go func() {
		var b bytes.Buffer
		_, _ = io.Copy(&b, rErr)
		errC <- b.String()
	}()

	f()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr
	stdout, stderr = <-outC, <-errC
	rOut.Close()
	rErr.Close()
	return
}

func assertContains(t *testing.T, output, expected string) {
	t.Helper()
	if !strings.Contains(output, expected) {
		t.Errorf("expected output to contain %q, got:\n%s", expected, output)
	}
}

func assertNotContains(t *testing.T, output, notExpected string) {
	t.Helper()
	if strings.Contains(output, notExpected) {
		t.Errorf("expected output to NOT contain %q, got:\n%s", notExpected, output)
	}
}

// runHMS executes the CLI with args and returns its stdout.
func runHMS(t *testing.T, args ...string) string {
	t.Helper()
	var runErr error
	out, _ := captureOutput(func() {
		runErr = Execute(append([]string{"hms"}, args...), BuildArgs{Version: "test", BuildType: "unit"})
	})
	if runErr != nil {
		t.Fatalf("hms %s: %v", strings.Join(args, " "), runErr)
	}
	return out
}

// useConfigDir points every command at a fresh configuration directory
// holding yaml as config.yaml.
func useConfigDir(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(common.ConfigDirEnv, dir)
	t.Setenv(common.ListenEnv, "")
	t.Setenv(common.SecretEnv, "")
	t.Setenv(common.DebugEnv, "")
	if yaml != "" {
		if err := os.WriteFile(dir+string(os.PathSeparator)+config.FileName, []byte(yaml), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	return dir
}

// startTestDaemon builds the daemon from the configuration in dir on an
// ephemeral port and points clients at it.
func startTestDaemon(t *testing.T, dir string) *DaemonComponents {
	t.Helper()
	c, err := initDaemonComponents(afero.NewOsFs(), dir, BuildArgs{Version: "test"}, io.Discard)
	if err != nil {
		t.Fatalf("initDaemonComponents: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for c.Runner.Addr() == nil {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("daemon did not start listening")
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Setenv(common.ListenEnv, c.Runner.Addr().String())

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("daemon did not stop")
		}
		c.Close()
	})
	return c
}
