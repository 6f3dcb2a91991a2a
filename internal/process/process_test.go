package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/tweedjs/tweed-cli/internal/logger"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell commands unavailable on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

func TestConsoleExecuteSuccess(t *testing.T) {
	requireShell(t)

	var stdout bytes.Buffer
	c := &Console{Log: logger.Discard(), Stdout: &stdout}

	err := c.Execute(context.Background(), "sh", []string{"-c", "echo hello"}, Options{ShowOutput: Show(true)})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(stdout.String(), "hello") {
		t.Errorf("streamed stdout = %q, want hello", stdout.String())
	}
}

func TestConsoleExecuteSuppressesOutput(t *testing.T) {
	requireShell(t)

	var stdout bytes.Buffer
	c := &Console{Log: logger.Discard(), Stdout: &stdout}

	if err := c.Execute(context.Background(), "sh", []string{"-c", "echo hidden"}, Options{}); err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet run streamed %q", stdout.String())
	}
}

func TestConsoleExecuteNonZeroExit(t *testing.T) {
	requireShell(t)

	c := NewConsole(logger.Discard())
	err := c.Execute(context.Background(), "sh", []string{"-c", "echo nope >&2; exit 3"}, Options{Dir: t.TempDir()})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
	if exitErr.Stderr != "nope" {
		t.Errorf("Stderr = %q, want nope", exitErr.Stderr)
	}
	if got := err.Error(); got != "the 'sh' command exited with the status code 3" {
		t.Errorf("Error() = %q", got)
	}
}

func TestConsoleOutput(t *testing.T) {
	requireShell(t)

	c := NewConsole(logger.Discard())
	out, err := c.Output(context.Background(), "sh", []string{"-c", "echo v8.9.4"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if out != "v8.9.4" {
		t.Errorf("Output() = %q, want v8.9.4", out)
	}
}

func TestConsoleMissingBinary(t *testing.T) {
	c := NewConsole(logger.Discard())
	if c.CommandExists("definitely-not-a-real-binary-xyz") {
		t.Error("CommandExists() = true for a missing binary")
	}
	err := c.Execute(context.Background(), "definitely-not-a-real-binary-xyz", nil, Options{})
	if err == nil {
		t.Fatal("expected error for a missing binary")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("a missing binary is not an exit status")
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{
		Installed: map[string]bool{"yarn": true},
		Outputs:   map[string]string{"node --version": "v10.0.0"},
	}

	if !r.CommandExists("yarn") || r.CommandExists("npm") {
		t.Error("CommandExists() does not follow Installed")
	}

	out, err := r.Output(context.Background(), "node", []string{"--version"}, Options{})
	if err != nil || out != "v10.0.0" {
		t.Errorf("Output() = %q, %v", out, err)
	}

	if len(r.Calls) != 1 || r.Calls[0].String() != "node --version" {
		t.Errorf("Calls = %v", r.Calls)
	}
}
