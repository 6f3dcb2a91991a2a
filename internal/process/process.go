package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tweedjs/tweed-cli/internal/logger"
)

// Runner executes external commands.
type Runner interface {
	// Execute runs command with args and waits for it to exit. A non-zero
	// exit status yields an *ExitError.
	Execute(ctx context.Context, command string, args []string, opts Options) error

	// Output runs command and returns its trimmed standard output.
	Output(ctx context.Context, command string, args []string, opts Options) (string, error)

	// CommandExists reports whether command is found on PATH.
	CommandExists(command string) bool
}

// Options control a single invocation.
type Options struct {
	// Dir is the working directory. Empty means the current one.
	Dir string

	// ShowOutput streams the child's stdout and stderr. Nil defers to the
	// runner's verbosity.
	ShowOutput *bool
}

// Show returns a pointer to b, for Options.ShowOutput.
func Show(b bool) *bool { return &b }

// ExitError reports a command that exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("the '%s' command exited with the status code %d", e.Command, e.Code)
}

// Console is the Runner backed by os/exec.
type Console struct {
	Log *logger.Logger

	// Stdout and Stderr receive streamed output; default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewConsole returns a Console that logs through log.
func NewConsole(log *logger.Logger) *Console {
	return &Console{Log: log}
}

// CommandExists looks command up on PATH.
func (c *Console) CommandExists(command string) bool {
	c.Log.Fine("Checking if %s is installed", command)
	_, err := exec.LookPath(command)
	return err == nil
}

// Execute runs the command, streaming output when requested.
func (c *Console) Execute(ctx context.Context, command string, args []string, opts Options) error {
	_, err := c.run(ctx, command, args, opts, false)
	return err
}

// Output runs the command and captures stdout.
func (c *Console) Output(ctx context.Context, command string, args []string, opts Options) (string, error) {
	out, err := c.run(ctx, command, args, opts, true)
	return strings.TrimSpace(out), err
}

func (c *Console) run(ctx context.Context, command string, args []string, opts Options, capture bool) (string, error) {
	show := c.Log.Verbose()
	if opts.ShowOutput != nil {
		show = *opts.ShowOutput
	}

	c.Log.Fine("Executing '%s'", strings.Join(append([]string{command}, args...), " "))

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = opts.Dir

	var stdoutBuf, stderrBuf bytes.Buffer
	stdout := io.Writer(&stdoutBuf)
	stderr := io.Writer(&stderrBuf)
	if show {
		stdout = io.MultiWriter(c.stdout(), &stdoutBuf)
		stderr = io.MultiWriter(c.stderr(), &stderrBuf)
	}
	if !capture && !show {
		stdout = io.Discard
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdoutBuf.String(), &ExitError{
				Command: command,
				Code:    exitErr.ExitCode(),
				Stderr:  strings.TrimSpace(stderrBuf.String()),
			}
		}
		return stdoutBuf.String(), fmt.Errorf("running %s: %w", command, err)
	}

	return stdoutBuf.String(), nil
}

func (c *Console) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *Console) stderr() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}
