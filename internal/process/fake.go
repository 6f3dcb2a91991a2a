package process

import (
	"context"
	"strings"
)

// Call records one invocation seen by a Recorder.
type Call struct {
	Command string
	Args    []string
	Dir     string
}

// String renders the call as a shell-like command line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Command}, c.Args...), " ")
}

// Recorder is a Runner that records calls instead of spawning processes.
// Fail, when set, decides the error returned for a call.
type Recorder struct {
	Calls     []Call
	Installed map[string]bool
	Outputs   map[string]string
	Fail      func(Call) error
}

// Execute records the call.
func (r *Recorder) Execute(_ context.Context, command string, args []string, opts Options) error {
	call := Call{Command: command, Args: append([]string(nil), args...), Dir: opts.Dir}
	r.Calls = append(r.Calls, call)
	if r.Fail != nil {
		return r.Fail(call)
	}
	return nil
}

// Output records the call and returns the canned output keyed by its
// command line.
func (r *Recorder) Output(ctx context.Context, command string, args []string, opts Options) (string, error) {
	if err := r.Execute(ctx, command, args, opts); err != nil {
		return "", err
	}
	return r.Outputs[Call{Command: command, Args: args}.String()], nil
}

// CommandExists reports whether command was listed in Installed.
func (r *Recorder) CommandExists(command string) bool {
	return r.Installed[command]
}
