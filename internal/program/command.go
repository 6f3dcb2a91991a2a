package program

import (
	"context"
	"fmt"
)

// Option documents one command-line option for help output.
type Option struct {
	Flags       string // e.g. "-n, --name <name>"
	Description string
}

// Options is the accumulated option mapping of a request.
type Options map[string]any

// String returns the string stored under key, or "".
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Bool returns the bool stored under key, or false.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// Strings returns the string list stored under key.
func (o Options) Strings(key string) []string {
	s, _ := o[key].([]string)
	return s
}

// Request is a resolved invocation.
type Request struct {
	Command Command
	Options Options
}

// Verbose reports whether -v was given.
func (r *Request) Verbose() bool { return r.Options.Bool(OptVerbose) }

// Well-known option keys set by the dispatcher itself.
const (
	OptVerbose = "verbose"
	// OptCommand holds the name of the command help was requested for.
	OptCommand = "command"
)

// Command is a named unit the dispatcher can run.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Options() []Option

	// InitialOptions is merged into the request when the command is selected.
	InitialOptions() Options

	// ParseOption inspects the leading tokens of args and returns how many it
	// consumed together with a patch for the request options. Zero consumed
	// means the token is not recognized.
	ParseOption(args []string, req *Request) (int, Options, error)

	Execute(ctx context.Context, req *Request, p *Program) error
}

// AbortError ends the invocation with a message for the user.
type AbortError struct {
	Message string
}

func (e *AbortError) Error() string { return e.Message }

// Abort returns an AbortError with a formatted message.
func Abort(format string, args ...any) *AbortError {
	return &AbortError{Message: fmt.Sprintf(format, args...)}
}

// RequireValue returns the value following a flag or aborts when it is
// missing.
func RequireValue(args []string) (string, error) {
	if len(args) < 2 || args[1] == "" {
		return "", Abort("The '%s' option must be provided an argument", args[0])
	}
	return args[1], nil
}
