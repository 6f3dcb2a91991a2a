package program

import (
	"context"
	"fmt"

	"github.com/tweedjs/tweed-cli/internal/logger"
)

// Program owns the command registry and runs one invocation.
type Program struct {
	log      *logger.Logger
	help     Command
	version  Command
	commands []Command
}

// New returns a Program. The version and help commands are registered after
// commands and are also reachable through -V and -h.
func New(log *logger.Logger, help, version Command, commands ...Command) *Program {
	all := append(append([]Command(nil), commands...), version, help)
	return &Program{log: log, help: help, version: version, commands: all}
}

// Commands returns every registered command in registration order.
func (p *Program) Commands() []Command {
	return append([]Command(nil), p.commands...)
}

// Find returns the command named name, matched case-sensitively.
func (p *Program) Find(name string) Command {
	for _, c := range p.commands {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Log returns the program's logger.
func (p *Program) Log() *logger.Logger { return p.log }

// Parse turns args into a Request. Without a command the help command is
// selected.
func (p *Program) Parse(args []string) (*Request, error) {
	req := &Request{Options: Options{OptVerbose: false}}

	for len(args) > 0 {
		tok := args[0]

		if tok == "-V" && req.Command == nil {
			p.selectCommand(req, p.version)
			args = args[1:]
			continue
		}

		switch tok {
		case "-v", "--verbose":
			req.Options[OptVerbose] = true
			args = args[1:]
			continue

		case "-h", "--help", "-?", "--?":
			if req.Command != nil && req.Command != p.help {
				req.Options[OptCommand] = req.Command.Name()
			}
			req.Command = p.help
			args = args[1:]
			continue
		}

		if req.Command != nil {
			n, patch, err := req.Command.ParseOption(args, req)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				for k, v := range patch {
					req.Options[k] = v
				}
				args = args[min(n, len(args)):]
				continue
			}
		} else if cmd := p.Find(tok); cmd != nil {
			p.selectCommand(req, cmd)
			args = args[1:]
			continue
		}

		return nil, Abort("Unexpected option '%s'", tok)
	}

	if req.Command == nil {
		req.Command = p.help
	}
	return req, nil
}

func (p *Program) selectCommand(req *Request, cmd Command) {
	req.Command = cmd
	for k, v := range cmd.InitialOptions() {
		req.Options[k] = v
	}
}

// Execute parses args, applies the verbosity flag and runs the selected
// command.
func (p *Program) Execute(ctx context.Context, args []string) error {
	req, err := p.Parse(args)
	if err != nil {
		return err
	}
	p.log.SetVerbose(req.Verbose())
	return req.Command.Execute(ctx, req, p)
}

// Run executes args and reports any failure on the error stream. It
// returns the process exit status.
func (p *Program) Run(ctx context.Context, args []string) int {
	if err := p.Execute(ctx, args); err != nil {
		p.Report(err)
		return 1
	}
	return 0
}

// Report prints err for the user. Messages that already carry styling are
// printed as they are.
func (p *Program) Report(err error) {
	msg := err.Error()
	if logger.HasStyle(msg) {
		fmt.Fprintln(p.log.ErrOut(), msg)
		return
	}
	p.log.Error("%s", msg)
}
