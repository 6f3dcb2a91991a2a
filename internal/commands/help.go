package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tweedjs/tweed-cli/internal/branding"
	"github.com/tweedjs/tweed-cli/internal/program"
)

// Help prints the command list, or the page of one command.
type Help struct {
	out io.Writer
}

// NewHelp returns the help command writing to out.
func NewHelp(out io.Writer) *Help {
	return &Help{out: out}
}

func (c *Help) Name() string        { return "help" }
func (c *Help) Description() string { return "Shows help pages" }
func (c *Help) Usage() string       { return "[help|-h] [-v|--verbose] [command]" }

func (c *Help) Options() []program.Option       { return nil }
func (c *Help) InitialOptions() program.Options { return program.Options{} }

// ParseOption accepts at most one command name. Whether the name exists is
// checked when the page is printed.
func (c *Help) ParseOption(args []string, req *program.Request) (int, program.Options, error) {
	if req.Options.String(program.OptCommand) != "" || strings.HasPrefix(args[0], "-") {
		return 0, nil, nil
	}
	return 1, program.Options{program.OptCommand: args[0]}, nil
}

func (c *Help) Execute(_ context.Context, req *program.Request, p *program.Program) error {
	name := req.Options.String(program.OptCommand)
	if name == "" {
		fmt.Fprintln(c.out, c.list(p.Commands(), req.Verbose()))
		return nil
	}
	cmd := p.Find(name)
	if cmd == nil {
		return program.Abort("Unknown command '%s'", name)
	}
	fmt.Fprintln(c.out, c.page(cmd))
	return nil
}

func (c *Help) list(commands []program.Command, verbose bool) string {
	width := 0
	for _, cmd := range commands {
		width = max(width, lipgloss.Width(cmd.Name()))
	}

	lines := []string{
		mutedStyle.Render(fmt.Sprintf("Usage: %s [command] [...options]", branding.CLIName())),
		"",
		headingStyle.Render("Available commands:"),
	}
	for _, cmd := range commands {
		if verbose {
			lines = append(lines,
				"Command:     "+nameStyle.Render(cmd.Name()),
				"Usage:       "+mutedStyle.Render(branding.CLIName()+" "+cmd.Usage()),
				"Description: "+mutedStyle.Render(cmd.Description()),
				"",
			)
			continue
		}
		lines = append(lines, "  "+nameStyle.Render(pad(cmd.Name(), width))+"  "+mutedStyle.Render(cmd.Description()))
	}
	return strings.Join(lines, "\n")
}

func (c *Help) page(cmd program.Command) string {
	options := append([]program.Option{{Flags: "-v, --verbose", Description: "Verbose output"}}, cmd.Options()...)

	width := 0
	for _, o := range options {
		width = max(width, lipgloss.Width(o.Flags))
	}

	lines := []string{
		mutedStyle.Render("Usage: " + branding.CLIName() + " " + cmd.Usage()),
		"",
		nameStyle.Render(cmd.Description()),
		"",
		headingStyle.Render("Available options:"),
	}
	for _, o := range options {
		lines = append(lines, nameStyle.Render(pad(o.Flags, width))+"  "+mutedStyle.Render(o.Description))
	}
	return strings.Join(lines, "\n") + "\n"
}
