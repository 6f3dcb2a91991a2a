package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tweedjs/tweed-cli/internal/branding"
	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/program"
	"github.com/tweedjs/tweed-cli/internal/versions"
)

// Version prints the versions of the framework packages installed in the
// working directory.
type Version struct {
	fs      *filesystem.FileSystem
	out     io.Writer
	workDir string
	build   string
}

// NewVersion returns the version command. build is the CLI's own version,
// shown in verbose mode.
func NewVersion(f *filesystem.FileSystem, out io.Writer, workDir, build string) *Version {
	return &Version{fs: f, out: out, workDir: workDir, build: build}
}

func (c *Version) Name() string { return "version" }
func (c *Version) Description() string {
	return "Shows versions of installed " + branding.DisplayName() + " packages."
}
func (c *Version) Usage() string { return "[version|-V] [-v|--verbose]" }

func (c *Version) Options() []program.Option       { return nil }
func (c *Version) InitialOptions() program.Options { return program.Options{} }

func (c *Version) ParseOption([]string, *program.Request) (int, program.Options, error) {
	return 0, nil, nil
}

func (c *Version) Execute(_ context.Context, req *program.Request, _ *program.Program) error {
	if !req.Verbose() {
		v, err := versions.Installed(c.fs, c.workDir, branding.PackageName())
		if errors.Is(err, versions.ErrNotInstalled) {
			return program.Abort("%s", failStyle.Render(branding.DisplayName()+" is not installed.")+"\n  "+
				mutedStyle.Render("$ npm install "+branding.PackageName()))
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "v%s\n", v)
		return nil
	}

	names := append([]string{branding.PackageName()}, branding.CompanionPackages()...)
	width := lipgloss.Width(branding.CLIName() + " (build)")
	for _, n := range names {
		width = max(width, lipgloss.Width(n))
	}

	var lines []string
	for _, n := range names {
		state := mutedStyle.Render("not installed")
		v, err := versions.Installed(c.fs, c.workDir, n)
		switch {
		case err == nil:
			state = versionStyle.Render("v" + v.String())
		case !errors.Is(err, versions.ErrNotInstalled):
			state = failStyle.Render(err.Error())
		}
		lines = append(lines, okStyle.Render(pad(n, width))+"  "+state)
	}
	lines = append(lines, okStyle.Render(pad(branding.CLIName()+" (build)", width))+"  "+versionStyle.Render(c.build))

	fmt.Fprintln(c.out, strings.Join(lines, "\n"))
	return nil
}
