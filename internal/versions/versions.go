package versions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/manifest"
	"github.com/tweedjs/tweed-cli/internal/process"
)

// MinimumNode is the oldest supported Node.js release.
const MinimumNode = "6.0.0"

// ErrNotInstalled is returned when a package is missing from node_modules.
var ErrNotInstalled = errors.New("package is not installed")

// Parse strips a leading "v" and parses version.
func Parse(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}

// Compare returns -1, 0 or 1 as a is older than, equal to, or newer than b.
func Compare(a, b string) (int, error) {
	av, err := Parse(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := Parse(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// AtLeast reports whether version is minimum or newer.
func AtLeast(version, minimum string) (bool, error) {
	cmp, err := Compare(version, minimum)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// Installed returns the version of pkg installed in the project at dir.
func Installed(f *filesystem.FileSystem, dir, pkg string) (*semver.Version, error) {
	path := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg), "package.json")
	if !f.Exists(path) {
		return nil, fmt.Errorf("%s: %w", pkg, ErrNotInstalled)
	}

	text, err := f.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Parse([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pkg, err)
	}
	v, err := Parse(m.Version)
	if err != nil {
		return nil, fmt.Errorf("%s has an invalid version %q: %w", pkg, m.Version, err)
	}
	return v, nil
}

// Node returns the version of the node binary on PATH.
func Node(ctx context.Context, runner process.Runner) (*semver.Version, error) {
	if !runner.CommandExists("node") {
		return nil, errors.New("Node.js is not installed. Install Node.js " + MinimumNode + " or newer")
	}
	out, err := runner.Output(ctx, "node", []string{"--version"}, process.Options{ShowOutput: process.Show(false)})
	if err != nil {
		return nil, fmt.Errorf("checking the Node.js version: %w", err)
	}
	v, err := Parse(out)
	if err != nil {
		return nil, fmt.Errorf("unexpected Node.js version %q: %w", strings.TrimSpace(out), err)
	}
	return v, nil
}

// CheckNode fails unless a supported Node.js is installed.
func CheckNode(ctx context.Context, runner process.Runner) error {
	v, err := Node(ctx, runner)
	if err != nil {
		return err
	}
	ok, err := AtLeast(v.String(), MinimumNode)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("Node.js %s is too old. Install Node.js %s or newer", v, MinimumNode)
	}
	return nil
}
