package pkgmanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/tweedjs/tweed-cli/internal/process"
)

// Supported package manager identifiers.
const (
	NPM  = "npm"
	Yarn = "yarn"
	Auto = "auto"
)

// ErrAlreadyFlushed is returned by a second Flush.
var ErrAlreadyFlushed = errors.New("package requests were already flushed")

// Installer collects package requests and installs them in one batch.
type Installer interface {
	// ID is the package manager's command name.
	ID() string

	// Install requests packages; nothing runs until Flush.
	Install(dev bool, packages ...string)

	// Requests returns everything requested so far.
	Requests() *RequestSet

	// Flush installs the requested packages in dir, one invocation per
	// non-empty dependency class. It may run only once.
	Flush(ctx context.Context, dir string) error
}

// Manager is an Installer driving one package manager binary.
type Manager struct {
	id         string
	runtimeCmd []string
	devCmd     []string
	runner     process.Runner

	requests RequestSet
	flushed  bool
}

// NewNPM returns an Installer that runs npm.
func NewNPM(runner process.Runner) *Manager {
	return &Manager{
		id:         NPM,
		runtimeCmd: []string{"install", "--save"},
		devCmd:     []string{"install", "--save-dev"},
		runner:     runner,
	}
}

// NewYarn returns an Installer that runs yarn.
func NewYarn(runner process.Runner) *Manager {
	return &Manager{
		id:         Yarn,
		runtimeCmd: []string{"add"},
		devCmd:     []string{"add", "--dev"},
		runner:     runner,
	}
}

// ID returns the package manager command.
func (m *Manager) ID() string { return m.id }

// Install records a request.
func (m *Manager) Install(dev bool, packages ...string) {
	m.requests.Add(dev, packages...)
}

// Requests returns the accumulated requests.
func (m *Manager) Requests() *RequestSet { return &m.requests }

// Flush runs the package manager for the runtime class, then the dev class.
func (m *Manager) Flush(ctx context.Context, dir string) error {
	if m.flushed {
		return ErrAlreadyFlushed
	}
	m.flushed = true

	if pkgs := m.requests.Runtime(); len(pkgs) > 0 {
		if err := m.exec(ctx, dir, m.runtimeCmd, pkgs); err != nil {
			return err
		}
	}
	if pkgs := m.requests.Dev(); len(pkgs) > 0 {
		if err := m.exec(ctx, dir, m.devCmd, pkgs); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) exec(ctx context.Context, dir string, base, pkgs []string) error {
	args := append(append([]string(nil), base...), pkgs...)
	if err := m.runner.Execute(ctx, m.id, args, process.Options{Dir: dir}); err != nil {
		return fmt.Errorf("installing packages with %s: %w", m.id, err)
	}
	return nil
}

// IDs returns the selectable package manager ids, including "auto".
func IDs() []string {
	return []string{Auto, NPM, Yarn}
}

// Resolve returns the Installer for id. "auto" picks yarn when it is on
// PATH and npm otherwise.
func Resolve(id string, runner process.Runner) (Installer, error) {
	switch id {
	case NPM:
		return NewNPM(runner), nil
	case Yarn:
		return NewYarn(runner), nil
	case Auto, "":
		if runner.CommandExists(Yarn) {
			return NewYarn(runner), nil
		}
		return NewNPM(runner), nil
	default:
		return nil, fmt.Errorf("unknown package manager %q: supported package managers are %q, %q and %q", id, Auto, NPM, Yarn)
	}
}
