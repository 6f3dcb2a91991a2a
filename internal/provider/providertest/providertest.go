// Package providertest provides fakes for testing provider implementations.
package providertest

import (
	"context"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/logger"
	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/process"
	"github.com/tweedjs/tweed-cli/internal/provider"
)

// Env returns a provider environment over an empty in-memory filesystem.
func Env() provider.Env {
	return provider.Env{FS: filesystem.Memory(), Log: logger.Discard()}
}

// Packages returns an npm installer whose flush is only recorded.
func Packages() *pkgmanager.Manager {
	return pkgmanager.NewNPM(&process.Recorder{})
}

// Tasks is a TaskRunner that only accumulates its table.
type Tasks struct {
	Table     provider.TaskTable
	Installed string
}

func (t *Tasks) ID() string   { return "fake" }
func (t *Tasks) Name() string { return "Fake tasks" }

func (t *Tasks) Add(name, command string) { t.Table.Add(name, command) }

func (t *Tasks) Command(name string) (string, bool) { return t.Table.Get(name) }

func (t *Tasks) Tasks() *provider.TaskTable { return &t.Table }

func (t *Tasks) Usage(name string) string { return "run " + name }

// Install records dir.
func (t *Tasks) Install(_ context.Context, dir string) error {
	t.Installed = dir
	return nil
}

// Linter is a Linter with a fixed pragma and no installation work.
type Linter struct {
	Pragma string
}

func (l *Linter) ID() string                         { return "fake-linter" }
func (l *Linter) Name() string                       { return "Fake linter" }
func (l *Linter) JSXPragma(provider.Compiler) string { return l.Pragma }

func (l *Linter) Install(context.Context, string, pkgmanager.Installer, provider.TaskRunner, provider.Compiler, provider.TestRunner) error {
	return nil
}
