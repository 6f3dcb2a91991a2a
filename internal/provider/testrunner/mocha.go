package testrunner

import (
	"context"
	"path/filepath"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/provider"
)

// Mocha runs tests with Mocha and Chai assertions.
type Mocha struct {
	env provider.Env
}

// NewMocha returns the Mocha test runner.
func NewMocha(env provider.Env) *Mocha {
	return &Mocha{env: env}
}

func (m *Mocha) ID() string   { return "mocha" }
func (m *Mocha) Name() string { return "Mocha" }

func (m *Mocha) Globals() []string {
	return []string{"describe", "it", "before", "after", "beforeEach", "afterEach"}
}

func (m *Mocha) Framework() provider.TestFramework {
	return provider.TestFramework{
		ID:         "mocha",
		Dir:        "test",
		FileSuffix: "Test",
		TestFunc:   "it",
		Expect:     "expect",
		Equal:      "to.deep.equal",
		Import:     "import { expect } from 'chai'",
		Require:    "const { expect } = require('chai')",
	}
}

// Install requests Mocha and Chai and writes .mocharc.yml before asking for
// the starter test, so a compiler can extend the configuration.
func (m *Mocha) Install(ctx context.Context, dir string, pm pkgmanager.Installer, compiler provider.Compiler, tasks provider.TaskRunner, linter provider.Linter) error {
	m.env.Log.Fine("Installing Mocha")
	pm.Install(true, "mocha", "chai")

	ext := "js"
	if compiler != nil {
		ext = compiler.ComponentExtension()
	}
	err := m.env.FS.Update(filepath.Join(dir, ".mocharc.yml"), func(rc filesystem.Document) error {
		rc["spec"] = "test/**/*." + ext
		return nil
	})
	if err != nil {
		return err
	}

	if tasks != nil {
		tasks.Add("test", "mocha")
	}
	return writeStarterTest(ctx, m.env, m.Framework(), dir, pm, compiler, tasks, linter)
}
