package linter

import (
	"context"
	"path/filepath"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/provider"
)

// Pragma makes JSX compile to tweed's Node factory.
const Pragma = "/** @jsx Node */"

// Standard lints with standard, or standardts for TypeScript projects.
type Standard struct {
	env provider.Env
}

// NewStandard returns the Standard Style linter.
func NewStandard(env provider.Env) *Standard {
	return &Standard{env: env}
}

func (s *Standard) ID() string   { return "standard" }
func (s *Standard) Name() string { return "Standard Style" }

// JSXPragma returns Pragma for Babel projects. TypeScript configures its JSX
// factory itself and plain ES5 has no JSX.
func (s *Standard) JSXPragma(compiler provider.Compiler) string {
	if compiler != nil && compiler.ID() == "babel" {
		return Pragma
	}
	return ""
}

// Binary is the linter command for compiler.
func (s *Standard) Binary(compiler provider.Compiler) string {
	if compiler != nil && compiler.ID() == "typescript" {
		return "standardts"
	}
	return "standard"
}

// Install requests the linter, writes its settings into the manifest, and
// runs it ahead of any existing test task.
func (s *Standard) Install(_ context.Context, dir string, pm pkgmanager.Installer, tasks provider.TaskRunner, compiler provider.Compiler, testRunner provider.TestRunner) error {
	s.env.Log.Fine("Installing Standard Style linter")

	bin := s.Binary(compiler)
	pm.Install(true, bin)

	if bin == "standard" {
		settings := filesystem.Document{}
		if compiler != nil && compiler.ID() == "babel" {
			pm.Install(true, "babel-eslint")
			settings["parser"] = "babel-eslint"
		}
		if testRunner != nil {
			globals := make([]any, 0, len(testRunner.Globals()))
			for _, g := range testRunner.Globals() {
				globals = append(globals, g)
			}
			settings["globals"] = globals
		}

		if len(settings) > 0 {
			err := s.env.FS.Update(filepath.Join(dir, provider.ManifestFile), func(pkg filesystem.Document) error {
				pkg["standard"] = settings
				return nil
			})
			if err != nil {
				return err
			}
		}
	}

	if tasks != nil {
		tasks.Tasks().Compose("test", bin)
	}
	return nil
}
