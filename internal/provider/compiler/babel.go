package compiler

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/scaffold"
)

const babelConfig = "tweed-babel-config/config.json"

// Babel compiles modern JavaScript with JSX through Babel.
type Babel struct {
	env provider.Env
}

// NewBabel returns the Babel compiler.
func NewBabel(env provider.Env) *Babel {
	return &Babel{env: env}
}

func (b *Babel) ID() string                 { return "babel" }
func (b *Babel) Name() string               { return "Babel" }
func (b *Babel) Extension() string          { return "js" }
func (b *Babel) ComponentExtension() string { return "js" }

func (b *Babel) Main() (string, error) { return scaffold.Main(scaffold.Babel) }

func (b *Babel) App(pragma string) (string, error) { return scaffold.App(scaffold.Babel, pragma) }

// Install requests Babel, extends .babelrc with the shared tweed preset and
// registers the build task.
func (b *Babel) Install(_ context.Context, dir string, pm pkgmanager.Installer, tasks provider.TaskRunner) error {
	pm.Install(true, "babel-cli", "tweed-babel-config")

	err := b.env.FS.Update(filepath.Join(dir, ".babelrc"), func(rc filesystem.Document) error {
		switch ext := rc["extends"].(type) {
		case string:
			if ext != babelConfig {
				rc["extends"] = []any{babelConfig, ext}
			}
		case []any:
			if !slices.Contains(ext, any(babelConfig)) {
				rc["extends"] = append([]any{babelConfig}, ext...)
			}
		default:
			rc["extends"] = babelConfig
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := b.env.FS.AppendLines(filepath.Join(dir, ".gitignore"), "dist"); err != nil {
		return err
	}

	if tasks != nil {
		tasks.Add("build", "babel src --out-dir dist")
	}
	return nil
}

// ManipulateBundlerConfig routes .js files through babel-loader.
func (b *Babel) ManipulateBundlerConfig(cfg *provider.BundlerConfig, pm pkgmanager.Installer) {
	pm.Install(true, "babel-loader")
	cfg.AddRule(provider.LoaderRule{Test: `\.js$`, Loader: "babel-loader", Exclude: "node_modules"})
	cfg.AddExtensions(".js")
}

// TestScaffold teaches the framework to load Babel sources and writes the
// starter App test.
func (b *Babel) TestScaffold(_ context.Context, req provider.TestScaffoldRequest) error {
	switch req.Framework.ID {
	case "jest":
		req.Packages.Install(true, "babel-jest")
	case "mocha":
		req.Packages.Install(true, "babel-register")
		err := b.env.FS.Update(filepath.Join(req.Dir, ".mocharc.yml"), func(rc filesystem.Document) error {
			rc["require"] = "babel-register"
			return nil
		})
		if err != nil {
			return err
		}
	}

	var pragma string
	if req.Linter != nil {
		pragma = req.Linter.JSXPragma(b)
	}
	return writeAppTest(b.env, req, scaffold.Babel, b.Extension(), pragma)
}
