package compiler

import (
	"context"
	"path/filepath"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/scaffold"
)

const typeScriptConfig = "./node_modules/tweed-typescript-config/config"

// TypeScript compiles TypeScript and TSX with tsc.
type TypeScript struct {
	env provider.Env
}

// NewTypeScript returns the TypeScript compiler.
func NewTypeScript(env provider.Env) *TypeScript {
	return &TypeScript{env: env}
}

func (c *TypeScript) ID() string                 { return "typescript" }
func (c *TypeScript) Name() string               { return "TypeScript" }
func (c *TypeScript) Extension() string          { return "ts" }
func (c *TypeScript) ComponentExtension() string { return "tsx" }

func (c *TypeScript) Main() (string, error) { return scaffold.Main(scaffold.TypeScript) }

func (c *TypeScript) App(pragma string) (string, error) {
	return scaffold.App(scaffold.TypeScript, pragma)
}

// Install requests the compiler and writes tsconfig.json. An existing
// "extends" is kept.
func (c *TypeScript) Install(_ context.Context, dir string, pm pkgmanager.Installer, tasks provider.TaskRunner) error {
	pm.Install(true, "typescript", "tweed-typescript-config")

	err := c.env.FS.Update(filepath.Join(dir, "tsconfig.json"), func(cfg filesystem.Document) error {
		if _, ok := cfg["extends"]; ok {
			c.env.Log.Fine("The existing tsconfig.json file already extends another configuration. Skipping.")
		} else {
			cfg["extends"] = typeScriptConfig
		}
		filesystem.Section(cfg, "compilerOptions")
		cfg["include"] = []any{"src/**/*.ts", "src/**/*.tsx"}
		return nil
	})
	if err != nil {
		return err
	}

	if tasks != nil {
		tasks.Add("build", "tsc")
	}
	return nil
}

// ManipulateBundlerConfig routes .ts and .tsx files through ts-loader.
func (c *TypeScript) ManipulateBundlerConfig(cfg *provider.BundlerConfig, pm pkgmanager.Installer) {
	pm.Install(true, "ts-loader")
	cfg.AddRule(provider.LoaderRule{Test: `\.tsx?$`, Loader: "ts-loader", Exclude: "node_modules"})
	cfg.AddExtensions(".ts", ".tsx")
}

// TestScaffold configures the framework for TypeScript and writes the
// starter App test.
func (c *TypeScript) TestScaffold(_ context.Context, req provider.TestScaffoldRequest) error {
	switch req.Framework.ID {
	case "jest":
		req.Packages.Install(true, "ts-jest", "@types/jest")
		err := c.env.FS.Update(filepath.Join(req.Dir, provider.ManifestFile), func(pkg filesystem.Document) error {
			pkg["jest"] = map[string]any{
				"transform": map[string]any{
					`^.+\.(ts|tsx)$`: "ts-jest",
				},
				"testRegex":            `/__tests__/.*\.(ts|tsx|js)$`,
				"moduleFileExtensions": []any{"ts", "tsx", "js"},
			}
			return nil
		})
		if err != nil {
			return err
		}
	case "mocha":
		req.Packages.Install(true, "ts-node", "@types/mocha", "@types/chai")
		if req.Tasks != nil {
			req.Tasks.Add("test", "mocha --require ts-node/register test/**/*.ts*")
		}
	}

	var pragma string
	if req.Linter != nil {
		pragma = req.Linter.JSXPragma(c)
	}
	return writeAppTest(c.env, req, scaffold.TypeScript, c.ComponentExtension(), pragma)
}
