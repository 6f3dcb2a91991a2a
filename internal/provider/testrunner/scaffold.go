package testrunner

import (
	"context"
	"path/filepath"

	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/scaffold"
)

// writeStarterTest delegates the starter test to compiler, or writes the
// ES5 fallback when there is none.
func writeStarterTest(ctx context.Context, env provider.Env, fw provider.TestFramework, dir string, pm pkgmanager.Installer, compiler provider.Compiler, tasks provider.TaskRunner, linter provider.Linter) error {
	if compiler != nil {
		env.Log.Fine("Asking %s for %s test scaffolding", compiler.Name(), fw.ID)
		return compiler.TestScaffold(ctx, provider.TestScaffoldRequest{
			Framework: fw,
			Dir:       dir,
			Packages:  pm,
			Tasks:     tasks,
			Linter:    linter,
		})
	}

	name := filepath.Join(fw.Dir, fw.FileName("App", "js"))
	path := filepath.Join(dir, name)
	if env.FS.Exists(path) {
		env.Log.Fine("%s already exists. Skipping.", name)
		return nil
	}

	text, err := scaffold.AppTest(scaffold.ES5, scaffold.Data{
		Head:       fw.Require,
		ImportPath: "../src/App",
		TestFunc:   fw.TestFunc,
		Expect:     fw.Expect,
		Equal:      fw.Equal,
	})
	if err != nil {
		return err
	}
	env.Log.Fine("Creating %s", name)
	return env.FS.WriteFile(path, text)
}
