package compiler

import (
	"path/filepath"

	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/scaffold"
)

// writeAppTest writes the framework's starter test for App unless one
// already exists.
func writeAppTest(env provider.Env, req provider.TestScaffoldRequest, d scaffold.Dialect, ext, pragma string) error {
	fw := req.Framework
	name := filepath.Join(fw.Dir, fw.FileName("App", ext))
	path := filepath.Join(req.Dir, name)

	if env.FS.Exists(path) {
		env.Log.Fine("%s already exists. Skipping.", name)
		return nil
	}

	text, err := scaffold.AppTest(d, scaffold.Data{
		Pragma:     pragma,
		Head:       fw.Import,
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
