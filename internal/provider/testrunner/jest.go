package testrunner

import (
	"context"

	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/provider"
)

// Jest runs tests with Jest.
type Jest struct {
	env provider.Env
}

// NewJest returns the Jest test runner.
func NewJest(env provider.Env) *Jest {
	return &Jest{env: env}
}

func (j *Jest) ID() string   { return "jest" }
func (j *Jest) Name() string { return "Jest" }

func (j *Jest) Globals() []string {
	return []string{"describe", "test", "expect", "jest", "beforeEach", "afterEach"}
}

func (j *Jest) Framework() provider.TestFramework {
	return provider.TestFramework{
		ID:         "jest",
		Dir:        "__tests__",
		FileSuffix: ".test",
		TestFunc:   "test",
		Expect:     "expect",
		Equal:      "toEqual",
	}
}

func (j *Jest) Install(ctx context.Context, dir string, pm pkgmanager.Installer, compiler provider.Compiler, tasks provider.TaskRunner, linter provider.Linter) error {
	j.env.Log.Fine("Installing Jest")
	pm.Install(true, "jest")

	if tasks != nil {
		tasks.Add("test", "jest")
	}
	return writeStarterTest(ctx, j.env, j.Framework(), dir, pm, compiler, tasks, linter)
}
