//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tweedjs/tweed-cli/internal/builder"
	"github.com/tweedjs/tweed-cli/internal/commands"
	"github.com/tweedjs/tweed-cli/internal/config"
	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/logger"
	"github.com/tweedjs/tweed-cli/internal/process"
	"github.com/tweedjs/tweed-cli/internal/program"
	"github.com/tweedjs/tweed-cli/internal/prompt"
	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/provider/bundler"
	"github.com/tweedjs/tweed-cli/internal/provider/compiler"
	"github.com/tweedjs/tweed-cli/internal/provider/linter"
	"github.com/tweedjs/tweed-cli/internal/provider/taskrunner"
	"github.com/tweedjs/tweed-cli/internal/provider/testrunner"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, holds .tweed/config.yaml
	ProjectDir string // the working directory of every command
	Out        *bytes.Buffer
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so user settings never leak into a test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
		Out:        &bytes.Buffer{},
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("TWEED_INTERACTIVE", "false")
	return env
}

// newProgram wires the commands over the real filesystem. A nil runner uses
// the real process runner.
func newProgram(t *testing.T, env *testEnv, runner process.Runner) *program.Program {
	t.Helper()

	fs := filesystem.OS()
	log := logger.New(env.Out, env.Out, false)
	if runner == nil {
		runner = process.NewConsole(log)
	}
	penv := provider.Env{FS: fs, Log: log}
	reg := &provider.Registry{
		Compilers:   []provider.Compiler{compiler.NewBabel(penv), compiler.NewTypeScript(penv)},
		Bundlers:    []provider.Bundler{bundler.NewWebpack(penv)},
		TaskRunners: []provider.TaskRunner{taskrunner.NewNPM(penv), taskrunner.NewMake(penv)},
		TestRunners: []provider.TestRunner{testrunner.NewJest(penv), testrunner.NewMocha(penv)},
		Linters:     []provider.Linter{linter.NewStandard(penv)},
	}
	cfg, err := config.Load(config.Dir())
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	return program.New(log,
		commands.NewHelp(env.Out),
		commands.NewVersion(fs, env.Out, env.ProjectDir, "integration"),
		commands.NewNew(commands.NewDeps{
			FS:       fs,
			Log:      log,
			Runner:   runner,
			Registry: reg,
			Builder:  builder.New(fs, log, nil, env.ProjectDir),
			Confirm:  prompt.Always{},
			Config:   cfg,
			WorkDir:  env.ProjectDir,
		}),
		commands.NewGenerate(fs, log, reg.TestRunners, env.ProjectDir),
		commands.NewConfig(cfg, log),
	)
}

// run executes one command line and fails the test on error.
func run(t *testing.T, p *program.Program, args ...string) {
	t.Helper()
	if err := p.Execute(context.Background(), args); err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
}

// offlineRunner pretends a recent Node.js is installed and records every
// other command without running it.
func offlineRunner() *process.Recorder {
	return &process.Recorder{
		Installed: map[string]bool{"node": true},
		Outputs:   map[string]string{"node --version": "v20.0.0"},
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
