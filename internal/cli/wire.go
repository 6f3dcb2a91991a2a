package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

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
	"github.com/tweedjs/tweed-cli/internal/spinner"
)

type app struct {
	registry *provider.Registry
	program  *program.Program
}

// registry lists the available providers of every family in display order.
func registry(env provider.Env) *provider.Registry {
	return &provider.Registry{
		Compilers:   []provider.Compiler{compiler.NewBabel(env), compiler.NewTypeScript(env)},
		Bundlers:    []provider.Bundler{bundler.NewWebpack(env)},
		TaskRunners: []provider.TaskRunner{taskrunner.NewNPM(env), taskrunner.NewMake(env)},
		TestRunners: []provider.TestRunner{testrunner.NewJest(env), testrunner.NewMocha(env)},
		Linters:     []provider.Linter{linter.NewStandard(env)},
	}
}

// progress returns the build spinner. Output that is not a color terminal
// gets no animation.
func progress(out io.Writer) builder.Spinner {
	if _, ok := out.(*os.File); !ok || color.NoColor {
		return spinner.None{}
	}
	return spinner.New(out)
}

// wire builds the collaborators of one invocation. The logger starts quiet;
// the dispatcher switches it to verbose once the command line is parsed.
func wire(build BuildInfo, in io.Reader, out, errOut io.Writer) (*app, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := config.Load(config.Dir())
	if err != nil {
		return nil, err
	}

	fs := filesystem.OS()
	log := logger.New(out, errOut, false)
	runner := process.NewConsole(log)

	reg := registry(provider.Env{FS: fs, Log: log})
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	cmdNew := commands.NewNew(commands.NewDeps{
		FS:       fs,
		Log:      log,
		Runner:   runner,
		Registry: reg,
		Builder:  builder.New(fs, log, progress(out), workDir),
		Confirm:  prompt.New(in, out),
		Config:   cfg,
		WorkDir:  workDir,
	})

	prog := program.New(log,
		commands.NewHelp(out),
		commands.NewVersion(fs, out, workDir, build.String()),
		cmdNew,
		commands.NewGenerate(fs, log, reg.TestRunners, workDir),
		commands.NewConfig(cfg, log),
	)

	return &app{registry: reg, program: prog}, nil
}
