package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tweedjs/tweed-cli/internal/builder"
	"github.com/tweedjs/tweed-cli/internal/config"
	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/logger"
	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/process"
	"github.com/tweedjs/tweed-cli/internal/program"
	"github.com/tweedjs/tweed-cli/internal/prompt"
	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/versions"
)

// Option keys of the new command.
const (
	optDirectory      = "directory"
	optName           = "name"
	optCompiler       = "compiler"
	optBundler        = "bundler"
	optTaskRunner     = "taskRunner"
	optTestRunner     = "testRunner"
	optLinter         = "linter"
	optPackageManager = "packageManager"
	optBackup         = "backup"
	optInteractive    = "interactive"
)

// NewDeps are the collaborators of the new command.
type NewDeps struct {
	FS       *filesystem.FileSystem
	Log      *logger.Logger
	Runner   process.Runner
	Registry *provider.Registry
	Builder  *builder.Builder
	Confirm  prompt.Confirmer
	Config   *config.Config
	WorkDir  string
}

// New scaffolds a project, or adds the framework to an existing one.
type New struct {
	NewDeps
}

// NewNew returns the new command.
func NewNew(deps NewDeps) *New {
	return &New{NewDeps: deps}
}

func (c *New) Name() string { return "new" }
func (c *New) Description() string {
	return "Initiates a new project, or adds the framework on top of an existing project"
}
func (c *New) Usage() string { return "new [directory] [...options]" }

func (c *New) Options() []program.Option {
	return []program.Option{
		{Flags: "-n, --name <name>", Description: "The project name, defaults to the directory name"},
		{Flags: "-c, --compiler <id>", Description: idList("The compiler to use", c.Registry.Compilers, c.Config.Get(config.KeyCompiler))},
		{Flags: "-b, --bundler <id>", Description: idList("The bundler to use", c.Registry.Bundlers, c.Config.Get(config.KeyBundler))},
		{Flags: "-r, --task-runner <id>", Description: idList("The task runner to use", c.Registry.TaskRunners, c.Config.Get(config.KeyTaskRunner))},
		{Flags: "-t, --test-runner <id>", Description: idList("The test runner to use", c.Registry.TestRunners, c.Config.Get(config.KeyTestRunner))},
		{Flags: "-l, --linter <id>", Description: idList("The linter to use", c.Registry.Linters, c.Config.Get(config.KeyLinter))},
		{Flags: "-p, --package-manager <id>", Description: "One of " + strings.Join(pkgmanager.IDs(), ", ") + ". Default: " + c.Config.Get(config.KeyPackageManager)},
		{Flags: "--no-backup", Description: "Do not back up an existing directory"},
		{Flags: "--no-interaction", Description: "Do not ask for confirmation"},
	}
}

func idList[T provider.Provider](label string, providers []T, def string) string {
	ids := append(provider.IDs(providers), provider.None)
	return fmt.Sprintf("%s: %s. Default: %s", label, strings.Join(ids, ", "), def)
}

func (c *New) InitialOptions() program.Options {
	return program.Options{
		optDirectory:      "",
		optName:           "",
		optCompiler:       c.Config.Get(config.KeyCompiler),
		optBundler:        c.Config.Get(config.KeyBundler),
		optTaskRunner:     c.Config.Get(config.KeyTaskRunner),
		optTestRunner:     c.Config.Get(config.KeyTestRunner),
		optLinter:         c.Config.Get(config.KeyLinter),
		optPackageManager: c.Config.Get(config.KeyPackageManager),
		optBackup:         c.Config.Bool(config.KeyBackup),
		optInteractive:    c.Config.Bool(config.KeyInteractive),
	}
}

func (c *New) ParseOption(args []string, req *program.Request) (int, program.Options, error) {
	switch args[0] {
	case "-n", "--name":
		v, err := program.RequireValue(args)
		if err != nil {
			return 0, nil, err
		}
		return 2, program.Options{optName: v}, nil

	case "-c", "--compiler":
		return parseID(args, optCompiler, func(id string) error {
			_, err := provider.Lookup(provider.FamilyCompiler, c.Registry.Compilers, id)
			return err
		})

	case "-b", "--bundler":
		return parseID(args, optBundler, func(id string) error {
			_, err := provider.Lookup(provider.FamilyBundler, c.Registry.Bundlers, id)
			return err
		})

	case "-r", "--task-runner", "--build-system":
		return parseID(args, optTaskRunner, func(id string) error {
			_, err := provider.Lookup(provider.FamilyTaskRunner, c.Registry.TaskRunners, id)
			return err
		})

	case "-t", "--test-runner":
		return parseID(args, optTestRunner, func(id string) error {
			_, err := provider.Lookup(provider.FamilyTestRunner, c.Registry.TestRunners, id)
			return err
		})

	case "-l", "--linter":
		return parseID(args, optLinter, func(id string) error {
			_, err := provider.Lookup(provider.FamilyLinter, c.Registry.Linters, id)
			return err
		})

	case "-p", "--package-manager":
		return parseID(args, optPackageManager, func(id string) error {
			for _, known := range pkgmanager.IDs() {
				if id == known {
					return nil
				}
			}
			return program.Abort("The available package managers are: %s.", strings.Join(pkgmanager.IDs(), ", "))
		})

	case "--no-backup":
		return 1, program.Options{optBackup: false}, nil

	case "--no-interaction":
		return 1, program.Options{optInteractive: false}, nil
	}

	if !strings.HasPrefix(args[0], "-") && req.Options.String(optDirectory) == "" {
		return 1, program.Options{optDirectory: args[0]}, nil
	}
	return 0, nil, nil
}

func parseID(args []string, key string, validate func(string) error) (int, program.Options, error) {
	id, err := program.RequireValue(args)
	if err != nil {
		return 0, nil, err
	}
	if err := validate(id); err != nil {
		return 0, nil, err
	}
	return 2, program.Options{key: id}, nil
}

func (c *New) Execute(ctx context.Context, req *program.Request, _ *program.Program) error {
	opts := req.Options

	dir := opts.String(optDirectory)
	if dir == "" {
		dir = c.WorkDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.WorkDir, dir)
	}
	dir = filepath.Clean(dir)

	name := opts.String(optName)
	if name == "" {
		name = filepath.Base(dir)
	}
	backup := opts.Bool(optBackup) && c.FS.Exists(dir)

	plan, err := c.resolve(opts)
	if err != nil {
		return err
	}
	plan.Directory = dir
	plan.Name = name
	plan.Backup = backup

	if err := versions.CheckNode(ctx, c.Runner); err != nil {
		return program.Abort("%v", err)
	}

	pm, err := pkgmanager.Resolve(opts.String(optPackageManager), c.Runner)
	if err != nil {
		return program.Abort("%v", err)
	}
	plan.Packages = pm

	if opts.Bool(optInteractive) {
		ok, err := c.Confirm.Confirm("Here's what I got:", c.summary(plan), "Is this correct?")
		if err != nil {
			return err
		}
		if !ok {
			return program.Abort("Okay!")
		}
	}

	res, err := c.Builder.Build(ctx, *plan)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		c.Log.Warn("%s", w)
	}
	return nil
}

func (c *New) resolve(opts program.Options) (*builder.Plan, error) {
	var (
		plan builder.Plan
		err  error
	)
	r := c.Registry
	if plan.Compiler, err = provider.Lookup(provider.FamilyCompiler, r.Compilers, opts.String(optCompiler)); err != nil {
		return nil, err
	}
	if plan.Bundler, err = provider.Lookup(provider.FamilyBundler, r.Bundlers, opts.String(optBundler)); err != nil {
		return nil, err
	}
	if plan.TaskRunner, err = provider.Lookup(provider.FamilyTaskRunner, r.TaskRunners, opts.String(optTaskRunner)); err != nil {
		return nil, err
	}
	if plan.TestRunner, err = provider.Lookup(provider.FamilyTestRunner, r.TestRunners, opts.String(optTestRunner)); err != nil {
		return nil, err
	}
	if plan.Linter, err = provider.Lookup(provider.FamilyLinter, r.Linters, opts.String(optLinter)); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *New) summary(plan *builder.Plan) []prompt.Row {
	rel, err := filepath.Rel(c.WorkDir, plan.Directory)
	if err != nil {
		rel = plan.Directory
	}
	if !strings.HasPrefix(rel, ".") {
		rel = "." + string(filepath.Separator) + rel
	}

	return []prompt.Row{
		{Label: "Project Name", Value: plan.Name},
		{Label: "Directory", Value: rel},
		{Label: "Compiler", Value: nameOf(plan.Compiler)},
		{Label: "Bundler", Value: nameOf(plan.Bundler)},
		{Label: "Task Runner", Value: nameOf(plan.TaskRunner)},
		{Label: "Test Runner", Value: nameOf(plan.TestRunner)},
		{Label: "Linter", Value: nameOf(plan.Linter)},
		{Label: "Package Manager", Value: plan.Packages.ID()},
	}
}

// nameOf returns the display name of p, or "" when p is a nil interface.
func nameOf[T provider.Provider](p T) string {
	if any(p) == nil {
		return ""
	}
	return p.Name()
}
