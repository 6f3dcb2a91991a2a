package builder

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tweedjs/tweed-cli/internal/branding"
	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/logger"
	"github.com/tweedjs/tweed-cli/internal/manifest"
	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/scaffold"
)

// Spinner shows progress while a build runs quietly.
type Spinner interface {
	Start(message string)
	Stop()
}

// Builder runs builds. It is not safe for concurrent use.
type Builder struct {
	fs      *filesystem.FileSystem
	log     *logger.Logger
	spinner Spinner
	workDir string

	spinning bool
}

// New returns a Builder resolving relative directories against workDir. The
// spinner runs only when log is not verbose.
func New(fs *filesystem.FileSystem, log *logger.Logger, spinner Spinner, workDir string) *Builder {
	return &Builder{fs: fs, log: log, spinner: spinner, workDir: workDir}
}

// Build executes plan. Every failure is returned as a *BuildError.
func (b *Builder) Build(ctx context.Context, plan Plan) (*Result, error) {
	if plan.Packages == nil {
		return nil, &BuildError{Err: errNoPackages}
	}

	dir := plan.Directory
	if dir == "" {
		dir = b.workDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(b.workDir, dir)
	}
	dir = filepath.Clean(dir)

	name := plan.Name
	if name == "" {
		name = filepath.Base(dir)
	}

	b.startSpinner(fmt.Sprintf("Crafting %s...", name))
	defer b.stopSpinner()

	existed, err := b.makeDirectory(dir)
	if err != nil {
		return nil, &BuildError{Err: err}
	}

	res := &Result{Directory: dir}
	if plan.Backup && existed {
		if res.BackupPath, err = b.backUp(dir); err != nil {
			return nil, &BuildError{Err: err}
		}
	}

	if err := b.install(ctx, dir, name, plan); err != nil {
		return nil, &BuildError{BackupPath: res.BackupPath, Err: err}
	}

	res.Warnings = manifest.Warnings(b.fs, filepath.Join(dir, provider.ManifestFile))
	res.StartCommand = b.startCommand(dir, plan.TaskRunner)

	b.stopSpinner()
	if res.StartCommand == "" {
		b.log.Log("Done!")
	} else {
		b.log.Log("Done! %s", res.StartCommand)
	}
	return res, nil
}

func (b *Builder) install(ctx context.Context, dir, name string, plan Plan) error {
	if err := b.installBase(dir, name, plan); err != nil {
		return err
	}

	pm := plan.Packages
	for _, family := range provider.InstallOrder() {
		var err error
		switch family {
		case provider.FamilyCompiler:
			if plan.Compiler != nil {
				b.log.Fine("Installing %s", plan.Compiler.Name())
				err = plan.Compiler.Install(ctx, dir, pm, plan.TaskRunner)
			}
		case provider.FamilyBundler:
			if plan.Bundler != nil {
				b.log.Fine("Installing %s", plan.Bundler.Name())
				err = plan.Bundler.Install(ctx, dir, pm, plan.Compiler, plan.TaskRunner)
			}
		case provider.FamilyTestRunner:
			if plan.TestRunner != nil {
				b.log.Fine("Installing %s", plan.TestRunner.Name())
				err = plan.TestRunner.Install(ctx, dir, pm, plan.Compiler, plan.TaskRunner, plan.Linter)
			}
		case provider.FamilyLinter:
			if plan.Linter != nil {
				b.log.Fine("Installing %s", plan.Linter.Name())
				err = plan.Linter.Install(ctx, dir, pm, plan.TaskRunner, plan.Compiler, plan.TestRunner)
			}
		case provider.FamilyTaskRunner:
			if plan.TaskRunner != nil {
				b.log.Fine("Installing %s", plan.TaskRunner.Name())
				err = plan.TaskRunner.Install(ctx, dir)
			}
		}
		if err != nil {
			return err
		}
	}

	b.log.Fine("Installing %d packages with %s", pm.Requests().Len(), pm.ID())
	return pm.Flush(ctx, dir)
}

func (b *Builder) installBase(dir, name string, plan Plan) error {
	manifestPath := filepath.Join(dir, provider.ManifestFile)
	if !b.fs.Exists(manifestPath) {
		b.log.Fine("Creating a minimal %s file", provider.ManifestFile)
		doc := filesystem.Document{}
		if pkgName := packageName(name); pkgName != "" {
			doc["name"] = pkgName
		}
		if err := b.fs.WriteStructured(manifestPath, doc); err != nil {
			return err
		}
	}

	src := filepath.Join(dir, "src")
	if !b.fs.Exists(src) {
		b.log.Fine("Creating src directory")
		if err := b.fs.MakeDirectory(src); err != nil {
			return err
		}
	}

	ext, compExt := "js", "js"
	if plan.Compiler != nil {
		ext, compExt = plan.Compiler.Extension(), plan.Compiler.ComponentExtension()
	}

	err := b.writeStarter(src, "main."+ext, func() (string, error) {
		if plan.Compiler != nil {
			return plan.Compiler.Main()
		}
		return scaffold.Main(scaffold.ES5)
	})
	if err != nil {
		return err
	}

	err = b.writeStarter(src, "App."+compExt, func() (string, error) {
		if plan.Compiler != nil {
			var pragma string
			if plan.Linter != nil {
				pragma = plan.Linter.JSXPragma(plan.Compiler)
			}
			return plan.Compiler.App(pragma)
		}
		return scaffold.App(scaffold.ES5, "")
	})
	if err != nil {
		return err
	}

	if err := b.fs.AppendLines(filepath.Join(dir, ".gitignore"), "node_modules"); err != nil {
		return err
	}

	plan.Packages.Install(false, branding.PackageName())
	return nil
}

// writeStarter writes src/name from render unless the file exists.
func (b *Builder) writeStarter(src, name string, render func() (string, error)) error {
	path := filepath.Join(src, name)
	if b.fs.Exists(path) {
		b.log.Fine("src/%s already exists. Skipping.", name)
		return nil
	}
	text, err := render()
	if err != nil {
		return err
	}
	b.log.Fine("Creating src/%s", name)
	return b.fs.WriteFile(path, text)
}

func (b *Builder) makeDirectory(dir string) (bool, error) {
	if b.fs.IsDir(dir) {
		b.log.Fine("The directory exists")
		return true, nil
	}
	if b.fs.Exists(dir) {
		return false, fmt.Errorf("%s exists and is not a directory", dir)
	}
	b.log.Fine("Creating %s", dir)
	return false, b.fs.MakeDirectory(dir)
}

// backUp copies dir to dir.old, or the first free dir.old.N when an earlier
// backup is still present.
func (b *Builder) backUp(dir string) (string, error) {
	target := dir + ".old"
	for i := 1; b.fs.Exists(target); i++ {
		target = fmt.Sprintf("%s.old.%d", dir, i)
	}

	b.log.Fine("Backing up %s to %s", dir, target)
	if err := b.fs.Copy(dir, target); err != nil {
		return "", fmt.Errorf("backing up %s: %w", dir, err)
	}
	return target, nil
}

func (b *Builder) startCommand(dir string, tasks provider.TaskRunner) string {
	var parts []string
	if dir != filepath.Clean(b.workDir) {
		rel, err := filepath.Rel(b.workDir, dir)
		if err != nil {
			rel = dir
		}
		parts = append(parts, "cd "+rel)
	}
	if tasks != nil {
		if _, ok := tasks.Command("dev"); ok {
			parts = append(parts, tasks.Usage("dev"))
		}
	}
	return strings.Join(parts, "; ")
}

func (b *Builder) startSpinner(message string) {
	if b.log.Verbose() || b.spinner == nil {
		return
	}
	b.spinner.Start(message)
	b.spinning = true
}

func (b *Builder) stopSpinner() {
	if !b.spinning {
		return
	}
	b.spinner.Stop()
	b.spinning = false
}

var invalidNameChars = regexp.MustCompile(`[^a-z0-9._~-]+`)

// packageName derives an npm package name from a project name.
func packageName(name string) string {
	n := invalidNameChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.TrimLeft(strings.Trim(n, "-"), "._")
}
