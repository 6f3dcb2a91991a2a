package provider

import (
	"context"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/logger"
	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
)

// ManifestFile is the project manifest every provider may edit.
const ManifestFile = "package.json"

// Env holds the collaborators shared by every provider.
type Env struct {
	FS  *filesystem.FileSystem
	Log *logger.Logger
}

// Provider is the identity shared by all families.
type Provider interface {
	// ID is the stable selector used on the command line.
	ID() string
	// Name is the display name.
	Name() string
}

// Compiler turns the project's source dialect into plain JavaScript. It runs
// first; later families query its extensions and ask it for fragments.
type Compiler interface {
	Provider

	// Extension is the source file extension, without the dot.
	Extension() string
	// ComponentExtension is the component file extension, without the dot.
	ComponentExtension() string

	// Main renders the starter entry point.
	Main() (string, error)
	// App renders the root component, led by a linter's JSX pragma if any.
	App(pragma string) (string, error)

	Install(ctx context.Context, dir string, pm pkgmanager.Installer, tasks TaskRunner) error

	// ManipulateBundlerConfig adds the compiler's loader rule and resolvable
	// extensions to a bundler configuration under construction.
	ManipulateBundlerConfig(cfg *BundlerConfig, pm pkgmanager.Installer)

	// TestScaffold writes the starter test for req.Framework in the
	// compiler's dialect and configures the framework for it.
	TestScaffold(ctx context.Context, req TestScaffoldRequest) error
}

// Bundler packs the sources for the browser.
type Bundler interface {
	Provider

	Install(ctx context.Context, dir string, pm pkgmanager.Installer, compiler Compiler, tasks TaskRunner) error
}

// TaskRunner persists named shell commands. Other families register commands
// during their own Install; the runner's Install writes the final table.
type TaskRunner interface {
	Provider

	// Add sets a named command, replacing any previous one.
	Add(name, command string)
	// Command returns the named command, if registered.
	Command(name string) (string, bool)
	// Tasks exposes the accumulated table.
	Tasks() *TaskTable
	// Usage returns the shell command a user types to run the named task.
	Usage(name string) string

	Install(ctx context.Context, dir string) error
}

// TestRunner installs a test framework and its starter test.
type TestRunner interface {
	Provider

	// Globals lists identifiers the framework injects into test files.
	Globals() []string
	// Framework describes the conventions compilers follow when writing tests.
	Framework() TestFramework

	Install(ctx context.Context, dir string, pm pkgmanager.Installer, compiler Compiler, tasks TaskRunner, linter Linter) error
}

// Linter checks code style.
type Linter interface {
	Provider

	// JSXPragma returns the pragma comment JSX files must start with when
	// linted alongside compiler, or "" when none is needed.
	JSXPragma(compiler Compiler) string

	Install(ctx context.Context, dir string, pm pkgmanager.Installer, tasks TaskRunner, compiler Compiler, testRunner TestRunner) error
}

// TestScaffoldRequest is what a test runner hands a compiler when asking for
// compiler-specific test scaffolding.
type TestScaffoldRequest struct {
	Framework TestFramework
	Dir       string
	Packages  pkgmanager.Installer
	Tasks     TaskRunner
	Linter    Linter
}

// TestFramework captures the per-framework conventions of a starter test.
type TestFramework struct {
	ID string
	// Dir is the test directory relative to the project root.
	Dir string
	// FileSuffix follows the class name in the file name, e.g. ".test" or "Test".
	FileSuffix string
	// TestFunc declares one test case, e.g. "test" or "it".
	TestFunc string
	// Expect and Equal form the assertion: Expect(actual).Equal(expected).
	Expect string
	Equal  string
	// Import is an extra ES module header line; Require its CommonJS form.
	Import  string
	Require string
}

// FileName returns the test file name for class with extension ext.
func (f TestFramework) FileName(class, ext string) string {
	return class + f.FileSuffix + "." + ext
}
