package builder

import (
	"errors"
	"strings"

	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/provider"
)

// Plan is the resolved set of choices for one build. Optional families are
// nil when not selected.
type Plan struct {
	Directory string
	Name      string
	Backup    bool

	Compiler   provider.Compiler
	Bundler    provider.Bundler
	TaskRunner provider.TaskRunner
	TestRunner provider.TestRunner
	Linter     provider.Linter

	Packages pkgmanager.Installer
}

// Result describes a successful build.
type Result struct {
	Directory    string
	BackupPath   string
	StartCommand string
	Warnings     []string
}

// BuildError reports a failed build. BackupPath is set when the directory
// was backed up before the failure.
type BuildError struct {
	BackupPath string
	Err        error
}

func (e *BuildError) Error() string {
	parts := []string{"There was an error."}
	if e.BackupPath != "" {
		parts = append(parts, "The original directory is available at "+e.BackupPath)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, "\n\n")
}

func (e *BuildError) Unwrap() error { return e.Err }

var errNoPackages = errors.New("builder: plan has no package installer")
