// Package builder assembles a project from a Plan.
//
// A build creates the target directory, optionally backs it up, writes the
// base scaffold, installs the selected providers in family order (Compiler,
// Bundler, TestRunner, Linter, TaskRunner) and finally flushes the requested
// packages in one batch. A failure after the backup leaves the directory as
// it is; the backup is the only recovery path.
package builder
