// Package provider defines the five capability families a project can be
// assembled from (Compiler, Bundler, TestRunner, Linter, TaskRunner), the
// mutable objects they share while a project is built, and the registry that
// resolves a family member from its command-line id.
//
// Concrete providers live in the compiler, bundler, taskrunner, testrunner,
// and linter subpackages. The set is closed: providers are constructed once
// at startup and selected by id.
package provider
