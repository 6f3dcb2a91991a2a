// Package testrunner implements the Jest and Mocha test runners. Each asks
// the selected compiler for its test scaffolding and falls back to a plain
// CommonJS test when no compiler is selected.
package testrunner
