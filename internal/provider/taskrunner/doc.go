// Package taskrunner implements the npm scripts and Makefile task runners.
//
// Other providers register named commands during their own installation;
// the task runner installs last and persists the accumulated table.
package taskrunner
