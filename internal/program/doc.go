// Package program dispatches a command line to one of the registered
// commands.
//
// Parsing is a small state machine over the raw arguments. Global flags
// (-v/--verbose, -h/--help and -V) are recognized anywhere; the first
// other token selects a command by name, and every later token is offered
// to that command's ParseOption, which reports how many tokens it consumed.
// Any failure aborts the whole invocation with exit status 1.
package program
