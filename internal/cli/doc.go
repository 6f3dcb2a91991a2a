// Package cli is the composition root of the tweed CLI. It builds every
// collaborator once, registers the commands with the dispatcher and hosts
// the dispatcher under a Cobra root command that leaves argument parsing to
// it.
package cli
