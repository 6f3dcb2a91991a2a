// Package commands implements the commands the dispatcher can run: new,
// generate, config, version and help.
//
// Each command is a struct built once by the composition root with the
// collaborators it needs. Option parsing happens in ParseOption and only
// records values; nothing touches the filesystem before Execute.
package commands
