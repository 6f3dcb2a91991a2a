// Package filesystem is the gateway every scaffolding step uses to touch
// disk: existence checks, directory creation, tree copies, text files, and
// structured (JSON or YAML) documents. It is backed by a billy.Filesystem so
// production code runs on the OS while tests run in memory.
package filesystem
