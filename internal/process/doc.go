// Package process runs external commands (package managers, version probes)
// in a working directory. Output is streamed to the configured writers or
// suppressed, and a non-zero exit is reported as an *ExitError.
package process
