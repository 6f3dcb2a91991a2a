package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tweedjs/tweed-cli/internal/branding"
)

// BuildInfo is the version information injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// String renders the build for the verbose version page.
func (b BuildInfo) String() string {
	return b.Version + " (commit: " + b.Commit + ", built: " + b.Date + ")"
}

// exitError carries the dispatcher's exit status out of Cobra. The message
// has already been reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:                branding.CLIName() + " [command] [...options]",
		Short:              branding.Description(),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wire(build, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			if code := a.program.Run(cmd.Context(), args); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
}

// Execute runs the CLI with build info injected via ldflags.
func Execute(version, commit, date string) error {
	root := newRootCmd(BuildInfo{Version: version, Commit: commit, Date: date})
	root.SetArgs(os.Args[1:])
	return root.ExecuteContext(context.Background())
}
