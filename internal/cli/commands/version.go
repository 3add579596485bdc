package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display polyregex version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "polyregex v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Flavors: ecmascript, python, re2 (%s)\n", runtime.Version())
		},
	}
}
