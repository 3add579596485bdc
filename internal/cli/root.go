// Package cli provides the command-line interface for polyregex.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/polyregex/internal/cli/commands"
	"github.com/coregx/polyregex/internal/cli/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "polyregex",
		Short: "polyregex - multi-dialect regular expression front-end",
		Long: `polyregex validates, inspects and executes regular expressions written in
ECMAScript, Python or RE2 syntax through one execution contract.

Configuration is read from polyregex.yaml, POLYREGEX_* environment variables
and flags, in increasing order of precedence.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if used != "" {
				logger.Debug("using config file", "path", used)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./polyregex.yaml)")
	flags.String("flavor", "", "Pattern dialect (ecmascript|python|re2)")
	flags.String("features", "", `Accepted feature set, e.g. "all", "dfa" or "all,-lookbehind"`)
	flags.Bool("eager", false, "Compile the backend immediately instead of on first exec")
	flags.Int("inline-cache-size", 0, "Receivers remembered per exec call site (0 disables)")
	flags.Int64("max-index", 0, "Largest fromIndex that is executed")
	flags.String("match-timeout", "", "Backtracking timeout per exec, e.g. 100ms (0 disables)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.StringP("output", "o", "", "Output format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("flavor", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ecmascript", "python", "re2"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewExecCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
