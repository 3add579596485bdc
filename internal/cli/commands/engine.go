// Package commands implements the polyregex subcommands.
package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/coregx/polyregex"
	"github.com/coregx/polyregex/internal/cli/config"
)

// newEngine builds an engine from the configuration in the command
// context.
func newEngine(cmd *cobra.Command) (*polyregex.Engine, error) {
	ctx := cmd.Context()
	ec, err := config.GetConfig(ctx).EngineConfig(config.GetLogger(ctx))
	if err != nil {
		return nil, err
	}
	return polyregex.NewEngine(ec)
}

// sourceArgs splits PATTERN [FLAGS] positional arguments.
func sourceArgs(args []string) (pattern, flags string) {
	pattern = args[0]
	if len(args) > 1 {
		flags = args[1]
	}
	return pattern, flags
}

func jsonOutput(cmd *cobra.Command) bool {
	return config.GetConfig(cmd.Context()).OutputFormat == "json"
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
