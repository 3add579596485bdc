package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/polyregex"
	"github.com/coregx/polyregex/backend"
	"github.com/coregx/polyregex/regex"
)

type validateReport struct {
	Source  string `json:"source"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Offset  *int   `json:"offset,omitempty"`
	InFlags bool   `json:"inFlags,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATTERN [FLAGS]",
		Short: "Check a pattern without compiling it",
		Long: `Validate parses the flags and pattern in the configured flavor and checks
the pattern against the configured feature set. No backend runs.

The command fails if the pattern is rejected.`,
		Example: `  polyregex validate '(?<year>\d{4})' u
  polyregex validate --flavor python '(?P<w>\w+)'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			pattern, flags := sourceArgs(args)

			method, err := engine.ReadMember(polyregex.MemberValidate)
			if err != nil {
				return err
			}
			_, verr := method.(polyregex.Executable).Execute(pattern, flags)

			report := validateReport{
				Source: regex.NewSource(pattern, flags).String(),
				Valid:  verr == nil,
			}
			if verr != nil {
				report.Error = verr.Error()
				report.Kind = errorKind(verr)
				var se *regex.SyntaxError
				if errors.As(verr, &se) {
					report.Offset = &se.Position
					report.InFlags = se.InFlags
				}
			}

			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				if err := renderJSON(out, report); err != nil {
					return err
				}
			} else if verr == nil {
				_, _ = fmt.Fprintf(out, "%s: ok\n", report.Source)
			}
			return verr
		},
	}
}

// errorKind names the class of a rejection.
func errorKind(err error) string {
	switch {
	case errors.Is(err, regex.ErrSyntax):
		return "syntax"
	case errors.Is(err, regex.ErrUnsupportedFeature):
		return "unsupported-feature"
	case errors.Is(err, regex.ErrUnsupportedFlagCombination):
		return "unsupported-flag-combination"
	case errors.Is(err, backend.ErrUnsupportedRegex):
		return "unsupported-regex"
	default:
		return "other"
	}
}
