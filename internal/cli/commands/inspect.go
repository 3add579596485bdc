package commands

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/coregx/polyregex/validate"
)

type inspectReport struct {
	Source     string         `json:"source"`
	Flavor     string         `json:"flavor"`
	Flags      string         `json:"flags"`
	GroupCount int            `json:"groupCount"`
	Groups     map[string]int `json:"groups,omitempty"`
	Features   []string       `json:"features"`
	Compiled   bool           `json:"compiled"`
	Matcher    string         `json:"matcher,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var compile bool

	cmd := &cobra.Command{
		Use:   "inspect PATTERN [FLAGS]",
		Short: "Show the capture groups and features of a pattern",
		Long: `Inspect compiles a pattern and prints what validation learned about it:
canonical flags, capture groups and the syntax features in use.

With --compile the backend runs as well and the matcher kind is shown.`,
		Example: `  polyregex inspect '(?<key>\w+)=(\d+)' g
  polyregex inspect --compile -o json 'foo|bar'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			re, err := engine.Compile(sourceArgs(args))
			if err != nil {
				return err
			}
			obj := re.Object()

			report := inspectReport{
				Source:     re.String(),
				Flavor:     engine.Meta().Config().Flavor.String(),
				Flags:      re.Flags(),
				GroupCount: re.GroupCount(),
				Groups:     re.Groups(),
				Features:   featureNames(obj.Features()),
			}
			if compile {
				m, err := obj.Matcher()
				if err != nil {
					return err
				}
				report.Matcher = m.Kind().String()
			}
			report.Compiled = obj.Compiled()

			if jsonOutput(cmd) {
				return renderJSON(cmd.OutOrStdout(), report)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Property", "Value"})
			t.AppendRow(table.Row{"source", report.Source})
			t.AppendRow(table.Row{"flavor", report.Flavor})
			t.AppendRow(table.Row{"flags", orDash(report.Flags)})
			t.AppendRow(table.Row{"groupCount", report.GroupCount})
			for i, name := range obj.GroupNames() {
				if i == 0 {
					continue
				}
				t.AppendRow(table.Row{"group " + strconv.Itoa(i), orDash(name)})
			}
			t.AppendRow(table.Row{"features", orDash(strings.Join(report.Features, ", "))})
			t.AppendRow(table.Row{"compiled", report.Compiled})
			if report.Matcher != "" {
				t.AppendRow(table.Row{"matcher", report.Matcher})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&compile, "compile", false, "Run the backend and report the matcher kind")
	return cmd
}

func featureNames(f validate.Feature) []string {
	s := validate.FeatureSet(f).String()
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
