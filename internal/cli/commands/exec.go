package commands

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/polyregex"
	"github.com/coregx/polyregex/internal/cli/config"
	"github.com/coregx/polyregex/regex"
)

type execRecord struct {
	Input  string            `json:"input"`
	Match  bool              `json:"match"`
	Spans  []int             `json:"spans,omitempty"`
	Text   string            `json:"text,omitempty"`
	Groups map[string]string `json:"groups,omitempty"`
}

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	var (
		inputs   []string
		from     int64
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "exec PATTERN [FLAGS]",
		Short: "Execute a pattern against inputs",
		Long: `Exec compiles a pattern once and executes it against every input, starting
at --from. Inputs come from --input flags, or one per line from stdin.

Offsets are character indices. A --from beyond max_index never matches.`,
		Example: `  polyregex exec 'a+' --input baaab
  printf 'x=1\ny=2\n' | polyregex exec '(?<k>\w)=(\d)' --parallel 4 -o json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1, got %d", parallel)
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			re, err := engine.Compile(sourceArgs(args))
			if err != nil {
				return err
			}

			if len(inputs) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					inputs = append(inputs, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read inputs: %w", err)
				}
			}

			records, err := execAll(cmd, re, inputs, from, parallel)
			if err != nil {
				return err
			}
			stats := engine.Stats()
			config.GetLogger(cmd.Context()).Debug("exec finished",
				"inputs", len(inputs),
				"cache_hits", stats.Hits,
				"overflows", stats.Overflows)

			if jsonOutput(cmd) {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			renderExecTable(cmd, re, records)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Input to match (repeatable); default: lines of stdin")
	cmd.Flags().Int64Var(&from, "from", 0, "Character index to start matching at")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "Number of inputs executed concurrently")
	return cmd
}

// execAll runs re against every input, at most parallel at a time. Results
// keep the input order.
func execAll(cmd *cobra.Command, re *polyregex.Regex, inputs []string, from int64, parallel int) ([]execRecord, error) {
	records := make([]execRecord, len(inputs))
	names := re.Object().GroupNames()

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(parallel)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text := regex.NewText(input)
			res, err := re.Exec(text, from)
			if err != nil {
				return fmt.Errorf("input %d: %w", i+1, err)
			}
			records[i] = newExecRecord(input, text, res, names)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func newExecRecord(input string, text regex.Text, res *regex.Result, names []string) execRecord {
	rec := execRecord{Input: input, Match: res.IsMatch()}
	if !rec.Match {
		return rec
	}
	rec.Spans = res.Spans()
	rec.Text = regex.Substring(text, res.Start(0), res.End(0))
	for g, name := range names {
		if name == "" {
			continue
		}
		if s, e, ok := res.Group(g); ok {
			if rec.Groups == nil {
				rec.Groups = make(map[string]string)
			}
			rec.Groups[name] = regex.Substring(text, s, e)
		}
	}
	return rec
}

func renderExecTable(cmd *cobra.Command, re *polyregex.Regex, records []execRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	header := table.Row{"#", "Input", "Match"}
	for g := 1; g < re.GroupCount(); g++ {
		header = append(header, groupLabel(re, g))
	}
	t.AppendHeader(header)

	for i, rec := range records {
		row := table.Row{i + 1, rec.Input}
		if !rec.Match {
			row = append(row, "-")
			t.AppendRow(row)
			continue
		}
		row = append(row, span(rec.Spans, 0))
		for g := 1; g < re.GroupCount(); g++ {
			row = append(row, span(rec.Spans, g))
		}
		t.AppendRow(row)
	}
	t.Render()

	matched := 0
	for _, rec := range records {
		if rec.Match {
			matched++
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "(%d of %d matched)\n", matched, len(records))
}

func groupLabel(re *polyregex.Regex, g int) string {
	if name := re.Object().GroupNames()[g]; name != "" {
		return name
	}
	return "$" + strconv.Itoa(g)
}

func span(spans []int, g int) string {
	s, e := spans[2*g], spans[2*g+1]
	if s < 0 {
		return "-"
	}
	return fmt.Sprintf("[%d,%d)", s, e)
}
