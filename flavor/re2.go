package flavor

import (
	"strings"

	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/regex"
	"github.com/coregx/polyregex/validate"
)

var re2Processor = &Processor{
	flavor: RE2,
	parseFlags: func(src regex.Source) (flags.Set, error) {
		return flags.ParseRE2(src)
	},
	validate: func(src regex.Source, f flags.Set) (*validate.Result, error) {
		return validate.RE2(src, f.(flags.RE2Flags))
	},
	translate: func(src regex.Source, f flags.Set, res *validate.Result) Translation {
		rf := f.(flags.RE2Flags)
		t := Translation{
			Pattern:    src.Pattern,
			IgnoreCase: rf.IgnoreCase(),
			Multiline:  rf.Multiline(),
			DotAll:     rf.DotAll(),
			RE2:        true,
		}
		if !rf.Multiline() {
			t.Pattern = strictDollar(src.Pattern)
		}
		if rf.Ungreedy() {
			t.Unsupported = "ungreedy matching (flag 'U')"
		}
		return t
	},
}

// strictDollar rewrites '$' outside classes to \z, since RE2's '$' does not
// match before a trailing newline. Patterns with inline flag groups are left
// alone; their '$' may be line-relative.
func strictDollar(pattern string) string {
	groups := strings.Count(pattern, "(?") - strings.Count(pattern, "(?:") -
		strings.Count(pattern, "(?P<") - strings.Count(pattern, "(?<")
	if groups > 0 || !strings.Contains(pattern, "$") {
		return pattern
	}
	var b strings.Builder
	inClass := false
	classStart := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
			continue
		case c == '[' && !inClass:
			inClass = true
			classStart = i + 1
			if classStart < len(pattern) && pattern[classStart] == '^' {
				classStart++
			}
		case c == ']' && inClass && i > classStart:
			inClass = false
		case c == '$' && !inClass:
			b.WriteString(`\z`)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
