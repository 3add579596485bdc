package backend

import (
	"strconv"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/coregx/polyregex/flavor"
	"github.com/coregx/polyregex/regex"
	"github.com/coregx/polyregex/validate"
)

// backtrackMatcher runs a translated pattern on regexp2.
type backtrackMatcher struct {
	re     *regexp2.Regexp
	sticky bool
	// groups maps a group index of the source pattern to regexp2's group
	// number.
	groups []int
}

func newBacktrackMatcher(src regex.Source, t flavor.Translation, res *validate.Result, timeout time.Duration) (*backtrackMatcher, error) {
	opts := regexp2.None
	if t.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if t.Multiline {
		opts |= regexp2.Multiline
	}
	if t.DotAll {
		opts |= regexp2.Singleline
	}
	if t.Verbose {
		opts |= regexp2.IgnorePatternWhitespace
	}
	if t.RE2 {
		opts |= regexp2.RE2
	}

	re, err := regexp2.Compile(t.Pattern, opts)
	if err != nil {
		return nil, &UnsupportedRegexError{Source: src, Reason: "backend rejected pattern", Cause: err}
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	groups, ok := groupNumbers(re, res.Names)
	if !ok {
		return nil, &UnsupportedRegexError{Source: src, Reason: "capture group layout differs from backend"}
	}
	return &backtrackMatcher{re: re, sticky: t.Sticky, groups: groups}, nil
}

// groupNumbers maps source group indices to regexp2 numbers. regexp2 may
// number unnamed groups before named ones, so named groups are looked up by
// name and unnamed groups keep their relative order.
func groupNumbers(re *regexp2.Regexp, names []string) ([]int, bool) {
	var unnamed []int
	for _, n := range re.GetGroupNumbers() {
		if n != 0 && re.GroupNameFromNumber(n) == strconv.Itoa(n) {
			unnamed = append(unnamed, n)
		}
	}

	groups := make([]int, len(names))
	next := 0
	for i := 1; i < len(names); i++ {
		if names[i] != "" {
			n := re.GroupNumberFromName(names[i])
			if n < 0 {
				return nil, false
			}
			groups[i] = n
			continue
		}
		if next >= len(unnamed) {
			return nil, false
		}
		groups[i] = unnamed[next]
		next++
	}
	return groups, next == len(unnamed)
}

func (m *backtrackMatcher) Kind() Kind {
	return KindNative
}

func (m *backtrackMatcher) Exec(in regex.Input, from int) (*regex.Result, error) {
	if from < 0 || from > in.Len() {
		return regex.NoMatch, nil
	}
	match, err := m.re.FindRunesMatchStartingAt(runesOf(in), from)
	if err != nil {
		// match timeout
		return nil, err
	}
	if match == nil || (m.sticky && match.Index != from) {
		return regex.NoMatch, nil
	}

	spans := make([]int, 2*len(m.groups))
	spans[0], spans[1] = match.Index, match.Index+match.Length
	for i := 1; i < len(m.groups); i++ {
		spans[2*i], spans[2*i+1] = -1, -1
		g := match.GroupByNumber(m.groups[i])
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		spans[2*i], spans[2*i+1] = g.Index, g.Index+g.Length
	}
	return regex.NewResult(spans), nil
}
