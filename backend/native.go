package backend

import (
	"regexp/syntax"
	"time"

	"github.com/coregx/polyregex/flavor"
	"github.com/coregx/polyregex/literal"
	"github.com/coregx/polyregex/regex"
)

// Strategy is the execution engine the native backend picked for a pattern.
type Strategy uint8

const (
	// UseBacktracker runs the pattern on regexp2.
	UseBacktracker Strategy = iota
	// UseAhoCorasick runs a plain literal alternation on an Aho-Corasick
	// automaton.
	UseAhoCorasick
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case UseBacktracker:
		return "Backtracker"
	case UseAhoCorasick:
		return "AhoCorasick"
	default:
		return "Unknown"
	}
}

// NativeConfig configures the native backend.
type NativeConfig struct {
	// Flavor selects the dialect patterns are written in.
	Flavor flavor.Flavor

	// MatchTimeout bounds a single backtracking search. Zero means no limit.
	MatchTimeout time.Duration

	// DisableLiterals forces every pattern onto the backtracker.
	DisableLiterals bool
}

// Native is the default in-process backend.
type Native struct {
	config NativeConfig
}

// NewNative creates a native backend.
func NewNative(config NativeConfig) *Native {
	return &Native{config: config}
}

// Compile re-derives the backend form of src and builds a matcher for it.
// Patterns that fail validation here were never accepted by the engine; the
// error is still returned as an UnsupportedRegexError so callers see one
// class of backend failure.
func (n *Native) Compile(src regex.Source) (Matcher, error) {
	p, err := flavor.Resolve(n.config.Flavor)
	if err != nil {
		return nil, &UnsupportedRegexError{Source: src, Reason: "no processor", Cause: err}
	}
	f, res, err := p.Analyze(src)
	if err != nil {
		return nil, &UnsupportedRegexError{Source: src, Reason: "invalid pattern", Cause: err}
	}
	t := p.Translate(src, f, res)
	if t.Unsupported != "" {
		return nil, &UnsupportedRegexError{Source: src, Reason: t.Unsupported}
	}

	if n.SelectStrategy(t, res.NumberOfCaptureGroups) == UseAhoCorasick {
		lits, _ := literal.Alternation(t.Pattern, syntax.Perl)
		m, err := newLiteralMatcher(lits, t.Sticky)
		if err == nil {
			return m, nil
		}
		// fall back to the backtracker
	}
	return newBacktrackMatcher(src, t, res, n.config.MatchTimeout)
}

// SelectStrategy picks the engine for a translated pattern.
func (n *Native) SelectStrategy(t flavor.Translation, groups int) Strategy {
	if n.config.DisableLiterals || groups != 1 || t.IgnoreCase || t.Verbose {
		return UseBacktracker
	}
	if _, ok := literal.Alternation(t.Pattern, syntax.Perl); ok {
		return UseAhoCorasick
	}
	return UseBacktracker
}

// runesOf returns the characters of in as a slice. Contiguous inputs are
// shared; any other input is gathered into a fresh slice on every call.
func runesOf(in regex.Input) []rune {
	if c, ok := in.(regex.Contiguous); ok {
		return c.Runes()
	}
	rs := make([]rune, in.Len())
	for i := range rs {
		rs[i] = in.At(i)
	}
	return rs
}
