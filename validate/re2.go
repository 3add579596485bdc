package validate

import (
	"errors"
	"regexp/syntax"
	"strings"
	"unicode/utf8"

	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/regex"
)

// RE2 checks src with Go's RE2 grammar. The pattern needs no rewriting, so
// the result carries no edits.
func RE2(src regex.Source, f flags.RE2Flags) (*Result, error) {
	re, err := syntax.Parse(src.Pattern, f.Syntax())
	if err != nil {
		return nil, re2Error(src, err)
	}

	res := newResult()
	res.NumberOfCaptureGroups = re.MaxCap() + 1
	res.Names = re.CapNames()
	walkRE2(src.Pattern, re, res)
	return res, nil
}

func re2Error(src regex.Source, err error) error {
	var se *syntax.Error
	if !errors.As(err, &se) {
		return &regex.SyntaxError{Source: src, Message: err.Error()}
	}
	return &regex.SyntaxError{
		Source:   src,
		Position: max(runeIndex(src.Pattern, se.Expr), 0),
		Message:  string(se.Code),
	}
}

// walkRE2 records the features used by re. Offsets come from the first
// textual occurrence of the construct and are -1 when none is found.
func walkRE2(pattern string, re *syntax.Regexp, res *Result) {
	switch re.Op {
	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		pos := runeIndex(pattern, `\b`)
		if alt := runeIndex(pattern, `\B`); pos < 0 || (alt >= 0 && alt < pos) {
			pos = alt
		}
		res.use(WordBoundaries, pos)
	case syntax.OpCapture:
		if re.Name != "" {
			pos := runeIndex(pattern, "(?P<"+re.Name+">")
			if pos < 0 {
				pos = runeIndex(pattern, "(?<"+re.Name+">")
			}
			res.use(NamedCaptureGroups, pos)
		}
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		if re.Flags&syntax.NonGreedy != 0 {
			res.use(LazyQuantifiers, -1)
		}
	}
	for _, sub := range re.Sub {
		walkRE2(pattern, sub, res)
	}
	if !res.Uses(UnicodePropertyEscapes) {
		pos := runeIndex(pattern, `\p`)
		if alt := runeIndex(pattern, `\P`); pos < 0 || (alt >= 0 && alt < pos) {
			pos = alt
		}
		if pos >= 0 {
			res.use(UnicodePropertyEscapes, pos)
		}
	}
}

// runeIndex is strings.Index in characters, or -1.
func runeIndex(s, sub string) int {
	if sub == "" {
		return -1
	}
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}
