package flags

import (
	"regexp/syntax"

	"github.com/coregx/polyregex/regex"
)

// RE2Alphabet lists the flags of the RE2 (Go) dialect.
const RE2Alphabet = "imsU"

// RE2Flags is the flag set of the RE2 dialect.
type RE2Flags struct {
	letters
}

// ParseRE2 parses src.Flags with the RE2 alphabet.
func ParseRE2(src regex.Source) (RE2Flags, error) {
	l, err := parseLetters(src, RE2Alphabet)
	if err != nil {
		return RE2Flags{}, err
	}
	return RE2Flags{letters: l}, nil
}

// IgnoreCase reports the 'i' flag.
func (f RE2Flags) IgnoreCase() bool { return f.Has('i') }

// Multiline reports the 'm' flag.
func (f RE2Flags) Multiline() bool { return f.Has('m') }

// DotAll reports the 's' flag.
func (f RE2Flags) DotAll() bool { return f.Has('s') }

// Ungreedy reports the 'U' flag.
func (f RE2Flags) Ungreedy() bool { return f.Has('U') }

// Syntax returns the regexp/syntax parse flags for this set, starting from
// syntax.Perl.
func (f RE2Flags) Syntax() syntax.Flags {
	sf := syntax.Perl
	if f.IgnoreCase() {
		sf |= syntax.FoldCase
	}
	if f.Multiline() {
		sf &^= syntax.OneLine
	}
	if f.DotAll() {
		sf |= syntax.DotNL
	}
	if f.Ungreedy() {
		sf |= syntax.NonGreedy
	}
	return sf
}
