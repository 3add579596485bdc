// Package flags parses flag strings into the dialect-specific flag sets.
//
// Each dialect has its own alphabet of one-letter flags. Parsing is total
// over that alphabet: every legal letter may appear at most once, in any
// order; unknown and duplicated letters are syntax errors positioned in the
// flag string. Combinations a dialect forbids are reported as
// *regex.UnsupportedFlagCombinationError.
package flags

import (
	"strings"

	"github.com/coregx/polyregex/regex"
)

// Set is the common view of a parsed flag set.
type Set interface {
	// String returns the flags in canonical (alphabet) order.
	String() string
	// Has reports whether the one-letter flag is set.
	Has(flag rune) bool
}

// letters is a parsed flag set over a fixed alphabet.
// Bit i is set when alphabet[i] was present.
type letters struct {
	alphabet string
	bits     uint32
}

func (l letters) Has(flag rune) bool {
	i := strings.IndexRune(l.alphabet, flag)
	return i >= 0 && l.bits&(1<<uint(i)) != 0
}

func (l letters) String() string {
	var b strings.Builder
	for i, c := range l.alphabet {
		if l.bits&(1<<uint(i)) != 0 {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// parseLetters maps src.Flags onto alphabet, rejecting unknown and
// duplicate letters.
func parseLetters(src regex.Source, alphabet string) (letters, error) {
	l := letters{alphabet: alphabet}
	pos := 0
	for _, c := range src.Flags {
		i := strings.IndexRune(alphabet, c)
		if i < 0 {
			return letters{}, &regex.SyntaxError{
				Source:   src,
				Position: pos,
				Message:  "invalid flag '" + string(c) + "'",
				InFlags:  true,
			}
		}
		bit := uint32(1) << uint(i)
		if l.bits&bit != 0 {
			return letters{}, &regex.SyntaxError{
				Source:   src,
				Position: pos,
				Message:  "duplicate flag '" + string(c) + "'",
				InFlags:  true,
			}
		}
		l.bits |= bit
		pos++
	}
	return l, nil
}

// ECMAScriptAlphabet lists the flags of the default grammar.
const ECMAScriptAlphabet = "dgimsuvy"

// Flags is the flag set of the default (ECMAScript) grammar.
type Flags struct {
	letters
}

// Parse parses src.Flags with the default grammar.
//
// Example:
//
//	f, err := flags.Parse(regex.Source{Pattern: "a", Flags: "gi"})
//	// f.Global() == true, f.IgnoreCase() == true
func Parse(src regex.Source) (Flags, error) {
	l, err := parseLetters(src, ECMAScriptAlphabet)
	if err != nil {
		return Flags{}, err
	}
	f := Flags{letters: l}
	if f.Unicode() && f.UnicodeSets() {
		return Flags{}, &regex.UnsupportedFlagCombinationError{
			Flags:   src.Flags,
			Message: "flags 'u' and 'v' are mutually exclusive",
		}
	}
	return f, nil
}

// HasIndices reports the 'd' flag.
func (f Flags) HasIndices() bool { return f.Has('d') }

// Global reports the 'g' flag.
func (f Flags) Global() bool { return f.Has('g') }

// IgnoreCase reports the 'i' flag.
func (f Flags) IgnoreCase() bool { return f.Has('i') }

// Multiline reports the 'm' flag.
func (f Flags) Multiline() bool { return f.Has('m') }

// DotAll reports the 's' flag.
func (f Flags) DotAll() bool { return f.Has('s') }

// Unicode reports the 'u' flag.
func (f Flags) Unicode() bool { return f.Has('u') }

// UnicodeSets reports the 'v' flag.
func (f Flags) UnicodeSets() bool { return f.Has('v') }

// Sticky reports the 'y' flag.
func (f Flags) Sticky() bool { return f.Has('y') }

// EitherUnicode reports whether either unicode mode ('u' or 'v') is on.
func (f Flags) EitherUnicode() bool { return f.Unicode() || f.UnicodeSets() }
