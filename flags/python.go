package flags

import "github.com/coregx/polyregex/regex"

// PythonAlphabet lists the flags of the Python dialect.
const PythonAlphabet = "aiLmsux"

// PythonFlags is the flag set of the Python (str pattern) dialect.
type PythonFlags struct {
	letters
}

// ParsePython parses src.Flags with the Python alphabet.
//
// Patterns are str patterns: LOCALE ('L') is rejected, and ASCII ('a') and
// UNICODE ('u') exclude each other.
func ParsePython(src regex.Source) (PythonFlags, error) {
	l, err := parseLetters(src, PythonAlphabet)
	if err != nil {
		return PythonFlags{}, err
	}
	f := PythonFlags{letters: l}
	return f, f.check(src.Flags)
}

// check enforces the combination rules for a str pattern. Inline flag
// groups are checked through the same rules.
func (f PythonFlags) check(raw string) error {
	if f.Locale() {
		return &regex.UnsupportedFlagCombinationError{
			Flags:   raw,
			Message: "cannot use LOCALE flag with a str pattern",
		}
	}
	if f.ASCII() && f.Unicode() {
		return &regex.UnsupportedFlagCombinationError{
			Flags:   raw,
			Message: "ASCII and UNICODE flags are incompatible",
		}
	}
	return nil
}

// Merge returns f with the letters of inline added, as an inline global
// flag group "(?x)" does, and re-checks the combination rules.
func (f PythonFlags) Merge(inline string) (PythonFlags, error) {
	merged := f
	for _, c := range inline {
		for i, a := range PythonAlphabet {
			if a == c {
				merged.bits |= 1 << uint(i)
			}
		}
	}
	merged.alphabet = PythonAlphabet
	return merged, merged.check(merged.String())
}

// ASCII reports the 'a' flag.
func (f PythonFlags) ASCII() bool { return f.Has('a') }

// IgnoreCase reports the 'i' flag.
func (f PythonFlags) IgnoreCase() bool { return f.Has('i') }

// Locale reports the 'L' flag.
func (f PythonFlags) Locale() bool { return f.Has('L') }

// Multiline reports the 'm' flag.
func (f PythonFlags) Multiline() bool { return f.Has('m') }

// DotAll reports the 's' flag.
func (f PythonFlags) DotAll() bool { return f.Has('s') }

// Unicode reports the 'u' flag.
func (f PythonFlags) Unicode() bool { return f.Has('u') }

// Verbose reports the 'x' flag.
func (f PythonFlags) Verbose() bool { return f.Has('x') }
