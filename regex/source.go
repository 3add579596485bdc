// Package regex holds the value types shared by every layer of the
// front-end: the pattern source, match results, input sequences and the
// error taxonomy.
//
// Nothing in this package compiles or runs a regular expression. It is the
// vocabulary the flavor, validate, backend and meta packages speak.
package regex

// Source is the textual form of a regular expression: the pattern and its
// flag string, one letter per flag.
//
// Source is a comparable value type. Two sources are equal when both the
// pattern and the flags are equal, so a Source can be used directly as a
// map key.
//
// Example:
//
//	src := regex.Source{Pattern: `a+`, Flags: "i"}
//	fmt.Println(src) // "/a+/i"
type Source struct {
	Pattern string
	Flags   string
}

// NewSource returns a Source for pattern and flags.
func NewSource(pattern, flags string) Source {
	return Source{Pattern: pattern, Flags: flags}
}

// String renders the source in literal notation: /pattern/flags.
func (s Source) String() string {
	return "/" + s.Pattern + "/" + s.Flags
}
