// Package backend defines the compile capability the engine depends on and
// ships the default native implementation.
//
// A backend turns a regex.Source into a Matcher. Matchers come in two
// kinds:
//   - native matchers run in-process on a backtracking engine (regexp2) or,
//     for plain literal alternations, on an Aho-Corasick automaton
//   - foreign matchers forward to an external delegate through its "exec"
//     member
//
// The dispatcher calls both kinds through the same Exec contract.
package backend

import (
	"errors"
	"fmt"

	"github.com/coregx/polyregex/regex"
)

// ErrUnsupportedRegex indicates a pattern that validated but that the
// backend cannot compile.
var ErrUnsupportedRegex = errors.New("regexp: unsupported regex")

// UnsupportedRegexError reports a backend compilation failure.
type UnsupportedRegexError struct {
	Source regex.Source
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *UnsupportedRegexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("regexp: %s: unsupported regex: %s: %v", e.Source, e.Reason, e.Cause)
	}
	return fmt.Sprintf("regexp: %s: unsupported regex: %s", e.Source, e.Reason)
}

// Unwrap returns the underlying engine error, if any.
func (e *UnsupportedRegexError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrUnsupportedRegex.
func (e *UnsupportedRegexError) Is(target error) bool {
	return target == ErrUnsupportedRegex
}

// Kind distinguishes how a matcher is invoked.
type Kind uint8

const (
	// KindNative matchers are called directly.
	KindNative Kind = iota
	// KindForeign matchers forward to a delegate's exec member.
	KindForeign
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindForeign:
		return "foreign"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Matcher is a compiled, immutable, thread-safe matcher.
type Matcher interface {
	// Kind reports how the matcher is invoked.
	Kind() Kind

	// Exec finds the leftmost match starting at or after from, a character
	// offset in [0, in.Len()]. Offsets past the end yield regex.NoMatch.
	Exec(in regex.Input, from int) (*regex.Result, error)
}

// Compiler is the compile capability of a backend.
type Compiler interface {
	// Compile produces a matcher for src, or an error wrapping
	// ErrUnsupportedRegex.
	Compile(src regex.Source) (Matcher, error)
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(src regex.Source) (Matcher, error)

// Compile calls f(src).
func (f CompilerFunc) Compile(src regex.Source) (Matcher, error) {
	return f(src)
}
