package regex

import (
	"errors"
	"fmt"
)

// Error classes. Every typed error in this module matches exactly one of
// these through errors.Is.
var (
	// ErrSyntax indicates a malformed pattern or flag string
	ErrSyntax = errors.New("regexp: syntax error")

	// ErrUnsupportedFeature indicates a well-formed pattern that uses a
	// construct outside the configured feature set
	ErrUnsupportedFeature = errors.New("regexp: unsupported feature")

	// ErrUnsupportedFlagCombination indicates flags that are individually
	// valid but cannot be used together
	ErrUnsupportedFlagCombination = errors.New("regexp: unsupported flag combination")

	// ErrArity indicates a call with the wrong number of arguments
	ErrArity = errors.New("regexp: wrong number of arguments")

	// ErrUnknownMember indicates a property or method name that does not exist
	ErrUnknownMember = errors.New("regexp: unknown member")

	// ErrTypeMismatch indicates an argument of an unsupported type
	ErrTypeMismatch = errors.New("regexp: type mismatch")
)

// SyntaxError reports a malformed pattern or flag string.
//
// Position is a character offset into the pattern, or into the flag string
// when InFlags is set.
type SyntaxError struct {
	Source   Source
	Position int
	Message  string
	InFlags  bool
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	where := "pattern"
	if e.InFlags {
		where = "flags"
	}
	return fmt.Sprintf("regexp: invalid regular expression %s: %s at %s offset %d",
		e.Source, e.Message, where, e.Position)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// UnsupportedFeatureError reports a syntactically valid construct that the
// active feature set disallows.
type UnsupportedFeatureError struct {
	Source   Source
	Feature  string
	Position int
}

// Error implements the error interface.
func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("regexp: %s: unsupported feature %q at offset %d",
		e.Source, e.Feature, e.Position)
}

// Unwrap returns ErrUnsupportedFeature.
func (e *UnsupportedFeatureError) Unwrap() error {
	return ErrUnsupportedFeature
}

// UnsupportedFlagCombinationError reports flags that exclude each other.
type UnsupportedFlagCombinationError struct {
	Flags   string
	Message string
}

// Error implements the error interface.
func (e *UnsupportedFlagCombinationError) Error() string {
	return fmt.Sprintf("regexp: flags %q: %s", e.Flags, e.Message)
}

// Unwrap returns ErrUnsupportedFlagCombination.
func (e *UnsupportedFlagCombinationError) Unwrap() error {
	return ErrUnsupportedFlagCombination
}

// ArityError reports a call with the wrong number of arguments.
// Min and Max bound the accepted count (inclusive).
type ArityError struct {
	Member string
	Min    int
	Max    int
	Actual int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("regexp: %s: expected %d arguments, got %d", e.Member, e.Min, e.Actual)
	}
	return fmt.Sprintf("regexp: %s: expected %d to %d arguments, got %d", e.Member, e.Min, e.Max, e.Actual)
}

// Unwrap returns ErrArity.
func (e *ArityError) Unwrap() error {
	return ErrArity
}

// UnknownMemberError reports an unsupported property or method name.
type UnknownMemberError struct {
	Member string
}

// Error implements the error interface.
func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("regexp: unknown member %q", e.Member)
}

// Unwrap returns ErrUnknownMember.
func (e *UnknownMemberError) Unwrap() error {
	return ErrUnknownMember
}

// TypeMismatchError reports an argument that is not of an accepted type.
type TypeMismatchError struct {
	Argument string
	Expected string
	Value    any
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("regexp: %s: expected %s, got %T", e.Argument, e.Expected, e.Value)
}

// Unwrap returns ErrTypeMismatch.
func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
