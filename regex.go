// Package polyregex is a regular expression front-end: it resolves the
// dialect of a pattern, validates it, and hands it to a backend that is
// compiled lazily on first use.
//
// Patterns are written in ECMAScript syntax by default. Python and RE2
// syntax are available through meta.Config.Flavor. Every compiled Regex
// executes through the same contract:
//
//	exec(input, fromIndex) -> result
//
// where offsets are character indices into input and a fromIndex beyond
// the configured bound simply does not match.
//
// Basic usage:
//
//	re, err := polyregex.Compile(`(?<year>\d{4})-(\d{2})`, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := re.Exec("on 2024-05", 0)
//	fmt.Println(res) // "[3,10) [3,7) [8,10)"
//
// Member surface:
//
// Engine and Regex can also be driven by name, the way a host language
// reads properties and calls methods on an object:
//
//	v, _ := re.ReadMember("groupCount")        // 3
//	res, _ := re.InvokeMember("exec", "x", 0)  // *regex.Result
//	_, err = re.InvokeMember("exec", "x")      // *regex.ArityError
//
// Advanced usage:
//
//	config := polyregex.DefaultConfig()
//	config.Flavor = flavor.Python
//	config.RegressionTestMode = true
//	engine, err := polyregex.NewEngine(config)
//	re, err := engine.Compile(`(?P<w>\w+)`, "")
package polyregex

import (
	"sync"

	"github.com/coregx/polyregex/internal/conv"
	"github.com/coregx/polyregex/meta"
	"github.com/coregx/polyregex/regex"
)

// Member names of the invocation surface.
const (
	MemberValidate   = "validate"
	MemberPattern    = "pattern"
	MemberFlags      = "flags"
	MemberGroupCount = "groupCount"
	MemberGroups     = "groups"
	MemberExec       = "exec"
)

// Executable is a value that can be called with positional arguments.
type Executable interface {
	Execute(args ...any) (any, error)
}

// Engine compiles patterns into Regex values.
//
// An Engine is safe for concurrent use. All regexes it creates share one
// exec call site.
type Engine struct {
	inner *meta.Engine
	site  *meta.Dispatcher
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// NewEngine creates an engine for config using the native backend.
//
// Example:
//
//	config := polyregex.DefaultConfig()
//	config.InlineCacheSize = 8
//	engine, err := polyregex.NewEngine(config)
func NewEngine(config meta.Config) (*Engine, error) {
	inner, err := meta.NewEngine(nil, config)
	if err != nil {
		return nil, err
	}
	return newEngine(inner), nil
}

// Wrap exposes an existing meta.Engine through the invocation surface.
// Use it to plug in a custom backend.Compiler.
func Wrap(inner *meta.Engine) *Engine {
	return newEngine(inner)
}

func newEngine(inner *meta.Engine) *Engine {
	return &Engine{inner: inner, site: inner.NewDispatcher()}
}

// Meta returns the underlying engine.
func (e *Engine) Meta() *meta.Engine {
	return e.inner
}

// Stats returns the counters of the engine's exec call site.
func (e *Engine) Stats() meta.Stats {
	return e.site.Stats()
}

// Compile validates pattern with flags and returns a Regex. The backend
// runs on first Exec unless the engine is in regression test mode.
func (e *Engine) Compile(pattern, flags string) (*Regex, error) {
	obj, err := e.inner.Compile(regex.NewSource(pattern, flags))
	if err != nil {
		return nil, err
	}
	return &Regex{engine: e, obj: obj}, nil
}

// Validate reports whether pattern with flags would compile, without
// creating a Regex.
func (e *Engine) Validate(pattern, flags string) error {
	return e.inner.Validate(regex.NewSource(pattern, flags))
}

// Execute is the compile entry point of the invocation surface. It takes
// the pattern and optional flags, both strings, and returns a *Regex.
func (e *Engine) Execute(args ...any) (any, error) {
	pattern, flags, err := sourceArgs("compile", args)
	if err != nil {
		return nil, err
	}
	re, err := e.Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// Members lists the readable members of the engine.
func (e *Engine) Members() []string {
	return []string{MemberValidate}
}

// IsMemberInvocable reports whether member can be passed to InvokeMember.
func (e *Engine) IsMemberInvocable(member string) bool {
	return member == MemberValidate
}

// ReadMember returns the named member. "validate" yields a *ValidateMethod.
func (e *Engine) ReadMember(member string) (any, error) {
	if member != MemberValidate {
		return nil, &regex.UnknownMemberError{Member: member}
	}
	return &ValidateMethod{engine: e}, nil
}

// InvokeMember calls the named member with args.
func (e *Engine) InvokeMember(member string, args ...any) (any, error) {
	if member != MemberValidate {
		return nil, &regex.UnknownMemberError{Member: member}
	}
	return (&ValidateMethod{engine: e}).Execute(args...)
}

// ValidateMethod is the engine's validate member read as a value.
type ValidateMethod struct {
	engine *Engine
}

// Execute validates (pattern, flags?) and returns nil on success.
func (m *ValidateMethod) Execute(args ...any) (any, error) {
	pattern, flags, err := sourceArgs(MemberValidate, args)
	if err != nil {
		return nil, err
	}
	return nil, m.engine.Validate(pattern, flags)
}

// sourceArgs unpacks (pattern, flags?) arguments.
func sourceArgs(member string, args []any) (pattern, flags string, err error) {
	if len(args) < 1 || len(args) > 2 {
		return "", "", &regex.ArityError{Member: member, Min: 1, Max: 2, Actual: len(args)}
	}
	pattern, ok := args[0].(string)
	if !ok {
		return "", "", &regex.TypeMismatchError{Argument: "pattern", Expected: "string", Value: args[0]}
	}
	if len(args) == 2 {
		flags, ok = args[1].(string)
		if !ok {
			return "", "", &regex.TypeMismatchError{Argument: "flags", Expected: "string", Value: args[1]}
		}
	}
	return pattern, flags, nil
}

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic("polyregex: default config rejected: " + err.Error())
	}
	return e
})

// Compile compiles pattern with flags on the default engine.
//
// Example:
//
//	re, err := polyregex.Compile(`\d+`, "g")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern, flags string) (*Regex, error) {
	return defaultEngine().Compile(pattern, flags)
}

// MustCompile is like Compile but panics if the pattern is rejected.
//
// Example:
//
//	var word = polyregex.MustCompile(`\w+`, "")
func MustCompile(pattern, flags string) *Regex {
	re, err := Compile(pattern, flags)
	if err != nil {
		panic("regexp: Compile(" + quote(regex.NewSource(pattern, flags).String()) + "): " + err.Error())
	}
	return re
}

// Validate checks pattern with flags on the default engine.
func Validate(pattern, flags string) error {
	return defaultEngine().Validate(pattern, flags)
}

// quote wraps s in backquotes, like the stdlib panic messages.
func quote(s string) string {
	return "`" + s + "`"
}

// QuoteMeta returns a string that escapes all syntax characters in s, so
// that the result matches s literally in the default syntax.
//
// Example:
//
//	polyregex.QuoteMeta("1.5+2") // `1\.5\+2`
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$/`

	var i int
	for i = 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			break
		}
	}
	if i >= len(s) {
		return s
	}

	b := make([]byte, 2*len(s)-i)
	copy(b, s[:i])
	j := i
	for ; i < len(s); i++ {
		if isSpecial(s[i], special) {
			b[j] = '\\'
			j++
		}
		b[j] = s[i]
		j++
	}
	return string(b[:j])
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Regex is a compiled regular expression.
//
// A Regex is safe for concurrent use. Its backend matcher is built on the
// first Exec and shared by every later call.
type Regex struct {
	engine *Engine
	obj    *meta.Object
}

// Object returns the underlying lazily compiled object.
func (r *Regex) Object() *meta.Object {
	return r.obj
}

// Pattern returns the source pattern.
func (r *Regex) Pattern() string {
	return r.obj.Source().Pattern
}

// Flags returns the flags in canonical order.
func (r *Regex) Flags() string {
	return r.obj.Flags().String()
}

// GroupCount returns the number of capture groups including group 0.
func (r *Regex) GroupCount() int {
	return r.obj.NumberOfCaptureGroups()
}

// Groups returns the group index of every named group, or nil.
func (r *Regex) Groups() map[string]int {
	return r.obj.NamedCaptureGroups()
}

// String returns the source in literal notation, /pattern/flags.
func (r *Regex) String() string {
	return r.obj.Source().String()
}

// Exec matches input starting at fromIndex. input may be a string, a
// []rune or any regex.Input. Unsuccessful matches return regex.NoMatch.
//
// Example:
//
//	re := polyregex.MustCompile(`a+`, "")
//	res, _ := re.Exec("baaab", 0)
//	fmt.Println(res.Start(0), res.End(0)) // 1 4
func (r *Regex) Exec(input any, fromIndex int64) (*regex.Result, error) {
	in, err := regex.ToInput(input)
	if err != nil {
		return nil, err
	}
	return r.engine.site.Execute(r.obj, in, fromIndex)
}

// Members lists the readable members of the regex.
func (r *Regex) Members() []string {
	return []string{MemberPattern, MemberFlags, MemberGroupCount, MemberGroups, MemberExec}
}

// IsMemberInvocable reports whether member can be passed to InvokeMember.
func (r *Regex) IsMemberInvocable(member string) bool {
	return member == MemberExec
}

// ReadMember returns the named property. "exec" yields an *ExecMethod
// bound to r.
func (r *Regex) ReadMember(member string) (any, error) {
	switch member {
	case MemberPattern:
		return r.Pattern(), nil
	case MemberFlags:
		return r.Flags(), nil
	case MemberGroupCount:
		return r.GroupCount(), nil
	case MemberGroups:
		return r.Groups(), nil
	case MemberExec:
		return &ExecMethod{regex: r}, nil
	default:
		return nil, &regex.UnknownMemberError{Member: member}
	}
}

// InvokeMember calls the named method. Only "exec" is invocable; it takes
// exactly (input, fromIndex).
func (r *Regex) InvokeMember(member string, args ...any) (any, error) {
	if member != MemberExec {
		return nil, &regex.UnknownMemberError{Member: member}
	}
	return (&ExecMethod{regex: r}).Execute(args...)
}

// ExecMethod is a regex's exec member read as a value.
type ExecMethod struct {
	regex *Regex
}

// Regex returns the receiver the method is bound to.
func (m *ExecMethod) Regex() *Regex {
	return m.regex
}

// Execute runs exec with exactly two arguments: the input and a numeric
// fromIndex. The result is a *regex.Result.
func (m *ExecMethod) Execute(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, &regex.ArityError{Member: MemberExec, Min: 2, Max: 2, Actual: len(args)}
	}
	from, ok := conv.ToIndex(args[1])
	if !ok {
		return nil, &regex.TypeMismatchError{Argument: "fromIndex", Expected: "integer", Value: args[1]}
	}
	res, err := m.regex.Exec(args[0], from)
	if err != nil {
		return nil, err
	}
	return res, nil
}
