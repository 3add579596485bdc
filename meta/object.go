package meta

import (
	"maps"
	"sync/atomic"

	"github.com/coregx/polyregex/backend"
	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/regex"
	"github.com/coregx/polyregex/validate"
)

// Object is a validated pattern whose matcher is compiled on first use.
//
// The matcher slot is written at most once. Concurrent first uses may each
// run the backend, but only one result is published and every caller gets
// that one.
type Object struct {
	engine   *Engine
	source   regex.Source
	flags    flags.Set
	groups   int
	names    []string
	named    map[string]int
	features validate.Feature

	matcher atomic.Pointer[matcherBox]
}

// matcherBox lets an interface value live behind an atomic.Pointer.
type matcherBox struct {
	m backend.Matcher
}

func newObject(e *Engine, src regex.Source, f flags.Set, res *validate.Result) *Object {
	return &Object{
		engine:   e,
		source:   src,
		flags:    f,
		groups:   res.NumberOfCaptureGroups,
		names:    res.Names,
		named:    res.NamedCaptureGroups(),
		features: res.Features,
	}
}

// Source returns the pattern and flags the object was compiled from.
func (o *Object) Source() regex.Source {
	return o.source
}

// Flags returns the parsed flags.
func (o *Object) Flags() flags.Set {
	return o.flags
}

// NumberOfCaptureGroups returns the group count including group 0.
func (o *Object) NumberOfCaptureGroups() int {
	return o.groups
}

// NamedCaptureGroups returns the index of every named group, or nil when
// the pattern has none. The map is a copy.
func (o *Object) NamedCaptureGroups() map[string]int {
	return maps.Clone(o.named)
}

// GroupNames returns the name of each group by index; unnamed groups are "".
func (o *Object) GroupNames() []string {
	return append([]string(nil), o.names...)
}

// Features returns the constructs the pattern uses.
func (o *Object) Features() validate.Feature {
	return o.features
}

// Engine returns the engine that created the object.
func (o *Object) Engine() *Engine {
	return o.engine
}

// Compiled reports whether the matcher slot is filled.
func (o *Object) Compiled() bool {
	return o.matcher.Load() != nil
}

// Matcher returns the compiled matcher, compiling on first use. Backend
// errors are returned and not cached; a later call retries.
func (o *Object) Matcher() (backend.Matcher, error) {
	if b := o.matcher.Load(); b != nil {
		return b.m, nil
	}

	m, err := o.engine.compiler.Compile(o.source)
	if err != nil {
		o.engine.log.Debug("backend compilation failed", "source", o.source.String(), "error", err)
		return nil, err
	}
	if o.matcher.CompareAndSwap(nil, &matcherBox{m: m}) {
		o.engine.log.Debug("matcher published", "source", o.source.String(), "kind", m.Kind().String())
		return m, nil
	}
	// lost the race; use the published matcher
	return o.matcher.Load().m, nil
}

// Bind installs m as the matcher if none is present and reports whether it
// did. It is how foreign matchers are attached.
func (o *Object) Bind(m backend.Matcher) bool {
	if m == nil {
		return false
	}
	return o.matcher.CompareAndSwap(nil, &matcherBox{m: m})
}
