// Package flavor maps regex dialects to the components that understand
// them: a flag grammar, a validator and a translation into backend syntax.
//
// The registry is filled once at package initialization and is read-only
// afterwards, so lookups need no locking. The default dialect (ECMAScript)
// is not registered; it is reachable through Default.
package flavor

import (
	"fmt"
	"strings"

	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/regex"
	"github.com/coregx/polyregex/validate"
)

// Flavor identifies a regex dialect.
type Flavor uint8

const (
	// None selects the default grammar and validator.
	None Flavor = iota
	// Python selects Python's re syntax for str patterns.
	Python
	// RE2 selects Go's RE2 syntax.
	RE2
)

// String returns the configuration name of the flavor.
func (f Flavor) String() string {
	switch f {
	case None:
		return "ecmascript"
	case Python:
		return "python"
	case RE2:
		return "re2"
	default:
		return fmt.Sprintf("Flavor(%d)", uint8(f))
	}
}

// Parse maps a configuration name to a flavor. The empty string and
// "ecmascript" select None.
func Parse(name string) (Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "ecmascript", "js":
		return None, nil
	case "python", "py":
		return Python, nil
	case "re2", "go":
		return RE2, nil
	default:
		return None, fmt.Errorf("regexp: unknown flavor %q", name)
	}
}

// Translation is a pattern in backend syntax plus the options it needs.
type Translation struct {
	Pattern string

	IgnoreCase bool
	Multiline  bool
	DotAll     bool
	Verbose    bool

	// Sticky matches only at the start offset.
	Sticky bool

	// RE2 asks the backend for its RE2 compatibility grammar.
	RE2 bool

	// Unsupported, when set, names the construct the backend cannot run.
	Unsupported string
}

// Processor bundles the dialect-specific pieces of compilation.
type Processor struct {
	flavor     Flavor
	parseFlags func(regex.Source) (flags.Set, error)
	validate   func(regex.Source, flags.Set) (*validate.Result, error)
	translate  func(regex.Source, flags.Set, *validate.Result) Translation
}

// Flavor returns the dialect this processor handles.
func (p *Processor) Flavor() Flavor {
	return p.flavor
}

// ParseFlags parses the flag string of src.
func (p *Processor) ParseFlags(src regex.Source) (flags.Set, error) {
	return p.parseFlags(src)
}

// Validate checks the pattern of src under the parsed flags f, and extracts
// its capture groups.
func (p *Processor) Validate(src regex.Source, f flags.Set) (*validate.Result, error) {
	return p.validate(src, f)
}

// Translate renders a validated pattern for the backend.
func (p *Processor) Translate(src regex.Source, f flags.Set, res *validate.Result) Translation {
	return p.translate(src, f, res)
}

// Analyze parses flags and validates in one step.
func (p *Processor) Analyze(src regex.Source) (flags.Set, *validate.Result, error) {
	f, err := p.ParseFlags(src)
	if err != nil {
		return nil, nil, err
	}
	res, err := p.Validate(src, f)
	if err != nil {
		return nil, nil, err
	}
	return f, res, nil
}

var registry = map[Flavor]*Processor{}

func register(p *Processor) {
	if _, dup := registry[p.flavor]; dup {
		panic("flavor: duplicate registration of " + p.flavor.String())
	}
	registry[p.flavor] = p
}

// Lookup returns the processor registered for f. None is never registered.
func Lookup(f Flavor) (*Processor, bool) {
	p, ok := registry[f]
	return p, ok
}

// Resolve returns the processor for f, falling back to Default for None.
func Resolve(f Flavor) (*Processor, error) {
	if f == None {
		return Default(), nil
	}
	p, ok := Lookup(f)
	if !ok {
		return nil, fmt.Errorf("regexp: flavor %s is not registered", f)
	}
	return p, nil
}

func init() {
	register(pythonProcessor)
	register(re2Processor)
}
