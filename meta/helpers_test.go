package meta

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/coregx/polyregex/backend"
	"github.com/coregx/polyregex/regex"
)

// countingCompiler counts backend compilations.
type countingCompiler struct {
	inner backend.Compiler
	calls atomic.Int64
}

func (c *countingCompiler) Compile(src regex.Source) (backend.Matcher, error) {
	c.calls.Add(1)
	return c.inner.Compile(src)
}

func newCounting() *countingCompiler {
	return &countingCompiler{inner: backend.NewNative(backend.NativeConfig{})}
}

var errBackendDown = errors.New("backend down")

// failingCompiler rejects every pattern.
var failingCompiler = backend.CompilerFunc(func(src regex.Source) (backend.Matcher, error) {
	return nil, &backend.UnsupportedRegexError{Source: src, Reason: "test backend", Cause: errBackendDown}
})

func newTestEngine(t *testing.T, compiler backend.Compiler, mutate ...func(*Config)) *Engine {
	t.Helper()
	config := DefaultConfig()
	for _, m := range mutate {
		m(&config)
	}
	e, err := NewEngine(compiler, config)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func mustCompile(t *testing.T, e *Engine, pattern, flags string) *Object {
	t.Helper()
	obj, err := e.Compile(regex.NewSource(pattern, flags))
	if err != nil {
		t.Fatalf("Compile(/%s/%s): %v", pattern, flags, err)
	}
	return obj
}
