package meta

import (
	"log/slog"
	"sync/atomic"

	"github.com/coregx/polyregex/backend"
	"github.com/coregx/polyregex/regex"
)

// Dispatcher is an exec call site. It remembers the matchers of the first
// few objects it sees; once more objects show up than it has slots for, it
// turns generic and asks each object for its matcher on every call.
//
// The cache only saves lookups. Results never depend on it.
type Dispatcher struct {
	maxIndex int64
	slots    []atomic.Pointer[cacheEntry]
	generic  atomic.Bool
	stats    dispatchStats
	log      *slog.Logger
}

type cacheEntry struct {
	obj     *Object
	matcher backend.Matcher
}

// Stats holds dispatcher counters.
type Stats struct {
	// Hits counts calls answered from the inline cache.
	Hits uint64

	// Misses counts calls that filled a cache slot.
	Misses uint64

	// GenericDispatches counts calls made without the cache.
	GenericDispatches uint64

	// Overflows counts calls whose fromIndex exceeded MaxIndex.
	Overflows uint64
}

type dispatchStats struct {
	hits, misses, generic, overflows atomic.Uint64
}

// NewDispatcher creates a dispatcher with config's cache size and index
// bound.
func NewDispatcher(config Config) *Dispatcher {
	d := &Dispatcher{
		maxIndex: config.MaxIndex,
		slots:    make([]atomic.Pointer[cacheEntry], config.InlineCacheSize),
		log:      config.logger(),
	}
	if config.InlineCacheSize == 0 {
		d.generic.Store(true)
	}
	return d
}

// Execute runs obj against in from fromIndex.
//
// A negative fromIndex is a *regex.TypeMismatchError. A fromIndex above
// MaxIndex yields regex.NoMatch without compiling obj.
func (d *Dispatcher) Execute(obj *Object, in regex.Input, fromIndex int64) (*regex.Result, error) {
	if obj == nil {
		return nil, &regex.TypeMismatchError{Argument: "receiver", Expected: "compiled regex", Value: obj}
	}
	if in == nil {
		return nil, &regex.TypeMismatchError{Argument: "input", Expected: "string or character sequence", Value: in}
	}
	if fromIndex < 0 {
		return nil, &regex.TypeMismatchError{Argument: "fromIndex", Expected: "non-negative integer", Value: fromIndex}
	}
	if fromIndex > d.maxIndex {
		d.stats.overflows.Add(1)
		return regex.NoMatch, nil
	}

	m, err := d.resolve(obj)
	if err != nil {
		return nil, err
	}
	return m.Exec(in, int(fromIndex))
}

// resolve finds obj's matcher through the inline cache.
func (d *Dispatcher) resolve(obj *Object) (backend.Matcher, error) {
	if d.generic.Load() {
		d.stats.generic.Add(1)
		return obj.Matcher()
	}

	for i := range d.slots {
		e := d.slots[i].Load()
		if e == nil {
			break
		}
		if e.obj == obj {
			d.stats.hits.Add(1)
			return e.matcher, nil
		}
	}

	m, err := obj.Matcher()
	if err != nil {
		return nil, err
	}

	entry := &cacheEntry{obj: obj, matcher: m}
	for i := range d.slots {
		if d.slots[i].CompareAndSwap(nil, entry) {
			d.stats.misses.Add(1)
			return m, nil
		}
		if e := d.slots[i].Load(); e.obj == obj {
			// filled concurrently by another caller
			d.stats.misses.Add(1)
			return e.matcher, nil
		}
	}

	if d.generic.CompareAndSwap(false, true) {
		d.log.Debug("inline cache turned generic", "entries", len(d.slots))
	}
	d.stats.generic.Add(1)
	return m, nil
}

// Generic reports whether the dispatcher has given up on its cache.
func (d *Dispatcher) Generic() bool {
	return d.generic.Load()
}

// Stats returns a snapshot of the dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Hits:              d.stats.hits.Load(),
		Misses:            d.stats.misses.Load(),
		GenericDispatches: d.stats.generic.Load(),
		Overflows:         d.stats.overflows.Load(),
	}
}

// ResetStats zeroes the counters.
func (d *Dispatcher) ResetStats() {
	d.stats.hits.Store(0)
	d.stats.misses.Store(0)
	d.stats.generic.Store(0)
	d.stats.overflows.Store(0)
}
