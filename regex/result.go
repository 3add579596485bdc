package regex

import (
	"fmt"
	"strings"
)

// Result is the outcome of one execution of a matcher.
//
// A successful Result carries a [start, end) character span for every
// capture group, group 0 being the whole match. Groups that did not
// participate report -1 for both ends. The unsuccessful outcome is the
// shared NoMatch value; compare with IsMatch rather than with nil.
//
// Results are immutable once returned.
type Result struct {
	// spans holds start/end pairs, stdlib SubmatchIndex layout
	spans []int
}

// NoMatch is the result of every execution that does not match.
var NoMatch = &Result{}

// NewResult builds a successful Result from flat start/end pairs, in the
// layout returned by regexp.FindSubmatchIndex. The slice is retained.
//
// Panics if spans is empty, has odd length or leaves group 0 unset, since
// any of these indicates a backend bug.
func NewResult(spans []int) *Result {
	if len(spans) < 2 || len(spans)%2 != 0 {
		panic("regex: result needs start/end pairs with group 0")
	}
	if spans[0] < 0 || spans[1] < spans[0] {
		panic("regex: group 0 of a match must be set")
	}
	return &Result{spans: spans}
}

// IsMatch reports whether the execution matched.
func (r *Result) IsMatch() bool {
	return r != nil && len(r.spans) > 0
}

// GroupCount returns the number of groups in the result, including group 0.
// NoMatch has zero groups.
func (r *Result) GroupCount() int {
	if r == nil {
		return 0
	}
	return len(r.spans) / 2
}

// Start returns the start offset of group g, or -1 if the group is unset
// or out of range.
func (r *Result) Start(g int) int {
	if g < 0 || g >= r.GroupCount() {
		return -1
	}
	return r.spans[2*g]
}

// End returns the end offset of group g, or -1 if the group is unset or out
// of range.
func (r *Result) End(g int) int {
	if g < 0 || g >= r.GroupCount() {
		return -1
	}
	return r.spans[2*g+1]
}

// Group returns the span of group g and whether it is set.
func (r *Result) Group(g int) (start, end int, ok bool) {
	start, end = r.Start(g), r.End(g)
	return start, end, start >= 0
}

// Spans returns a copy of the flat start/end pairs.
func (r *Result) Spans() []int {
	if !r.IsMatch() {
		return nil
	}
	out := make([]int, len(r.spans))
	copy(out, r.spans)
	return out
}

// String renders the result as "[s,e) [s,e) -" with "-" for unset groups.
func (r *Result) String() string {
	if !r.IsMatch() {
		return "no match"
	}
	var b strings.Builder
	for g := 0; g < r.GroupCount(); g++ {
		if g > 0 {
			b.WriteByte(' ')
		}
		if s, e, ok := r.Group(g); ok {
			fmt.Fprintf(&b, "[%d,%d)", s, e)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
