package validate

import "slices"

// Result is what validation learns about a well-formed pattern: its capture
// group layout, the features it uses and the rewrites needed to hand it to
// the backend.
type Result struct {
	// NumberOfCaptureGroups counts groups including group 0, so it is >= 1.
	NumberOfCaptureGroups int

	// Names holds the group name per group index; unnamed groups and group 0
	// are "". len(Names) == NumberOfCaptureGroups.
	Names []string

	// Features is the set of features the pattern uses.
	Features Feature

	// positions holds the first offset of each used feature.
	positions [featureCount]int

	// edits rewrite dialect syntax into backend syntax. They never overlap.
	edits []edit
}

// edit replaces the characters [start, end) with repl.
type edit struct {
	start, end int
	repl       string
}

func newResult() *Result {
	r := &Result{NumberOfCaptureGroups: 1, Names: []string{""}}
	for i := range r.positions {
		r.positions[i] = -1
	}
	return r
}

// Uses reports whether the pattern uses f.
func (r *Result) Uses(f Feature) bool {
	return r.Features&f != 0
}

// Position returns the offset of the first use of f, or -1 if unused or
// unknown.
func (r *Result) Position(f Feature) int {
	i := f.index()
	if i < 0 {
		return -1
	}
	return r.positions[i]
}

// use records f at pos, keeping the first position seen.
func (r *Result) use(f Feature, pos int) {
	r.Features |= f
	if i := f.index(); r.positions[i] < 0 || (pos >= 0 && pos < r.positions[i]) {
		r.positions[i] = pos
	}
}

// NamedCaptureGroups returns the group index of every named group, or nil
// if the pattern has none.
func (r *Result) NamedCaptureGroups() map[string]int {
	var m map[string]int
	for i, name := range r.Names {
		if name == "" {
			continue
		}
		if m == nil {
			m = make(map[string]int)
		}
		m[name] = i
	}
	return m
}

// Translate applies the recorded rewrites to pattern, producing the
// backend form. Without rewrites the pattern is returned unchanged.
func (r *Result) Translate(pattern string) string {
	if len(r.edits) == 0 {
		return pattern
	}
	edits := slices.Clone(r.edits)
	slices.SortStableFunc(edits, func(a, b edit) int { return a.start - b.start })
	p := []rune(pattern)
	out := make([]rune, 0, len(p)+8)
	last := 0
	for _, e := range edits {
		out = append(out, p[last:e.start]...)
		out = append(out, []rune(e.repl)...)
		last = e.end
	}
	out = append(out, p[last:]...)
	return string(out)
}
