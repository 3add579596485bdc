package backend

import (
	"sync"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/polyregex/regex"
)

// literalMatcher searches a literal alternation with an Aho-Corasick
// automaton. The automaton works on UTF-8 bytes; offsets are converted back
// to characters.
type literalMatcher struct {
	auto   *ahocorasick.Automaton
	sticky bool
	bufs   sync.Pool
}

func newLiteralMatcher(lits []string, sticky bool) (*literalMatcher, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	m := &literalMatcher{auto: auto, sticky: sticky}
	m.bufs.New = func() any {
		b := make([]byte, 0, 256)
		return &b
	}
	return m, nil
}

func (m *literalMatcher) Kind() Kind {
	return KindNative
}

func (m *literalMatcher) Exec(in regex.Input, from int) (*regex.Result, error) {
	n := in.Len()
	if from < 0 || from >= n {
		// no literal is empty
		return regex.NoMatch, nil
	}

	bp := m.bufs.Get().(*[]byte)
	defer m.bufs.Put(bp)
	buf := (*bp)[:0]
	for i := from; i < n; i++ {
		buf = utf8.AppendRune(buf, in.At(i))
	}
	*bp = buf

	match := m.auto.Find(buf, 0)
	if match == nil {
		return regex.NoMatch, nil
	}
	start := from + utf8.RuneCount(buf[:match.Start])
	if m.sticky && start != from {
		return regex.NoMatch, nil
	}
	end := start + utf8.RuneCount(buf[match.Start:match.End])
	return regex.NewResult([]int{start, end}), nil
}
