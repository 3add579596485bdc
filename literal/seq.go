// Package literal extracts the exact literal language of simple patterns.
//
// A pattern such as "foo|bar|baz" matches exactly one of a finite set of
// strings. Such patterns can be searched with a multi-pattern automaton
// instead of a backtracking engine, provided the alternatives keep their
// preference order.
package literal

import "strings"

// Literal is one string of an exact language.
type Literal struct {
	// Runes holds the literal text.
	Runes []rune
}

// NewLiteral creates a Literal from s.
func NewLiteral(s string) Literal {
	return Literal{Runes: []rune(s)}
}

// Len returns the length of the literal in characters.
func (l Literal) Len() int {
	return len(l.Runes)
}

// Bytes returns the UTF-8 encoding of the literal.
func (l Literal) Bytes() []byte {
	return []byte(string(l.Runes))
}

// String returns the literal text.
func (l Literal) String() string {
	return string(l.Runes)
}

// Seq is an ordered set of alternative literals. Order is preference order:
// when two literals match at the same position, the earlier one wins.
//
// Example:
//
//	seq := literal.NewSeq(literal.NewLiteral("foo"), literal.NewLiteral("bar"))
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// HasEmpty reports whether the sequence contains the empty string.
func (s *Seq) HasEmpty() bool {
	for _, lit := range s.literals {
		if lit.Len() == 0 {
			return true
		}
	}
	return false
}

// Strings returns the literals as strings, in order.
func (s *Seq) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.literals))
	for i, lit := range s.literals {
		out[i] = lit.String()
	}
	return out
}

// String renders the sequence as an alternation, for debugging.
func (s *Seq) String() string {
	return strings.Join(s.Strings(), "|")
}

// union appends other to s, keeping the first occurrence of duplicates.
func (s *Seq) union(other *Seq) {
	for _, lit := range other.literals {
		if !s.contains(lit) {
			s.literals = append(s.literals, lit)
		}
	}
}

func (s *Seq) contains(lit Literal) bool {
	for _, have := range s.literals {
		if string(have.Runes) == string(lit.Runes) {
			return true
		}
	}
	return false
}

// cross returns every concatenation of a literal of s followed by a literal
// of other, in preference order.
func (s *Seq) cross(other *Seq) *Seq {
	out := NewSeq()
	for _, a := range s.literals {
		for _, b := range other.literals {
			runes := make([]rune, 0, a.Len()+b.Len())
			runes = append(runes, a.Runes...)
			runes = append(runes, b.Runes...)
			out.literals = append(out.literals, Literal{Runes: runes})
		}
	}
	return out
}
