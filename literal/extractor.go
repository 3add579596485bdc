package literal

import (
	"regexp/syntax"
)

// ExtractorConfig configures extraction limits.
//
// Example:
//
//	config := literal.ExtractorConfig{
//	    MaxLiterals:   64,
//	    MaxLiteralLen: 64,
//	    MaxClassSize:  10,
//	}
//	extractor := literal.New(config)
type ExtractorConfig struct {
	// MaxLiterals limits the size of the extracted language. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal, in characters.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes that are expanded
	// into single-character literals. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor computes the exact language of a parsed pattern, when the
// pattern is built only from literals, small classes, concatenation and
// alternation.
//
// Example:
//
//	re, _ := syntax.Parse("foo|bar", syntax.Perl)
//	seq, ok := literal.New(literal.DefaultConfig()).Exact(re)
//	// ok == true, seq.Strings() == ["foo", "bar"]
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Exact returns the language of re in preference order. It reports false
// when the language is not a small finite set of literals, or when matching
// needs more than string comparison (case folding, captures, assertions).
func (e *Extractor) Exact(re *syntax.Regexp) (*Seq, bool) {
	seq, ok := e.exact(re, 0)
	if !ok || seq.IsEmpty() {
		return nil, false
	}
	return seq, true
}

func (e *Extractor) exact(re *syntax.Regexp, depth int) (*Seq, bool) {
	const maxDepth = 100
	if depth > maxDepth {
		return nil, false
	}

	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 || len(re.Rune) > e.config.MaxLiteralLen {
			return nil, false
		}
		return NewSeq(Literal{Runes: append([]rune(nil), re.Rune...)}), true

	case syntax.OpEmptyMatch:
		return NewSeq(Literal{}), true

	case syntax.OpCharClass:
		return e.expandCharClass(re)

	case syntax.OpConcat:
		acc := NewSeq(Literal{})
		for _, sub := range re.Sub {
			part, ok := e.exact(sub, depth+1)
			if !ok {
				return nil, false
			}
			if acc.Len()*part.Len() > e.config.MaxLiterals {
				return nil, false
			}
			acc = acc.cross(part)
			for _, lit := range acc.literals {
				if lit.Len() > e.config.MaxLiteralLen {
					return nil, false
				}
			}
		}
		return acc, true

	case syntax.OpAlternate:
		acc := NewSeq()
		for _, sub := range re.Sub {
			part, ok := e.exact(sub, depth+1)
			if !ok {
				return nil, false
			}
			acc.union(part)
			if acc.Len() > e.config.MaxLiterals {
				return nil, false
			}
		}
		return acc, true

	default:
		// captures, repetition, anchors and wildcards
		return nil, false
	}
}

// expandCharClass expands a small class into one literal per character.
// Members of a class are mutually exclusive, so their order is irrelevant.
//
// Examples:
//
//	[abc]   → ["a", "b", "c"]
//	[a-z]   → not expanded (26 chars, over the default limit of 10)
func (e *Extractor) expandCharClass(re *syntax.Regexp) (*Seq, bool) {
	if re.Flags&syntax.FoldCase != 0 {
		return nil, false
	}
	count := 0
	for i := 0; i < len(re.Rune); i += 2 {
		count += int(re.Rune[i+1] - re.Rune[i] + 1)
		if count > e.config.MaxClassSize {
			return nil, false
		}
	}
	lits := make([]Literal, 0, count)
	for i := 0; i < len(re.Rune); i += 2 {
		for r := re.Rune[i]; r <= re.Rune[i+1]; r++ {
			lits = append(lits, Literal{Runes: []rune{r}})
		}
	}
	return NewSeq(lits...), true
}

// Alternation parses pattern with the given syntax flags and returns its
// exact language when it is a plain literal alternation such as
// "foo|bar|baz". Patterns that may match the empty string are rejected.
func Alternation(pattern string, flags syntax.Flags) ([]string, bool) {
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, false
	}
	seq, ok := New(DefaultConfig()).Exact(re)
	if !ok || seq.HasEmpty() {
		return nil, false
	}
	return seq.Strings(), true
}
