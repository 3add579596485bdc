package validate

import "strings"

// syntaxChars may be identity-escaped in ECMAScript unicode mode.
const syntaxChars = `^$\.*+?()[]{}|/`

func isHex(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isOctal(c rune) bool { return c >= '0' && c <= '7' }

func isASCIILetter(c rune) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

// hexRun consumes up to max hex digits and returns how many it read.
func (s *scanner) hexRun(max int) int {
	n := 0
	for n < max && isHex(s.peek()) {
		s.pos++
		n++
	}
	return n
}

// atomEscape parses an escape outside a character class, starting at '\'.
func (s *scanner) atomEscape() (bool, error) {
	start := s.pos
	s.pos++ // backslash
	if s.eof() {
		return false, s.errorf(start, `\ at end of pattern`)
	}
	c := s.peek()

	switch c {
	case 'b', 'B':
		s.pos++
		s.res.use(WordBoundaries, start)
		if s.opts.Dialect == Python && s.opts.ASCII {
			s.rewrite(start, s.pos, asciiBoundaries[c])
		}
		return false, nil
	}

	if s.opts.Dialect == Python {
		return s.pythonAtomEscape(start)
	}

	switch {
	case c >= '1' && c <= '9':
		numStart := s.pos
		for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
			s.pos++
		}
		n := atoiSaturating(string(s.p[numStart:s.pos]))
		s.backrefs = append(s.backrefs, backref{num: n, pos: start, end: s.pos, octal: !s.opts.Unicode})
		return true, nil

	case c == 'k':
		if !s.opts.Unicode && !s.namedGroupsAhead {
			s.pos++
			s.rewrite(start, s.pos, "k")
			return true, nil
		}
		s.pos++
		if s.peek() != '<' {
			return false, s.errorf(start, "invalid named reference")
		}
		s.pos++
		name, err := s.groupName('>')
		if err != nil {
			return false, err
		}
		s.backrefs = append(s.backrefs, backref{name: name, pos: start, end: s.pos})
		return true, nil
	}

	if repl := s.asciiEscape(c, false); repl != "" {
		s.pos++
		s.rewrite(start, s.pos, repl)
		return true, nil
	}
	_, err := s.characterEscape(start, false)
	return true, err
}

// maxRune closes the open-ended ranges of the negated class members.
const maxRune = "\U0010FFFF"

// asciiClasses pins class escapes to ASCII outside classes.
var asciiClasses = map[rune]string{
	'd': `[0-9]`,
	'D': `[^0-9]`,
	'w': `[a-zA-Z0-9_]`,
	'W': `[^a-zA-Z0-9_]`,
	's': `[\t-\r\x20]`,
	'S': `[^\t-\r\x20]`,
}

// asciiMembers are the same sets written as class members.
var asciiMembers = map[rune]string{
	'd': `0-9`,
	'D': `\x00-\x2F\x3A-` + maxRune,
	'w': `a-zA-Z0-9_`,
	'W': `\x00-\x2F\x3A-\x40\x5B-\x5E\x60\x7B-` + maxRune,
	's': `\t-\r\x20`,
	'S': `\x00-\x08\x0E-\x1F\x21-` + maxRune,
}

var asciiBoundaries = map[rune]string{
	'b': `(?:(?<=[a-zA-Z0-9_])(?![a-zA-Z0-9_])|(?<![a-zA-Z0-9_])(?=[a-zA-Z0-9_]))`,
	'B': `(?:(?<=[a-zA-Z0-9_])(?=[a-zA-Z0-9_])|(?<![a-zA-Z0-9_])(?![a-zA-Z0-9_]))`,
}

// asciiEscape returns the ASCII rendering of the class escape c, or "" when
// the backend's own meaning applies. The default grammar always restricts
// \d and \w; Python does so for all of \d, \w and \s under the ASCII flag.
func (s *scanner) asciiEscape(c rune, inClass bool) string {
	switch {
	case s.opts.Dialect == Python && !s.opts.ASCII:
		return ""
	case s.opts.Dialect == ECMAScript && (c == 's' || c == 'S'):
		return ""
	}
	if inClass {
		return asciiMembers[c]
	}
	return asciiClasses[c]
}

// literal renders c so the backend reads it as itself.
func literal(c rune) string {
	if strings.ContainsRune(`\.+*?()|[]{}^$#- `, c) {
		return `\` + string(c)
	}
	return string(c)
}

// characterEscape parses the escapes shared by atoms and class members,
// with s.pos just after the backslash. It reports whether the escape
// denotes a set of characters (\d, \p{..}) rather than one character.
func (s *scanner) characterEscape(start int, inClass bool) (bool, error) {
	c := s.peek()
	s.pos++

	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S':
		return true, nil
	case 'f', 'n', 'r', 't', 'v':
		return false, nil
	case '0':
		if isOctal(s.peek()) || s.peek() == '8' || s.peek() == '9' {
			if s.opts.Unicode {
				return false, s.errorf(start, "invalid decimal escape")
			}
			for i := 0; i < 2 && isOctal(s.peek()); i++ {
				s.pos++
			}
		}
		return false, nil
	case 'c':
		if isASCIILetter(s.peek()) {
			s.pos++
			return false, nil
		}
		if s.opts.Unicode {
			return false, s.errorf(start, "invalid unicode escape")
		}
		// \c without a letter is a literal backslash followed by 'c'
		s.pos--
		s.rewrite(start, start+1, `\\`)
		return false, nil
	case 'x':
		if isHex(s.peek()) && isHex(s.peekAt(1)) {
			s.pos += 2
			return false, nil
		}
		if s.opts.Unicode {
			return false, s.errorf(start, "invalid escape")
		}
		s.rewrite(start, s.pos, "x")
		return false, nil
	case 'u':
		return false, s.unicodeEscape(start)
	case 'p', 'P':
		if !s.opts.Unicode {
			s.rewrite(start, s.pos, string(c))
			return false, nil
		}
		return true, s.propertyEscape(start)
	case '-':
		if s.opts.Unicode && !inClass {
			return false, s.errorf(start, "invalid escape")
		}
		return false, nil
	}

	if inClass && c >= '1' && c <= '9' {
		if s.opts.Unicode {
			return false, s.errorf(start, "invalid class escape")
		}
		for isOctal(s.peek()) {
			s.pos++
		}
		return false, nil
	}

	if s.opts.Unicode && !strings.ContainsRune(syntaxChars, c) {
		return false, s.errorf(start, "invalid escape")
	}
	if isASCIILetter(c) || c >= '0' && c <= '9' {
		// identity escape of a character the backend gives a meaning
		s.rewrite(start, s.pos, literal(c))
	}
	return false, nil
}

// unicodeEscape parses \uHHHH and, in unicode mode, \u{H...}, with s.pos
// just after 'u'.
func (s *scanner) unicodeEscape(start int) error {
	if s.opts.Unicode && s.peek() == '{' {
		s.pos++
		digitsStart := s.pos
		for isHex(s.peek()) {
			s.pos++
		}
		digits := string(s.p[digitsStart:s.pos])
		if digits == "" || s.peek() != '}' {
			return s.errorf(start, "invalid unicode escape")
		}
		s.pos++
		v := 0
		for _, d := range digits {
			v = v*16 + hexValue(d)
			if v > 0x10FFFF {
				return s.errorf(start, "invalid unicode escape")
			}
		}
		s.rewrite(start, s.pos, literal(rune(v)))
		return nil
	}
	save := s.pos
	if s.hexRun(4) == 4 {
		return nil
	}
	s.pos = save
	if s.opts.Unicode {
		return s.errorf(start, "invalid unicode escape")
	}
	s.rewrite(start, s.pos, "u")
	return nil
}

func hexValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// propertyEscape parses {Name} or {Name=Value} after \p or \P.
func (s *scanner) propertyEscape(start int) error {
	if s.peek() != '{' {
		return s.errorf(start, "invalid property name")
	}
	s.pos++
	bodyStart := s.pos
	for !s.eof() && s.peek() != '}' {
		c := s.peek()
		if !(isASCIILetter(c) || c >= '0' && c <= '9' || c == '_' || c == '=') {
			return s.errorf(start, "invalid property name")
		}
		s.pos++
	}
	if s.eof() || s.pos == bodyStart {
		return s.errorf(start, "invalid property name")
	}
	s.pos++
	s.res.use(UnicodePropertyEscapes, start)
	return nil
}

// pythonAtomEscape parses a Python escape outside a class, s.pos just after
// the backslash.
func (s *scanner) pythonAtomEscape(start int) (bool, error) {
	c := s.peek()
	if repl := s.asciiEscape(c, false); repl != "" {
		s.pos++
		s.rewrite(start, s.pos, repl)
		return true, nil
	}
	switch {
	case c == 'A':
		s.pos++
		return false, nil
	case c == 'Z':
		s.pos++
		s.rewrite(start, s.pos, `\z`)
		return false, nil
	case c == '0':
		s.pos++
		for i := 0; i < 2 && isOctal(s.peek()); i++ {
			s.pos++
		}
		return true, nil
	case c >= '1' && c <= '9':
		if isOctal(c) && isOctal(s.peekAt(1)) && isOctal(s.peekAt(2)) {
			s.pos += 3
			return true, nil
		}
		numStart := s.pos
		s.pos++
		if s.peek() >= '0' && s.peek() <= '9' {
			s.pos++
		}
		n := atoiSaturating(string(s.p[numStart:s.pos]))
		s.backrefs = append(s.backrefs, backref{num: n, pos: start, end: s.pos})
		return true, nil
	}
	_, err := s.pythonCharacterEscape(start)
	return true, err
}

// pythonCharacterEscape parses escapes shared by atoms and class members.
func (s *scanner) pythonCharacterEscape(start int) (bool, error) {
	c := s.peek()
	s.pos++
	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S':
		return true, nil
	case 'a', 'f', 'n', 'r', 't', 'v':
		return false, nil
	case 'x':
		if s.hexRun(2) != 2 {
			return false, s.errorf(start, `incomplete escape \x`)
		}
		return false, nil
	case 'u':
		if s.hexRun(4) != 4 {
			return false, s.errorf(start, `incomplete escape \u`)
		}
		return false, nil
	case 'U':
		if s.hexRun(8) != 8 {
			return false, s.errorf(start, `incomplete escape \U`)
		}
		v := 0
		for _, d := range s.p[start+2 : s.pos] {
			v = v*16 + hexValue(d)
		}
		if v > 0x10FFFF {
			return false, s.errorf(start, `bad escape \U%s`, string(s.p[start+2:s.pos]))
		}
		s.rewrite(start, s.pos, literal(rune(v)))
		return false, nil
	case 'N':
		if s.peek() != '{' {
			return false, s.errorf(start, `missing {`)
		}
		for !s.eof() && s.peek() != '}' {
			s.pos++
		}
		if s.eof() {
			return false, s.errorf(start, `missing }, unterminated name`)
		}
		s.pos++
		return false, nil
	}
	if isASCIILetter(c) || c >= '0' && c <= '9' {
		return false, s.errorf(start, `bad escape \%c`, c)
	}
	return false, nil
}

// class parses a character class starting at '['.
func (s *scanner) class() error {
	start := s.pos
	s.pos++ // [
	negated := false
	if s.peek() == '^' {
		negated = true
		s.pos++
	}

	if s.peek() == ']' {
		if s.opts.Dialect == Python {
			// a leading ']' is literal
			s.pos++
		} else {
			s.pos++
			// empty class: [] never matches, [^] matches anything
			if negated {
				s.rewrite(start, s.pos, `[\s\S]`)
			} else {
				s.rewrite(start, s.pos, `(?!)`)
			}
			return nil
		}
	}

	for {
		if s.eof() {
			return s.errorf(start, "unterminated character class")
		}
		if s.peek() == ']' {
			s.pos++
			return nil
		}
		if s.opts.UnicodeSets && s.peek() == '[' {
			if err := s.class(); err != nil {
				return err
			}
			continue
		}
		if s.opts.UnicodeSets && (s.lookingAt("&&") || s.lookingAt("--")) {
			s.pos += 2
			continue
		}

		loPos := s.pos
		lo, loSet, err := s.classAtom()
		if err != nil {
			return err
		}
		if s.peek() != '-' || s.peekAt(1) == ']' || s.peekAt(1) == -1 {
			continue
		}
		dash := s.pos
		s.pos++
		hi, hiSet, err := s.classAtom()
		if err != nil {
			return err
		}
		if loSet || hiSet {
			if s.opts.Unicode || s.opts.Dialect == Python {
				return s.errorf(loPos, "invalid character class range")
			}
			// a literal '-' next to a set, kept apart from the set's own
			// ranges
			s.rewrite(dash, dash+1, `\-`)
			continue
		}
		if lo > hi {
			return s.errorf(loPos, "range out of order in character class")
		}
	}
}

// classAtom parses one class member and returns its character, or reports
// that it is a set escape.
func (s *scanner) classAtom() (rune, bool, error) {
	start := s.pos
	c := s.peek()
	if c != '\\' {
		s.pos++
		return c, false, nil
	}
	s.pos++
	if s.eof() {
		return 0, false, s.errorf(start, `\ at end of pattern`)
	}
	esc := s.peek()

	if repl := s.asciiEscape(esc, true); repl != "" {
		s.pos++
		s.rewrite(start, s.pos, repl)
		return esc, true, nil
	}

	if s.opts.Dialect == Python {
		if esc == 'b' {
			s.pos++
			return '\b', false, nil
		}
		if isOctal(esc) {
			for i := 0; i < 3 && isOctal(s.peek()); i++ {
				s.pos++
			}
			return octalValue(s.p[start+1 : s.pos]), false, nil
		}
		set, err := s.pythonCharacterEscape(start)
		return s.escapedValue(start, esc), set, err
	}

	if esc == 'b' {
		s.pos++
		return '\b', false, nil
	}
	set, err := s.characterEscape(start, true)
	return s.escapedValue(start, esc), set, err
}

// escapedValue returns the character an escape denotes, for range order
// checks. Escapes with a numeric payload are decoded; others map to the
// control character or to themselves.
func (s *scanner) escapedValue(start int, esc rune) rune {
	body := s.p[start+2 : s.pos]
	switch esc {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case 'a':
		if s.opts.Dialect == Python {
			return '\a'
		}
	case '0':
		return octalValue(s.p[start+1 : s.pos])
	case 'c':
		if len(body) == 1 {
			return body[0] % 32
		}
	case 'x', 'u', 'U':
		digits := strings.Trim(string(body), "{}")
		if digits != "" {
			v := 0
			for _, d := range digits {
				if !isHex(d) {
					return esc
				}
				v = v*16 + hexValue(d)
			}
			return rune(v)
		}
	}
	return esc
}

func octalValue(digits []rune) rune {
	v := rune(0)
	for _, d := range digits {
		v = v*8 + (d - '0')
	}
	return v
}
