// Package validate checks regular expression syntax without compiling it.
//
// The validators walk the pattern once, recursive-descent style, and
// report:
//   - syntax errors with the character offset of the offending construct
//   - the capture group layout (count and names)
//   - the set of features used, with the first offset of each
//   - the rewrites that turn dialect-only syntax into backend syntax
//
// Validation never invokes a backend. A pattern that validates may still
// be rejected later by a backend that does not support it.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/regex"
)

// Dialect selects the grammar the scanner applies.
type Dialect uint8

const (
	// ECMAScript is the default grammar.
	ECMAScript Dialect = iota
	// Python is the grammar of Python's re module for str patterns.
	Python
)

// Options configure one scan.
type Options struct {
	Dialect Dialect

	// Unicode enables the strict unicode-mode grammar ('u' or 'v').
	Unicode bool

	// UnicodeSets enables nested classes and set operators ('v').
	UnicodeSets bool

	// Multiline keeps '$' line-relative when translating.
	Multiline bool

	// DotAll lets '.' match line terminators.
	DotAll bool

	// Verbose skips whitespace and '#' comments outside classes (Python 'x').
	Verbose bool

	// ASCII limits \w, \d, \s and \b to ASCII (Python 'a').
	ASCII bool

	// Flags is the flag string the pattern was given, used to check inline
	// Python flags against it.
	Flags string
}

// Validate checks src with the default grammar and returns its analysis.
//
// Example:
//
//	f, _ := flags.Parse(src)
//	res, err := validate.Validate(src, f)
//	if err != nil {
//	    // *regex.SyntaxError
//	}
//	fmt.Println(res.NumberOfCaptureGroups)
func Validate(src regex.Source, f flags.Flags) (*Result, error) {
	return Scan(src, Options{
		Dialect:     ECMAScript,
		Unicode:     f.EitherUnicode(),
		UnicodeSets: f.UnicodeSets(),
		Multiline:   f.Multiline(),
		DotAll:      f.DotAll(),
	})
}

// Scan checks src.Pattern with the given grammar options.
func Scan(src regex.Source, opts Options) (*Result, error) {
	s := &scanner{
		src:  src,
		opts: opts,
		p:    []rune(src.Pattern),
		res:  newResult(),
	}
	if opts.Dialect == Python {
		s.pyFlags = opts.Flags
	}
	s.namedGroupsAhead = s.hasNamedGroups()
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.res, nil
}

// backref is a reference seen during the scan, resolved once the total
// group count is known.
type backref struct {
	num  int
	name string
	// pos and end delimit the reference in the pattern.
	pos, end int
	// octal is set when an out-of-range number may fall back to an octal
	// escape (ECMAScript without unicode mode).
	octal bool
	// cond marks the group test of a conditional, which is not a
	// backreference.
	cond bool
}

type scanner struct {
	src  regex.Source
	opts Options
	p    []rune
	pos  int
	res  *Result

	backrefs []backref
	// namedGroupsAhead is set when the pattern defines named groups, which
	// makes \k a named reference in non-unicode ECMAScript.
	namedGroupsAhead bool
	// pyFlags tracks Python flags for combination checks.
	pyFlags string
	// globalEnd is where a Python global flag group may start.
	globalEnd int
}

func (s *scanner) errorf(pos int, format string, args ...any) error {
	return &regex.SyntaxError{
		Source:   s.src,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (s *scanner) eof() bool { return s.pos >= len(s.p) }

func (s *scanner) peek() rune {
	if s.eof() {
		return -1
	}
	return s.p[s.pos]
}

func (s *scanner) peekAt(off int) rune {
	if s.pos+off >= len(s.p) {
		return -1
	}
	return s.p[s.pos+off]
}

func (s *scanner) lookingAt(lit string) bool {
	i := s.pos
	for _, c := range lit {
		if i >= len(s.p) || s.p[i] != c {
			return false
		}
		i++
	}
	return true
}

func (s *scanner) rewrite(start, end int, repl string) {
	s.res.edits = append(s.res.edits, edit{start: start, end: end, repl: repl})
}

func (s *scanner) hasNamedGroups() bool {
	for i := 0; i+2 < len(s.p); i++ {
		if s.p[i] == '\\' {
			i++
			continue
		}
		if s.p[i] == '(' && s.p[i+1] == '?' && s.p[i+2] == '<' &&
			i+3 < len(s.p) && s.p[i+3] != '=' && s.p[i+3] != '!' {
			return true
		}
	}
	return false
}

func (s *scanner) run() error {
	if _, err := s.disjunction(); err != nil {
		return err
	}
	if !s.eof() {
		// disjunction only stops early at ')'
		return s.errorf(s.pos, "unmatched ')'")
	}
	return s.resolveBackrefs()
}

// disjunction parses alternatives separated by '|' and returns how many
// there were.
func (s *scanner) disjunction() (int, error) {
	n := 1
	for {
		if err := s.alternative(); err != nil {
			return 0, err
		}
		if s.peek() != '|' {
			return n, nil
		}
		s.pos++
		n++
	}
}

func (s *scanner) alternative() error {
	for {
		s.skipVerbose()
		if s.eof() || s.peek() == '|' || s.peek() == ')' {
			return nil
		}
		quantifiable, err := s.term()
		if err != nil {
			return err
		}
		s.skipVerbose()
		if err := s.quantifier(quantifiable); err != nil {
			return err
		}
	}
}

// skipVerbose skips whitespace and comments in Python verbose mode.
func (s *scanner) skipVerbose() {
	if !s.opts.Verbose {
		return
	}
	for !s.eof() {
		c := s.peek()
		switch {
		case unicode.IsSpace(c):
			s.pos++
		case c == '#':
			for !s.eof() && s.peek() != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

// term parses one atom or assertion and reports whether a quantifier may
// follow it.
func (s *scanner) term() (bool, error) {
	start := s.pos
	c := s.peek()
	switch c {
	case '^':
		s.pos++
		return false, nil
	case '$':
		s.pos++
		if s.opts.Dialect == ECMAScript && !s.opts.Multiline {
			// '$' is end-of-input only; the backend also matches before a
			// final newline
			s.rewrite(start, s.pos, `\z`)
		}
		return false, nil
	case '.':
		s.pos++
		if s.opts.Dialect == ECMAScript && !s.opts.DotAll {
			s.rewrite(start, s.pos, `[^\n\r\u2028\u2029]`)
		}
		return true, nil
	case '\\':
		return s.atomEscape()
	case '[':
		return true, s.class()
	case '(':
		return s.group()
	case '*', '+', '?':
		return false, s.errorf(start, "nothing to repeat")
	case '{':
		if _, _, ok := s.braces(); ok {
			return false, s.errorf(start, "nothing to repeat")
		}
		if s.opts.Dialect == ECMAScript && s.opts.Unicode {
			return false, s.errorf(start, "lone quantifier brackets")
		}
		s.pos++
		return true, nil
	case '}':
		if s.opts.Dialect == ECMAScript && s.opts.Unicode {
			return false, s.errorf(start, "lone quantifier brackets")
		}
		s.pos++
		return true, nil
	case ']':
		if s.opts.Dialect == ECMAScript && s.opts.Unicode {
			return false, s.errorf(start, "lone ']'")
		}
		s.pos++
		return true, nil
	default:
		s.pos++
		return true, nil
	}
}

// braces returns the length of a well-formed brace quantifier at pos.
func (s *scanner) braces() (length int, maxOpen bool, ok bool) {
	if s.peek() != '{' {
		return 0, false, false
	}
	i := s.pos + 1
	digits := func() int {
		j := i
		for i < len(s.p) && s.p[i] >= '0' && s.p[i] <= '9' {
			i++
		}
		return i - j
	}
	minDigits := digits()
	if minDigits == 0 && s.opts.Dialect != Python {
		return 0, false, false
	}
	if i < len(s.p) && s.p[i] == '}' {
		if minDigits == 0 {
			return 0, false, false
		}
		return i + 1 - s.pos, false, true
	}
	if i >= len(s.p) || s.p[i] != ',' {
		return 0, false, false
	}
	i++
	maxDigits := digits()
	if i >= len(s.p) || s.p[i] != '}' {
		return 0, false, false
	}
	return i + 1 - s.pos, maxDigits == 0, true
}

// braceBounds parses the numbers of the brace quantifier at pos. Values
// saturate instead of overflowing.
func (s *scanner) braceBounds() (lo, hi int, length int) {
	length, maxOpen, _ := s.braces()
	body := string(s.p[s.pos+1 : s.pos+length-1])
	minStr, maxStr, hasComma := strings.Cut(body, ",")
	lo = atoiSaturating(minStr)
	switch {
	case !hasComma:
		hi = lo
	case maxOpen:
		hi = -1
	default:
		hi = atoiSaturating(maxStr)
	}
	return lo, hi, length
}

func atoiSaturating(digits string) int {
	const limit = 1 << 30
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
		if n > limit {
			return limit
		}
	}
	return n
}

// quantifier parses an optional quantifier after a term.
func (s *scanner) quantifier(quantifiable bool) error {
	qpos := s.pos
	switch s.peek() {
	case '*', '+', '?':
		s.pos++
	case '{':
		if _, _, ok := s.braces(); !ok {
			if s.opts.Dialect == ECMAScript && s.opts.Unicode {
				return s.errorf(qpos, "incomplete quantifier")
			}
			// a literal '{', parsed as the next term
			return nil
		}
		lo, hi, length := s.braceBounds()
		if hi >= 0 && hi < lo {
			return s.errorf(qpos, "numbers out of order in {} quantifier")
		}
		if s.opts.Dialect == Python && s.peekAt(1) == ',' {
			// {,n} has an implicit zero minimum
			s.rewrite(qpos+1, qpos+1, "0")
		}
		s.pos += length
	default:
		return nil
	}

	if !quantifiable {
		return s.errorf(qpos, "nothing to repeat")
	}

	switch s.peek() {
	case '?':
		s.res.use(LazyQuantifiers, s.pos)
		s.pos++
	case '+':
		if s.opts.Dialect == Python {
			// possessive
			s.pos++
		}
	}

	if s.opts.Dialect == Python {
		switch s.peek() {
		case '*', '+', '?':
			return s.errorf(s.pos, "multiple repeat")
		case '{':
			if _, _, ok := s.braces(); ok {
				return s.errorf(s.pos, "multiple repeat")
			}
		}
	}
	return nil
}

// group parses a parenthesized construct starting at '('.
func (s *scanner) group() (bool, error) {
	start := s.pos
	s.pos++ // (
	ascii := s.opts.ASCII

	quantifiable := true
	capture := false
	name := ""

	if s.peek() == '?' {
		var err error
		var done bool
		quantifiable, capture, name, done, err = s.groupPrefix(start)
		if err != nil {
			return false, err
		}
		if done {
			return quantifiable, nil
		}
	} else {
		capture = true
	}

	if capture {
		s.res.NumberOfCaptureGroups++
		s.res.Names = append(s.res.Names, name)
	}

	if _, err := s.disjunction(); err != nil {
		return false, err
	}
	if s.peek() != ')' {
		return false, s.errorf(start, "unterminated group")
	}
	s.pos++
	// scoped flags end with the group
	s.opts.ASCII = ascii
	return quantifiable, nil
}

// groupPrefix parses what follows "(?". It returns done when the whole
// construct, closing parenthesis included, has been consumed.
func (s *scanner) groupPrefix(start int) (quantifiable, capture bool, name string, done bool, err error) {
	s.pos++ // ?
	switch {
	case s.lookingAt(":"):
		s.pos++
		return true, false, "", false, nil
	case s.lookingAt("="), s.lookingAt("!"):
		s.res.use(LookAhead, start)
		s.pos++
		// Annex B permits quantified lookahead outside unicode mode
		return s.opts.Dialect == Python || !s.opts.Unicode, false, "", false, nil
	case s.lookingAt("<="), s.lookingAt("<!"):
		s.res.use(LookBehind, start)
		s.pos += 2
		return false, false, "", false, nil
	}

	if s.opts.Dialect == Python {
		return s.pythonGroupPrefix(start)
	}

	if s.lookingAt("<") {
		s.pos++
		name, err := s.groupName('>')
		if err != nil {
			return false, false, "", false, err
		}
		if err := s.defineName(name, start); err != nil {
			return false, false, "", false, err
		}
		return true, true, name, false, nil
	}
	return false, false, "", false, s.errorf(start, "invalid group")
}

func (s *scanner) pythonGroupPrefix(start int) (quantifiable, capture bool, name string, done bool, err error) {
	switch {
	case s.lookingAt("P<"):
		s.rewrite(s.pos, s.pos+2, "<")
		s.pos += 2
		name, err := s.groupName('>')
		if err != nil {
			return false, false, "", false, err
		}
		if err := s.defineName(name, start); err != nil {
			return false, false, "", false, err
		}
		return true, true, name, false, nil

	case s.lookingAt("P="):
		s.pos += 2
		name, err := s.groupName(')')
		if err != nil {
			return false, false, "", false, err
		}
		s.backrefs = append(s.backrefs, backref{name: name, pos: start})
		s.rewrite(start, s.pos, `\k<`+name+`>`)
		return true, false, "", true, nil

	case s.lookingAt(">"):
		// atomic group
		s.pos++
		return true, false, "", false, nil

	case s.lookingAt("#"):
		for !s.eof() && s.peek() != ')' {
			s.pos++
		}
		if s.eof() {
			return false, false, "", false, s.errorf(start, "missing ), unterminated comment")
		}
		s.pos++
		return false, false, "", true, nil

	case s.lookingAt("("):
		return s.conditional(start)
	}

	return s.inlineFlags(start)
}

// conditional parses "(?(id)yes|no)" after "(?".
func (s *scanner) conditional(start int) (bool, bool, string, bool, error) {
	s.res.use(Conditionals, start)
	s.pos++ // (
	refStart := s.pos
	for !s.eof() && s.peek() != ')' {
		s.pos++
	}
	if s.eof() {
		return false, false, "", false, s.errorf(start, "missing ), unterminated name")
	}
	ref := string(s.p[refStart:s.pos])
	s.pos++ // )
	if ref == "" {
		return false, false, "", false, s.errorf(refStart, "missing group name")
	}
	if n, ok := decimal(ref); ok {
		if n == 0 {
			return false, false, "", false, s.errorf(refStart, "bad group number")
		}
		s.backrefs = append(s.backrefs, backref{num: n, pos: refStart, end: refStart + len([]rune(ref)), cond: true})
	} else {
		if !s.isIdentifier(ref) {
			return false, false, "", false, s.errorf(refStart, "bad character in group name %q", ref)
		}
		s.backrefs = append(s.backrefs, backref{name: ref, pos: refStart, cond: true})
	}

	alternatives, err := s.disjunction()
	if err != nil {
		return false, false, "", false, err
	}
	if alternatives > 2 {
		return false, false, "", false, s.errorf(start, "conditional backref with more than two branches")
	}
	if s.peek() != ')' {
		return false, false, "", false, s.errorf(start, "unterminated group")
	}
	s.pos++
	return true, false, "", true, nil
}

// inlineFlags parses "(?aiLmsux)" and "(?flags-flags:...)" after "(?".
func (s *scanner) inlineFlags(start int) (bool, bool, string, bool, error) {
	on, off := "", ""
	neg := false
	for !s.eof() && s.peek() != ')' && s.peek() != ':' {
		c := s.peek()
		switch {
		case c == '-' && !neg:
			neg = true
		case c != '-' && strings.ContainsRune(flags.PythonAlphabet, c):
			if neg {
				off += string(c)
			} else {
				on += string(c)
			}
		case c == '-':
			return false, false, "", false, s.errorf(s.pos, "bad inline flags")
		default:
			return false, false, "", false, s.errorf(start, "unknown extension ?%c", c)
		}
		s.pos++
	}
	if s.eof() {
		return false, false, "", false, s.errorf(start, "missing -, : or )")
	}
	if on == "" && off == "" {
		return false, false, "", false, s.errorf(start, "missing flag")
	}

	merged, err := (flags.PythonFlags{}).Merge(s.pyFlags + on)
	if err != nil {
		return false, false, "", false, err
	}

	if s.peek() == ')' {
		// global flags
		if neg {
			return false, false, "", false, s.errorf(start, "missing :")
		}
		if start != s.globalEnd {
			return false, false, "", false, s.errorf(start, "global flags not at the start of the expression")
		}
		s.pyFlags = merged.String()
		if strings.ContainsRune(on, 'x') {
			s.opts.Verbose = true
		}
		if strings.ContainsRune(on, 'a') {
			s.opts.ASCII = true
		}
		s.pos++
		s.globalEnd = s.pos
		s.rewrite(start, s.pos, backendFlags(on, "", ")"))
		return false, false, "", true, nil
	}

	for _, c := range off {
		if !strings.ContainsRune("imsx", c) {
			return false, false, "", false, s.errorf(start, "bad inline flags: cannot turn off flags 'a', 'u' and 'L'")
		}
	}
	if strings.ContainsRune(on, 'a') {
		s.opts.ASCII = true
	}
	s.pos++ // :
	s.rewrite(start, s.pos, backendFlags(on, off, ":"))
	return true, false, "", false, nil
}

// backendFlags renders an inline flag group in backend syntax, keeping
// only the flags the backend understands. term is ")" for a global group
// and ":" for a scoped one.
func backendFlags(on, off, term string) string {
	keep := func(fs string) string {
		var b strings.Builder
		for _, c := range fs {
			if strings.ContainsRune("imsx", c) {
				b.WriteRune(c)
			}
		}
		return b.String()
	}
	on, off = keep(on), keep(off)
	if on == "" && off == "" {
		if term == ")" {
			return "(?:)"
		}
		return "(?:"
	}
	if off != "" {
		return "(?" + on + "-" + off + term
	}
	return "(?" + on + term
}

// groupName reads a group name up to the terminator, which is consumed.
func (s *scanner) groupName(term rune) (string, error) {
	start := s.pos
	for !s.eof() && s.peek() != term {
		s.pos++
	}
	if s.eof() {
		return "", s.errorf(start, "missing %c, unterminated name", term)
	}
	name := string(s.p[start:s.pos])
	s.pos++
	if name == "" {
		return "", s.errorf(start, "missing group name")
	}
	if !s.isIdentifier(name) {
		return "", s.errorf(start, "invalid capture group name %q", name)
	}
	return name, nil
}

func (s *scanner) defineName(name string, pos int) error {
	for _, existing := range s.res.Names {
		if existing == name {
			return s.errorf(pos, "duplicate capture group name %q", name)
		}
	}
	s.res.use(NamedCaptureGroups, pos)
	return nil
}

func (s *scanner) resolveBackrefs() error {
	names := s.res.NamedCaptureGroups()
	for _, ref := range s.backrefs {
		if names != nil && ref.name == "" && ref.num > 0 && ref.num < s.res.NumberOfCaptureGroups {
			s.rewrite(ref.pos, ref.end, s.backendRef(ref))
		}
		switch {
		case ref.name != "":
			if _, ok := names[ref.name]; !ok {
				if s.opts.Dialect == Python {
					return s.errorf(ref.pos, "unknown group name %q", ref.name)
				}
				return s.errorf(ref.pos, "undefined group name %q", ref.name)
			}
		case ref.num >= s.res.NumberOfCaptureGroups:
			if ref.octal {
				s.rewrite(ref.pos, ref.end, legacyEscape(s.p[ref.pos+1:ref.end]))
				continue
			}
			if s.opts.Dialect == Python {
				return s.errorf(ref.pos, "invalid group reference %d", ref.num)
			}
			return s.errorf(ref.pos, "invalid escape")
		}
		if ref.cond {
			continue
		}
		s.res.use(BackReferences, ref.pos)
	}
	return nil
}

// backendRef renders a numeric reference for the backend, which numbers
// unnamed groups before named ones.
func (s *scanner) backendRef(ref backref) string {
	target := ref.num
	if name := s.res.Names[target]; name != "" {
		if ref.cond {
			return name
		}
		return `\k<` + name + `>`
	}
	n := 0
	for i := 1; i <= target; i++ {
		if s.res.Names[i] == "" {
			n++
		}
	}
	if ref.cond {
		return strconv.Itoa(n)
	}
	return `\k<` + strconv.Itoa(n) + `>`
}

// isIdentifier reports whether name is a valid group name. Only the
// default grammar admits '$'.
func (s *scanner) isIdentifier(name string) bool {
	for i, c := range name {
		switch {
		case c == '_' || unicode.IsLetter(c):
		case c == '$' && s.opts.Dialect == ECMAScript:
		case i > 0 && unicode.IsDigit(c):
		default:
			return false
		}
	}
	return name != ""
}

// legacyEscape renders a decimal escape that names no group, which outside
// unicode mode is an octal escape followed by literal digits.
func legacyEscape(digits []rune) string {
	n := 0
	v := 0
	for n < len(digits) && n < 3 && isOctal(digits[n]) {
		next := v*8 + int(digits[n]-'0')
		if next > 0377 {
			break
		}
		v = next
		n++
	}
	if n == 0 {
		// \8 and \9 are identity escapes
		return string(digits)
	}
	return fmt.Sprintf(`\x%02X`, v) + string(digits[n:])
}

func decimal(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	return atoiSaturating(s), true
}
