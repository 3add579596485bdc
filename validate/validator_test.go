package validate

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/regex"
)

func ecma(t *testing.T, pattern, fl string) (*Result, error) {
	t.Helper()
	src := regex.NewSource(pattern, fl)
	f, err := flags.Parse(src)
	if err != nil {
		t.Fatalf("flags.Parse(%q): %v", fl, err)
	}
	return Validate(src, f)
}

func python(pattern, fl string) (*Result, error) {
	return Scan(regex.NewSource(pattern, fl), Options{
		Dialect: Python,
		ASCII:   strings.ContainsRune(fl, 'a'),
		Flags:   fl,
	})
}

func TestValidateGroups(t *testing.T) {
	tests := []struct {
		pattern string
		groups  int
		names   []string
	}{
		{"abc", 1, []string{""}},
		{"(a)(b)", 3, []string{"", "", ""}},
		{"(?:a)(b)", 2, []string{"", ""}},
		{`(?<year>\d{4})-(?<m>\d\d)`, 3, []string{"", "year", "m"}},
		{"((a)|b)", 3, []string{"", "", ""}},
		{"(?<$a>x)", 2, []string{"", "$a"}},
		{"(?=(a))", 2, []string{"", ""}},
		{"", 1, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			res, err := ecma(t, tt.pattern, "")
			if err != nil {
				t.Fatalf("Validate(%q): %v", tt.pattern, err)
			}
			if res.NumberOfCaptureGroups != tt.groups {
				t.Errorf("NumberOfCaptureGroups = %d, want %d", res.NumberOfCaptureGroups, tt.groups)
			}
			if !slices.Equal(res.Names, tt.names) {
				t.Errorf("Names = %q, want %q", res.Names, tt.names)
			}
		})
	}
}

func TestValidateSyntaxErrors(t *testing.T) {
	tests := []struct {
		pattern string
		flags   string
		pos     int
	}{
		{"a)", "", 1},
		{"(a", "", 0},
		{"x[a", "", 1},
		{"*a", "", 0},
		{"a**", "", 2},
		{"a{2,1}", "", 1},
		{"[z-a]", "", 1},
		{`ab\`, "", 2},
		{`\q`, "u", 0},
		{"(?<n>a)(?<n>b)", "", 7},
		{`\k<x>(?<y>a)`, "", 0},
		{`(a)\2`, "u", 3},
		{`\p{}`, "u", 0},
		{"a{", "u", 1},
		{"{", "u", 0},
		{"(?<=a)*", "", 6},
		{"(?=a)*", "u", 5},
		{"(?x)", "", 0},
		{`\u{110000}`, "u", 0},
		{`\00`, "u", 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.flags, func(t *testing.T) {
			_, err := ecma(t, tt.pattern, tt.flags)
			var se *regex.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Validate(%q) error = %v, want *regex.SyntaxError", tt.pattern, err)
			}
			if !errors.Is(err, regex.ErrSyntax) {
				t.Errorf("errors.Is(err, ErrSyntax) = false")
			}
			if se.InFlags {
				t.Errorf("InFlags = true for a pattern error")
			}
			if se.Position != tt.pos {
				t.Errorf("Position = %d, want %d (%s)", se.Position, tt.pos, se.Message)
			}
		})
	}
}

func TestValidateAnnexB(t *testing.T) {
	// accepted outside unicode mode
	for _, pattern := range []string{`\q`, `(a)\2`, "a{", "{", "}", "]", "(?=a)*", `\k`, `\c`, `\x4`, `\u12`} {
		if _, err := ecma(t, pattern, ""); err != nil {
			t.Errorf("Validate(%q) unexpected error: %v", pattern, err)
		}
	}
}

func TestValidateFeatures(t *testing.T) {
	tests := []struct {
		pattern string
		flags   string
		feature Feature
		pos     int
	}{
		{"x(?=a)", "", LookAhead, 1},
		{"x(?!a)", "", LookAhead, 1},
		{"xy(?<=a)", "", LookBehind, 2},
		{"(?<!a)", "", LookBehind, 0},
		{`(a)\1`, "", BackReferences, 3},
		{`(?<n>a)\k<n>`, "", BackReferences, 7},
		{"(?<n>a)", "", NamedCaptureGroups, 0},
		{`a\p{L}`, "u", UnicodePropertyEscapes, 1},
		{"a+?", "", LazyQuantifiers, 2},
		{"a{1,2}?", "", LazyQuantifiers, 6},
		{`x\bfoo`, "", WordBoundaries, 1},
		{`\B`, "", WordBoundaries, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			res, err := ecma(t, tt.pattern, tt.flags)
			if err != nil {
				t.Fatalf("Validate(%q): %v", tt.pattern, err)
			}
			if !res.Uses(tt.feature) {
				t.Fatalf("Uses(%s) = false", tt.feature)
			}
			if got := res.Position(tt.feature); got != tt.pos {
				t.Errorf("Position(%s) = %d, want %d", tt.feature, got, tt.pos)
			}
		})
	}

	res, err := ecma(t, `(a)\2`, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Uses(BackReferences) {
		t.Error(`\2 with one group is an octal escape, not a backreference`)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		pattern string
		flags   string
		want    string
	}{
		{"abc", "", "abc"},
		{"a$", "", `a\z`},
		{"a$", "m", "a$"},
		{"a.b", "", `a[^\n\r\u2028\u2029]b`},
		{"a.b", "s", "a.b"},
		{"[]", "", "(?!)"},
		{"[^]", "", `[\s\S]`},
		{`\d+`, "", `[0-9]+`},
		{`[\d]`, "", `[0-9]`},
		{`[\w]`, "", `[a-zA-Z0-9_]`},
		{`[^\W]`, "", `[^\x00-\x2F\x3A-\x40\x5B-\x5E\x60\x7B-` + "\U0010FFFF]"},
		{`[\w-a]`, "", `[a-zA-Z0-9_\-a]`},
		{`[\s]`, "", `[\s]`},
		{`(a)\2`, "", `(a)\x02`},
		{`\8`, "", "8"},
		{`\q`, "", "q"},
		{`\k`, "", "k"},
		{`\u{1F600}`, "u", "😀"},
		{`\u{2E}`, "u", `\.`},
		{`(?<n>a)(b)\2`, "", `(?<n>a)(b)\k<1>`},
		{`(?<n>a)(b)\1`, "", `(?<n>a)(b)\k<n>`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.flags, func(t *testing.T) {
			res, err := ecma(t, tt.pattern, tt.flags)
			if err != nil {
				t.Fatalf("Validate(%q): %v", tt.pattern, err)
			}
			if got := res.Translate(tt.pattern); got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestPython(t *testing.T) {
	tests := []struct {
		pattern string
		flags   string
		want    string
		groups  int
	}{
		{"(?P<name>a)(?P=name)", "", `(?<name>a)\k<name>`, 2},
		{"(?i)abc", "", "(?i)abc", 1},
		{"(?a)b", "", "(?:)b", 1},
		{"(?i)(?m)b", "", "(?i)(?m)b", 1},
		{`a\Z`, "", `a\z`, 1},
		{"a{,3}", "", "a{0,3}", 1},
		{"a*+", "", "a*+", 1},
		{"[]a]", "", "[]a]", 1},
		{"(a)(?(1)b|c)", "", "(a)(?(1)b|c)", 2},
		{"(?i:a)", "", "(?i:a)", 1},
		{"(?a-i:a)", "", "(?-i:a)", 1},
		{"(?#note)a", "", "(?#note)a", 1},
		{"(?x) a b # c", "", "(?x) a b # c", 1},
		{"(?P<n>a)(b)(?(2)x|y)", "", "(?<n>a)(b)(?(1)x|y)", 3},
		{`\w[\d]`, "", `\w[\d]`, 1},
		{`\w[\d]\s`, "a", `[a-zA-Z0-9_][0-9][\t-\r\x20]`, 1},
		{`(?a)\w`, "", `(?:)[a-zA-Z0-9_]`, 1},
		{`(?a:\d)\d`, "", `(?:[0-9])\d`, 1},
		{`\bx`, "a", `(?:(?<=[a-zA-Z0-9_])(?![a-zA-Z0-9_])|(?<![a-zA-Z0-9_])(?=[a-zA-Z0-9_]))x`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			res, err := python(tt.pattern, tt.flags)
			if err != nil {
				t.Fatalf("Scan(%q): %v", tt.pattern, err)
			}
			if got := res.Translate(tt.pattern); got != tt.want {
				t.Errorf("Translate = %q, want %q", got, tt.want)
			}
			if res.NumberOfCaptureGroups != tt.groups {
				t.Errorf("NumberOfCaptureGroups = %d, want %d", res.NumberOfCaptureGroups, tt.groups)
			}
		})
	}
}

func TestPythonErrors(t *testing.T) {
	tests := []struct {
		pattern string
		flags   string
		wantErr error
	}{
		{"a(?i)b", "", regex.ErrSyntax},
		{"(?(1)a|b)", "", regex.ErrSyntax},
		{"(a)(?(1)b|c|d)", "", regex.ErrSyntax},
		{`\q`, "", regex.ErrSyntax},
		{"a**", "", regex.ErrSyntax},
		{"(?P<a>x)(?P<a>y)", "", regex.ErrSyntax},
		{"(?P=nope)", "", regex.ErrSyntax},
		{`(a)\2`, "", regex.ErrSyntax},
		{`\x4`, "", regex.ErrSyntax},
		{"(?-a:x)", "", regex.ErrSyntax},
		{"(?u)x", "a", regex.ErrUnsupportedFlagCombination},
		{"(?P<a$>x)", "", regex.ErrSyntax},
		{"(?P<a>x)(?(a$)y)", "", regex.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := python(tt.pattern, tt.flags)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Scan(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
			}
		})
	}
}

func TestPythonFeatures(t *testing.T) {
	res, err := python("(a)(?(1)b|c)", "")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Uses(Conditionals) || res.Position(Conditionals) != 3 {
		t.Errorf("Conditionals at %d, want 3", res.Position(Conditionals))
	}
	if res.Uses(BackReferences) {
		t.Error("a conditional group test is not a backreference")
	}
}

func TestRE2(t *testing.T) {
	src := regex.NewSource(`(?P<n>a)(b)\bx+?`, "")
	res, err := RE2(src, flags.RE2Flags{})
	if err != nil {
		t.Fatal(err)
	}
	if res.NumberOfCaptureGroups != 3 {
		t.Errorf("NumberOfCaptureGroups = %d, want 3", res.NumberOfCaptureGroups)
	}
	if !slices.Equal(res.Names, []string{"", "n", ""}) {
		t.Errorf("Names = %q", res.Names)
	}
	if res.Position(NamedCaptureGroups) != 0 {
		t.Errorf("NamedCaptureGroups at %d, want 0", res.Position(NamedCaptureGroups))
	}
	if res.Position(WordBoundaries) != 11 {
		t.Errorf("WordBoundaries at %d, want 11", res.Position(WordBoundaries))
	}
	if !res.Uses(LazyQuantifiers) {
		t.Error("LazyQuantifiers not recorded")
	}
	if got := res.Translate(src.Pattern); got != src.Pattern {
		t.Errorf("RE2 patterns are not rewritten, got %q", got)
	}

	for _, bad := range []string{"a(", "(?=a)", `\1`, "a**"} {
		if _, err := RE2(regex.NewSource(bad, ""), flags.RE2Flags{}); !errors.Is(err, regex.ErrSyntax) {
			t.Errorf("RE2(%q) error = %v, want syntax error", bad, err)
		}
	}
}

func TestCheckSupport(t *testing.T) {
	src := regex.NewSource(`(?<n>a)\k<n>(?=b)`, "")
	res, err := ecma(t, src.Pattern, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := AllFeatures.CheckSupport(src, res); err != nil {
		t.Errorf("AllFeatures rejected pattern: %v", err)
	}

	err = DFAFeatures.CheckSupport(src, res)
	var ue *regex.UnsupportedFeatureError
	if !errors.As(err, &ue) {
		t.Fatalf("DFAFeatures error = %v, want *regex.UnsupportedFeatureError", err)
	}
	if ue.Feature != "backreferences" || ue.Position != 7 {
		t.Errorf("got %s at %d, want backreferences at 7", ue.Feature, ue.Position)
	}
}

func TestParseFeatureSet(t *testing.T) {
	tests := []struct {
		spec string
		want FeatureSet
	}{
		{"all", AllFeatures},
		{"dfa", DFAFeatures},
		{"", 0},
		{"lookahead,lookbehind", FeatureSet(LookAhead | LookBehind)},
		{"all,-lookbehind", AllFeatures &^ FeatureSet(LookBehind)},
		{"dfa, backreferences", DFAFeatures | FeatureSet(BackReferences)},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseFeatureSet(tt.spec)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseFeatureSet(%q) = %s, want %s", tt.spec, got, tt.want)
			}
		})
	}
	if _, err := ParseFeatureSet("telepathy"); err == nil {
		t.Error("unknown feature accepted")
	}
}
