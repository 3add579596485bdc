package flavor

import (
	"errors"
	"testing"

	"github.com/coregx/polyregex/regex"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Flavor
	}{
		{"", None},
		{"ecmascript", None},
		{"Python", Python},
		{" re2 ", RE2},
	}
	for _, tt := range tests {
		got, err := Parse(tt.name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
	if _, err := Parse("perl"); err == nil {
		t.Error("Parse(perl) accepted an unknown flavor")
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup(None); ok {
		t.Error("Lookup(None) found a processor; the default is not registered")
	}
	for _, f := range []Flavor{Python, RE2} {
		p, ok := Lookup(f)
		if !ok {
			t.Fatalf("Lookup(%s) not registered", f)
		}
		if p.Flavor() != f {
			t.Errorf("Lookup(%s).Flavor() = %s", f, p.Flavor())
		}
	}
	p, err := Resolve(None)
	if err != nil || p != Default() {
		t.Errorf("Resolve(None) = %v, %v; want Default()", p, err)
	}
	if _, err := Resolve(Flavor(42)); err == nil {
		t.Error("Resolve of an unknown flavor succeeded")
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		flavor  Flavor
		pattern string
		flags   string
		groups  int
		wantErr error
	}{
		{None, "(a)(b)", "gi", 3, nil},
		{None, "(a", "", 0, regex.ErrSyntax},
		{None, "a", "q", 0, regex.ErrSyntax},
		{Python, "(?P<x>a)", "i", 2, nil},
		{Python, "a", "L", 0, regex.ErrUnsupportedFlagCombination},
		{Python, `\p{L}`, "", 0, regex.ErrSyntax},
		{RE2, "(a)(?P<n>b)", "i", 3, nil},
		{RE2, "(?=a)", "", 0, regex.ErrSyntax},
		{RE2, "a", "g", 0, regex.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.flavor.String()+"/"+tt.pattern, func(t *testing.T) {
			p, err := Resolve(tt.flavor)
			if err != nil {
				t.Fatal(err)
			}
			_, res, err := p.Analyze(regex.NewSource(tt.pattern, tt.flags))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Analyze error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if res.NumberOfCaptureGroups != tt.groups {
				t.Errorf("NumberOfCaptureGroups = %d, want %d", res.NumberOfCaptureGroups, tt.groups)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		flavor  Flavor
		pattern string
		flags   string
		want    Translation
	}{
		{None, "a$", "im", Translation{Pattern: "a$", IgnoreCase: true, Multiline: true}},
		{None, "a$", "y", Translation{Pattern: `a\z`, Sticky: true}},
		{None, "a", "v", Translation{Pattern: "a", Unsupported: "unicode sets (flag 'v')"}},
		{Python, "(?P<n>a)", "sx", Translation{Pattern: "(?<n>a)", DotAll: true, Verbose: true}},
		{RE2, "a$|[$]", "", Translation{Pattern: `a\z|[$]`, RE2: true}},
		{RE2, "(?m)a$", "", Translation{Pattern: "(?m)a$", RE2: true}},
		{RE2, "a$", "m", Translation{Pattern: "a$", Multiline: true, RE2: true}},
		{RE2, "a", "U", Translation{Pattern: "a", RE2: true, Unsupported: "ungreedy matching (flag 'U')"}},
	}

	for _, tt := range tests {
		t.Run(tt.flavor.String()+"/"+tt.pattern+"/"+tt.flags, func(t *testing.T) {
			p, _ := Resolve(tt.flavor)
			src := regex.NewSource(tt.pattern, tt.flags)
			f, res, err := p.Analyze(src)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if got := p.Translate(src, f, res); got != tt.want {
				t.Errorf("Translate = %+v, want %+v", got, tt.want)
			}
		})
	}
}
