package backend

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/coregx/polyregex/flavor"
	"github.com/coregx/polyregex/regex"
)

func mustCompile(t *testing.T, n *Native, pattern, flags string) Matcher {
	t.Helper()
	m, err := n.Compile(regex.NewSource(pattern, flags))
	if err != nil {
		t.Fatalf("Compile(/%s/%s): %v", pattern, flags, err)
	}
	return m
}

func TestNativeExec(t *testing.T) {
	tests := []struct {
		pattern string
		flags   string
		input   string
		from    int
		want    []int // nil means no match
	}{
		{"(a)(b)?", "", "xa", 0, []int{1, 2, 1, 2, -1, -1}},
		{`(?<n>a)(b)`, "", "ab", 0, []int{0, 2, 0, 1, 1, 2}},
		{`(a)(?<n>b)(c)`, "", "abc", 0, []int{0, 3, 0, 1, 1, 2, 2, 3}},
		{"a", "", "aXa", 1, []int{2, 3}},
		{"a", "", "aXa", 4, nil},
		{"", "", "abc", 3, []int{3, 3}},
		{"a", "y", "ba", 0, nil},
		{"a", "y", "ba", 1, []int{1, 2}},
		{"a+", "y", "baa", 0, nil},
		{"a+", "y", "baa", 1, []int{1, 3}},
		{"foo|bar", "", "xxbarfoo", 0, []int{2, 5}},
		{"héllo|wörld", "", "xx wörld héllo", 0, []int{3, 8}},
		{"é", "", "aéb", 0, []int{1, 2}},
		{"a$", "", "a\n", 0, nil},
		{"a$", "m", "a\n", 0, []int{0, 1}},
		{"a.b", "", "a\rb", 0, nil},
		{"a.b", "s", "a\rb", 0, []int{0, 3}},
		{`(a)\1`, "", "aa", 0, []int{0, 2, 0, 1}},
		{`(?<n>a)(b)\2`, "", "abb", 0, []int{0, 3, 0, 1, 1, 2}},
		{"(?<=a)b", "", "ab", 0, []int{1, 2}},
		{"ABC", "i", "xabc", 0, []int{1, 4}},
		{`\d+`, "", "ab٣12", 0, []int{3, 5}},
		{"[]", "", "abc", 0, nil},
		{"[^]", "", "\n", 0, []int{0, 1}},
	}

	n := NewNative(NativeConfig{})
	for _, tt := range tests {
		t.Run(fmt.Sprintf("/%s/%s@%d", tt.pattern, tt.flags, tt.from), func(t *testing.T) {
			m := mustCompile(t, n, tt.pattern, tt.flags)
			if m.Kind() != KindNative {
				t.Errorf("Kind() = %s, want native", m.Kind())
			}
			got, err := m.Exec(regex.NewText(tt.input), tt.from)
			if err != nil {
				t.Fatalf("Exec: %v", err)
			}
			if tt.want == nil {
				if got.IsMatch() {
					t.Fatalf("Exec = %s, want no match", got)
				}
				return
			}
			if !got.IsMatch() {
				t.Fatalf("Exec = no match, want %v", tt.want)
			}
			spans := got.Spans()
			if fmt.Sprint(spans) != fmt.Sprint(tt.want) {
				t.Errorf("Spans() = %v, want %v", spans, tt.want)
			}
		})
	}
}

func TestNativeFlavors(t *testing.T) {
	tests := []struct {
		flavor  flavor.Flavor
		pattern string
		flags   string
		input   string
		want    []int
	}{
		{flavor.Python, `(?P<y>\d+)-(?P<m>\d+)`, "", "on 2024-05", []int{3, 10, 3, 7, 8, 10}},
		{flavor.Python, `(?P<w>a)(?P=w)`, "", "xaa", []int{1, 3, 1, 2}},
		{flavor.Python, `(?i)abc`, "", "ABC", []int{0, 3}},
		{flavor.Python, `a\Z`, "", "a\n", nil},
		{flavor.Python, `a{,2}`, "", "aaa", []int{0, 2}},
		{flavor.Python, `\w+`, "", "é1", []int{0, 2}},
		{flavor.Python, `\w+`, "a", "é1", []int{1, 2}},
		{flavor.Python, `(?a)[\w]`, "", "é", nil},
		{flavor.Python, `\bx`, "", "éx", nil},
		{flavor.Python, `(?a:\bx)`, "", "éx", []int{1, 2}},
		{flavor.None, `[\w]`, "", "é", nil},
		{flavor.None, `[^\W]+`, "", "é_1", []int{1, 3}},
		{flavor.None, `[\D]`, "", "٣", []int{0, 1}},
		{flavor.None, `[\w-]+`, "", "é-a", []int{1, 3}},
		{flavor.RE2, `(?P<n>a)(b)`, "", "ab", []int{0, 2, 0, 1, 1, 2}},
		{flavor.RE2, `a$`, "", "a\n", nil},
		{flavor.RE2, `a$`, "m", "a\n", []int{0, 1}},
		{flavor.RE2, `foo|bar`, "", "bar", []int{0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.flavor.String()+"/"+tt.pattern, func(t *testing.T) {
			n := NewNative(NativeConfig{Flavor: tt.flavor})
			m := mustCompile(t, n, tt.pattern, tt.flags)
			got, err := m.Exec(regex.NewText(tt.input), 0)
			if err != nil {
				t.Fatalf("Exec: %v", err)
			}
			if tt.want == nil {
				if got.IsMatch() {
					t.Errorf("Exec = %s, want no match", got)
				}
				return
			}
			if fmt.Sprint(got.Spans()) != fmt.Sprint(tt.want) {
				t.Errorf("Spans() = %v, want %v", got.Spans(), tt.want)
			}
		})
	}
}

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		pattern string
		flags   string
		want    Strategy
	}{
		{"foo|bar|baz", "", UseAhoCorasick},
		{"foo", "", UseAhoCorasick},
		{"foo", "i", UseBacktracker},
		{"(foo)", "", UseBacktracker},
		{"foo|", "", UseBacktracker},
		{"fo+", "", UseBacktracker},
		{"a.b", "", UseBacktracker},
	}

	n := NewNative(NativeConfig{})
	p := flavor.Default()
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.flags, func(t *testing.T) {
			src := regex.NewSource(tt.pattern, tt.flags)
			f, res, err := p.Analyze(src)
			if err != nil {
				t.Fatal(err)
			}
			got := n.SelectStrategy(p.Translate(src, f, res), res.NumberOfCaptureGroups)
			if got != tt.want {
				t.Errorf("SelectStrategy = %s, want %s", got, tt.want)
			}
		})
	}

	off := NewNative(NativeConfig{DisableLiterals: true})
	src := regex.NewSource("foo|bar", "")
	f, res, _ := p.Analyze(src)
	if got := off.SelectStrategy(p.Translate(src, f, res), 1); got != UseBacktracker {
		t.Errorf("DisableLiterals: SelectStrategy = %s, want Backtracker", got)
	}
}

func TestLiteralMatchesBacktracker(t *testing.T) {
	inputs := []string{"", "foo", "xbar", "bazfoo", "ba", "fóo bar", "nothing"}
	fast := NewNative(NativeConfig{})
	slow := NewNative(NativeConfig{DisableLiterals: true})
	a := mustCompile(t, fast, "foo|bar|baz", "")
	b := mustCompile(t, slow, "foo|bar|baz", "")

	for _, in := range inputs {
		text := regex.NewText(in)
		for from := 0; from <= text.Len()+1; from++ {
			ra, err := a.Exec(text, from)
			if err != nil {
				t.Fatal(err)
			}
			rb, err := b.Exec(text, from)
			if err != nil {
				t.Fatal(err)
			}
			if ra.String() != rb.String() {
				t.Errorf("%q@%d: literal %s, backtracker %s", in, from, ra, rb)
			}
		}
	}
}

func TestNativeUnsupported(t *testing.T) {
	tests := []struct {
		flavor  flavor.Flavor
		pattern string
		flags   string
	}{
		{flavor.None, "a", "v"},
		{flavor.None, "(", ""},
		{flavor.RE2, "a", "U"},
		{flavor.Python, "a*+", ""},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.flags, func(t *testing.T) {
			n := NewNative(NativeConfig{Flavor: tt.flavor})
			_, err := n.Compile(regex.NewSource(tt.pattern, tt.flags))
			if !errors.Is(err, ErrUnsupportedRegex) {
				t.Fatalf("Compile error = %v, want ErrUnsupportedRegex", err)
			}
			var ue *UnsupportedRegexError
			if !errors.As(err, &ue) || ue.Reason == "" {
				t.Errorf("want *UnsupportedRegexError with a reason, got %v", err)
			}
		})
	}
}

// sparseInput is a non-contiguous Input.
type sparseInput struct{ s []rune }

func (in sparseInput) Len() int      { return len(in.s) }
func (in sparseInput) At(i int) rune { return in.s[i] }

func TestNativeGenericInput(t *testing.T) {
	n := NewNative(NativeConfig{})
	in := sparseInput{s: []rune("xxabyy")}
	for _, pattern := range []string{"ab", "a(b)"} {
		m := mustCompile(t, n, pattern, "")
		got, err := m.Exec(in, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got.Start(0) != 2 || got.End(0) != 4 {
			t.Errorf("/%s/ on generic input = %s, want [2,4)", pattern, got)
		}
	}
}

func TestRunesOf(t *testing.T) {
	text := regex.NewText("abc")
	if rs := runesOf(text); &rs[0] != &text[0] {
		t.Error("contiguous input was copied")
	}

	src := []rune("abc")
	rs := runesOf(sparseInput{s: src})
	if string(rs) != "abc" {
		t.Fatalf("runesOf = %q, want %q", string(rs), "abc")
	}
	rs[0] = 'x'
	if src[0] != 'a' {
		t.Error("generic input was not gathered into a new slice")
	}
}

func TestNativeConcurrentExec(t *testing.T) {
	n := NewNative(NativeConfig{})
	for _, pattern := range []string{`(\w+)@(\w+)`, "alpha|beta|gamma"} {
		t.Run(pattern, func(t *testing.T) {
			m := mustCompile(t, n, pattern, "")
			text := regex.NewText("mail alpha@beta now")
			want, err := m.Exec(text, 0)
			if err != nil {
				t.Fatal(err)
			}

			const numGoroutines = 100
			var wg sync.WaitGroup
			var mismatches atomic.Int32
			for i := 0; i < numGoroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						got, err := m.Exec(text, 0)
						if err != nil || got.String() != want.String() {
							mismatches.Add(1)
						}
					}
				}()
			}
			wg.Wait()
			if mismatches.Load() != 0 {
				t.Errorf("%d concurrent results differed from %s", mismatches.Load(), want)
			}
		})
	}
}
