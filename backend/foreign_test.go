package backend

import (
	"errors"
	"testing"

	"github.com/coregx/polyregex/regex"
)

type fakeDelegate struct {
	invocable bool
	answer    any
	err       error
	calls     int
}

func (d *fakeDelegate) IsMemberInvocable(member string) bool {
	return d.invocable && member == ExecMember
}

func (d *fakeDelegate) InvokeMember(member string, args ...any) (any, error) {
	d.calls++
	if len(args) != 2 {
		return nil, &regex.ArityError{Member: member, Min: 2, Max: 2, Actual: len(args)}
	}
	if _, ok := args[1].(int64); !ok {
		return nil, errors.New("fromIndex not passed as int64")
	}
	return d.answer, d.err
}

func TestForeign(t *testing.T) {
	want := regex.NewResult([]int{1, 3})
	d := &fakeDelegate{invocable: true, answer: want}
	f := NewForeign(d)
	if f.Kind() != KindForeign {
		t.Errorf("Kind() = %s, want foreign", f.Kind())
	}
	if f.Delegate() != Delegate(d) {
		t.Error("Delegate() does not return the wrapped delegate")
	}

	got, err := f.Exec(regex.NewText("abc"), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Exec = %s, want %s", got, want)
	}
	if d.calls != 1 {
		t.Errorf("delegate called %d times, want 1", d.calls)
	}
}

func TestForeignErrors(t *testing.T) {
	tests := []struct {
		name    string
		d       *fakeDelegate
		wantErr error
	}{
		{"no exec member", &fakeDelegate{}, regex.ErrUnknownMember},
		{"wrong result type", &fakeDelegate{invocable: true, answer: "match"}, regex.ErrTypeMismatch},
		{"nil result", &fakeDelegate{invocable: true}, regex.ErrTypeMismatch},
		{"delegate error", &fakeDelegate{invocable: true, err: regex.ErrArity}, regex.ErrArity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewForeign(tt.d).Exec(regex.NewText("x"), 0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Exec error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindNative.String() != "native" || KindForeign.String() != "foreign" {
		t.Errorf("unexpected kind names %s, %s", KindNative, KindForeign)
	}
	if UseAhoCorasick.String() != "AhoCorasick" || UseBacktracker.String() != "Backtracker" {
		t.Errorf("unexpected strategy names")
	}
}
