package backend

import (
	"github.com/coregx/polyregex/regex"
)

// ExecMember is the member a foreign delegate must expose.
const ExecMember = "exec"

// Delegate is an externally produced matcher, reachable only through its
// members.
type Delegate interface {
	IsMemberInvocable(member string) bool
	InvokeMember(member string, args ...any) (any, error)
}

// Foreign adapts a Delegate to the Matcher interface.
type Foreign struct {
	delegate Delegate
}

// NewForeign wraps d.
func NewForeign(d Delegate) *Foreign {
	return &Foreign{delegate: d}
}

// Kind returns KindForeign.
func (f *Foreign) Kind() Kind {
	return KindForeign
}

// Delegate returns the wrapped delegate.
func (f *Foreign) Delegate() Delegate {
	return f.delegate
}

// Exec invokes the delegate's exec member with (in, from). The delegate
// must answer with a *regex.Result.
func (f *Foreign) Exec(in regex.Input, from int) (*regex.Result, error) {
	if !f.delegate.IsMemberInvocable(ExecMember) {
		return nil, &regex.UnknownMemberError{Member: ExecMember}
	}
	v, err := f.delegate.InvokeMember(ExecMember, in, int64(from))
	if err != nil {
		return nil, err
	}
	res, ok := v.(*regex.Result)
	if !ok || res == nil {
		return nil, &regex.TypeMismatchError{
			Argument: "result",
			Expected: "match result",
			Value:    v,
		}
	}
	return res, nil
}
