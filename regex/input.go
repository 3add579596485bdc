package regex

// Input is an indexed character sequence. Offsets used by matchers and
// results are indices into this sequence.
//
// Implementations must be safe for concurrent reads if the same input is
// executed from several goroutines.
type Input interface {
	// Len returns the number of characters in the sequence.
	Len() int
	// At returns the character at index i, 0 <= i < Len().
	At(i int) rune
}

// Contiguous is implemented by inputs whose characters are already stored
// in one slice. Backends that need a slice use it to avoid gathering.
type Contiguous interface {
	Input
	Runes() []rune
}

// Text is the native, contiguous input representation.
type Text []rune

// NewText decodes s into a Text.
func NewText(s string) Text {
	return Text([]rune(s))
}

// Len implements Input.
func (t Text) Len() int { return len(t) }

// At implements Input.
func (t Text) At(i int) rune { return t[i] }

// Runes implements Contiguous.
func (t Text) Runes() []rune { return t }

// String encodes the text back to UTF-8.
func (t Text) String() string { return string(t) }

// ToInput normalizes the accepted input representations into an Input:
// string and []rune become Text, any Input is returned unchanged. Anything
// else is a *TypeMismatchError.
//
// An Input that is not a Text is passed through as is; it is never copied.
func ToInput(v any) (Input, error) {
	switch in := v.(type) {
	case Text:
		return in, nil
	case string:
		return NewText(in), nil
	case []rune:
		return Text(in), nil
	case Input:
		return in, nil
	default:
		return nil, &TypeMismatchError{
			Argument: "input",
			Expected: "string or character sequence",
			Value:    v,
		}
	}
}

// Substring returns the characters of in between start and end as a string.
// Used to render group contents.
func Substring(in Input, start, end int) string {
	if c, ok := in.(Contiguous); ok {
		return string(c.Runes()[start:end])
	}
	rs := make([]rune, 0, end-start)
	for i := start; i < end; i++ {
		rs = append(rs, in.At(i))
	}
	return string(rs)
}
