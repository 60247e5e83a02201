package typecheck

import (
	"errors"
	"fmt"

	"cefmt/internal/element"
	"cefmt/internal/format"
)

var (
	ErrArgCount     = errors.New("argument count does not match format")
	ErrKindMismatch = errors.New("argument type does not match element")
)

// Error reports a failed argument check.
type Error struct {
	Err     error // ErrArgCount or ErrKindMismatch
	Format  string
	Arg     int // argument position, -1 for count errors
	Element element.Element
	Kind    Kind
	Want    int // literal count, for count errors
	Got     int // argument count, for count errors
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrArgCount) {
		return fmt.Sprintf("format %q expects %d argument(s), got %d", e.Format, e.Want, e.Got)
	}
	return fmt.Sprintf("format %q: argument %d is %s, but %s expects %s",
		e.Format, e.Arg, e.Kind, e.Element.Raw, Expected(e.Element.Type))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Check verifies that kinds line up with the literal elements of f.
func Check(f *format.Format, kinds []Kind) error {
	if len(kinds) != f.LiteralCount {
		return &Error{
			Err:    ErrArgCount,
			Format: f.Text(),
			Arg:    -1,
			Want:   f.LiteralCount,
			Got:    len(kinds),
		}
	}
	i := f.FirstLiteralIndex()
	for arg, k := range kinds {
		e := f.Elements[i]
		if !Matches(e.Type, k) {
			return &Error{
				Err:     ErrKindMismatch,
				Format:  f.Text(),
				Arg:     arg,
				Element: e,
				Kind:    k,
			}
		}
		i = f.NextLiteralIndex(i)
	}
	return nil
}

// CheckArgs is Check over the kinds of concrete values.
func CheckArgs(f *format.Format, args ...any) error {
	return Check(f, KindsOf(args...))
}
