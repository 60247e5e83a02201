package render

import (
	"reflect"

	"cefmt/internal/element"
)

// field is the per-element rendering state.
type field struct {
	e     element.Element
	left  bool
	zero  bool // fill with '0' between sign/prefix and digits
	sign  bool // '+' on non-negative numbers
	sharp bool
}

func newField(e element.Element) field {
	left := e.HasFlag(element.LeftAlign)
	return field{
		e:     e,
		left:  left,
		zero:  e.HasFlag(element.ZeroPad) && !left,
		sign:  e.HasFlag(element.ShowSign),
		sharp: e.HasFlag(element.ShowBase),
	}
}

func (fd field) render(dst []byte, arg any) []byte {
	v := reflect.ValueOf(arg)
	switch fd.e.Type {
	case element.Dec, element.Uns:
		return fd.integer(dst, v, 10)
	case element.Hex:
		return fd.integer(dst, v, 16)
	case element.Oct:
		return fd.integer(dst, v, 8)
	case element.Chr:
		return fd.char(dst, v)
	case element.Flt:
		return fd.float(dst, v.Float(), v.Type().Bits())
	case element.Boo:
		return fd.boolean(dst, v.Bool())
	case element.Ptr:
		return fd.pointer(dst, arg)
	case element.Str:
		return fd.text(dst, arg)
	}
	return dst
}

// pad writes sign, prefix and body into dst, filling up to the element width.
// Zero fill goes between prefix and body; space fill goes left of the sign,
// or right of the body for left-aligned elements.
func (fd field) pad(dst []byte, sign, prefix, body string) []byte {
	n := fd.e.Width - len(sign) - len(prefix) - len(body)
	switch {
	case n <= 0:
		dst = append(dst, sign...)
		dst = append(dst, prefix...)
		return append(dst, body...)
	case fd.left:
		dst = append(dst, sign...)
		dst = append(dst, prefix...)
		dst = append(dst, body...)
		return appendFill(dst, ' ', n)
	case fd.zero:
		dst = append(dst, sign...)
		dst = append(dst, prefix...)
		dst = appendFill(dst, '0', n)
		return append(dst, body...)
	default:
		dst = appendFill(dst, ' ', n)
		dst = append(dst, sign...)
		dst = append(dst, prefix...)
		return append(dst, body...)
	}
}

func appendFill(dst []byte, c byte, n int) []byte {
	for range n {
		dst = append(dst, c)
	}
	return dst
}
