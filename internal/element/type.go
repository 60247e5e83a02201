package element

import "fmt"

// Type is the conversion type of an element.
type Type uint8

const (
	End Type = iota // terminator
	Esc             // escaped Marker
	Chr             // character
	Dec             // integral, decimal base
	Uns             // unsigned integral, decimal base
	Hex             // integral, hexadecimal base
	Oct             // integral, octal base
	Flt             // floating point
	Boo             // boolean
	Ptr             // pointer
	Str             // string or printable object

	typeCount
)

var typeNames = [typeCount]string{
	End: "end",
	Esc: "esc",
	Chr: "chr",
	Dec: "dec",
	Uns: "uns",
	Hex: "hex",
	Oct: "oct",
	Flt: "flt",
	Boo: "boo",
	Ptr: "ptr",
	Str: "str",
}

// canonical type byte for each type; Flt also accepts 'e' and 'g'
var typeVerbs = [typeCount]byte{
	End: 0,
	Esc: Marker,
	Chr: 'c',
	Dec: 'd',
	Uns: 'u',
	Hex: 'x',
	Oct: 'o',
	Flt: 'f',
	Boo: 'b',
	Ptr: 'p',
	Str: 's',
}

// Types returns every element type in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount)
	for t := End; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is a declared type.
func (t Type) Valid() bool {
	return t < typeCount
}

// String returns the short name used in dumps ("dec", "flt", ...).
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("INVALID(%d)", uint8(t))
	}
	return typeNames[t]
}

// Verb returns the canonical type byte for t, or 0 for End and invalid types.
func (t Type) Verb() byte {
	if !t.Valid() {
		return 0
	}
	return typeVerbs[t]
}

// IsLiteral reports whether an element of this type consumes an argument.
func (t Type) IsLiteral() bool {
	return t != End && t != Esc && t.Valid()
}
