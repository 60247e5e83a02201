// Package typecheck matches argument kinds against the literal elements of
// an analyzed format.
package typecheck

import "cefmt/internal/element"

// Kind is the semantic category of an argument.
type Kind uint8

const (
	Invalid  Kind = iota
	Signed        // signed integers
	Unsigned      // unsigned integers and uintptr
	Float         // float32, float64
	Bool          // bool
	Pointer       // pointers, nil, maps, chans, funcs
	Text          // strings, byte slices, Stringers and errors
)

var kindNames = [...]string{
	Invalid:  "invalid",
	Signed:   "signed",
	Unsigned: "unsigned",
	Float:    "float",
	Bool:     "bool",
	Pointer:  "pointer",
	Text:     "text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Integral reports whether k is Signed or Unsigned.
func (k Kind) Integral() bool {
	return k == Signed || k == Unsigned
}

// Matches reports whether an argument of kind k may be printed by an
// element of type t.
func Matches(t element.Type, k Kind) bool {
	switch t {
	case element.Dec, element.Hex, element.Oct, element.Chr:
		return k.Integral()
	case element.Uns:
		return k == Unsigned
	case element.Flt:
		return k == Float
	case element.Boo:
		return k == Bool
	case element.Ptr:
		return k == Pointer
	case element.Str:
		return k == Text
	default:
		return false
	}
}

// Expected names what an element of type t accepts, for messages.
func Expected(t element.Type) string {
	switch t {
	case element.Dec, element.Hex, element.Oct, element.Chr:
		return "integer"
	case element.Uns:
		return "unsigned integer"
	case element.Flt:
		return "floating-point"
	case element.Boo:
		return "bool"
	case element.Ptr:
		return "pointer"
	case element.Str:
		return "string"
	default:
		return "nothing"
	}
}
