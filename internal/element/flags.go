package element

import (
	"math/bits"
	"strings"
)

// Flags is the flag set of an element.
type Flags uint8

const (
	ShowBase  Flags = 1 << iota // '#'
	ShowSign                    // '+'
	ZeroPad                     // '0'
	LeftAlign                   // '-'

	// NoFlags is the empty set.
	NoFlags Flags = 0
	// AllFlags is every flag.
	AllFlags = ShowBase | ShowSign | ZeroPad | LeftAlign
)

// FlagCount is the number of distinct flags.
const FlagCount = 4

var permitted = [typeCount]Flags{
	End: NoFlags,
	Esc: NoFlags,
	Chr: LeftAlign,
	Dec: AllFlags &^ ShowBase,
	Uns: AllFlags &^ ShowBase,
	Hex: AllFlags &^ ShowSign,
	Oct: AllFlags &^ ShowSign,
	Flt: AllFlags &^ ShowBase,
	Boo: LeftAlign,
	Ptr: AllFlags &^ ShowSign,
	Str: LeftAlign,
}

// Permitted returns the flags allowed for t. Invalid types permit nothing.
func Permitted(t Type) Flags {
	if !t.Valid() {
		return NoFlags
	}
	return permitted[t]
}

// Has reports whether every flag in f2 is set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Count returns the number of flags set.
func (f Flags) Count() int {
	return bits.OnesCount8(uint8(f & AllFlags))
}

// Char returns the source byte of a single flag. Zero-pad is '0'.
func (f Flags) Char() byte {
	switch f {
	case ShowBase:
		return '#'
	case ShowSign:
		return '+'
	case ZeroPad:
		return '0'
	case LeftAlign:
		return '-'
	}
	return 0
}

// String renders the set as source flag bytes in bit order, e.g. "+-".
func (f Flags) String() string {
	if f == NoFlags {
		return ""
	}
	var b strings.Builder
	for bit := ShowBase; bit <= LeftAlign; bit <<= 1 {
		if f.Has(bit) {
			b.WriteByte(bit.Char())
		}
	}
	return b.String()
}
