package element

// Element is one analyzed unit of a format string.
type Element struct {
	Index     int    // slot in the owning table
	Begin     int    // offset of the marker, inclusive
	End       int    // offset past the type byte, exclusive
	Type      Type   // conversion type
	Flags     Flags  // flag set, always within Permitted(Type)
	Width     int    // minimum field width, 0 = unspecified
	Precision int    // NoPrecision or decimal places
	Verb      byte   // type byte as written in the source
	Raw       string // source text of [Begin, End)
	Valid     bool   // false only for padding slots after the terminator
}

// Padding returns the slot filler used after the terminator.
func Padding(index, size int) Element {
	return Element{
		Index:     index,
		Begin:     size,
		End:       size,
		Type:      End,
		Precision: NoPrecision,
	}
}

// HasFlag reports whether f is set on the element.
func (e Element) HasFlag(f Flags) bool {
	return e.Flags.Has(f)
}

// IsLiteral reports whether the element consumes an argument.
func (e Element) IsLiteral() bool {
	return e.Type.IsLiteral()
}

// HasWidth reports whether a width was given.
func (e Element) HasWidth() bool {
	return e.Width > 0
}

// HasPrecision reports whether a precision was given.
func (e Element) HasPrecision() bool {
	return e.Precision > NoPrecision
}

// Len returns the byte length of the element.
func (e Element) Len() int {
	return e.End - e.Begin
}
