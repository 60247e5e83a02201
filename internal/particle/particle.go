package particle

import "cefmt/internal/element"

// Particle is the classification of one byte.
type Particle struct {
	Kind  Kind
	Value byte
	Type  element.Type  // set when Kind == Type
	Flag  element.Flags // set when Kind == Flag
}

// Digit returns the numeric value of a Numeral particle.
func (p Particle) Digit() int {
	if p.Kind != Numeral {
		return 0
	}
	return int(p.Value - '0')
}

// IsZero reports whether p is the digit '0'.
func (p Particle) IsZero() bool {
	return p.Kind == Numeral && p.Value == '0'
}

type entry struct {
	value    byte
	kind     Kind
	typ      element.Type
	flag     element.Flags
	extended bool // only recognised under element.Extended
}

// Порядок важен только для читаемости: значения не пересекаются.
var table = [...]entry{
	// types
	{value: element.Marker, kind: Type, typ: element.Esc},
	{value: 'c', kind: Type, typ: element.Chr, extended: true},
	{value: 'd', kind: Type, typ: element.Dec},
	{value: 'u', kind: Type, typ: element.Uns},
	{value: 'x', kind: Type, typ: element.Hex},
	{value: 'o', kind: Type, typ: element.Oct},
	{value: 'f', kind: Type, typ: element.Flt},
	{value: 'e', kind: Type, typ: element.Flt, extended: true},
	{value: 'g', kind: Type, typ: element.Flt, extended: true},
	{value: 'b', kind: Type, typ: element.Boo},
	{value: 'p', kind: Type, typ: element.Ptr},
	{value: 's', kind: Type, typ: element.Str},

	// flags; '0' is caught as a numeral
	{value: '#', kind: Flag, flag: element.ShowBase},
	{value: '+', kind: Flag, flag: element.ShowSign},
	{value: '-', kind: Flag, flag: element.LeftAlign},
}

// Classify maps c to its particle under profile p.
func Classify(c byte, p element.Profile) Particle {
	switch {
	case '0' <= c && c <= '9':
		return Particle{Kind: Numeral, Value: c}
	case c == element.PrecisionMarker:
		if p.HasPrecision() {
			return Particle{Kind: Precision, Value: c}
		}
		return Particle{Kind: Invalid, Value: c}
	}
	for i := range table {
		e := &table[i]
		if e.value != c {
			continue
		}
		if e.extended && p != element.Extended {
			break
		}
		return Particle{Kind: e.kind, Value: c, Type: e.typ, Flag: e.flag}
	}
	return Particle{Kind: Invalid, Value: c}
}

// TypeBytes returns the type bytes recognised under p, in table order.
func TypeBytes(p element.Profile) []byte {
	return tableBytes(Type, p)
}

// FlagBytes returns the flag bytes, in table order.
func FlagBytes() []byte {
	return tableBytes(Flag, element.Extended)
}

func tableBytes(kind Kind, p element.Profile) []byte {
	out := make([]byte, 0, len(table))
	for _, e := range table {
		if e.kind != kind || (e.extended && p != element.Extended) {
			continue
		}
		out = append(out, e.value)
	}
	return out
}
