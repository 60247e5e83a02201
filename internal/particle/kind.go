package particle

// Kind represents the category of a classified byte.
type Kind uint8

const (
	// Invalid marks a byte that cannot appear inside an element.
	Invalid Kind = iota
	// Type marks a type byte; it terminates the element.
	Type
	// Flag marks a flag byte ('#', '+', '-').
	Flag
	// Numeral marks a decimal digit.
	Numeral
	// Precision marks the precision marker '.'.
	Precision
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Type:
		return "type"
	case Flag:
		return "flag"
	case Numeral:
		return "numeral"
	case Precision:
		return "precision"
	default:
		return "unknown"
	}
}
