package format

import (
	"fortio.org/safecast"

	"cefmt/internal/element"
)

// numeral is a base-10 accumulator bounded by element.MaxNumeral.
type numeral struct {
	acc uint64
}

// push appends one digit; it reports false once the value leaves range.
func (n *numeral) push(digit int) bool {
	d, err := safecast.Conv[uint64](digit)
	if err != nil {
		return false
	}
	next := n.acc*10 + d
	if next > element.MaxNumeral {
		return false
	}
	n.acc = next
	return true
}

func (n *numeral) value() int {
	v, err := safecast.Conv[int](n.acc)
	if err != nil {
		// push keeps acc within MaxNumeral
		panic(err)
	}
	return v
}

// digitCount returns the number of decimal digits of v; zero has one digit.
func digitCount(v int) int {
	if v == 0 {
		return 1
	}
	n := 0
	for v != 0 {
		v /= 10
		n++
	}
	return n
}
