package format

import (
	"iter"

	"cefmt/internal/element"
)

// NextLiteralIndex returns the index of the next element after i that
// consumes an argument, skipping escapes. At the terminator it returns i
// unchanged.
func (f *Format) NextLiteralIndex(i int) int {
	for j := i + 1; j < element.SlotCount; j++ {
		switch f.Elements[j].Type {
		case element.Esc:
			continue
		case element.End:
			return i
		default:
			return j
		}
	}
	return i
}

// FirstLiteralIndex returns the index of the first argument-consuming
// element, or the terminator index when there is none.
func (f *Format) FirstLiteralIndex() int {
	for i, e := range f.Used() {
		if e.IsLiteral() {
			return i
		}
	}
	return f.TerminatorIndex()
}

// Literals yields argument position and element for every argument-consuming
// element, in order.
func (f *Format) Literals() iter.Seq2[int, element.Element] {
	return func(yield func(int, element.Element) bool) {
		if f.LiteralCount == 0 {
			return
		}
		i := f.FirstLiteralIndex()
		for arg := 0; arg < f.LiteralCount; arg++ {
			if !yield(arg, f.Elements[i]) {
				return
			}
			i = f.NextLiteralIndex(i)
		}
	}
}
