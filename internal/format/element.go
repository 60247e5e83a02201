package format

import (
	"cefmt/internal/element"
	"cefmt/internal/particle"
)

// analyzer holds the immutable inputs shared by the scans of one element.
type analyzer struct {
	src     string
	size    int
	index   int
	profile element.Profile
}

func (a *analyzer) fail(sentinel error, offset int) error {
	return newError(sentinel, a.src, a.index, offset)
}

// AnalyzeElement analyzes the element that starts at or after start and
// returns it. The element in slot index of a table is what Analyze would
// produce when start is the previous slot's End.
func AnalyzeElement(s string, index, start int, opts Options) (element.Element, error) {
	opts = opts.withDefaults()
	a := analyzer{src: s, size: formatSize(s), index: index, profile: opts.Profile}
	if start < 0 || start > a.size {
		return element.Element{}, a.fail(ErrEndOutOfRange, start)
	}
	return a.analyze(start)
}

func (a *analyzer) analyze(start int) (element.Element, error) {
	c := newCursor(a.src, a.size, start, a.profile)
	begin := c.scanMarker()
	if begin >= a.size {
		return element.Element{
			Index:     a.index,
			Begin:     a.size,
			End:       a.size,
			Type:      element.End,
			Precision: element.NoPrecision,
			Valid:     true,
		}, nil
	}
	if a.index >= element.LastSlot {
		return element.Element{}, a.fail(ErrTooManyElements, begin)
	}

	typ, verb, typeEnd, err := a.scanType(begin)
	if err != nil {
		return element.Element{}, err
	}
	flags, err := a.scanFlags(begin)
	if err != nil {
		return element.Element{}, err
	}
	width, err := a.scanWidth(begin)
	if err != nil {
		return element.Element{}, err
	}
	precision, err := a.scanPrecision(begin)
	if err != nil {
		return element.Element{}, err
	}

	e := element.Element{
		Index:     a.index,
		Begin:     begin,
		Type:      typ,
		Flags:     flags,
		Width:     width,
		Precision: precision,
		Verb:      verb,
	}
	e.End = computeEnd(e)
	if e.End != typeEnd {
		return element.Element{}, a.fail(ErrEndMismatch, begin)
	}
	if err := a.validate(e); err != nil {
		return element.Element{}, err
	}
	e.Raw = a.src[e.Begin:e.End]
	e.Valid = true
	return e, nil
}

// computeEnd reconstructs the element length from its parsed parts.
func computeEnd(e element.Element) int {
	n := e.Begin + 1 // marker
	n += e.Flags.Count()
	if e.Width > 0 {
		n += digitCount(e.Width)
	}
	if e.Precision > element.NoPrecision {
		n += 1 + digitCount(e.Precision)
	}
	return n + 1 // type byte
}

func (a *analyzer) validate(e element.Element) error {
	switch {
	case e.Index == element.LastSlot && e.Type != element.End:
		return a.fail(ErrTooManyElements, e.Begin)
	case e.End > a.size:
		return a.fail(ErrEndOutOfRange, e.Begin)
	case e.Flags&^element.Permitted(e.Type) != 0:
		return a.fail(ErrFlagNotPermitted, a.flagOffset(e))
	case e.Type == element.Esc && e.Width > 0:
		return a.fail(ErrWidthOnEscape, e.Begin)
	case e.Type != element.Flt && e.Precision > element.NoPrecision:
		return a.fail(ErrPrecisionNotPermitted, e.Begin)
	}
	return nil
}

// flagOffset finds the first flag byte of e that its type does not permit.
func (a *analyzer) flagOffset(e element.Element) int {
	allowed := element.Permitted(e.Type)
	digits := false
	for off := e.Begin + 1; off < e.End-1; off++ {
		p := particle.Classify(a.src[off], a.profile)
		switch {
		case p.Kind == particle.Flag && !allowed.Has(p.Flag):
			return off
		case p.IsZero() && !digits && !allowed.Has(element.ZeroPad):
			return off
		case p.Kind == particle.Numeral, p.Kind == particle.Precision:
			digits = true
		}
	}
	return e.Begin
}
