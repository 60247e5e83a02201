package format

import (
	"cefmt/internal/element"
	"cefmt/internal/particle"
)

// scanPrecision accumulates the digits after '.'; without a '.' the result
// is element.NoPrecision.
//
// A flag after the precision and a second '.' are already rejected by
// scanFlags; the checks here do not fire through Analyze.
func (a *analyzer) scanPrecision(begin int) (int, error) {
	if !a.profile.HasPrecision() {
		return element.NoPrecision, nil
	}
	c := newCursor(a.src, a.size, begin+1, a.profile)
	inPrecision := false
	var acc numeral
	for {
		if c.EOF() {
			return 0, a.fail(ErrMalformed, c.off)
		}
		p := c.Particle()
		switch {
		case p.Kind == particle.Invalid:
			return 0, a.fail(ErrMalformed, c.off)

		case p.Kind == particle.Flag && inPrecision:
			return 0, a.fail(ErrFlagAfterNumeral, c.off)

		case p.Kind == particle.Precision && inPrecision:
			return 0, a.fail(ErrDuplicatePrecision, c.off)

		case p.Kind == particle.Precision:
			inPrecision = true

		case p.Kind == particle.Numeral && inPrecision:
			if !acc.push(p.Digit()) {
				return 0, a.fail(ErrNumeralOverflow, c.off)
			}

		case p.Kind == particle.Type:
			if !inPrecision {
				return element.NoPrecision, nil
			}
			return acc.value(), nil
		}
		c.Bump()
	}
}
