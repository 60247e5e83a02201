package format

import "cefmt/internal/particle"

// scanWidth accumulates the width digits. A leading '0' that has not entered
// the width is the zero-pad flag and is skipped.
//
// scanFlags runs first and rejects a flag after a numeral, so
// ErrWidthAfterFlags is not reachable through Analyze.
func (a *analyzer) scanWidth(begin int) (int, error) {
	c := newCursor(a.src, a.size, begin+1, a.profile)
	inWidth := false
	var acc numeral
	for {
		if c.EOF() {
			return 0, a.fail(ErrMalformed, c.off)
		}
		p := c.Particle()
		switch {
		case p.Kind == particle.Invalid:
			return 0, a.fail(ErrMalformed, c.off)

		case p.Kind == particle.Flag && inWidth:
			return 0, a.fail(ErrWidthAfterFlags, c.off)

		case p.Kind == particle.Numeral && (inWidth || !p.IsZero()):
			inWidth = true
			if !acc.push(p.Digit()) {
				return 0, a.fail(ErrNumeralOverflow, c.off)
			}

		case p.Kind == particle.Precision, p.Kind == particle.Type:
			return acc.value(), nil
		}
		c.Bump()
	}
}
