package format

import (
	"cefmt/internal/element"
	"cefmt/internal/particle"
)

type numeralSegment uint8

const (
	segmentNone numeralSegment = iota
	segmentWidth
	segmentPrecision
)

// flagState tracks the flag scan between particles.
type flagState struct {
	zeroPadded    bool
	segment       numeralSegment
	prelude       bool // just saw '.', a digit must follow
	precisionSeen bool
	leadingZero   bool // first precision digit was '0'
	flags         element.Flags
}

// scanFlags collects the flag set and enforces the ordering rules:
// flags before numerals, at most one zero-pad, '.' followed by a digit.
func (a *analyzer) scanFlags(begin int) (element.Flags, error) {
	c := newCursor(a.src, a.size, begin+1, a.profile)
	var st flagState
	for {
		if c.EOF() {
			return 0, a.fail(ErrMalformed, c.off)
		}
		p := c.Particle()
		if p.Kind == particle.Invalid {
			return 0, a.fail(ErrMalformed, c.off)
		}

		if st.prelude {
			if p.Kind != particle.Numeral {
				return 0, a.fail(ErrPrecisionNoDigits, c.off)
			}
			st.prelude = false
			st.segment = segmentPrecision
			st.leadingZero = p.IsZero()
			c.Bump()
			continue
		}

		switch p.Kind {
		case particle.Type:
			return st.flags, nil

		case particle.Precision:
			if st.precisionSeen {
				return 0, a.fail(ErrDuplicatePrecision, c.off)
			}
			st.precisionSeen = true
			st.prelude = true

		case particle.Numeral:
			switch st.segment {
			case segmentNone:
				if p.IsZero() {
					// ведущий ноль до ширины: флаг zero-pad
					if st.zeroPadded {
						return 0, a.fail(ErrDuplicateZeroPad, c.off)
					}
					st.zeroPadded = true
					st.flags |= element.ZeroPad
				} else {
					st.segment = segmentWidth
				}
			case segmentPrecision:
				if st.leadingZero {
					return 0, a.fail(ErrPrecisionLeadingZero, c.off)
				}
			}

		case particle.Flag:
			if st.segment != segmentNone {
				return 0, a.fail(ErrFlagAfterNumeral, c.off)
			}
			if st.flags.Has(p.Flag) {
				return 0, a.fail(ErrDuplicateFlag, c.off)
			}
			st.flags |= p.Flag
		}
		c.Bump()
	}
}
