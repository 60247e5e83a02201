package format

import (
	"cefmt/internal/element"
	"cefmt/internal/particle"
)

// scanType skips flags, numerals and precision markers and returns the
// element type, the literal type byte and the offset just past it.
// Structure is ignored here; the later scans enforce ordering.
func (a *analyzer) scanType(begin int) (element.Type, byte, int, error) {
	c := newCursor(a.src, a.size, begin+1, a.profile)
	for {
		if c.EOF() {
			return element.End, 0, 0, a.fail(ErrMalformed, c.off)
		}
		p := c.Particle()
		switch p.Kind {
		case particle.Invalid:
			return element.End, 0, 0, a.fail(ErrMalformed, c.off)
		case particle.Type:
			return p.Type, p.Value, c.off + 1, nil
		}
		c.Bump()
	}
}
