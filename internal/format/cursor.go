package format

import (
	"cefmt/internal/element"
	"cefmt/internal/particle"
)

// cursor walks a format string byte by byte up to limit.
type cursor struct {
	src     string
	off     int
	limit   int // exclusive upper bound; the format's Size
	profile element.Profile
}

func newCursor(src string, limit, off int, p element.Profile) cursor {
	return cursor{src: src, off: off, limit: limit, profile: p}
}

// EOF reports whether the cursor reached limit.
func (c *cursor) EOF() bool {
	return c.off >= c.limit
}

// Peek returns the current byte or 0 at EOF.
func (c *cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.off]
}

// Bump advances by one byte and returns the byte it passed.
func (c *cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// Particle classifies the current byte.
func (c *cursor) Particle() particle.Particle {
	return particle.Classify(c.Peek(), c.profile)
}
