package format

import "cefmt/internal/element"

// scanMarker returns the offset of the next marker at or after start, or
// the cursor limit when none is left.
func (c *cursor) scanMarker() int {
	for !c.EOF() {
		if c.Peek() == element.Marker {
			return c.off
		}
		c.Bump()
	}
	return c.limit
}
