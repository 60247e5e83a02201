package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a byte range [Start, End) in one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// SpanOf builds a span from int offsets, as produced by go/token and the
// format analyzer. Negative or oversized offsets are clamped to zero.
func SpanOf(file FileID, start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		s = 0
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil || e < s {
		e = s
	}
	return Span{File: file, Start: s, End: e}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing s and other. Spans from
// different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Sub returns the n-byte span starting off bytes into s, clipped to s.
func (s Span) Sub(off, n uint32) Span {
	start := min(s.Start+off, s.End)
	end := min(start+n, s.End)
	return Span{File: s.File, Start: start, End: end}
}
