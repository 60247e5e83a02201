package source

import (
	"math"
	"testing"
)

func TestSpanOf(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       Span
	}{
		{"normal", 3, 7, Span{File: 1, Start: 3, End: 7}},
		{"empty", 5, 5, Span{File: 1, Start: 5, End: 5}},
		{"negative start", -1, 4, Span{File: 1, Start: 0, End: 4}},
		{"end before start", 9, 2, Span{File: 1, Start: 9, End: 9}},
		{"end overflow", 1, math.MaxInt64, Span{File: 1, Start: 1, End: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpanOf(1, tt.start, tt.end); got != tt.want {
				t.Errorf("SpanOf(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestSpanSub(t *testing.T) {
	s := Span{File: 2, Start: 10, End: 20}
	tests := []struct {
		name   string
		off, n uint32
		want   Span
	}{
		{"inside", 2, 3, Span{File: 2, Start: 12, End: 15}},
		{"at start", 0, 1, Span{File: 2, Start: 10, End: 11}},
		{"clipped length", 8, 5, Span{File: 2, Start: 18, End: 20}},
		{"past end", 15, 1, Span{File: 2, Start: 20, End: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sub(tt.off, tt.n); got != tt.want {
				t.Errorf("Sub(%d, %d) = %v, want %v", tt.off, tt.n, got, tt.want)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files = %v, want %v", got, a)
	}
	if !(Span{Start: 3, End: 3}).Empty() || a.Len() != 3 {
		t.Errorf("Empty/Len mismatch")
	}
	if a.String() != "1:5-8" {
		t.Errorf("String = %q", a.String())
	}
}
