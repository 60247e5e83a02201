package fuzztests

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cefmt/internal/element"
	"cefmt/internal/format"
)

func profileOf(basic bool) element.Profile {
	if basic {
		return element.Basic
	}
	return element.Extended
}

// FuzzAnalyze checks that analysis never panics, that rejected strings
// carry a classified error, and that accepted tables are well formed.
func FuzzAnalyze(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, s string, basic bool) {
		s = clampInput(s)
		opts := format.Options{Profile: profileOf(basic)}
		ft, err := format.Analyze(s, opts)
		if err != nil {
			var fe *format.Error
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *format.Error", err)
			}
			if format.KindOf(err) == 0 {
				t.Fatalf("error %v has no kind", err)
			}
			if fe.Offset < 0 || fe.Offset > len(s) {
				t.Fatalf("offset %d outside [0, %d]", fe.Offset, len(s))
			}
			if fe.Index < 0 || fe.Index >= element.SlotCount {
				t.Fatalf("index %d outside table", fe.Index)
			}
			return
		}
		checkTable(t, ft)

		again, err := format.Analyze(s, opts)
		if err != nil {
			t.Fatalf("second analysis failed: %v", err)
		}
		if diff := cmp.Diff(ft, again); diff != "" {
			t.Fatalf("analysis not deterministic (-first +second):\n%s", diff)
		}
	})
}

func checkTable(t *testing.T, f *format.Format) {
	t.Helper()
	if f.ElementCount < 1 || f.ElementCount > element.SlotCount {
		t.Fatalf("ElementCount = %d", f.ElementCount)
	}
	term := f.TerminatorIndex()
	if f.Elements[term].Type != element.End {
		t.Fatalf("slot %d is %s, want terminator", term, f.Elements[term].Type)
	}

	literals, prevEnd := 0, 0
	for i, e := range f.Used() {
		if i == term {
			break
		}
		if !e.Valid || e.Index != i {
			t.Fatalf("element %d invalid: %+v", i, e)
		}
		if e.Begin < prevEnd || e.End <= e.Begin || e.End > f.Size {
			t.Fatalf("element %d spans [%d, %d), previous ended at %d, size %d", i, e.Begin, e.End, prevEnd, f.Size)
		}
		if e.Flags&^element.Permitted(e.Type) != 0 {
			t.Fatalf("element %d has flags %s not permitted for %s", i, e.Flags, e.Type)
		}
		if f.Profile == element.Basic && e.HasPrecision() {
			t.Fatalf("element %d has precision under the basic profile", i)
		}
		if e.IsLiteral() {
			literals++
		}
		prevEnd = e.End
	}
	if literals != f.LiteralCount {
		t.Fatalf("LiteralCount = %d, counted %d", f.LiteralCount, literals)
	}
	for i := term + 1; i < element.SlotCount; i++ {
		if f.Elements[i].Valid || f.Elements[i].Type != element.End {
			t.Fatalf("padding slot %d = %+v", i, f.Elements[i])
		}
	}

	n := 0
	for _, e := range f.Literals() {
		if !e.IsLiteral() {
			t.Fatalf("Literals yielded %s", e.Type)
		}
		n++
	}
	if n != f.LiteralCount {
		t.Fatalf("Literals yielded %d, want %d", n, f.LiteralCount)
	}
}
