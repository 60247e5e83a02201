package fuzztests

import (
	"strings"
	"testing"

	"cefmt/internal/element"
	"cefmt/internal/format"
	"cefmt/internal/render"
)

var sampleArgs = map[element.Type]any{
	element.Dec: -42,
	element.Hex: uint16(0xbeef),
	element.Oct: 8,
	element.Chr: 'ж',
	element.Uns: uint(7),
	element.Flt: -1.5,
	element.Boo: true,
	element.Ptr: nil,
	element.Str: "str",
}

// maxFieldWidth keeps rendered output small; analysis accepts numerals up
// to element.MaxNumeral.
const maxFieldWidth = 1 << 12

// FuzzPrint renders every accepted format with one value of the expected
// kind per element.
func FuzzPrint(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, s string, basic bool) {
		s = clampInput(s)
		ft, err := format.Analyze(s, format.Options{Profile: profileOf(basic)})
		if err != nil {
			return
		}
		args := make([]any, 0, ft.LiteralCount)
		minWidth := 0
		for _, e := range ft.Literals() {
			if e.Width > maxFieldWidth || e.Precision > maxFieldWidth {
				return
			}
			args = append(args, sampleArgs[e.Type])
			minWidth += e.Width
		}
		out, err := render.Print(ft, args...)
		if err != nil {
			t.Fatalf("Print(%q): %v", s, err)
		}
		if len(out) < minWidth {
			t.Fatalf("Print(%q) = %q, shorter than the total width %d", s, out, minWidth)
		}
		if gap := ft.Gap(0); !strings.HasPrefix(out, gap) {
			t.Fatalf("Print(%q) = %q, missing leading text %q", s, out, gap)
		}
	})
}
