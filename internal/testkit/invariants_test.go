package testkit

import (
	"testing"

	"cefmt/internal/diag"
	"cefmt/internal/source"
)

func TestCheckSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.go", []byte("x := 1\n"))

	ok := diag.NewBag(0)
	ok.Add(diag.NewError(diag.FmtMalformed, source.Span{File: id, Start: 0, End: 1}, "m").
		WithNote(source.Span{File: id, Start: 7, End: 7}, "at end"))
	if err := CheckSpanInvariants(ok, fs); err != nil {
		t.Fatalf("valid bag rejected: %v", err)
	}

	tests := []struct {
		name string
		d    diag.Diagnostic
	}{
		{"unknown file", diag.NewError(diag.FmtMalformed, source.Span{File: 9, Start: 0, End: 1}, "m")},
		{"past end", diag.NewError(diag.FmtMalformed, source.Span{File: id, Start: 5, End: 9}, "m")},
		{"reversed", diag.NewError(diag.FmtMalformed, source.Span{File: id, Start: 3, End: 2}, "m")},
		{"empty primary", diag.NewError(diag.FmtMalformed, source.Span{File: id, Start: 2, End: 2}, "m")},
		{"bad fix", diag.NewError(diag.FmtMalformed, source.Span{File: id, Start: 0, End: 1}, "m").
			WithFix("f", diag.FixEdit{Span: source.Span{File: id, Start: 6, End: 20}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(0)
			bag.Add(tt.d)
			if err := CheckSpanInvariants(bag, fs); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
