package diag

import (
	"errors"
	"testing"

	"cefmt/internal/format"
	"cefmt/internal/source"
)

func TestFormatCode(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{"%", FmtMalformed},
		{"%#s", FmtFlagNotPermitted},
		{"%5%", FmtWidthOnEscape},
		{"%.2d", FmtPrecisionNotPermitted},
		{"%00d", FmtDuplicateZeroPad},
		{"%--d", FmtDuplicateFlag},
		{"%.f", FmtPrecisionNoDigits},
		{"%99999999999d", FmtNumeralOverflow},
	}
	for _, tt := range tests {
		_, err := format.Analyze(tt.in, format.Options{})
		if got := FormatCode(err); got != tt.want {
			t.Errorf("FormatCode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if FormatCode(errors.New("other")) != UnknownCode {
		t.Errorf("expected UnknownCode for foreign errors")
	}
	for sentinel, code := range formatCodes {
		if code.Title() == codeDescription[UnknownCode] {
			t.Errorf("%v maps to %d without a description", sentinel, code)
		}
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		FmtMalformed:    "FMT1010",
		ArgCount:        "ARG2001",
		IOLoadFileError: "IO9001",
		UnknownCode:     "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if got := ArgKindMismatch.String(); got != "[ARG2002]: Argument type mismatch" {
		t.Errorf("String = %q", got)
	}
}

func TestBagLimitAndCounts(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(FmtMalformed, source.Span{}, "a")) {
		t.Fatalf("first Add rejected")
	}
	b.Add(New(SevWarning, ArgNotLiteral, source.Span{}, "b"))
	if b.Add(NewError(FmtMalformed, source.Span{}, "c")) {
		t.Fatalf("Add past the limit accepted")
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("Len/Dropped = %d/%d", b.Len(), b.Dropped())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("HasErrors/HasWarnings mismatch")
	}
	if b.Count(SevError) != 1 || b.Count(SevWarning) != 1 {
		t.Fatalf("Count mismatch")
	}
	if NewBag(0).Cap() != ^uint16(0) {
		t.Fatalf("NewBag(0) should be unbounded")
	}
}

func TestBagSortDedupMerge(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(ArgCount, source.Span{File: 1, Start: 5, End: 6}, "late"))
	b.Add(New(SevWarning, ArgNotLiteral, source.Span{File: 0, Start: 9, End: 9}, "warn"))
	b.Add(NewError(FmtMalformed, source.Span{File: 0, Start: 9, End: 9}, "err"))
	b.Add(NewError(FmtMalformed, source.Span{File: 0, Start: 9, End: 9}, "err"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items", b.Len())
	}
	b.Sort()
	got := []string{b.Items()[0].Message, b.Items()[1].Message, b.Items()[2].Message}
	want := []string{"err", "warn", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", got, want)
		}
	}

	other := NewBag(1)
	other.Add(NewError(IOParseError, source.Span{}, "parse"))
	small := NewBag(1)
	small.Add(NewError(IOLoadFileError, source.Span{}, "load"))
	small.Merge(other)
	if small.Len() != 2 {
		t.Fatalf("Merge len = %d, want 2", small.Len())
	}
}

func TestReportBuilderAndDedup(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(bag)
	span := source.Span{File: 0, Start: 3, End: 5}

	for range 2 {
		Errorf(r, FmtFlagNotPermitted, span, "%q is not valid with %s", '#', "%s").
			WithNote(source.Span{Start: 0, End: 10}, "format used here").
			WithFix("remove flag", FixEdit{Span: span.Sub(1, 1)}).
			Emit()
	}
	Warnf(r, ArgNotLiteral, span, "not constant").Emit()

	if bag.Len() != 2 || r.Suppressed() != 1 {
		t.Fatalf("bag has %d items, %d suppressed; want 2 and 1", bag.Len(), r.Suppressed())
	}
	d := bag.Items()[0]
	if d.Message != "'#' is not valid with %s" {
		t.Errorf("message = %q", d.Message)
	}
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].Span.Start != 4 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}

	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(span, "x").Emit()
	if nilBuilder.Diagnostic().Code != UnknownCode {
		t.Fatalf("nil builder returned data")
	}
}

func TestReporterFunc(t *testing.T) {
	var got []Code
	b := Errorf(ReporterFunc(func(d Diagnostic) { got = append(got, d.Code) }), ArgCount, source.Span{}, "count")
	b.Emit()
	b.Emit()
	if len(got) != 1 || got[0] != ArgCount {
		t.Fatalf("reported %v, want one ARG2001", got)
	}
	var nilBag *Bag
	nilBag.Report(NewError(ArgCount, source.Span{}, "dropped"))
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	id := fs.Add("/workspace/cmd/app/main.go", []byte("package main\n\nvar f = cefmt.MustCompile(\"%#s\")\n"), 0)

	diags := []Diagnostic{
		NewError(FmtFlagNotPermitted, source.Span{File: id, Start: 39, End: 40}, "'#' is not valid\nwith %s").
			WithNote(source.Span{File: id, Start: 14, End: 17}, "declared here"),
		New(SevWarning, ArgNotLiteral, source.Span{File: id, Start: 0, End: 7}, "first"),
	}
	want := "warning ARG2003 cmd/app/main.go:1:1 first\n" +
		"note FMT1030 cmd/app/main.go:3:1 declared here\n" +
		"error FMT1030 cmd/app/main.go:3:26 '#' is not valid with %s"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("FormatShort:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
	if FormatShort(nil, fs, true) != "" {
		t.Fatalf("expected empty output without diagnostics")
	}
}
