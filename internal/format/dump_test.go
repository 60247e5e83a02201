package format_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"cefmt/internal/element"
	"cefmt/internal/format"
)

func diffText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	t.Fatalf("dump mismatch:\n%s", diff)
}

func TestDumpElement(t *testing.T) {
	f := mustAnalyze(t, "%%", element.Extended)
	got := format.DumpElement(f.Elements[0])
	want := `{idx = 0, beg = 0, end = 2, width = 0, precision = -1, flags = 0, type = esc, blob = "%%"}`
	if got != want {
		t.Fatalf("DumpElement:\n got %s\nwant %s", got, want)
	}
}

func TestDump(t *testing.T) {
	f := mustAnalyze(t, "n=%+5d %%", element.Extended)
	var buf bytes.Buffer
	if err := format.Dump(&buf, f, false); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	want := `Format {
  string = "n=%+5d %%"
  size = 9
  profile = extended
  element_count = 3
  literal_count = 1
  {idx = 0, beg = 2, end = 6, width = 5, precision = -1, flags = 2, type = dec, blob = "%+5d"}
  {idx = 1, beg = 7, end = 9, width = 0, precision = -1, flags = 0, type = esc, blob = "%%"}
  {idx = 2, beg = 9, end = 9, width = 0, precision = -1, flags = 0, type = end, blob = ""}
}
`
	diffText(t, want, buf.String())
}

func TestDumpAllIncludesPadding(t *testing.T) {
	f := mustAnalyze(t, "", element.Basic)
	var buf bytes.Buffer
	if err := format.Dump(&buf, f, true); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	lines := bytes.Count(buf.Bytes(), []byte("{idx = "))
	if lines != element.SlotCount {
		t.Fatalf("dumped %d slots, want %d", lines, element.SlotCount)
	}
}

func TestDumpJSON(t *testing.T) {
	f := mustAnalyze(t, "%-3s=%.2f", element.Extended)
	var buf bytes.Buffer
	if err := format.DumpJSON(&buf, f); err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	var out struct {
		ElementCount int `json:"element_count"`
		Elements     []struct {
			Type      string `json:"type"`
			Verb      string `json:"verb"`
			Flags     string `json:"flags"`
			Precision int    `json:"precision"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if out.ElementCount != 3 || len(out.Elements) != 3 {
		t.Fatalf("element_count = %d, elements = %d", out.ElementCount, len(out.Elements))
	}
	if e := out.Elements[0]; e.Type != "str" || e.Flags != "-" || e.Verb != "s" {
		t.Fatalf("element 0 = %+v", e)
	}
	if e := out.Elements[1]; e.Type != "flt" || e.Precision != 2 {
		t.Fatalf("element 1 = %+v", e)
	}
	if e := out.Elements[2]; e.Type != "end" || e.Verb != "" {
		t.Fatalf("terminator = %+v", e)
	}
}
