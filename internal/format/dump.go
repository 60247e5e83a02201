package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cefmt/internal/element"
)

// DumpElement renders e in the debug form
//
//	{idx = 0, beg = 0, end = 2, width = 0, precision = -1, flags = 0, type = esc, blob = "%%"}
func DumpElement(e element.Element) string {
	return fmt.Sprintf("{idx = %d, beg = %d, end = %d, width = %d, precision = %d, flags = %d, type = %s, blob = %q}",
		e.Index, e.Begin, e.End, e.Width, e.Precision, uint8(e.Flags), e.Type, e.Raw)
}

// Dump renders the whole table, padding slots included when all is set.
func Dump(w io.Writer, f *Format, all bool) error {
	var b strings.Builder
	b.WriteString("Format {\n")
	fmt.Fprintf(&b, "  string = %q\n", f.Text())
	fmt.Fprintf(&b, "  size = %d\n", f.Size)
	fmt.Fprintf(&b, "  profile = %s\n", f.Profile)
	fmt.Fprintf(&b, "  element_count = %d\n", f.ElementCount)
	fmt.Fprintf(&b, "  literal_count = %d\n", f.LiteralCount)
	last := f.TerminatorIndex()
	if all {
		last = element.LastSlot
	}
	for i := 0; i <= last; i++ {
		b.WriteString("  ")
		b.WriteString(DumpElement(f.Elements[i]))
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

type jsonElement struct {
	Index     int    `json:"idx"`
	Begin     int    `json:"beg"`
	End       int    `json:"end"`
	Type      string `json:"type"`
	Verb      string `json:"verb,omitempty"`
	Flags     string `json:"flags,omitempty"`
	Width     int    `json:"width"`
	Precision int    `json:"precision"`
	Blob      string `json:"blob"`
}

type jsonFormat struct {
	String       string        `json:"string"`
	Size         int           `json:"size"`
	Profile      string        `json:"profile"`
	ElementCount int           `json:"element_count"`
	LiteralCount int           `json:"literal_count"`
	Elements     []jsonElement `json:"elements"`
}

// DumpJSON writes the meaningful part of the table as indented JSON.
func DumpJSON(w io.Writer, f *Format) error {
	out := jsonFormat{
		String:       f.Text(),
		Size:         f.Size,
		Profile:      f.Profile.String(),
		ElementCount: f.ElementCount,
		LiteralCount: f.LiteralCount,
		Elements:     make([]jsonElement, 0, f.ElementCount),
	}
	for _, e := range f.Elements[:f.ElementCount] {
		je := jsonElement{
			Index:     e.Index,
			Begin:     e.Begin,
			End:       e.End,
			Type:      e.Type.String(),
			Flags:     e.Flags.String(),
			Width:     e.Width,
			Precision: e.Precision,
			Blob:      e.Raw,
		}
		if e.Verb != 0 {
			je.Verb = string(e.Verb)
		}
		out.Elements = append(out.Elements, je)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
