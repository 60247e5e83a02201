package diagfmt

import (
	"encoding/json"
	"io"

	"cefmt/internal/diag"
	"cefmt/internal/source"
)

// Pos is a 1-based line and byte column.
type Pos struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type Range struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

// Location places a span in a file. Range is set with IncludePositions.
type Location struct {
	Path  string `json:"path"`
	Start uint32 `json:"start"` // byte offsets
	End   uint32 `json:"end"`
	Range *Range `json:"range,omitempty"`
}

type Note struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// Preview shows the lines an edit touches before and after applying it.
type Preview struct {
	Before []string `json:"before"`
	After  []string `json:"after"`
}

type Edit struct {
	Location Location `json:"location"`
	NewText  string   `json:"new_text"`
	Preview  *Preview `json:"preview,omitempty"`
}

type Fix struct {
	Title string `json:"title"`
	Edits []Edit `json:"edits"`
}

// Diagnostic is one entry of the JSON report.
type Diagnostic struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
	Notes    []Note   `json:"notes,omitempty"`
	Fixes    []Fix    `json:"fixes,omitempty"`
}

// Report is the document written by `cefmt check --format json`.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Count       int          `json:"count"`
	Errors      int          `json:"errors"`
	Warnings    int          `json:"warnings"`
	// Dropped counts diagnostics cut by the bag limit or by JSONOpts.Max.
	Dropped int `json:"dropped,omitempty"`
}

type reportBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b reportBuilder) location(span source.Span) Location {
	loc := Location{
		Path:  formatPath(b.fs.Get(span.File), b.fs, b.opts.PathMode),
		Start: span.Start,
		End:   span.End,
	}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(span)
		loc.Range = &Range{
			Start: Pos{Line: start.Line, Col: start.Col},
			End:   Pos{Line: end.Line, Col: end.Col},
		}
	}
	return loc
}

func (b reportBuilder) fix(fix diag.Fix) Fix {
	out := Fix{Title: fix.Title, Edits: make([]Edit, 0, len(fix.Edits))}
	for _, edit := range fix.Edits {
		e := Edit{Location: b.location(edit.Span), NewText: edit.NewText}
		if b.opts.IncludePreviews {
			if p, err := buildFixEditPreview(b.fs, edit); err == nil {
				e.Preview = &Preview{Before: p.before, After: p.after}
			}
		}
		out.Edits = append(out.Edits, e)
	}
	return out
}

func (b reportBuilder) diagnostic(d diag.Diagnostic) Diagnostic {
	out := Diagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	if b.opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, Note{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, f := range d.Fixes {
			out.Fixes = append(out.Fixes, b.fix(f))
		}
	}
	return out
}

// BuildReport converts the first opts.Max diagnostics of bag.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := reportBuilder{fs: fs, opts: opts}
	rep := Report{
		Diagnostics: make([]Diagnostic, 0, len(items)),
		Count:       len(items),
		Dropped:     bag.Dropped() + bag.Len() - len(items),
	}
	for _, d := range items {
		switch {
		case d.Severity >= diag.SevError:
			rep.Errors++
		case d.Severity == diag.SevWarning:
			rep.Warnings++
		}
		rep.Diagnostics = append(rep.Diagnostics, b.diagnostic(d))
	}
	return rep
}

// JSON writes the indented report to w.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
