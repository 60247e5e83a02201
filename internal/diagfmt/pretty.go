package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cefmt/internal/diag"
	"cefmt/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	caret, gutter   *color.Color
	note, fix       *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.caret, p.gutter, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostic(s) dropped\n", n)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := formatPath(file, fs, opts.PathMode)

	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	writeSnippet(w, file, start, end, int(opts.Context), p)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			ns, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				formatPath(fs.Get(note.Span.File), fs, opts.PathMode), ns.Line, ns.Col, note.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("fix:"), fix.Title)
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					fmt.Fprintf(w, "    %s %s\n", p.err.Sprint("-"), line)
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "    %s %s\n", p.fix.Sprint("+"), line)
				}
			}
		}
	}
}

// writeSnippet prints the primary line with context lines above it and a
// caret line under the span. Spans running past the line are cut at its end.
func writeSnippet(w io.Writer, file *source.File, start, end source.LineCol, context int, p palette) {
	line := file.GetLine(start.Line)
	if line == "" && start.Line > 1 {
		return
	}
	first := max(int(start.Line)-context, 1)
	gutterWidth := len(fmt.Sprint(start.Line))

	for n := first; n <= int(start.Line); n++ {
		fmt.Fprintf(w, " %s %s\n",
			p.gutter.Sprintf("%*d |", gutterWidth, n),
			file.GetLine(uint32(n))) // #nosec G115 -- n <= start.Line
	}

	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	stop = max(stop, col)

	span := max(runewidth.StringWidth(line[col:stop]), 1)
	marks := "^" + strings.Repeat("~", span-1)

	fmt.Fprintf(w, " %s %s%s\n",
		p.gutter.Sprintf("%*s |", gutterWidth, ""),
		caretIndent(line[:col]),
		p.caret.Sprint(marks))
}

// caretIndent blanks out prefix column by column. Tabs are kept so the
// terminal expands them the same way as on the source line.
func caretIndent(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
