package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"cefmt/internal/element"
	"cefmt/internal/format"
)

// ElementOpts configures FormatElementsPretty.
type ElementOpts struct {
	Color bool
	All   bool // печатать и слоты после терминатора
	Gaps  bool // печатать текст между элементами
}

// FormatElementsPretty выводит таблицу элементов в человекочитаемом формате
func FormatElementsPretty(w io.Writer, f *format.Format, opts ElementOpts) error {
	literal := color.New(color.FgGreen)
	escape := color.New(color.FgYellow)
	end := color.New(color.FgHiBlack)
	for _, c := range []*color.Color{literal, escape, end} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if _, err := fmt.Fprintf(w, "%q (%d bytes, %s): %d element(s), %d literal(s)\n",
		f.String, f.Size, f.Profile, f.ElementCount, f.LiteralCount); err != nil {
		return err
	}

	n := f.ElementCount
	if opts.All {
		n = len(f.Elements)
	}
	for i := range n {
		e := f.Elements[i]
		if opts.Gaps && i < f.ElementCount {
			if gap := f.Gap(i); gap != "" {
				if _, err := fmt.Fprintf(w, "    text %q\n", gap); err != nil {
					return err
				}
			}
		}

		c := literal
		switch {
		case e.Type == element.End:
			c = end
		case e.Type == element.Esc:
			c = escape
		}

		// Форматируем ширину и точность
		width, prec := "-", "-"
		if e.HasWidth() {
			width = fmt.Sprint(e.Width)
		}
		if e.HasPrecision() {
			prec = fmt.Sprint(e.Precision)
		}
		if _, err := fmt.Fprintf(w, "%3d: %s %-8q flags=%-4s width=%-3s prec=%-3s at %d-%d\n",
			e.Index, c.Sprintf("%-3s", e.Type), e.Raw, e.Flags, width, prec, e.Begin, e.End); err != nil {
			return err
		}
	}
	return nil
}
