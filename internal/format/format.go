package format

import (
	"cefmt/internal/element"
)

// Options configures an analysis. The zero value selects element.Extended.
type Options struct {
	Profile element.Profile
}

func (o Options) withDefaults() Options {
	if o.Profile != element.Basic {
		o.Profile = element.Extended
	}
	return o
}

// Format is an analyzed format string.
type Format struct {
	// String is the analyzed source.
	String string
	// Size is len(String) without one trailing NUL byte.
	Size int
	// Profile is the grammar the string was analyzed with.
	Profile element.Profile
	// Elements holds the meaningful elements, the terminator and padding.
	Elements [element.SlotCount]element.Element
	// ElementCount is the number of slots up to and including the
	// terminator; an empty string has one.
	ElementCount int
	// LiteralCount is the number of elements that consume an argument.
	LiteralCount int
}

// formatSize drops a single trailing NUL so that strings copied from C
// sources analyze the same as their Go spelling.
func formatSize(s string) int {
	if n := len(s); n > 0 && s[n-1] == 0 {
		return n - 1
	}
	return len(s)
}

// Analyze builds the element table for s.
func Analyze(s string, opts Options) (*Format, error) {
	opts = opts.withDefaults()
	f := &Format{
		String:  s,
		Size:    formatSize(s),
		Profile: opts.Profile,
	}

	start := 0
	for i := range f.Elements {
		if i > 0 && f.Elements[i-1].Type == element.End {
			f.Elements[i] = element.Padding(i, f.Size)
			continue
		}
		a := analyzer{src: s, size: f.Size, index: i, profile: opts.Profile}
		e, err := a.analyze(start)
		if err != nil {
			return nil, err
		}
		f.Elements[i] = e
		start = e.End
	}

	count, err := f.countElements()
	if err != nil {
		return nil, err
	}
	f.ElementCount = count
	f.LiteralCount = f.countLiterals()
	return f, nil
}

// MustAnalyze is like Analyze but panics on error. It is meant for
// package-level variables, where a bad literal should stop the program
// before main runs.
func MustAnalyze(s string) *Format {
	f, err := Analyze(s, Options{})
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Format) countElements() (int, error) {
	for i := range f.Elements {
		if f.Elements[i].Type == element.End {
			return i + 1, nil
		}
	}
	return 0, newError(ErrArrayOverrun, f.String, element.LastSlot, f.Size)
}

func (f *Format) countLiterals() int {
	n := 0
	for _, e := range f.Used() {
		if e.Type != element.Esc {
			n++
		}
	}
	return n
}

// TerminatorIndex returns the slot of the terminator.
func (f *Format) TerminatorIndex() int {
	return f.ElementCount - 1
}

// Used returns the elements before the terminator.
func (f *Format) Used() []element.Element {
	return f.Elements[:f.TerminatorIndex()]
}

// Terminator returns the sentinel element.
func (f *Format) Terminator() element.Element {
	return f.Elements[f.TerminatorIndex()]
}

// Text returns the source text of the format (without a trailing NUL).
func (f *Format) Text() string {
	return f.String[:f.Size]
}

// Gap returns the literal text between element i-1 and element i. For the
// terminator it is the tail of the string.
func (f *Format) Gap(i int) string {
	from := 0
	if i > 0 {
		from = f.Elements[i-1].End
	}
	return f.String[from:f.Elements[i].Begin]
}
