// Package cefmt compiles printf-style format strings into fixed element
// tables and prints arguments through them.
//
// A format is analyzed once by Compile and can then be used for any number
// of Print, Write or Sentinel calls. Arguments are checked against the
// element types before anything is written:
//
//	f := cefmt.MustCompile("%-8s %5.1f%%")
//	s, err := cefmt.Print(f, "load", 93.25)
//
// Calls whose format is a string literal can be checked at build time with
// the cefmt-vet tool or the `cefmt check` command.
package cefmt

import (
	"io"

	"cefmt/internal/element"
	"cefmt/internal/format"
	"cefmt/internal/render"
	"cefmt/internal/typecheck"
)

type (
	// Format is an analyzed format string.
	Format = format.Format
	// Element is one slot of a Format.
	Element = element.Element
	// Kind classifies an argument for type checking.
	Kind = typecheck.Kind
	// Profile selects the grammar.
	Profile = element.Profile
	// Error is returned by Compile for a rejected format.
	Error = format.Error
	// Deferred renders its arguments when written or converted to a string.
	Deferred = render.Deferred
)

const (
	// Extended accepts precision, %c and the e/g float verbs.
	Extended = element.Extended
	// Basic accepts only flags, width and the d u x o f b p s types.
	Basic = element.Basic
)

// MaxElements is the number of meaningful elements a Format can hold.
const MaxElements = element.MaxElements

// Compile analyzes s with the Extended grammar. Results are cached.
func Compile(s string) (*Format, error) {
	return format.Default.Get(s, format.Options{Profile: Extended})
}

// CompileProfile analyzes s with grammar p.
func CompileProfile(s string, p Profile) (*Format, error) {
	return format.Default.Get(s, format.Options{Profile: p})
}

// MustCompile is Compile that panics on error.
func MustCompile(s string) *Format {
	f, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Check reports whether args can be printed with f.
func Check(f *Format, args ...any) error {
	return typecheck.CheckArgs(f, args...)
}

// Print renders f with args to a string.
func Print(f *Format, args ...any) (string, error) {
	return render.Print(f, args...)
}

// Write renders f with args to w.
func Write(w io.Writer, f *Format, args ...any) (int, error) {
	return render.Write(w, f, args...)
}

// Append renders f with args and appends the result to dst.
func Append(dst []byte, f *Format, args ...any) ([]byte, error) {
	return render.Append(dst, f, args...)
}

// Sentinel checks args now and renders them later.
func Sentinel(f *Format, args ...any) (Deferred, error) {
	return render.Sentinel(f, args...)
}
