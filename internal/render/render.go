package render

import (
	"io"
	"strings"

	"cefmt/internal/format"
	"cefmt/internal/typecheck"
)

// Append renders f with args and appends the result to dst.
func Append(dst []byte, f *format.Format, args ...any) ([]byte, error) {
	if err := typecheck.CheckArgs(f, args...); err != nil {
		return dst, err
	}
	p := newPrinter()
	defer p.free()
	p.render(f, args)
	return append(dst, p.buf...), nil
}

// Write renders f with args to w.
func Write(w io.Writer, f *format.Format, args ...any) (int, error) {
	if err := typecheck.CheckArgs(f, args...); err != nil {
		return 0, err
	}
	p := newPrinter()
	defer p.free()
	p.render(f, args)
	return w.Write(p.buf)
}

// Print renders f with args to a string.
func Print(f *format.Format, args ...any) (string, error) {
	if err := typecheck.CheckArgs(f, args...); err != nil {
		return "", err
	}
	p := newPrinter()
	defer p.free()
	p.render(f, args)
	return string(p.buf), nil
}

// Deferred is a checked format and argument list rendered on demand.
type Deferred struct {
	f    *format.Format
	args []any
}

// Sentinel checks args against f and returns a value that renders them when
// written or converted to a string. The arguments are captured, not copied:
// values behind pointers are read at render time.
func Sentinel(f *format.Format, args ...any) (Deferred, error) {
	if err := typecheck.CheckArgs(f, args...); err != nil {
		return Deferred{}, err
	}
	return Deferred{f: f, args: args}, nil
}

func (d Deferred) String() string {
	if d.f == nil {
		return ""
	}
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

// WriteTo implements io.WriterTo.
func (d Deferred) WriteTo(w io.Writer) (int64, error) {
	if d.f == nil {
		return 0, nil
	}
	p := newPrinter()
	defer p.free()
	p.render(d.f, d.args)
	n, err := w.Write(p.buf)
	return int64(n), err
}
