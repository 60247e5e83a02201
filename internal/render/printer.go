package render

import (
	"sync"

	"cefmt/internal/element"
	"cefmt/internal/format"
)

type printer struct {
	buf []byte
}

var printerPool = sync.Pool{
	New: func() any { return new(printer) },
}

func newPrinter() *printer {
	p := printerPool.Get().(*printer)
	p.buf = p.buf[:0]
	return p
}

// free returns p to the pool unless its buffer grew large.
func (p *printer) free() {
	if cap(p.buf) > 64<<10 {
		return
	}
	p.buf = p.buf[:0]
	printerPool.Put(p)
}

// render copies the literal gaps and renders one argument per literal
// element. args must already match f.
func (p *printer) render(f *format.Format, args []any) {
	last := 0
	arg := 0
	for _, e := range f.Elements[:f.ElementCount] {
		p.buf = append(p.buf, f.String[last:e.Begin]...)
		switch e.Type {
		case element.End:
			return
		case element.Esc:
			p.buf = append(p.buf, element.Marker)
		default:
			fd := newField(e)
			p.buf = fd.render(p.buf, args[arg])
			arg++
		}
		last = e.End
	}
}
