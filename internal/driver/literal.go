package driver

import (
	"errors"
	"go/ast"
	"go/token"
	"strconv"
	"unicode/utf8"
)

var ErrNotString = errors.New("not a string literal")

// StringLit is a decoded Go string literal together with the source offset
// of every decoded byte.
type StringLit struct {
	Value string
	// offs[i] is the offset, relative to the opening quote, of the source
	// text that produced Value[i]; offs[len(Value)] is the closing quote.
	offs []int
}

// DecodeLit decodes a string BasicLit, keeping track of where each byte
// came from so that offsets into the value can be mapped back into source.
func DecodeLit(lit *ast.BasicLit) (StringLit, error) {
	if lit == nil || lit.Kind != token.STRING || len(lit.Value) < 2 {
		return StringLit{}, ErrNotString
	}
	raw := lit.Value
	if raw[0] == '`' {
		return decodeRaw(raw), nil
	}
	return decodeInterpreted(raw)
}

func decodeRaw(raw string) StringLit {
	body := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(body))
	offs := make([]int, 0, len(body)+1)
	for i := 0; i < len(body); i++ {
		// carriage returns are discarded from raw strings
		if body[i] == '\r' {
			continue
		}
		out = append(out, body[i])
		offs = append(offs, i+1)
	}
	offs = append(offs, len(raw)-1)
	return StringLit{Value: string(out), offs: offs}
}

func decodeInterpreted(raw string) (StringLit, error) {
	if raw[0] != '"' || raw[len(raw)-1] != '"' {
		return StringLit{}, strconv.ErrSyntax
	}
	body := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(body))
	offs := make([]int, 0, len(body)+1)
	var buf [utf8.UTFMax]byte

	rest := body
	for len(rest) > 0 {
		at := len(body) - len(rest) + 1
		r, multibyte, tail, err := strconv.UnquoteChar(rest, '"')
		if err != nil {
			return StringLit{}, err
		}
		if r < utf8.RuneSelf || !multibyte {
			out = append(out, byte(r)) // #nosec G115 -- \x and octal escapes are single bytes
			offs = append(offs, at)
		} else {
			n := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:n]...)
			for range n {
				offs = append(offs, at)
			}
		}
		rest = tail
	}
	offs = append(offs, len(raw)-1)
	return StringLit{Value: string(out), offs: offs}, nil
}

// Span returns the source range, relative to the opening quote, covering
// the value bytes [from, to). An empty range maps to the source of the
// byte at from.
func (s StringLit) Span(from, to int) (start, end int) {
	from = max(0, min(from, len(s.Value)))
	to = max(from, min(to, len(s.Value)))
	start = s.offs[from]
	if to == from {
		if from == len(s.Value) {
			return start, start + 1
		}
		to = from + 1
	}
	// конец последнего байта: начало следующего источника
	last := s.offs[to-1]
	end = last + 1
	for i := to; i < len(s.offs); i++ {
		if s.offs[i] != last {
			end = s.offs[i]
			break
		}
	}
	return start, end
}
