package render_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cefmt/internal/format"
	"cefmt/internal/render"
	"cefmt/internal/typecheck"
)

type point struct{ x, y int }

func (p point) String() string { return fmt.Sprintf("(%d,%d)", p.x, p.y) }

func TestPrint(t *testing.T) {
	tests := []struct {
		format string
		args   []any
		want   string
	}{
		{"plain", nil, "plain"},
		{"100%% of %d%%", []any{5}, "100% of 5%"},
		{"x=%d\x00", []any{1}, "x=1"},

		{"%d", []any{42}, "42"},
		{"%d", []any{-42}, "-42"},
		{"%d", []any{int64(math.MinInt64)}, "-9223372036854775808"},
		{"%+d", []any{5}, "+5"},
		{"%+d", []any{0}, "+0"},
		{"%5d", []any{42}, "   42"},
		{"%-5d|", []any{42}, "42   |"},
		{"%05d", []any{-42}, "-0042"},
		{"%+05d", []any{42}, "+0042"},
		{"%-05d|", []any{42}, "42   |"},
		{"%+-2d|", []any{1}, "+1|"},
		{"%d", []any{uint8(200)}, "200"},
		{"%u", []any{uint(7)}, "7"},
		{"%+u", []any{uint(5)}, "5"},
		{"%+5d", []any{uint8(3)}, "    3"},
		{"%+5d", []any{3}, "   +3"},
		{"%u", []any{uint64(math.MaxUint64)}, "18446744073709551615"},

		{"%x", []any{255}, "ff"},
		{"%#x", []any{255}, "0xff"},
		{"%#06x", []any{255}, "0x00ff"},
		{"%#6x", []any{255}, "  0xff"},
		{"%#x", []any{0}, "0"},
		{"%x", []any{int8(-1)}, "ff"},
		{"%x", []any{int32(-1)}, "ffffffff"},
		{"%o", []any{8}, "10"},
		{"%#o", []any{8}, "010"},
		{"%#o", []any{0}, "0"},

		{"%f", []any{3.14159}, "3.141590"},
		{"%.2f", []any{3.14159}, "3.14"},
		{"%07.2f", []any{3.14159}, "0003.14"},
		{"%07.2f", []any{-3.14159}, "-003.14"},
		{"%+.1f", []any{2.0}, "+2.0"},
		{"%e", []any{1234.5}, "1.234500e+03"},
		{"%.0e", []any{1234.5}, "1e+03"},
		{"%g", []any{0.5}, "0.5"},
		{"%g", []any{1.0 / 3}, "0.333333"},
		{"%g", []any{123456789.0}, "1.23457e+08"},
		{"%g", []any{100.0}, "100"},
		{"%.0g", []any{2.5}, "2"},
		{"%g", []any{float32(1.1)}, "1.1"},
		{"%.3g", []any{3.14159}, "3.14"},
		{"%5.1f", []any{math.Inf(1)}, "  Inf"},
		{"%05.1f", []any{math.Inf(-1)}, " -Inf"},
		{"%f", []any{math.NaN()}, "NaN"},

		{"%b", []any{true}, "true"},
		{"%-6b|", []any{false}, "false |"},

		{"%s", []any{"hi"}, "hi"},
		{"%4s", []any{"hi"}, "  hi"},
		{"%-4s|", []any{"hi"}, "hi  |"},
		{"%s", []any{[]byte("ab")}, "ab"},
		{"%s", []any{errors.New("boom")}, "boom"},
		{"%s", []any{point{1, 2}}, "(1,2)"},

		{"%c", []any{'A'}, "A"},
		{"%c", []any{'é'}, "é"},
		{"%-3c|", []any{'x'}, "x  |"},
		{"%c", []any{uint8('z')}, "z"},
		{"%c", []any{int64(1<<32 + 'A')}, "\uFFFD"},
		{"%c", []any{uint64(1<<32 + 'A')}, "\uFFFD"},
		{"%c", []any{-1}, "\uFFFD"},
		{"%c", []any{0xD800}, "\uFFFD"},

		{"%p", []any{nil}, "0x0"},
		{"%08p", []any{nil}, "0x000000"},

		{"%05d %d", []any{1, 2}, "00001 2"},
		{"%-4s|%4s", []any{"a", "b"}, "a   |   b"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := format.Analyze(tt.format, format.Options{})
			require.NoError(t, err)
			got, err := render.Print(f, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloatRejectsShowBase(t *testing.T) {
	for _, s := range []string{"%#f", "%#.0e", "%#g"} {
		_, err := format.Analyze(s, format.Options{})
		assert.ErrorIsf(t, err, format.ErrFlagNotPermitted, "%q", s)
	}
}

func TestPrintPointer(t *testing.T) {
	x := 1
	f := format.MustAnalyze("%p")
	got, err := render.Print(f, &x)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%p", &x), got)
}

func TestTypeErrorsWriteNothing(t *testing.T) {
	f := format.MustAnalyze("n=%d")
	var buf bytes.Buffer

	n, err := render.Write(&buf, f, "seven")
	require.ErrorIs(t, err, typecheck.ErrKindMismatch)
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())

	_, err = render.Print(f)
	require.ErrorIs(t, err, typecheck.ErrArgCount)

	_, err = render.Sentinel(f, 1, 2)
	require.ErrorIs(t, err, typecheck.ErrArgCount)
}

func TestWriteAndAppend(t *testing.T) {
	f := format.MustAnalyze("%s=%#x\n")
	var buf bytes.Buffer
	n, err := render.Write(&buf, f, "mask", uint16(0xbeef))
	require.NoError(t, err)
	assert.Equal(t, "mask=0xbeef\n", buf.String())
	assert.Equal(t, buf.Len(), n)

	out, err := render.Append([]byte("> "), f, "k", 1)
	require.NoError(t, err)
	assert.Equal(t, "> k=0x1\n", string(out))
}

func TestSentinel(t *testing.T) {
	f := format.MustAnalyze("[%-3d|%3s]")
	d, err := render.Sentinel(f, 7, "ok")
	require.NoError(t, err)
	assert.Equal(t, "[7  | ok]", d.String())

	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "[7  | ok]", fmt.Sprint(d))
	assert.Equal(t, "", render.Deferred{}.String())
}
