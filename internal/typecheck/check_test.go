package typecheck_test

import (
	"errors"
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cefmt/internal/element"
	"cefmt/internal/format"
	"cefmt/internal/typecheck"
)

type celsius float64

type name struct{ first, last string }

func (n name) String() string { return n.first + " " + n.last }

func TestKindOfValue(t *testing.T) {
	x := 1
	tests := []struct {
		name string
		v    any
		want typecheck.Kind
	}{
		{"int", 1, typecheck.Signed},
		{"int8", int8(-1), typecheck.Signed},
		{"int64", int64(1), typecheck.Signed},
		{"uint", uint(1), typecheck.Unsigned},
		{"byte", byte(1), typecheck.Unsigned},
		{"uintptr", uintptr(1), typecheck.Unsigned},
		{"float32", float32(1), typecheck.Float},
		{"named float", celsius(36.6), typecheck.Float},
		{"bool", true, typecheck.Bool},
		{"string", "s", typecheck.Text},
		{"bytes", []byte("s"), typecheck.Text},
		{"stringer", name{"Ada", "Lovelace"}, typecheck.Text},
		{"error", errors.New("boom"), typecheck.Text},
		{"pointer", &x, typecheck.Pointer},
		{"unsafe pointer", unsafe.Pointer(&x), typecheck.Pointer},
		{"nil", nil, typecheck.Pointer},
		{"map", map[string]int{}, typecheck.Pointer},
		{"chan", make(chan int), typecheck.Pointer},
		{"func", func() {}, typecheck.Pointer},
		{"struct", struct{}{}, typecheck.Invalid},
		{"complex", complex(1, 2), typecheck.Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typecheck.KindOfValue(tt.v))
		})
	}
	assert.Equal(t, typecheck.Pointer, typecheck.KindOf(nil))
	assert.Equal(t, typecheck.Unsigned, typecheck.KindOf(reflect.TypeFor[uint16]()))
}

func TestMatches(t *testing.T) {
	kinds := []typecheck.Kind{
		typecheck.Invalid, typecheck.Signed, typecheck.Unsigned, typecheck.Float,
		typecheck.Bool, typecheck.Pointer, typecheck.Text,
	}
	accept := map[element.Type][]typecheck.Kind{
		element.Dec: {typecheck.Signed, typecheck.Unsigned},
		element.Hex: {typecheck.Signed, typecheck.Unsigned},
		element.Oct: {typecheck.Signed, typecheck.Unsigned},
		element.Chr: {typecheck.Signed, typecheck.Unsigned},
		element.Uns: {typecheck.Unsigned},
		element.Flt: {typecheck.Float},
		element.Boo: {typecheck.Bool},
		element.Ptr: {typecheck.Pointer},
		element.Str: {typecheck.Text},
	}
	for _, typ := range element.Types() {
		for _, k := range kinds {
			want := false
			for _, ok := range accept[typ] {
				if ok == k {
					want = true
				}
			}
			assert.Equalf(t, want, typecheck.Matches(typ, k), "Matches(%s, %s)", typ, k)
		}
	}
}

func TestCheck(t *testing.T) {
	f := format.MustAnalyze("%% %d %u %#x %f %b %p %s")

	err := typecheck.CheckArgs(f, -1, uint(2), 3, 1.5, true, nil, "s")
	require.NoError(t, err)

	err = typecheck.CheckArgs(f, 1, 2)
	require.ErrorIs(t, err, typecheck.ErrArgCount)
	var te *typecheck.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 7, te.Want)
	assert.Equal(t, 2, te.Got)
	assert.Equal(t, `format "%% %d %u %#x %f %b %p %s" expects 7 argument(s), got 2`, err.Error())

	err = typecheck.CheckArgs(f, -1, 2, 3, 1.5, true, nil, "s")
	require.ErrorIs(t, err, typecheck.ErrKindMismatch)
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.Arg)
	assert.Equal(t, element.Uns, te.Element.Type)
	assert.Equal(t, `format "%% %d %u %#x %f %b %p %s": argument 1 is signed, but %u expects unsigned integer`, err.Error())
}

func TestCheckNoLiterals(t *testing.T) {
	f := format.MustAnalyze("100%%")
	require.NoError(t, typecheck.Check(f, nil))
	require.ErrorIs(t, typecheck.CheckArgs(f, 1), typecheck.ErrArgCount)
}

func TestCheckSkipsEscapes(t *testing.T) {
	f := format.MustAnalyze("%%%s%%%%%d%%")
	require.NoError(t, typecheck.Check(f, []typecheck.Kind{typecheck.Text, typecheck.Signed}))
	err := typecheck.Check(f, []typecheck.Kind{typecheck.Signed, typecheck.Text})
	var te *typecheck.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.Arg)
	assert.Equal(t, 1, te.Element.Index)
}
