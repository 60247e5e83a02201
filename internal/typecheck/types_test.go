package typecheck

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const typesSrc = `package p

import (
	"errors"
	"unsafe"
)

type ID uint16
type Name string
type Celsius float64
type Stamp struct{ s int }

func (Stamp) String() string { return "" }

type Ptr struct{}

func (*Ptr) String() string { return "" }

func use[T any](x T) {}

var (
	vInt     int
	vU8      uint8
	vUptr    uintptr
	vID      ID
	vName    Name
	vF32     float32
	vC       Celsius
	vBool    bool
	vBytes   []byte
	vInts    []int
	vPtr     *int
	vUnsafe  unsafe.Pointer
	vMap     map[string]int
	vFunc    func()
	vStamp   Stamp
	vPtrVal  Ptr
	vPtrPtr  *Ptr
	vErr     = errors.New("x")
	vAny     any
	vStruct  struct{}
	vComplex complex128
)
`

func checkTypes(t *testing.T) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", typesSrc, 0)
	require.NoError(t, err)
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("p", fset, []*ast.File{f}, nil)
	require.NoError(t, err)
	return pkg
}

func TestKindOfType(t *testing.T) {
	pkg := checkTypes(t)
	tests := []struct {
		name  string
		kind  Kind
		known bool
	}{
		{"vInt", Signed, true},
		{"vU8", Unsigned, true},
		{"vUptr", Unsigned, true},
		{"vID", Unsigned, true},
		{"vName", Text, true},
		{"vF32", Float, true},
		{"vC", Float, true},
		{"vBool", Bool, true},
		{"vBytes", Text, true},
		{"vInts", Pointer, true},
		{"vPtr", Pointer, true},
		{"vUnsafe", Pointer, true},
		{"vMap", Pointer, true},
		{"vFunc", Pointer, true},
		{"vStamp", Text, true},
		{"vPtrVal", Invalid, true},
		{"vPtrPtr", Text, true},
		{"vErr", Text, true},
		{"vAny", Invalid, false},
		{"vStruct", Invalid, true},
		{"vComplex", Invalid, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := pkg.Scope().Lookup(tt.name)
			require.NotNil(t, obj)
			k, known := KindOfType(obj.Type())
			assert.Equal(t, tt.kind, k)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestKindOfTypeUntyped(t *testing.T) {
	tests := []struct {
		kind types.BasicKind
		want Kind
	}{
		{types.UntypedInt, Signed},
		{types.UntypedRune, Signed},
		{types.UntypedFloat, Float},
		{types.UntypedBool, Bool},
		{types.UntypedString, Text},
		{types.UntypedNil, Pointer},
	}
	for _, tt := range tests {
		k, known := KindOfType(types.Typ[tt.kind])
		assert.True(t, known)
		assert.Equal(t, tt.want, k, types.Typ[tt.kind].String())
	}
}

func TestKindOfTypeParam(t *testing.T) {
	pkg := checkTypes(t)
	sig := pkg.Scope().Lookup("use").Type().(*types.Signature)
	_, known := KindOfType(sig.Params().At(0).Type())
	assert.False(t, known)
}
