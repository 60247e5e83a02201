package typecheck

import (
	"go/token"
	"go/types"
)

var (
	stringerIface = types.NewInterfaceType([]*types.Func{
		types.NewFunc(token.NoPos, nil, "String", types.NewSignatureType(nil, nil, nil, nil,
			types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.String])), false)),
	}, nil).Complete()
	errorIface = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)
)

// KindOfType classifies a static Go type the way KindOf classifies its
// run-time counterpart. known is false when only the dynamic type can
// tell: interfaces other than Stringer and error, and type parameters.
func KindOfType(t types.Type) (k Kind, known bool) {
	if t == nil {
		return Invalid, false
	}
	if types.Implements(t, stringerIface) || types.Implements(t, errorIface) {
		return Text, true
	}
	switch u := t.Underlying().(type) {
	case *types.Basic:
		return basicKind(u), true
	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return Text, true
		}
		return Pointer, true
	case *types.Pointer, *types.Map, *types.Chan, *types.Signature:
		return Pointer, true
	case *types.Interface:
		return Invalid, false
	}
	if _, ok := t.(*types.TypeParam); ok {
		return Invalid, false
	}
	return Invalid, true
}

func basicKind(b *types.Basic) Kind {
	switch b.Kind() {
	case types.Int, types.Int8, types.Int16, types.Int32, types.Int64,
		types.UntypedInt, types.UntypedRune:
		return Signed
	case types.Uint, types.Uint8, types.Uint16, types.Uint32, types.Uint64, types.Uintptr:
		return Unsigned
	case types.Float32, types.Float64, types.UntypedFloat:
		return Float
	case types.Bool, types.UntypedBool:
		return Bool
	case types.String, types.UntypedString:
		return Text
	case types.UnsafePointer, types.UntypedNil:
		return Pointer
	default:
		return Invalid
	}
}
