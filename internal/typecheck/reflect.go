package typecheck

import (
	"fmt"
	"reflect"
)

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	errorType    = reflect.TypeFor[error]()
)

// KindOf classifies a Go type.
func KindOf(t reflect.Type) Kind {
	if t == nil {
		return Pointer
	}
	if t.Implements(stringerType) || t.Implements(errorType) {
		return Text
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Signed
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Unsigned
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.Bool:
		return Bool
	case reflect.String:
		return Text
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return Text
		}
		return Pointer
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		return Pointer
	default:
		return Invalid
	}
}

// KindOfValue classifies the dynamic type of v; nil is a Pointer.
func KindOfValue(v any) Kind {
	if v == nil {
		return Pointer
	}
	return KindOf(reflect.TypeOf(v))
}

// KindsOf classifies every argument.
func KindsOf(args ...any) []Kind {
	out := make([]Kind, len(args))
	for i, a := range args {
		out[i] = KindOfValue(a)
	}
	return out
}
