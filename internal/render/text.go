package render

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"
)

func (fd field) boolean(dst []byte, b bool) []byte {
	return fd.pad(dst, "", "", strconv.FormatBool(b))
}

// char renders an integral value as a UTF-8 encoded rune. Values outside
// the Unicode range and surrogates print as U+FFFD.
func (fd field) char(dst []byte, v reflect.Value) []byte {
	r := utf8.RuneError
	if v.CanInt() {
		if i := v.Int(); i >= 0 && i <= utf8.MaxRune {
			r = rune(i)
		}
	} else if u := v.Uint(); u <= utf8.MaxRune {
		r = rune(u)
	}
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	return fd.pad(dst, "", "", string(r))
}

// pointer renders the address held by arg in hex with a 0x prefix.
func (fd field) pointer(dst []byte, arg any) []byte {
	var addr uintptr
	if arg != nil {
		addr = reflect.ValueOf(arg).Pointer()
	}
	return fd.pad(dst, "", "0x", strconv.FormatUint(uint64(addr), 16))
}

// text renders strings, byte slices, errors and Stringers.
func (fd field) text(dst []byte, arg any) []byte {
	var s string
	switch x := arg.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	case error:
		s = x.Error()
	case fmt.Stringer:
		s = x.String()
	default:
		v := reflect.ValueOf(arg)
		switch v.Kind() {
		case reflect.String:
			s = v.String()
		case reflect.Slice:
			s = string(v.Bytes())
		}
	}
	return fd.pad(dst, "", "", s)
}
