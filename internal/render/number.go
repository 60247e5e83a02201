package render

import (
	"math"
	"reflect"
	"strconv"
)

// integer renders an integral value. Negative values in hex and octal print
// as the two's complement of their own width.
func (fd field) integer(dst []byte, v reflect.Value, base int) []byte {
	var (
		mag  uint64
		neg  bool
		sign string
	)
	if v.CanInt() {
		i := v.Int()
		switch {
		case base != 10 && i < 0:
			mag = uint64(i) & widthMask(v.Type().Bits())
		case i < 0:
			neg = true
			mag = uint64(-(i + 1)) + 1
		default:
			mag = uint64(i)
		}
	} else {
		mag = v.Uint()
	}

	switch {
	case neg:
		sign = "-"
	case fd.sign && base == 10 && v.CanInt():
		// беззнаковые печатаются без '+'
		sign = "+"
	}

	body := strconv.FormatUint(mag, base)
	prefix := ""
	if fd.sharp && mag != 0 {
		switch base {
		case 16:
			prefix = "0x"
		case 8:
			prefix = "0"
		}
	}
	return fd.pad(dst, sign, prefix, body)
}

func widthMask(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(bits) - 1
}

const defaultPrecision = 6

// float renders v according to the element verb: 'f' fixed, 'e' scientific,
// 'g' the shorter of the two with trailing zeros removed. An unspecified
// precision is 6 for every verb; for 'g' it counts significant digits.
func (fd field) float(dst []byte, v float64, bits int) []byte {
	prec := fd.e.Precision
	if prec < 0 {
		prec = defaultPrecision
	}
	verb := fd.e.Verb
	switch verb {
	case 'e', 'f':
	case 'g':
		if prec == 0 {
			prec = 1
		}
	default:
		verb = 'f'
	}

	sign := ""
	switch {
	case math.IsNaN(v):
	case math.Signbit(v):
		sign = "-"
	case fd.sign:
		sign = "+"
	}

	var body string
	switch {
	case math.IsNaN(v):
		body = "NaN"
	case math.IsInf(v, 0):
		body = "Inf"
	default:
		body = strconv.FormatFloat(math.Abs(v), verb, prec, bits)
	}
	if body == "NaN" || body == "Inf" {
		fd.zero = false
	}
	return fd.pad(dst, sign, "", body)
}
