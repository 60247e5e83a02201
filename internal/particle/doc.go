// Package particle classifies single bytes of a format string.
//
// Classification is a pure table lookup. Digits and the precision marker are
// special-cased before the table scan; '0' is always a Numeral here and the
// flag scan decides whether it means zero-pad or a width digit.
package particle
