package basic

import "cefmt"

var (
	width = cefmt.MustCompile("%8x")
	prec  = cefmt.MustCompile("%.2f") // want `FMT1010: format string overflow; malformed element`
)
