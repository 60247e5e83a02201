package fix

import "cefmt"

var name = cefmt.MustCompile("%#s") // want `FMT1030: element flag\(s\) not valid with type`

var left = cefmt.MustCompile("%--5d") // want `FMT1025: flag specified more than once`
