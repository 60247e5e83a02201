package a

import (
	"errors"
	"os"

	"cefmt"
)

var greeting = cefmt.MustCompile("hello %s, you are %d")

type point struct{ x, y int }

func ok(name string, age int) {
	cefmt.Print(greeting, name, age)
	cefmt.Write(os.Stdout, cefmt.MustCompile("%5.2f%%"), 3.14159)
	cefmt.Sentinel(cefmt.MustCompile("%p %c"), &age, 'x')
	cefmt.Print(cefmt.MustCompile("%s: %s"), []byte("k"), errors.New("v"))
}

func grammar() {
	cefmt.Compile("%5%")       // want `FMT1031: element width not permitted with escape \(element 0\)`
	cefmt.MustCompile("x=%.f") // want `FMT1020: expected numeral after precision marker`
}

func reportedOnce() {
	bad := cefmt.MustCompile("%#s") // want `FMT1030: element flag\(s\) not valid with type`
	cefmt.Print(bad, 1)
}

func count(n int) {
	cefmt.Print(greeting, n) // want `ARG2001: format "hello %s, you are %d" expects 2 argument\(s\), got 1`
}

func mismatch(n int, s string) {
	cefmt.Print(greeting, n, s) // want `ARG2002: .*argument 0 is signed, but %s expects string` `ARG2002: .*argument 1 is text, but %d expects integer`
	cefmt.Write(os.Stdout, cefmt.MustCompile("%u"), n) // want `argument 0 is signed, but %u expects unsigned integer`
}

func unsupported() {
	cefmt.Print(cefmt.MustCompile("%s"), point{}) // want `ARG2004: argument 0 of type a.point cannot be printed`
}

func skipped(v any, args []any) {
	cefmt.Print(cefmt.MustCompile("%d"), v)
	cefmt.Print(greeting, args...)

	f := cefmt.MustCompile("%d")
	f = cefmt.MustCompile("%s")
	cefmt.Print(f, 1)
}
