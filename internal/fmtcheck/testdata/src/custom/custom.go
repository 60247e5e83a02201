package custom

import "cefmt"

type Logger struct{}

func Parse(s string) *cefmt.Format { return nil }

func Log(l *Logger, f *cefmt.Format, args ...any) {}

func use(l *Logger) {
	Log(l, Parse("%d items"), "many") // want `ARG2002: .*argument 0 is text, but %d expects integer`
	Parse("%#b")                      // want `FMT1030`
	cefmt.MustCompile("%#b")
}
