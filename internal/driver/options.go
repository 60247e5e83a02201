package driver

import (
	"fmt"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"

	"cefmt/internal/element"
	"cefmt/internal/format"
)

var (
	// DefaultInclude selects Go sources.
	DefaultInclude = []string{"**/*.go"}
	// DefaultExclude skips fixtures and vendored code.
	DefaultExclude = []string{"**/testdata/**", "vendor/**", "**/.*/**"}
	// DefaultCompileFuncs take a format string as their first argument.
	DefaultCompileFuncs = []string{"cefmt.Compile", "cefmt.MustCompile"}
	// DefaultPrintFuncs take a compiled format followed by its arguments.
	// An optional ":N" suffix gives the index of the format argument.
	DefaultPrintFuncs = []string{"cefmt.Print", "cefmt.Write:1", "cefmt.Sentinel"}
)

// Options configures Check.
type Options struct {
	Profile        element.Profile
	Include        []string // doublestar globs relative to root
	Exclude        []string
	Jobs           int // 0 = GOMAXPROCS
	MaxDiagnostics int // per file, 0 = unlimited
	CompileFuncs   []string
	PrintFuncs     []string
	// ReportNonLiteral warns about formats that cannot be checked
	// statically.
	ReportNonLiteral bool

	Cache     *format.Cache // nil = format.Default
	DiskCache *DiskCache    // nil = disabled
	Events    chan<- Event  // nil = no progress events
}

func (o Options) withDefaults() Options {
	if o.Include == nil {
		o.Include = DefaultInclude
	}
	if o.Exclude == nil {
		o.Exclude = DefaultExclude
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.CompileFuncs == nil {
		o.CompileFuncs = DefaultCompileFuncs
	}
	if o.PrintFuncs == nil {
		o.PrintFuncs = DefaultPrintFuncs
	}
	if o.Cache == nil {
		o.Cache = format.Default
	}
	return o
}

func (o Options) validate() error {
	for _, list := range [][]string{o.Include, o.Exclude} {
		for _, p := range list {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("invalid glob pattern %q", p)
			}
		}
	}
	for _, list := range [][]string{o.CompileFuncs, o.PrintFuncs} {
		for _, spec := range list {
			if _, _, err := ParseFuncSpec(spec); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatOptions returns the analysis options for the configured profile.
func (o Options) formatOptions() format.Options {
	return format.Options{Profile: o.Profile}
}
