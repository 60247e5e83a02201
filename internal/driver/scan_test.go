package driver

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanSource(t *testing.T, src string) []callSite {
	t.Helper()
	parsed, err := parseFile(token.NewFileSet(), "scan.go", []byte(src))
	require.NoError(t, err)
	return newScanner(DefaultCompileFuncs, DefaultPrintFuncs).scan(parsed)
}

func litValues(sites []callSite) []string {
	var out []string
	for _, s := range sites {
		if s.Lit == nil {
			out = append(out, "<nil>")
			continue
		}
		out = append(out, s.Lit.Value)
	}
	return out
}

func TestScanCompileAndPrint(t *testing.T) {
	sites := scanSource(t, `package p

import "example.com/x/cefmt"

var greet = cefmt.MustCompile("hi %s")

func f(w any) {
	cefmt.Print(greet, "bob")
	cefmt.Write(w, cefmt.MustCompile("%d"), 1)
	cefmt.Sentinel(unknown, 1)
}
`)
	require.Len(t, sites, 5)
	assert.Equal(t, []string{`"hi %s"`, `"hi %s"`, `"%d"`, `"%d"`, "<nil>"}, litValues(sites))

	assert.Equal(t, callCompile, sites[0].Kind)
	assert.Equal(t, "cefmt.MustCompile", sites[0].Name)

	assert.Equal(t, callPrint, sites[1].Kind)
	require.NotNil(t, sites[1].Via, "bound identifier resolves to its compile call")
	args, ok := sites[1].Args()
	assert.True(t, ok)
	assert.Len(t, args, 1)

	assert.Equal(t, "cefmt.Write", sites[2].Name)
	assert.Equal(t, 1, sites[2].Pos)
	args, ok = sites[2].Args()
	assert.True(t, ok)
	assert.Len(t, args, 1)
}

func TestScanImportAlias(t *testing.T) {
	sites := scanSource(t, `package p

import (
	f "cefmt"
	other "fmt"
)

func g() {
	f.Compile("%x")
	other.Sprintf("%d", 1)
}
`)
	require.Len(t, sites, 1)
	assert.Equal(t, "cefmt.Compile", sites[0].Name)
}

func TestScanDotImport(t *testing.T) {
	sites := scanSource(t, `package p

import . "cefmt"

var x = MustCompile("%u")
`)
	require.Len(t, sites, 1)
	assert.Equal(t, "cefmt.MustCompile", sites[0].Name)
}

func TestScanIgnoresUnimported(t *testing.T) {
	sites := scanSource(t, `package p

func g() { cefmt.Compile("%d") }
`)
	assert.Empty(t, sites)
}

func TestScanAmbiguousBinding(t *testing.T) {
	sites := scanSource(t, `package p

import "cefmt"

func g() {
	f := cefmt.MustCompile("%d")
	cefmt.Print(f, 1)
	f = cefmt.MustCompile("%s %s")
	cefmt.Print(f, "a", "b")
}
`)
	require.Len(t, sites, 4)
	assert.Nil(t, sites[1].Lit, "rebound names are not resolved")
	assert.Nil(t, sites[3].Lit)
}

func TestScanEllipsis(t *testing.T) {
	sites := scanSource(t, `package p

import "cefmt"

func g(args ...any) { cefmt.Print(cefmt.MustCompile("%d"), args...) }
`)
	require.Len(t, sites, 2)
	_, countable := sites[0].Args()
	assert.False(t, countable)
}

func TestParseFuncSpec(t *testing.T) {
	name, pos, err := ParseFuncSpec("cefmt.Write:1")
	require.NoError(t, err)
	assert.Equal(t, "cefmt.Write", name)
	assert.Equal(t, 1, pos)

	name, pos, err = ParseFuncSpec("log.Printf")
	require.NoError(t, err)
	assert.Equal(t, "log.Printf", name)
	assert.Equal(t, 0, pos)

	for _, bad := range []string{"", ":1", "x:", "x:-1", "x:a"} {
		_, _, err := ParseFuncSpec(bad)
		assert.Error(t, err, bad)
	}
}
