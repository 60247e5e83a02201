package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cefmt"
	"cefmt/internal/config"
	"cefmt/internal/diagfmt"
)

// execute runs the root command with args, starting from default flag
// values, and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, config.WriteFile(path, config.Default(), false))
	return path
}

func TestAnalyzeDump(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out, _, err := execute(t, "--config", cfg, "--color", "off", "analyze", "--format", "dump", "%-5d%%")
	require.NoError(t, err)
	assert.Contains(t, out, `string = "%-5d%%"`)
	assert.Contains(t, out, `type = esc, blob = "%%"`)
	assert.Contains(t, out, "literal_count = 1")
}

func TestAnalyzeJSON(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out, _, err := execute(t, "--config", cfg, "analyze", "--format", "json", "%.3f")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
}

func TestAnalyzeError(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	_, stderr, err := execute(t, "--config", cfg, "--color", "off", "analyze", "x=%#s")
	require.ErrorIs(t, err, errFailed)
	assert.Equal(t, "error FMT1030: element flag(s) not valid with type (element 0)\n"+
		"  \"x=%#s\"\n"+
		"      ^\n", stderr)
}

func TestAnalyzeBasicProfile(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	_, stderr, err := execute(t, "--config", cfg, "--color", "off", "analyze", "--profile", "basic", "%c")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "FMT1010")
}

func TestPrint(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out, _, err := execute(t, "--config", cfg, "print", "%-4s|%5.1f|%#x|%c|%b|%u", "ab", "2.5", "255", "x", "true", "0x10")
	require.NoError(t, err)
	assert.Equal(t, "ab  |  2.5|0xff|x|true|16\n", out)

	out, _, err = execute(t, "--config", cfg, "print", "-n", "-e", "--", `%d\t%%\n`, "-3")
	require.NoError(t, err)
	assert.Equal(t, "-3\t%\n", out)
}

func TestPrintBadArgs(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	_, _, err := execute(t, "--config", cfg, "print", "%d %d", "1")
	require.ErrorContains(t, err, "expects 2 argument(s), got 1")

	_, _, err = execute(t, "--config", cfg, "print", "--", "%u", "-1")
	require.ErrorContains(t, err, "argument 0 for %u")
}

const badSource = `package p

import "cefmt"

var f = cefmt.MustCompile("%#s")
`

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.go"), []byte("package p\n\nvar g = 1\n"), 0o644))

	out, stderr, err := execute(t, "--config", cfg, "--color", "off", "check", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "checked 1 file(s), 0 call(s): 0 error(s), 0 warning(s)")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte(badSource), 0o644))
	out, _, err = execute(t, "--config", cfg, "check", "--format", "short", dir)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "FMT1030")
	assert.Contains(t, out, "bad.go:5:29")

	out, _, err = execute(t, "--config", cfg, "check", "--format", "json", dir)
	require.ErrorIs(t, err, errFailed)
	var doc diagfmt.Report
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Count)
}

func TestCheckRejectsBadFormatFlag(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	_, _, err := execute(t, "--config", cfg, "check", "--format", "xml", ".")
	require.ErrorContains(t, err, "[output].format")
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	out, _, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "created "))

	loaded, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Check, loaded.Check)

	_, _, err = execute(t, "init", dir)
	require.ErrorContains(t, err, "already exists")

	_, _, err = execute(t, "init", "--force", dir)
	require.NoError(t, err)
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "cefmt", payload.Tool)
	assert.NotEmpty(t, payload.Version)
}

func TestParseArg(t *testing.T) {
	f := cefmt.MustCompile("%d %x %u %c %c %f %b %p %s")
	values, err := parseArgs(f, []string{"-7", "0xffffffffffffffff", "0b101", "é", "65", "1e3", "false", "nil", "s"})
	require.NoError(t, err)
	assert.Equal(t, []any{
		int64(-7), uint64(0xffffffffffffffff), uint64(5), 'é', int32(65),
		1000.0, false, nil, "s",
	}, values)

	_, err = parseArgs(cefmt.MustCompile("%p"), []string{"0x10"})
	assert.ErrorContains(t, err, "only nil")
}

func TestUnescape(t *testing.T) {
	s, err := unescape(`a\tb\x25é"`)
	require.NoError(t, err)
	assert.Equal(t, "a\tb%é\"", s)

	_, err = unescape(`bad\q`)
	assert.Error(t, err)
}

func TestProgressMode(t *testing.T) {
	for in, want := range map[string]progressMode{"": progressAuto, "ON": progressOn, " off ": progressOff} {
		got, err := parseProgressMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := parseProgressMode("sometimes")
	assert.True(t, err != nil && !errors.Is(err, errFailed))

	var buf bytes.Buffer
	assert.False(t, progressAuto.wantsProgress(&buf), "a buffer is not a terminal")
	assert.True(t, progressOn.wantsProgress(&buf))
	assert.False(t, progressOff.wantsProgress(os.Stderr))
}

func TestCheckFix(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	path := filepath.Join(dir, "bad.go")
	require.NoError(t, os.WriteFile(path, []byte(badSource), 0o644))

	_, stderr, err := execute(t, "--config", cfg, "check", "--fix", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "applied 1 fix(es) in 1 file(s)")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), `cefmt.MustCompile("%s")`)
}
