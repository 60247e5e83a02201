package main

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"cefmt"
	"cefmt/internal/element"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] <format> [args...]",
	Short: "Render arguments with a format string",
	Long: `Print parses each argument according to the type of the element that
consumes it (integers accept 0x/0o/0b prefixes, %c accepts a single
character or a code point, %p accepts only nil) and writes the rendered
result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().String("profile", "", "grammar profile (basic|extended), default from config")
	printCmd.Flags().BoolP("escapes", "e", false, "interpret Go backslash escapes in the format")
	printCmd.Flags().BoolP("no-newline", "n", false, "do not append a newline")
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	noNewline, err := flagBool(cmd, "no-newline")
	if err != nil {
		return err
	}

	src, f, err := compileArg(cmd, cfg.Analysis.Profile, args[0])
	if err != nil {
		if reportFormatError(cmd.ErrOrStderr(), src, err, useColor(cfg.Output.Color)) {
			return fail(cmd)
		}
		return err
	}

	values, err := parseArgs(f, args[1:])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := cefmt.Write(out, f, values...); err != nil {
		return err
	}
	if !noNewline {
		_, err = fmt.Fprintln(out)
	}
	return err
}

// parseArgs converts command-line strings into values of the kinds the
// literal elements of f expect.
func parseArgs(f *cefmt.Format, args []string) ([]any, error) {
	if len(args) != f.LiteralCount {
		return nil, fmt.Errorf("format %q expects %d argument(s), got %d", f.Text(), f.LiteralCount, len(args))
	}
	values := make([]any, 0, len(args))
	i := f.FirstLiteralIndex()
	for n, arg := range args {
		e := f.Elements[i]
		v, err := parseArg(e, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d for %s: %w", n, e.Raw, err)
		}
		values = append(values, v)
		i = f.NextLiteralIndex(i)
	}
	return values, nil
}

func parseArg(e cefmt.Element, s string) (any, error) {
	switch e.Type {
	case element.Dec:
		return strconv.ParseInt(s, 0, 64)
	case element.Hex, element.Oct:
		if v, err := strconv.ParseInt(s, 0, 64); err == nil {
			return v, nil
		}
		return strconv.ParseUint(s, 0, 64)
	case element.Uns:
		return strconv.ParseUint(s, 0, 64)
	case element.Chr:
		if utf8.RuneCountInString(s) == 1 {
			r, _ := utf8.DecodeRuneInString(s)
			return r, nil
		}
		v, err := strconv.ParseInt(s, 0, 32)
		return int32(v), err
	case element.Flt:
		return strconv.ParseFloat(s, 64)
	case element.Boo:
		return strconv.ParseBool(s)
	case element.Ptr:
		// адрес из командной строки не получить, только nil
		if s == "nil" || s == "0" {
			return nil, nil
		}
		return nil, fmt.Errorf("%q: only nil can be printed with %%p", s)
	case element.Str:
		return s, nil
	default:
		return nil, fmt.Errorf("element type %s takes no argument", e.Type)
	}
}
