package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"cefmt"
	"cefmt/internal/diag"
	"cefmt/internal/diagfmt"
	"cefmt/internal/element"
	"cefmt/internal/format"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <format>",
	Short: "Show the element table of a format string",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("profile", "", "grammar profile (basic|extended), default from config")
	analyzeCmd.Flags().String("format", "pretty", "output format (pretty|dump|json)")
	analyzeCmd.Flags().Bool("all", false, "include the terminator and padding slots")
	analyzeCmd.Flags().Bool("gaps", false, "show the literal text between elements")
	analyzeCmd.Flags().BoolP("escapes", "e", false, "interpret Go backslash escapes in the format")
}

// compileArg reads --profile and --escapes and compiles s.
func compileArg(cmd *cobra.Command, cfgProfile, s string) (string, *cefmt.Format, error) {
	profileStr := cfgProfile
	if cmd.Flags().Changed("profile") {
		var err error
		if profileStr, err = flagString(cmd, "profile"); err != nil {
			return s, nil, err
		}
	}
	profile, err := element.ParseProfile(profileStr)
	if err != nil {
		return s, nil, err
	}
	escapes, err := flagBool(cmd, "escapes")
	if err != nil {
		return s, nil, err
	}
	if escapes {
		if s, err = unescape(s); err != nil {
			return s, nil, err
		}
	}
	f, err := cefmt.CompileProfile(s, profile)
	return s, f, err
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	outFormat, err := flagString(cmd, "format")
	if err != nil {
		return err
	}
	all, err := flagBool(cmd, "all")
	if err != nil {
		return err
	}
	gaps, err := flagBool(cmd, "gaps")
	if err != nil {
		return err
	}
	colored := useColor(cfg.Output.Color)

	src, f, err := compileArg(cmd, cfg.Analysis.Profile, args[0])
	if err != nil {
		if reportFormatError(cmd.ErrOrStderr(), src, err, colored) {
			return fail(cmd)
		}
		return err
	}

	out := cmd.OutOrStdout()
	switch outFormat {
	case "pretty":
		return diagfmt.FormatElementsPretty(out, f, diagfmt.ElementOpts{Color: colored, All: all, Gaps: gaps})
	case "dump":
		return format.Dump(out, f, all)
	case "json":
		return format.DumpJSON(out, f)
	default:
		return fmt.Errorf("unknown format: %s", outFormat)
	}
}

// reportFormatError prints an analysis error with a caret under the
// offending byte of the quoted format. It returns false for other errors.
func reportFormatError(w io.Writer, src string, err error, colored bool) bool {
	var fe *format.Error
	if !errors.As(err, &fe) {
		return false
	}
	red := color.New(color.FgRed, color.Bold)
	caret := color.New(color.FgGreen, color.Bold)
	if colored {
		red.EnableColor()
		caret.EnableColor()
	} else {
		red.DisableColor()
		caret.DisableColor()
	}

	off := min(fe.Offset, len(src))
	col := runewidth.StringWidth(strconv.Quote(src[:off])) - 1
	fmt.Fprintf(w, "%s %s: %v (element %d)\n", red.Sprint("error"), diag.FormatCode(err).ID(), fe.Err, fe.Index)
	fmt.Fprintf(w, "  %s\n  %s%s\n", strconv.Quote(src), strings.Repeat(" ", col), caret.Sprint("^"))
	return true
}

// unescape interprets Go escape sequences such as \n and \x25.
func unescape(s string) (string, error) {
	var b strings.Builder
	for s != "" {
		r, multibyte, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			return "", fmt.Errorf("invalid escape in %q: %w", s, err)
		}
		if multibyte {
			b.WriteRune(r)
		} else {
			b.WriteByte(byte(r))
		}
		s = tail
	}
	return b.String(), nil
}
