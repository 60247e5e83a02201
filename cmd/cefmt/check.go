package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cefmt/internal/config"
	"cefmt/internal/diag"
	"cefmt/internal/diagfmt"
	"cefmt/internal/driver"
	"cefmt/internal/element"
	"cefmt/internal/fix"
	"cefmt/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Check the format literals of a Go file or directory",
	Long: `Check finds calls to the configured compile and print functions,
analyzes their literal formats and reports grammar and argument count errors.
Without a path the directory holding cefmt.toml (or the working directory)
is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json|short), default from config")
	checkCmd.Flags().String("profile", "", "grammar profile (basic|extended), default from config")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "off", "interactive progress (auto|on|off)")
	checkCmd.Flags().Bool("disk-cache", false, "reuse per-file results from the disk cache")
	checkCmd.Flags().Bool("report-non-literal", false, "warn about formats that are not string literals")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("fix", false, "apply suggested fixes, then check again")
}

// applyCheckFlags overrides cfg with the check flags the user set.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	var err error
	if fl.Changed("format") {
		if cfg.Output.Format, err = fl.GetString("format"); err != nil {
			return err
		}
	}
	if fl.Changed("profile") {
		if cfg.Analysis.Profile, err = fl.GetString("profile"); err != nil {
			return err
		}
	}
	if fl.Changed("jobs") {
		if cfg.Check.Jobs, err = fl.GetInt("jobs"); err != nil {
			return err
		}
	}
	if fl.Changed("disk-cache") {
		if cfg.Cache.Enabled, err = fl.GetBool("disk-cache"); err != nil {
			return err
		}
	}
	if fl.Changed("report-non-literal") {
		if cfg.Check.ReportNonLiteral, err = fl.GetBool("report-non-literal"); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

func checkOptions(cfg config.Config) (driver.Options, error) {
	profile, err := element.ParseProfile(cfg.Analysis.Profile)
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{
		Profile:          profile,
		Include:          cfg.Check.Include,
		Exclude:          cfg.Check.Exclude,
		Jobs:             cfg.Check.Jobs,
		MaxDiagnostics:   cfg.Output.MaxDiagnostics,
		CompileFuncs:     cfg.Check.CompileFuncs,
		PrintFuncs:       cfg.Check.PrintFuncs,
		ReportNonLiteral: cfg.Check.ReportNonLiteral,
	}
	if cfg.Cache.Enabled {
		dc, err := driver.OpenDiskCache("cefmt", cfg.Cache.Dir)
		if err != nil {
			return driver.Options{}, err
		}
		opts.DiskCache = dc
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err = applyCheckFlags(cmd, &cfg); err != nil {
		return err
	}
	opts, err := checkOptions(cfg)
	if err != nil {
		return err
	}

	root := "."
	switch {
	case len(args) > 0:
		root = args[0]
	case cfg.Root() != "":
		root = cfg.Root()
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	uiFlag, err := flagString(cmd, "ui")
	if err != nil {
		return err
	}
	mode, err := parseProgressMode(uiFlag)
	if err != nil {
		return err
	}

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProf()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var res *driver.Result
	if !quiet && cfg.Output.Format == "pretty" && mode.wantsProgress(cmd.ErrOrStderr()) {
		res, err = runCheckWithUI(cmd.Context(), "check "+root, root, opts)
	} else {
		res, err = driver.Check(cmd.Context(), root, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	applyFixes, err := flagBool(cmd, "fix")
	if err != nil {
		return err
	}
	if applyFixes {
		if res, err = fixAndRecheck(cmd, root, opts, res, quiet); err != nil {
			return err
		}
	}

	bag := res.Diagnostics(cfg.Output.MaxDiagnostics)
	if err := writeDiagnostics(cmd, cmd.OutOrStdout(), cfg, res, bag); err != nil {
		return err
	}

	if !quiet && cfg.Output.Format == "pretty" {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d file(s), %d call(s): %d error(s), %d warning(s)\n",
			len(res.Files), res.Calls(), bag.Count(diag.SevError), bag.Count(diag.SevWarning))
	}
	if showTimings {
		_ = res.Timing.WriteSummary(cmd.ErrOrStderr())
		fmt.Fprintf(cmd.ErrOrStderr(), "  format cache: %d hit(s), %d miss(es), %d entr(ies)\n",
			res.Stats.Hits, res.Stats.Misses, res.Stats.Entries)
	}

	if res.HasErrors() {
		return fail(cmd)
	}
	return nil
}

func writeDiagnostics(cmd *cobra.Command, w io.Writer, cfg config.Config, res *driver.Result, bag *diag.Bag) error {
	withNotes, err := flagBool(cmd, "with-notes")
	if err != nil {
		return err
	}
	suggest, err := flagBool(cmd, "suggest")
	if err != nil {
		return err
	}
	fullPath, err := flagBool(cmd, "fullpath")
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch cfg.Output.Format {
	case "pretty":
		diagfmt.Pretty(w, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cfg.Output.Color),
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		})
	case "short":
		if out := diag.FormatShort(bag.Items(), res.FileSet, withNotes); out != "" {
			fmt.Fprintln(w, out)
		}
	case "json":
		err := diagfmt.JSON(w, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
			IncludePreviews:  suggest,
		})
		if err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", cfg.Output.Format)
	}
	return nil
}

// fixAndRecheck applies every suggested fix and checks root again.
func fixAndRecheck(cmd *cobra.Command, root string, opts driver.Options, res *driver.Result, quiet bool) (*driver.Result, error) {
	applied, err := fix.Apply(res.FileSet, res.Diagnostics(0).Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if errors.Is(err, fix.ErrNoFixes) {
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply fixes: %w", err)
	}
	if !quiet {
		for _, a := range applied.Applied {
			fmt.Fprintf(cmd.ErrOrStderr(), "fixed %s: %s\n", a.PrimaryPath, a.Title)
		}
		for _, s := range applied.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", s.Title, s.Reason)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "applied %d fix(es) in %d file(s)\n", len(applied.Applied), len(applied.FileChanges))
	}
	res, err = driver.Check(cmd.Context(), root, opts)
	if err != nil {
		return nil, fmt.Errorf("check failed: %w", err)
	}
	return res, nil
}

type checkOutcome struct {
	result *driver.Result
	err    error
}

func runCheckWithUI(ctx context.Context, title, root string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		o := opts
		o.Events = events
		res, err := driver.Check(ctx, root, o)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI мог выйти раньше (ctrl+c), не блокируем driver
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
