package driver

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/scanner"
	"go/token"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"cefmt/internal/diag"
	"cefmt/internal/format"
	"cefmt/internal/observ"
	"cefmt/internal/source"
	"cefmt/internal/trace"
	"cefmt/internal/typecheck"
)

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Calls  int  // call sites found
	Cached bool // restored from the disk cache
}

// Result is the outcome of Check.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timing  observ.Report
	Stats   format.CacheStats
}

// Diagnostics merges the per-file bags into one sorted bag holding at most
// max diagnostics (0 = unlimited).
func (r *Result) Diagnostics(max int) *diag.Bag {
	out := diag.NewBag(max)
	for _, f := range r.Files {
		for _, d := range f.Bag.Items() {
			out.Add(d)
		}
	}
	out.Sort()
	return out
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Calls returns the number of call sites over all files.
func (r *Result) Calls() int {
	n := 0
	for _, f := range r.Files {
		n += f.Calls
	}
	return n
}

// Check analyzes every format literal passed to the configured functions
// in the Go files under root. Files are loaded in order and checked in
// parallel; each goroutine writes only its own result slot.
func Check(ctx context.Context, root string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "check")
	defer span.End("")
	tracer := trace.FromContext(ctx)

	timer := observ.NewTimer()

	idx := timer.Begin("list")
	pass := trace.Begin(tracer, trace.ScopePass, "list", span.ID())
	files, err := ListFiles(root, opts.Include, opts.Exclude)
	pass.WithExtra("files", strconv.Itoa(len(files))).End("")
	timer.End(idx, fmt.Sprintf("%d file(s)", len(files)))
	if err != nil {
		trace.Fail(tracer, trace.ScopePass, "list", err, span.ID())
		return nil, err
	}

	base := root
	if len(files) == 1 && files[0] == root {
		base = filepath.Dir(root)
	}
	fileSet := source.NewFileSetWithBase(base)

	idx = timer.Begin("load")
	pass = trace.Begin(tracer, trace.ScopePass, "load", span.ID())
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		emit(opts.Events, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			trace.Fail(tracer, trace.ScopeFile, "load:"+path, err, pass.ID())
			// пустой виртуальный файл, чтобы у диагностики был путь
			id = fileSet.AddVirtual(path, nil)
			loadErrs[i] = err
		}
		ids[i] = id
	}
	pass.End("")
	timer.End(idx, "")

	results := make([]FileResult, len(files))
	idx = timer.Begin("analyze")
	pass = trace.Begin(tracer, trace.ScopePass, "analyze", span.ID())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, max(len(files), 1)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkLoaded(gctx, fileSet, ids[i], path, loadErrs[i], opts, pass.ID())
			return nil
		})
	}
	err = g.Wait()
	pass.End("")
	timer.End(idx, fmt.Sprintf("%d call(s)", sumCalls(results)))
	if err != nil {
		return nil, err
	}

	return &Result{
		FileSet: fileSet,
		Files:   results,
		Timing:  timer.Report(),
		Stats:   opts.Cache.Stats(),
	}, nil
}

// CheckSource checks a single in-memory file.
func CheckSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, src)
	res := checkLoaded(ctx, fileSet, id, name, nil, opts, trace.ParentOf(ctx))
	return &Result{
		FileSet: fileSet,
		Files:   []FileResult{res},
		Stats:   opts.Cache.Stats(),
	}, nil
}

func sumCalls(results []FileResult) int {
	n := 0
	for _, r := range results {
		n += r.Calls
	}
	return n
}

func checkLoaded(ctx context.Context, fileSet *source.FileSet, id source.FileID, path string, loadErr error, opts Options, parent uint64) FileResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+path, parent)

	res := FileResult{Path: path, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
	file := fileSet.Get(id)

	finish := func(status Status) FileResult {
		res.Bag.Sort()
		span.WithExtra("calls", strconv.Itoa(res.Calls)).
			WithExtra("diags", strconv.Itoa(res.Bag.Len())).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			End("")
		emit(opts.Events, Event{File: path, Stage: StageAnalyze, Status: status, Diags: res.Bag.Len(), Cached: res.Cached})
		return res
	}

	if loadErr != nil {
		diag.Errorf(res.Bag, diag.IOLoadFileError, source.Span{File: id}, "failed to load file: %v", loadErr).Emit()
		return finish(StatusError)
	}

	key := diskKey(file.Hash, opts)
	if opts.DiskCache != nil {
		var payload DiskPayload
		ok, err := opts.DiskCache.Get(key, &payload)
		if err != nil {
			trace.Fail(tracer, trace.ScopeFile, "disk-cache", err, span.ID())
		}
		if ok && payload.Schema == diskCacheSchemaVersion {
			payload.restore(id, res.Bag)
			res.Calls = payload.Calls
			res.Cached = true
			return finish(statusOf(res.Bag))
		}
	}

	emit(opts.Events, Event{File: path, Stage: StageScan, Status: StatusWorking})
	fset := token.NewFileSet()
	parsed, err := parseFile(fset, path, file.Content)
	if err != nil {
		reportParseError(res.Bag, id, err)
		return finish(StatusError)
	}
	sites := newScanner(opts.CompileFuncs, opts.PrintFuncs).scan(parsed)
	res.Calls = len(sites)

	emit(opts.Events, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
	dedup := diag.NewDedupReporter(res.Bag)
	c := &fileChecker{
		id:       id,
		tokFile:  fset.File(parsed.Pos()),
		opts:     opts,
		reporter: dedup,
		tracer:   tracer,
		parent:   span.ID(),
	}
	for _, site := range sites {
		if ctx.Err() != nil {
			break
		}
		c.check(site)
	}
	span.WithExtra("suppressed", strconv.Itoa(dedup.Suppressed()))

	if opts.DiskCache != nil && ctx.Err() == nil {
		if err := opts.DiskCache.Put(key, newDiskPayload(path, file.Hash, res.Calls, res.Bag)); err != nil {
			trace.Fail(tracer, trace.ScopeFile, "disk-cache", err, span.ID())
		}
	}
	return finish(statusOf(res.Bag))
}

func statusOf(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}

func reportParseError(bag *diag.Bag, id source.FileID, err error) {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		off := list[0].Pos.Offset
		diag.Errorf(bag, diag.IOParseError, source.SpanOf(id, off, off), "%s", list[0].Msg).Emit()
		return
	}
	diag.Errorf(bag, diag.IOParseError, source.Span{File: id}, "%v", err).Emit()
}

// fileChecker reports diagnostics for the call sites of one file.
type fileChecker struct {
	id       source.FileID
	tokFile  *token.File
	opts     Options
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64
}

func (c *fileChecker) spanOf(n ast.Node) source.Span {
	return source.SpanOf(c.id, c.tokFile.Offset(n.Pos()), c.tokFile.Offset(n.End()))
}

// litSpan maps the value bytes [from, to) of lit to a source span.
func (c *fileChecker) litSpan(lit *ast.BasicLit, sl StringLit, from, to int) source.Span {
	base := c.tokFile.Offset(lit.Pos())
	start, end := sl.Span(from, to)
	return source.SpanOf(c.id, base+start, base+end)
}

func (c *fileChecker) check(site callSite) {
	trace.Point(c.tracer, trace.ScopeCall, "call:"+site.Name, c.tokFile.Position(site.Call.Pos()).String(), c.parent)

	if site.Lit == nil {
		// print-вызовы с неизвестным *Format не проверяются молча
		if arg := site.FormatArg(); c.opts.ReportNonLiteral && site.Kind == callCompile && arg != nil {
			diag.Warnf(c.reporter, diag.ArgNotLiteral, c.spanOf(arg),
				"format passed to %s is not a constant string and cannot be checked", shortName(site.Name)).Emit()
		}
		return
	}
	sl, err := DecodeLit(site.Lit)
	if err != nil {
		return
	}

	f, err := c.opts.Cache.Get(sl.Value, c.opts.formatOptions())
	if err != nil {
		// print-вызов через Compile: ошибку сообщит сам Compile
		if site.Kind == callCompile || site.Via == nil {
			c.reportFormat(site.Lit, sl, err)
		}
		return
	}
	if site.Kind == callPrint {
		c.checkCount(site, f)
	}
}

func (c *fileChecker) reportFormat(lit *ast.BasicLit, sl StringLit, err error) {
	var fe *format.Error
	if !errors.As(err, &fe) {
		diag.Errorf(c.reporter, diag.FmtInternal, c.spanOf(lit), "%v", err).Emit()
		return
	}
	sp := c.litSpan(lit, sl, fe.Offset, fe.Offset+1)
	b := diag.Errorf(c.reporter, diag.FormatCode(err), sp, "%v (element %d)", fe.Err, fe.Index)
	if fe.Offset < len(sl.Value) && sp.Len() == 1 &&
		(errors.Is(err, format.ErrFlagNotPermitted) || errors.Is(err, format.ErrDuplicateFlag)) {
		b.WithFix(fmt.Sprintf("remove flag %q", sl.Value[fe.Offset]), diag.FixEdit{Span: sp})
	}
	b.Emit()
}

func (c *fileChecker) checkCount(site callSite, f *format.Format) {
	args, countable := site.Args()
	if !countable || len(args) == f.LiteralCount {
		return
	}
	msg := (&typecheck.Error{
		Err:    typecheck.ErrArgCount,
		Format: f.Text(),
		Arg:    -1,
		Want:   f.LiteralCount,
		Got:    len(args),
	}).Error()
	b := diag.Errorf(c.reporter, diag.ArgCount, c.spanOf(site.Call), "%s", msg)
	if site.Via != nil {
		b.WithNote(c.spanOf(site.Lit), "format compiled here")
	}
	b.Emit()
}
