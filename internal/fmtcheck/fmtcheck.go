// Package fmtcheck defines an analyzer that checks cefmt format strings at
// build time.
//
// Grammar errors are reported at the offending byte of the literal. For
// print calls the argument count and each argument's static type are
// checked against the literal elements. Arguments of interface type are
// only counted.
package fmtcheck

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"cefmt/internal/diag"
	"cefmt/internal/driver"
	"cefmt/internal/element"
	"cefmt/internal/format"
	"cefmt/internal/typecheck"
)

const doc = `check cefmt format strings

The cefmt analyzer reports format strings passed to cefmt.Compile and
cefmt.MustCompile that the analyzer rejects, and print calls whose
arguments do not match the compiled format.`

// Analyzer reports bad cefmt format strings and arguments.
var Analyzer = &analysis.Analyzer{
	Name:     "cefmt",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	profileFlag = element.Extended.String()
	compileFlag = strings.Join(driver.DefaultCompileFuncs, ",")
	printFlag   = strings.Join(driver.DefaultPrintFuncs, ",")
)

func init() {
	Analyzer.Flags.StringVar(&profileFlag, "profile", profileFlag, "grammar profile: basic|extended")
	Analyzer.Flags.StringVar(&compileFlag, "compile", compileFlag,
		"comma-separated functions taking a format string, as pkg.Func[:argindex]")
	Analyzer.Flags.StringVar(&printFlag, "print", printFlag,
		"comma-separated functions taking a compiled format, as pkg.Func[:argindex]")
}

type checker struct {
	pass     *analysis.Pass
	opts     format.Options
	compile  map[string]int
	print    map[string]int
	bindings map[types.Object]*ast.CallExpr // nil value = bound more than once
}

func run(pass *analysis.Pass) (any, error) {
	profile, err := element.ParseProfile(profileFlag)
	if err != nil {
		return nil, err
	}
	c := &checker{
		pass: pass,
		opts: format.Options{Profile: profile},
	}
	if c.compile, err = funcTable(compileFlag); err != nil {
		return nil, err
	}
	if c.print, err = funcTable(printFlag); err != nil {
		return nil, err
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	c.collectBindings(insp)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		c.checkCall(n.(*ast.CallExpr))
	})
	return nil, nil
}

func funcTable(list string) (map[string]int, error) {
	out := make(map[string]int)
	for spec := range strings.SplitSeq(list, ",") {
		if spec = strings.TrimSpace(spec); spec == "" {
			continue
		}
		name, pos, err := driver.ParseFuncSpec(spec)
		if err != nil {
			return nil, err
		}
		out[name] = pos
	}
	return out, nil
}

// lookup returns the format argument index if call targets a function in
// table, matched by package path or package name.
func (c *checker) lookup(table map[string]int, call *ast.CallExpr) (int, bool) {
	fn, ok := typeutil.Callee(c.pass.TypesInfo, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return 0, false
	}
	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		return 0, false
	}
	if pos, ok := table[fn.Pkg().Path()+"."+fn.Name()]; ok {
		return pos, true
	}
	pos, ok := table[fn.Pkg().Name()+"."+fn.Name()]
	return pos, ok
}

func (c *checker) collectBindings(insp *inspector.Inspector) {
	c.bindings = make(map[types.Object]*ast.CallExpr)
	bind := func(id *ast.Ident, value ast.Expr) {
		obj := c.pass.TypesInfo.ObjectOf(id)
		if obj == nil {
			return
		}
		call, ok := ast.Unparen(value).(*ast.CallExpr)
		if !ok {
			return
		}
		if _, ok := c.lookup(c.compile, call); !ok {
			return
		}
		if prev, seen := c.bindings[obj]; seen && prev != call {
			c.bindings[obj] = nil
			return
		}
		c.bindings[obj] = call
	}
	insp.Preorder([]ast.Node{(*ast.ValueSpec)(nil), (*ast.AssignStmt)(nil)}, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.ValueSpec:
			if len(n.Names) == len(n.Values) {
				for i, id := range n.Names {
					bind(id, n.Values[i])
				}
			}
		case *ast.AssignStmt:
			if len(n.Lhs) == len(n.Rhs) {
				for i, lhs := range n.Lhs {
					if id, ok := lhs.(*ast.Ident); ok {
						bind(id, n.Rhs[i])
					}
				}
			}
		}
	})
}

// constString returns the constant string value of e.
func (c *checker) constString(e ast.Expr) (string, bool) {
	tv, ok := c.pass.TypesInfo.Types[e]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(tv.Value), true
}

func (c *checker) checkCall(call *ast.CallExpr) {
	if pos, ok := c.lookup(c.compile, call); ok {
		if pos < len(call.Args) {
			c.checkFormat(call.Args[pos])
		}
		return
	}
	pos, ok := c.lookup(c.print, call)
	if !ok || pos >= len(call.Args) {
		return
	}
	arg := call.Args[pos]

	var fmtExpr ast.Expr
	if _, ok := c.constString(arg); ok {
		// literal passed straight to a print function
		fmtExpr = arg
		if c.checkFormat(arg) != nil {
			return
		}
	} else if compile := c.compileCall(arg); compile != nil {
		p, _ := c.lookup(c.compile, compile)
		if p < len(compile.Args) {
			fmtExpr = compile.Args[p]
		}
	}
	if fmtExpr == nil {
		return
	}
	s, ok := c.constString(fmtExpr)
	if !ok {
		return
	}
	f, err := format.Default.Get(s, c.opts)
	if err != nil {
		// сообщит сам вызов Compile
		return
	}
	c.checkArgs(call, call.Args[pos+1:], f)
}

// compileCall resolves the format argument of a print call to the compile
// call producing it.
func (c *checker) compileCall(arg ast.Expr) *ast.CallExpr {
	switch a := ast.Unparen(arg).(type) {
	case *ast.CallExpr:
		if _, ok := c.lookup(c.compile, a); ok {
			return a
		}
	case *ast.Ident:
		if obj := c.pass.TypesInfo.Uses[a]; obj != nil {
			return c.bindings[obj]
		}
	}
	return nil
}

// checkFormat analyzes a constant format expression and reports the
// first grammar error.
func (c *checker) checkFormat(e ast.Expr) error {
	s, ok := c.constString(e)
	if !ok {
		return nil
	}
	_, err := format.Default.Get(s, c.opts)
	if err == nil {
		return nil
	}
	var fe *format.Error
	if !errors.As(err, &fe) {
		c.pass.ReportRangef(e, "%s: %v", diag.FmtInternal.ID(), err)
		return err
	}

	start, end := e.Pos(), e.End()
	var fixes []analysis.SuggestedFix
	if lit, ok := ast.Unparen(e).(*ast.BasicLit); ok {
		if sl, err := driver.DecodeLit(lit); err == nil && sl.Value == s {
			from, to := sl.Span(fe.Offset, fe.Offset+1)
			start, end = lit.Pos()+token.Pos(from), lit.Pos()+token.Pos(to)
			if to-from == 1 && fe.Offset < len(s) &&
				(errors.Is(err, format.ErrFlagNotPermitted) || errors.Is(err, format.ErrDuplicateFlag)) {
				fixes = append(fixes, analysis.SuggestedFix{
					Message:   fmt.Sprintf("remove flag %q", s[fe.Offset]),
					TextEdits: []analysis.TextEdit{{Pos: start, End: end}},
				})
			}
		}
	}
	code := diag.FormatCode(err)
	c.pass.Report(analysis.Diagnostic{
		Pos:            start,
		End:            end,
		Category:       code.ID(),
		Message:        fmt.Sprintf("%s: %v (element %d)", code.ID(), fe.Err, fe.Index),
		SuggestedFixes: fixes,
	})
	return err
}

func (c *checker) checkArgs(call *ast.CallExpr, args []ast.Expr, f *format.Format) {
	if call.Ellipsis.IsValid() {
		return
	}
	if len(args) != f.LiteralCount {
		err := &typecheck.Error{
			Err:    typecheck.ErrArgCount,
			Format: f.Text(),
			Arg:    -1,
			Want:   f.LiteralCount,
			Got:    len(args),
		}
		c.pass.ReportRangef(call, "%s: %v", diag.ArgCount.ID(), err)
		return
	}
	i := f.FirstLiteralIndex()
	for n, arg := range args {
		e := f.Elements[i]
		i = f.NextLiteralIndex(i)

		t := c.pass.TypesInfo.TypeOf(arg)
		k, known := typecheck.KindOfType(t)
		switch {
		case !known:
			continue
		case k == typecheck.Invalid:
			c.pass.ReportRangef(arg, "%s: argument %d of type %s cannot be printed", diag.ArgUnsupported.ID(), n, t)
		case !typecheck.Matches(e.Type, k):
			err := &typecheck.Error{
				Err:     typecheck.ErrKindMismatch,
				Format:  f.Text(),
				Arg:     n,
				Element: e,
				Kind:    k,
			}
			c.pass.ReportRangef(arg, "%s: %v", diag.ArgKindMismatch.ID(), err)
		}
	}
}
