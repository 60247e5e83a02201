package driver

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"strconv"
	"strings"
)

// callKind tells how a matched function uses its first argument.
type callKind uint8

const (
	callCompile callKind = iota + 1 // first argument is a format string
	callPrint                       // first argument is a compiled format
)

// callSite is one call to a configured function.
type callSite struct {
	Kind callKind
	Name string // qualified name as configured, e.g. "cefmt.Print"
	Call *ast.CallExpr
	// Pos is the index of the format argument.
	Pos int
	// Lit is the format literal, nil when it could not be resolved.
	Lit *ast.BasicLit
	// Via is the compile call that produced the format of a print call.
	Via *ast.CallExpr
}

// Args returns the arguments after the format and whether they are
// countable (no trailing "...").
func (c callSite) Args() ([]ast.Expr, bool) {
	if len(c.Call.Args) <= c.Pos {
		return nil, false
	}
	return c.Call.Args[c.Pos+1:], !c.Call.Ellipsis.IsValid()
}

// FormatArg returns the format argument, or nil when the call has too few
// arguments.
func (c callSite) FormatArg() ast.Expr {
	if len(c.Call.Args) <= c.Pos {
		return nil
	}
	return c.Call.Args[c.Pos]
}

// callScanner finds format call sites in one parsed file.
type callScanner struct {
	compile map[string]int // name -> format argument index
	print   map[string]int
	imports map[string]string // local name -> package name
	// bindings maps identifiers bound exactly once to a compile call with
	// a literal; ambiguous names map to nil.
	bindings map[string]*ast.CallExpr
}

func newScanner(compileFuncs, printFuncs []string) *callScanner {
	return &callScanner{
		compile: funcTable(compileFuncs),
		print:   funcTable(printFuncs),
	}
}

// funcTable parses "pkg.Func" or "pkg.Func:N" entries, N being the index
// of the format argument (0 by default). Malformed entries are validated
// by ParseFuncSpec before they get here and are skipped.
func funcTable(specs []string) map[string]int {
	out := make(map[string]int, len(specs))
	for _, spec := range specs {
		name, pos, err := ParseFuncSpec(spec)
		if err != nil {
			continue
		}
		out[name] = pos
	}
	return out
}

// ParseFuncSpec splits a function entry into its name and format argument
// index.
func ParseFuncSpec(spec string) (string, int, error) {
	name, idx, found := strings.Cut(spec, ":")
	if name == "" {
		return "", 0, fmt.Errorf("empty function name in %q", spec)
	}
	if !found {
		return name, 0, nil
	}
	pos, err := strconv.Atoi(idx)
	if err != nil || pos < 0 {
		return "", 0, fmt.Errorf("bad format argument index in %q", spec)
	}
	return name, pos, nil
}

// parseFile parses src with go/parser. Object resolution is skipped since
// bindings are tracked by name.
func parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
}

// scan returns every call site in file in source order.
func (s *callScanner) scan(file *ast.File) []callSite {
	s.collectImports(file)
	s.collectBindings(file)

	var sites []callSite
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		name := s.callee(call)
		if pos, ok := s.compile[name]; ok {
			site := callSite{Kind: callCompile, Name: name, Call: call, Pos: pos}
			if arg := site.FormatArg(); arg != nil {
				site.Lit = stringArg(arg)
			}
			sites = append(sites, site)
		} else if pos, ok := s.print[name]; ok {
			site := callSite{Kind: callPrint, Name: name, Call: call, Pos: pos}
			if arg := site.FormatArg(); arg != nil {
				site.Lit, site.Via = s.resolveFormat(arg)
			}
			sites = append(sites, site)
		}
		return true
	})
	return sites
}

func (s *callScanner) collectImports(file *ast.File) {
	s.imports = make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		pkg := path.Base(p)
		local := pkg
		if imp.Name != nil {
			local = imp.Name.Name
		}
		switch local {
		case "_":
			continue
		case ".":
			// dot import: unqualified calls resolve to pkg
			s.imports[""] = pkg
			continue
		}
		s.imports[local] = pkg
	}
}

func (s *callScanner) collectBindings(file *ast.File) {
	s.bindings = make(map[string]*ast.CallExpr)
	bind := func(name *ast.Ident, value ast.Expr) {
		if name == nil || name.Name == "_" {
			return
		}
		call, ok := ast.Unparen(value).(*ast.CallExpr)
		if !ok || s.compileLit(call) == nil {
			return
		}
		if prev, seen := s.bindings[name.Name]; seen && prev != call {
			s.bindings[name.Name] = nil
			return
		}
		s.bindings[name.Name] = call
	}
	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ValueSpec:
			if len(n.Names) == len(n.Values) {
				for i, name := range n.Names {
					bind(name, n.Values[i])
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
		return true
	})
}

// callee returns the configured-style name of the called function:
// "pkg.Func" for qualified calls, "Func" for local ones.
func (s *callScanner) callee(call *ast.CallExpr) string {
	switch fn := ast.Unparen(call.Fun).(type) {
	case *ast.SelectorExpr:
		x, ok := fn.X.(*ast.Ident)
		if !ok {
			return ""
		}
		if pkg, ok := s.imports[x.Name]; ok {
			return pkg + "." + fn.Sel.Name
		}
		return ""
	case *ast.Ident:
		if pkg, ok := s.imports[""]; ok {
			name := pkg + "." + fn.Name
			if _, ok := s.compile[name]; ok {
				return name
			}
			if _, ok := s.print[name]; ok {
				return name
			}
		}
		return fn.Name
	}
	return ""
}

// resolveFormat finds the literal behind the format argument of a print
// call: a direct literal, a compile call with a literal, or an identifier
// bound once in this file to such a call.
func (s *callScanner) resolveFormat(arg ast.Expr) (*ast.BasicLit, *ast.CallExpr) {
	arg = ast.Unparen(arg)
	if lit := stringArg(arg); lit != nil {
		return lit, nil
	}
	var call *ast.CallExpr
	switch a := arg.(type) {
	case *ast.CallExpr:
		call = a
	case *ast.Ident:
		call = s.bindings[a.Name]
	}
	if call == nil {
		return nil, nil
	}
	lit := s.compileLit(call)
	if lit == nil {
		return nil, nil
	}
	return lit, call
}

// compileLit returns the format literal of a compile call, or nil.
func (s *callScanner) compileLit(call *ast.CallExpr) *ast.BasicLit {
	pos, ok := s.compile[s.callee(call)]
	if !ok || len(call.Args) <= pos {
		return nil
	}
	return stringArg(call.Args[pos])
}

func stringArg(e ast.Expr) *ast.BasicLit {
	lit, ok := ast.Unparen(e).(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil
	}
	return lit
}

// shortName drops the package qualifier.
func shortName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
