package semantic_test

import (
	"testing"

	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/report"
	"github.com/foundry-zero/dccheck/internal/resolve"
	"github.com/foundry-zero/dccheck/internal/semantic"
)

const testFile = "test.py"

func at(line, col int) ast.Span {
	return ast.Span{Line: line, Column: col}
}

func instance(qname string) *ast.TypeRef {
	return &ast.TypeRef{Kind: ast.TypeClass, Class: qname}
}

func definition(qname string) *ast.TypeRef {
	return &ast.TypeRef{Kind: ast.TypeClass, Class: qname, Definition: true}
}

func name(id string, span ast.Span, typ *ast.TypeRef) ast.Expr {
	return ast.Expr{Kind: ast.ExprName, ID: id, Span: span, Type: typ}
}

func literal(raw string, span ast.Span, typ *ast.TypeRef) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLiteral, Value: []byte(raw), Span: span, Type: typ}
}

func boolPtr(b bool) *bool { return &b }

// dataclass declares a class carrying a dataclass record.
func dataclass(qname string, line int, rec ast.DataclassRecord, body ...ast.Stmt) ast.Stmt {
	cls := plainClass(qname, line, body...)
	cls.Class.Dataclass = &rec
	return cls
}

func plainClass(qname string, line int, body ...ast.Stmt) ast.Stmt {
	n := qname
	for i := len(qname) - 1; i >= 0; i-- {
		if qname[i] == '.' {
			n = qname[i+1:]
			break
		}
	}
	return ast.Stmt{
		Kind: ast.StmtClass,
		Span: at(line, 1),
		Class: &ast.Class{
			Name:          n,
			QualifiedName: qname,
			NameSpan:      at(line, 7),
			Body:          body,
		},
	}
}

// field declares "id: annotation = value" at line. A nil annotation yields
// an unannotated assignment; a nil value a bare annotation.
func field(id string, line int, annotation *ast.TypeRef, value *ast.Expr) ast.Stmt {
	s := ast.Stmt{
		Kind:    ast.StmtAssign,
		Span:    at(line, 5),
		Targets: []ast.Expr{name(id, at(line, 5), annotation)},
		Value:   value,
	}
	if annotation != nil {
		ann := name("T", at(line, 5+len(id)+2), nil)
		s.Annotation = &ann
	}
	return s
}

func initVar(id string, line int) ast.Stmt {
	return field(id, line, instance(semantic.InitVarType), nil)
}

func method(fname string, line int, params ...string) ast.Stmt {
	fn := &ast.Function{
		Name:       fname,
		NameSpan:   at(line, 9),
		ParamsSpan: at(line, 9+len(fname)),
	}
	for i, p := range params {
		fn.Params = append(fn.Params, ast.Param{Name: p, Span: at(line, 10+len(fname)+i*4)})
	}
	return ast.Stmt{Kind: ast.StmtFunction, Span: at(line, 5), Function: fn}
}

func exprStmt(e *ast.Expr) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtExpr, Span: e.Span, Value: e}
}

func compare(op string, line int, left, right ast.Expr) *ast.Expr {
	return &ast.Expr{
		Kind:   ast.ExprBinary,
		Span:   left.Span,
		Op:     op,
		OpSpan: at(line, 3),
		Left:   &left,
		Right:  &right,
	}
}

func attribute(object ast.Expr, attr string, line, col int) ast.Expr {
	return ast.Expr{
		Kind:     ast.ExprAttribute,
		Span:     object.Span,
		Object:   &object,
		Attr:     attr,
		AttrSpan: at(line, col),
	}
}

func helperCall(qname string, line int, subject ast.Expr) *ast.Expr {
	param := "obj"
	if qname == "dataclasses.fields" {
		param = "class_or_instance"
	}
	return &ast.Expr{
		Kind:     ast.ExprCall,
		Span:     at(line, 1),
		Func:     &ast.Expr{Kind: ast.ExprName, ID: qname, Span: at(line, 1)},
		Args:     []ast.Arg{{Value: subject}},
		ArgsSpan: at(line, 10),
		Callee:   &ast.Callee{QualifiedName: qname, Params: []string{param}},
	}
}

func module(body ...ast.Stmt) *ast.Module {
	return &ast.Module{
		Version: "1",
		File:    testFile,
		ExternalClasses: []ast.Class{
			{Name: "list", QualifiedName: "builtins.list"},
			{Name: "set", QualifiedName: "builtins.set"},
			{Name: "tuple", QualifiedName: "builtins.tuple"},
			{Name: "dict", QualifiedName: "builtins.dict"},
			{Name: "int", QualifiedName: "builtins.int"},
			{Name: "InitVar", QualifiedName: semantic.InitVarType},
			{Name: "NamedTuple", QualifiedName: semantic.NamedTupleType},
		},
		Body: body,
	}
}

// run checks mod with every rule and returns the collected report.
func run(t *testing.T, mod *ast.Module) *report.Report {
	t.Helper()
	r := report.NewReport(testFile)
	semantic.Check(mod, resolveContext(mod, r))
	return r
}

func wantFindings(t *testing.T, r *report.Report, rule semantic.Rule, n int) []report.Finding {
	t.Helper()
	got := r.FindingsWithRule(rule.ID)
	if len(got) != n {
		t.Errorf("%s: got %d findings, want %d", rule.ID, len(got), n)
		for _, f := range r.Findings {
			t.Logf("  %s [%s] %s", f.Location, f.Rule, f.Message)
		}
	}
	return got
}

func wantLocation(t *testing.T, f report.Finding, span ast.Span) {
	t.Helper()
	if f.Location.Line != span.Line || f.Location.Column != span.Column {
		t.Errorf("%s reported at %d:%d, want %d:%d", f.Rule, f.Location.Line, f.Location.Column, span.Line, span.Column)
	}
}

func resolveContext(mod *ast.Module, sink semantic.Sink) *semantic.Context {
	return resolve.New(mod).Bind(testFile, sink)
}
