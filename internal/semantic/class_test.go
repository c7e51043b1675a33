package semantic_test

import (
	"testing"

	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/report"
	"github.com/foundry-zero/dccheck/internal/semantic"
)

func TestEqOrderAtEqArgument(t *testing.T) {
	eqAt := at(1, 27)
	mod := module(
		dataclass("m.Point", 2, ast.DataclassRecord{Order: boolPtr(true), Eq: boolPtr(false), EqArgument: &eqAt},
			field("x", 3, instance("builtins.int"), nil),
		),
	)

	got := wantFindings(t, run(t, mod), semantic.RuleEqOrder, 1)
	if len(got) != 1 {
		return
	}
	if got[0].Message != "'eq' must be true if 'order' is true" {
		t.Errorf("message = %q", got[0].Message)
	}
	if got[0].Severity != report.SeverityError {
		t.Errorf("severity = %s, want error", got[0].Severity)
	}
	wantLocation(t, got[0], eqAt)
}

func TestEqOrderFallsBackToClassName(t *testing.T) {
	mod := module(
		dataclass("m.Point", 2, ast.DataclassRecord{Order: boolPtr(true), Eq: boolPtr(false)}),
	)

	got := wantFindings(t, run(t, mod), semantic.RuleEqOrder, 1)
	if len(got) == 1 {
		wantLocation(t, got[0], at(2, 7))
	}
}

func TestEqOrderClean(t *testing.T) {
	tests := []struct {
		name string
		rec  ast.DataclassRecord
	}{
		{"defaults", ast.DataclassRecord{}},
		{"order with eq", ast.DataclassRecord{Order: boolPtr(true), Eq: boolPtr(true)}},
		{"order with default eq", ast.DataclassRecord{Order: boolPtr(true)}},
		{"no eq no order", ast.DataclassRecord{Eq: boolPtr(false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantFindings(t, run(t, module(dataclass("m.Point", 1, tt.rec))), semantic.RuleEqOrder, 0)
		})
	}
}

func TestNonDataclassIsIgnored(t *testing.T) {
	mod := module(
		plainClass("m.Plain", 1,
			field("items", 2, instance("builtins.list"), literal("[]", at(2, 20), instance("builtins.list"))),
			field("a", 3, instance("builtins.int"), literal("1", at(3, 14), instance("builtins.int"))),
			field("b", 4, instance("builtins.int"), nil),
			initVar("y", 5),
		),
	)

	r := run(t, mod)
	if len(r.Findings) != 0 {
		t.Errorf("expected no findings for a plain class, got %d", len(r.Findings))
	}
}

func TestMutableDefault(t *testing.T) {
	tests := []struct {
		name    string
		builtin string
		want    int
	}{
		{"list", "list", 1},
		{"set", "set", 1},
		{"tuple", "tuple", 1},
		{"dict", "dict", 0},
		{"int", "int", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := literal("[]", at(2, 20), instance("builtins."+tt.builtin))
			mod := module(
				dataclass("m.Box", 1, ast.DataclassRecord{},
					field("items", 2, instance("builtins."+tt.builtin), value),
				),
			)
			got := wantFindings(t, run(t, mod), semantic.RuleMutableDefault, tt.want)
			if len(got) == 1 {
				want := "Mutable default '" + tt.builtin + "' is not allowed"
				if got[0].Message != want {
					t.Errorf("message = %q, want %q", got[0].Message, want)
				}
				wantLocation(t, got[0], value.Span)
			}
		})
	}
}

func TestMutableDefaultNoneAndUnknown(t *testing.T) {
	mod := module(
		dataclass("m.Box", 1, ast.DataclassRecord{},
			field("a", 2, instance("builtins.list"), literal("null", at(2, 20), &ast.TypeRef{Kind: ast.TypeOther, Name: "None"})),
			field("b", 3, instance("builtins.list"), literal("[]", at(3, 20), nil)),
		),
	)

	wantFindings(t, run(t, mod), semantic.RuleMutableDefault, 0)
}

func TestMutableDefaultSkipsClassVar(t *testing.T) {
	cv := field("registry", 2, instance("builtins.list"), literal("[]", at(2, 30), instance("builtins.list")))
	cv.ClassVar = true
	mod := module(dataclass("m.Box", 1, ast.DataclassRecord{}, cv))

	wantFindings(t, run(t, mod), semantic.RuleMutableDefault, 0)
}

func fieldFactoryCall(line int, keywords ...string) *ast.Expr {
	call := &ast.Expr{
		Kind:     ast.ExprCall,
		Span:     at(line, 20),
		Func:     &ast.Expr{Kind: ast.ExprName, ID: "field", Span: at(line, 20)},
		ArgsSpan: at(line, 25),
		Callee:   &ast.Callee{QualifiedName: "dataclasses.field", Params: []string{"default", "default_factory"}},
	}
	for _, kw := range keywords {
		call.Args = append(call.Args, ast.Arg{Name: kw, Value: name("list", at(line, 40), definition("builtins.list"))})
	}
	return call
}

func TestDefaultAndDefaultFactory(t *testing.T) {
	call := fieldFactoryCall(2, "default", "default_factory")
	mod := module(
		dataclass("m.Box", 1, ast.DataclassRecord{},
			field("items", 2, instance("builtins.list"), call),
			field("other", 3, instance("builtins.list"), fieldFactoryCall(3, "default_factory")),
		),
	)

	got := wantFindings(t, run(t, mod), semantic.RuleDefaultFactory, 1)
	if len(got) == 1 {
		if got[0].Message != "Cannot specify both 'default' and 'default_factory'" {
			t.Errorf("message = %q", got[0].Message)
		}
		wantLocation(t, got[0], call.ArgsSpan)
	}
}

func TestFieldOrder(t *testing.T) {
	mod := module(
		dataclass("m.Rec", 1, ast.DataclassRecord{},
			field("a", 2, instance("builtins.int"), literal("1", at(2, 14), instance("builtins.int"))),
			field("b", 3, instance("builtins.int"), fieldFactoryCall(3, "default_factory")),
			field("c", 4, instance("builtins.int"), nil),
			field("d", 5, instance("builtins.int"), literal("2", at(5, 14), instance("builtins.int"))),
		),
	)

	got := wantFindings(t, run(t, mod), semantic.RuleFieldOrder, 2)
	if len(got) == 2 {
		wantLocation(t, got[0], at(2, 5))
		wantLocation(t, got[1], at(3, 5))
		if got[0].Message != semantic.FieldOrderMessage {
			t.Errorf("message = %q", got[0].Message)
		}
	}
}

func TestFieldOrderIgnoresClassVarsAndPlainAssignments(t *testing.T) {
	cv := field("counter", 2, instance("builtins.int"), literal("0", at(2, 30), instance("builtins.int")))
	cv.ClassVar = true
	mod := module(
		dataclass("m.Rec", 1, ast.DataclassRecord{},
			cv,
			field("limit", 3, nil, literal("10", at(3, 13), instance("builtins.int"))),
			field("c", 4, instance("builtins.int"), nil),
		),
	)

	wantFindings(t, run(t, mod), semantic.RuleFieldOrder, 0)
}

func TestPostInitParameters(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		params []string
		want   int
	}{
		{"matching", []string{"y", "z"}, []string{"self", "y", "z"}, 0},
		{"no init vars", nil, []string{"self"}, 0},
		{"renamed", []string{"y"}, []string{"self", "z"}, 1},
		{"permuted", []string{"y", "z"}, []string{"self", "z", "y"}, 1},
		{"missing", []string{"y", "z"}, []string{"self", "y"}, 1},
		{"extra", []string{"y"}, []string{"self", "y", "z"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []ast.Stmt
			for i, f := range tt.fields {
				body = append(body, initVar(f, 2+i))
			}
			hook := method(semantic.PostInit, 10, tt.params...)
			body = append(body, hook)
			mod := module(dataclass("m.Foo", 1, ast.DataclassRecord{}, body...))

			got := wantFindings(t, run(t, mod), semantic.RulePostInitParams, tt.want)
			if len(got) == 1 {
				wantLocation(t, got[0], hook.Function.ParamsSpan)
				want := "'__post_init__' should take all init-only variables in the same order as they are defined"
				if got[0].Message != want {
					t.Errorf("message = %q", got[0].Message)
				}
			}
		})
	}
}

func TestPostInitWithoutInit(t *testing.T) {
	hook := method(semantic.PostInit, 3, "self")
	mod := module(dataclass("m.Foo", 1, ast.DataclassRecord{Init: boolPtr(false)}, hook))

	got := wantFindings(t, run(t, mod), semantic.RulePostInitNoInit, 1)
	if len(got) == 1 {
		if got[0].Severity != report.SeverityWeakWarning {
			t.Errorf("severity = %s, want weak_warning", got[0].Severity)
		}
		wantLocation(t, got[0], hook.Function.NameSpan)
	}
}

func TestUnusedInitVar(t *testing.T) {
	mod := module(dataclass("m.Foo", 1, ast.DataclassRecord{}, initVar("y", 2)))

	got := wantFindings(t, run(t, mod), semantic.RuleUnusedInitVar, 1)
	if len(got) == 1 {
		if got[0].Message != "Attribute 'y' is useless until '__post_init__' is declared" {
			t.Errorf("message = %q", got[0].Message)
		}
		if got[0].Severity != report.SeverityWeakWarning {
			t.Errorf("severity = %s, want weak_warning", got[0].Severity)
		}
		wantLocation(t, got[0], at(2, 5))
	}

	withHook := module(dataclass("m.Foo", 1, ast.DataclassRecord{},
		initVar("y", 2),
		method(semantic.PostInit, 3, "self", "y"),
	))
	wantFindings(t, run(t, withHook), semantic.RuleUnusedInitVar, 0)
}

// Scenario: InitVar y, hook parameter z. Exactly one finding, on the
// parameter list.
func TestInitVarRenamedInHook(t *testing.T) {
	hook := method(semantic.PostInit, 3, "self", "z")
	mod := module(dataclass("m.Foo", 1, ast.DataclassRecord{}, initVar("y", 2), hook))

	r := run(t, mod)
	if len(r.Findings) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d", len(r.Findings))
	}
	if r.Findings[0].Rule != semantic.RulePostInitParams.ID {
		t.Errorf("rule = %s, want %s", r.Findings[0].Rule, semantic.RulePostInitParams.ID)
	}
	wantLocation(t, r.Findings[0], hook.Function.ParamsSpan)
}
