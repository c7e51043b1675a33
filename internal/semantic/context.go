// Package semantic implements the dataclass rule engine: the checks applied
// to class declarations, their fields, and the expressions that use
// dataclass instances and types.
package semantic

import (
	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/report"
	"github.com/foundry-zero/dccheck/internal/types"
)

// Params are the resolved @dataclass arguments of a class.
type Params struct {
	Init   bool
	Eq     bool
	Order  bool
	Frozen bool

	// EqArgument locates the eq=... argument, when one was written.
	EqArgument *ast.Span
}

// FieldSpec is the structured form of a field declared through
// dataclasses.field(...).
type FieldSpec struct {
	HasDefault        bool
	HasDefaultFactory bool
}

// Binding pairs a call argument with the parameter it binds to.
type Binding struct {
	Arg   *ast.Expr
	Param string
}

// Callee is a resolved call target with its argument mapping.
type Callee struct {
	QualifiedName string
	Params        []string
	Bindings      []Binding
}

// ArgumentFor returns the argument bound to param, or nil.
func (c *Callee) ArgumentFor(param string) *ast.Expr {
	for _, b := range c.Bindings {
		if b.Param == param {
			return b.Arg
		}
	}
	return nil
}

// ParameterExtractor answers structural questions about declarations.
type ParameterExtractor interface {
	// DataclassParams returns nil when cls is not a dataclass.
	DataclassParams(cls *ast.Class) *Params
	// FieldSpec reports the structured form of f; ok is false when f is not
	// declared through dataclasses.field(...).
	FieldSpec(f ast.Field) (spec FieldSpec, ok bool)
	IsClassVar(f ast.Field) bool
}

// TypeResolver answers type inference queries. It must be total: anything
// it cannot decide is types.Unknown.
type TypeResolver interface {
	TypeOf(e *ast.Expr) types.Type
	// IsBuiltin reports whether cls is the builtins class with the given name.
	IsBuiltin(cls *ast.Class, name string) bool
}

// CallResolver resolves call targets.
type CallResolver interface {
	ResolveCall(call *ast.Expr) (*Callee, bool)
}

// Sink receives findings in emission order.
type Sink interface {
	AddFinding(f report.Finding)
}

// Context carries the collaborators of one analysis pass over one file.
type Context struct {
	File   string
	Params ParameterExtractor
	Types  TypeResolver
	Calls  CallResolver
	Sink   Sink
}

func (c *Context) report(rule Rule, at ast.Span, message string) {
	c.Sink.AddFinding(report.NewFinding(rule.ID, rule.Severity, message, c.location(at)))
}

func (c *Context) location(s ast.Span) report.Location {
	return report.Location{
		File:      c.File,
		Line:      s.Line,
		Column:    s.Column,
		EndLine:   s.EndLine,
		EndColumn: s.EndColumn,
	}
}

// instanceClass returns the class of e's type when e evaluates to an
// instance of a class.
func (c *Context) instanceClass(e *ast.Expr) *ast.Class {
	if e == nil {
		return nil
	}
	return types.InstanceClass(c.Types.TypeOf(e))
}

func (c *Context) dataclassParams(cls *ast.Class) *Params {
	if cls == nil {
		return nil
	}
	return c.Params.DataclassParams(cls)
}
