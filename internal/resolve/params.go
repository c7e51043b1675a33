package resolve

import (
	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/semantic"
)

// defaultParams mirrors the defaults of the @dataclass decorator.
func defaultParams() semantic.Params {
	return semantic.Params{Init: true, Eq: true}
}

// DataclassParams implements semantic.ParameterExtractor. An explicit
// dataclass record on the class wins over its decorators.
func (c *Context) DataclassParams(cls *ast.Class) *semantic.Params {
	if p, ok := c.params[cls]; ok {
		return p
	}
	p := extractParams(cls)
	c.params[cls] = p
	return p
}

func extractParams(cls *ast.Class) *semantic.Params {
	if rec := cls.Dataclass; rec != nil {
		p := defaultParams()
		setFlag(&p.Init, rec.Init)
		setFlag(&p.Eq, rec.Eq)
		setFlag(&p.Order, rec.Order)
		setFlag(&p.Frozen, rec.Frozen)
		p.EqArgument = rec.EqArgument
		return &p
	}

	for i := range cls.Decorators {
		if p := fromDecorator(&cls.Decorators[i]); p != nil {
			return p
		}
	}
	return nil
}

func setFlag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func fromDecorator(d *ast.Expr) *semantic.Params {
	switch d.Kind {
	case ast.ExprName, ast.ExprAttribute:
		if d.Ref != DataclassDecorator {
			return nil
		}
		p := defaultParams()
		return &p

	case ast.ExprCall:
		if !callsDataclass(d) {
			return nil
		}
		p := defaultParams()
		for i := range d.Args {
			arg := &d.Args[i]
			v, ok := boolLiteral(&arg.Value)
			if !ok {
				continue
			}
			switch arg.Name {
			case "init":
				p.Init = v
			case "eq":
				p.Eq = v
				span := arg.Value.Span
				p.EqArgument = &span
			case "order":
				p.Order = v
			case "frozen":
				p.Frozen = v
			}
		}
		return &p
	}
	return nil
}

func callsDataclass(call *ast.Expr) bool {
	if call.Callee != nil {
		return call.Callee.QualifiedName == DataclassDecorator
	}
	return call.Func != nil && call.Func.Ref == DataclassDecorator
}

func boolLiteral(e *ast.Expr) (bool, bool) {
	if e.Kind != ast.ExprLiteral {
		return false, false
	}
	switch string(e.Value) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// FieldSpec implements semantic.ParameterExtractor.
func (c *Context) FieldSpec(f ast.Field) (semantic.FieldSpec, bool) {
	v := f.Value()
	if v == nil || v.Kind != ast.ExprCall || !calls(v, FieldFunction) {
		return semantic.FieldSpec{}, false
	}
	return semantic.FieldSpec{
		HasDefault:        v.Argument("default") != nil,
		HasDefaultFactory: v.Argument("default_factory") != nil,
	}, true
}

func calls(call *ast.Expr, qname string) bool {
	if call.Callee != nil {
		return call.Callee.QualifiedName == qname
	}
	return call.Func != nil && call.Func.Ref == qname
}

// IsClassVar implements semantic.ParameterExtractor.
func (c *Context) IsClassVar(f ast.Field) bool {
	return f.Stmt.ClassVar || c.refersTo(f.Stmt.Annotation, ClassVarType)
}

// refersTo reports whether an annotation names qname, either bare or
// subscripted (ClassVar[int]).
func (c *Context) refersTo(e *ast.Expr, qname string) bool {
	if e == nil {
		return false
	}
	if e.Kind == ast.ExprSubscript {
		return c.refersTo(e.Object, qname)
	}
	if e.Ref == qname {
		return true
	}
	return e.Type != nil && e.Type.Kind == ast.TypeClass && e.Type.Class == qname
}
