package semantic

import (
	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/types"
)

// NamedTupleType is the qualified name of the typed named tuple base.
const NamedTupleType = "typing.NamedTuple"

// NamedTupleRules returns the visitor for DC-12.
func NamedTupleRules(ctx *Context) Visitor {
	return Visitor{Class: func(cls *ast.Class) { checkNamedTuple(ctx, cls) }}
}

func checkNamedTuple(ctx *Context, cls *ast.Class) {
	if !isNamedTuple(ctx, cls) {
		return
	}
	misplaced := FieldOrder(cls.Fields(),
		func(f ast.Field) bool { return f.Annotated() && !ctx.Params.IsClassVar(f) },
		func(f ast.Field) bool { return f.Value() != nil },
	)
	for _, f := range misplaced {
		ctx.report(RuleNamedTupleFields, f.Target.Span, FieldOrderMessage)
	}
}

func isNamedTuple(ctx *Context, cls *ast.Class) bool {
	for i := range cls.Bases {
		ct, ok := ctx.Types.TypeOf(&cls.Bases[i]).(*types.ClassType)
		if ok && ct.Definition && ct.Class != nil && ct.Class.QualifiedName == NamedTupleType {
			return true
		}
	}
	return false
}
