package semantic

import (
	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/types"
)

// helpers lists the dataclasses module functions whose first parameter must
// be a dataclass, and whether they also accept the class object itself.
var helpers = map[string]bool{
	"dataclasses.fields":  true,
	"dataclasses.asdict":  false,
	"dataclasses.astuple": false,
	"dataclasses.replace": false,
}

// HelperCallRules returns the visitor for DC-11.
func HelperCallRules(ctx *Context) Visitor {
	return Visitor{Call: func(c *ast.Expr) { checkHelperCall(ctx, c) }}
}

func checkHelperCall(ctx *Context, call *ast.Expr) {
	callee, ok := ctx.Calls.ResolveCall(call)
	if !ok {
		return
	}
	allowDefinition, ok := helpers[callee.QualifiedName]
	if !ok || len(callee.Params) == 0 {
		return
	}

	arg := callee.ArgumentFor(callee.Params[0])
	if arg == nil {
		return
	}

	if isNotDataclass(ctx, ctx.Types.TypeOf(arg), allowDefinition) {
		msg := "'" + callee.QualifiedName + "' method should be called on dataclass instances"
		if allowDefinition {
			msg += " or types"
		}
		ctx.report(RuleHelperArgument, arg.Span, msg)
	}
}

// isNotDataclass reports whether t is certainly not an acceptable helper
// subject. Unknown and structural types are never rejected, and a union is
// rejected only when every member is.
func isNotDataclass(ctx *Context, t types.Type, allowDefinition bool) bool {
	switch t := t.(type) {
	case nil, *types.UnknownType, *types.StructuralType:
		return false
	case *types.UnionType:
		if len(t.Members) == 0 {
			return false
		}
		for _, m := range t.Members {
			if !isNotDataclass(ctx, m, allowDefinition) {
				return false
			}
		}
		return true
	case *types.ClassType:
		if t.Definition && !allowDefinition {
			return true
		}
		return ctx.dataclassParams(t.Class) == nil
	default:
		return true
	}
}
