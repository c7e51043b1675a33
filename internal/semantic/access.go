package semantic

import (
	"fmt"

	"github.com/foundry-zero/dccheck/internal/ast"
)

// orderingMethods maps the ordering operators to the methods that
// implement them.
var orderingMethods = map[string]string{
	"<":  "__lt__",
	"<=": "__le__",
	">":  "__gt__",
	">=": "__ge__",
}

// AccessRules returns the visitor for the use-site rules (DC-08 to DC-10).
func AccessRules(ctx *Context) Visitor {
	return Visitor{
		Target: func(t *ast.Expr) { checkFrozenWrite(ctx, t) },
		Read:   func(r *ast.Expr) { checkInitVarRead(ctx, r) },
		Binary: func(b *ast.Expr) { checkOrdering(ctx, b) },
	}
}

// checkFrozenWrite checks DC-08 on an attribute assignment target.
func checkFrozenWrite(ctx *Context, target *ast.Expr) {
	cls := ctx.instanceClass(target.Object)
	if cls == nil {
		return
	}
	if params := ctx.dataclassParams(cls); params != nil && params.Frozen {
		ctx.report(RuleFrozenWrite, target.Span,
			fmt.Sprintf("'%s' object attribute '%s' is read-only", cls.Name, target.Attr))
	}
}

// checkInitVarRead checks DC-09. The first init-only declaration with the
// accessed name decides; later declarations of the same name are not
// consulted.
func checkInitVarRead(ctx *Context, ref *ast.Expr) {
	cls := ctx.instanceClass(ref.Object)
	if cls == nil || ctx.dataclassParams(cls) == nil {
		return
	}
	for _, f := range cls.Fields() {
		if f.Name() != ref.Attr || !isInitVar(ctx, f) {
			continue
		}
		ctx.report(RuleInitVarRead, ref.AttrSpan,
			fmt.Sprintf("'%s' object could have no attribute '%s' because it is declared as init-only", cls.Name, f.Name()))
		return
	}
}

// checkOrdering checks DC-10 on a binary expression.
func checkOrdering(ctx *Context, bin *ast.Expr) {
	method, ok := orderingMethods[bin.Op]
	if !ok {
		return
	}
	left := ctx.instanceClass(bin.Left)
	right := ctx.instanceClass(bin.Right)
	if left == nil || right == nil {
		return
	}

	leftParams := ctx.dataclassParams(left)
	if leftParams == nil {
		return
	}

	if left != right {
		if ctx.dataclassParams(right) != nil {
			ctx.report(RuleOrdering, bin.OpSpan,
				fmt.Sprintf("'%s' not supported between instances of '%s' and '%s'", method, left.Name, right.Name))
		}
		return
	}

	if !leftParams.Order {
		ctx.report(RuleOrdering, bin.OpSpan,
			fmt.Sprintf("'%s' not supported between instances of '%s'", method, left.Name))
	}
}
