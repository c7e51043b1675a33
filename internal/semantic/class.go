package semantic

import (
	"fmt"

	"github.com/foundry-zero/dccheck/internal/ast"
)

// PostInit is the name of the post-construction hook.
const PostInit = "__post_init__"

// DataclassRules returns the visitor for the class and field rules
// (DC-01 to DC-07).
func DataclassRules(ctx *Context) Visitor {
	return Visitor{Class: func(cls *ast.Class) { checkClass(ctx, cls) }}
}

func checkClass(ctx *Context, cls *ast.Class) {
	params := ctx.dataclassParams(cls)
	if params == nil {
		return
	}

	checkEqOrder(ctx, cls, params)

	postInit := cls.Method(PostInit)
	fields := describeFields(ctx, cls)

	var initVars []FieldDescriptor
	for _, d := range fields {
		if d.ClassVar {
			continue
		}
		if checkField(ctx, d, postInit) {
			initVars = append(initVars, d)
		}
	}

	if postInit != nil {
		checkPostInit(ctx, postInit, params, initVars)
	}

	misplaced := FieldOrder(fields,
		func(d FieldDescriptor) bool { return !d.ClassVar && d.Annotated },
		func(d FieldDescriptor) bool { return d.HasDefault || d.HasDefaultFactory },
	)
	for _, d := range misplaced {
		ctx.report(RuleFieldOrder, d.Field.Target.Span, FieldOrderMessage)
	}
}

// checkEqOrder checks DC-01: ordering methods need equality.
func checkEqOrder(ctx *Context, cls *ast.Class, params *Params) {
	if params.Eq || !params.Order {
		return
	}
	at := cls.NameSpan
	if params.EqArgument != nil {
		at = *params.EqArgument
	}
	ctx.report(RuleEqOrder, at, "'eq' must be true if 'order' is true")
}

// checkPostInit checks DC-04 and DC-03 for the hook of a dataclass.
func checkPostInit(ctx *Context, fn *ast.Function, params *Params, initVars []FieldDescriptor) {
	if !params.Init {
		ctx.report(RulePostInitNoInit, fn.NameSpan,
			fmt.Sprintf("'%s' would not be called until 'init' parameter is set to True", PostInit))
	}

	declared := fn.Params
	if len(declared) > 0 {
		declared = declared[1:]
	}

	if !sameNames(declared, initVars) {
		ctx.report(RulePostInitParams, fn.ParamsSpan,
			fmt.Sprintf("'%s' should take all init-only variables in the same order as they are defined", PostInit))
	}
}

func sameNames(params []ast.Param, initVars []FieldDescriptor) bool {
	if len(params) != len(initVars) {
		return false
	}
	for i := range params {
		if params[i].Name != initVars[i].Name {
			return false
		}
	}
	return true
}
