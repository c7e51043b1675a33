package semantic

import (
	"fmt"

	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/types"
)

// InitVarType is the qualified name of the init-only field marker.
const InitVarType = "dataclasses.InitVar"

// FieldDescriptor is the per-visit view of one class-level declaration.
type FieldDescriptor struct {
	Field             ast.Field
	Name              string
	Index             int
	ClassVar          bool
	Annotated         bool
	HasDefault        bool
	HasDefaultFactory bool
	InitVar           bool
}

// describeFields classifies every class-level declaration of cls in order.
func describeFields(ctx *Context, cls *ast.Class) []FieldDescriptor {
	fields := cls.Fields()
	out := make([]FieldDescriptor, 0, len(fields))
	for _, f := range fields {
		d := FieldDescriptor{
			Field:     f,
			Name:      f.Name(),
			Index:     f.Index,
			ClassVar:  ctx.Params.IsClassVar(f),
			Annotated: f.Annotated(),
			InitVar:   isInitVar(ctx, f),
		}
		if spec, ok := ctx.Params.FieldSpec(f); ok {
			d.HasDefault = spec.HasDefault
			d.HasDefaultFactory = spec.HasDefaultFactory
		} else {
			d.HasDefault = f.Value() != nil
		}
		out = append(out, d)
	}
	return out
}

func isInitVar(ctx *Context, f ast.Field) bool {
	ct, ok := ctx.Types.TypeOf(f.Target).(*types.ClassType)
	return ok && ct.Class != nil && ct.Class.QualifiedName == InitVarType
}

// checkField runs the per-field rules on a non-class-variable field.
// It reports whether the field is init-only.
func checkField(ctx *Context, d FieldDescriptor, postInit *ast.Function) bool {
	checkMutableDefault(ctx, d.Field)

	if d.InitVar && postInit == nil {
		ctx.report(RuleUnusedInitVar, d.Field.Target.Span,
			fmt.Sprintf("Attribute '%s' is useless until '%s' is declared", d.Name, PostInit))
	}

	checkFieldCall(ctx, d)
	return d.InitVar
}

// checkMutableDefault reports defaults that would be shared between
// instances: list, set and tuple values.
func checkMutableDefault(ctx *Context, f ast.Field) {
	value := f.Value()
	cls := ctx.instanceClass(value)
	if cls == nil {
		return
	}
	for _, name := range []string{"list", "set", "tuple"} {
		if ctx.Types.IsBuiltin(cls, name) {
			ctx.report(RuleMutableDefault, value.Span,
				fmt.Sprintf("Mutable default '%s' is not allowed", cls.Name))
			return
		}
	}
}

func checkFieldCall(ctx *Context, d FieldDescriptor) {
	if !d.HasDefault || !d.HasDefaultFactory {
		return
	}
	call := d.Field.Value()
	if call == nil || call.Kind != ast.ExprCall {
		return
	}
	ctx.report(RuleDefaultFactory, call.ArgsSpan, "Cannot specify both 'default' and 'default_factory'")
}
