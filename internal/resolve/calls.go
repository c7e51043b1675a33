package resolve

import (
	"slices"

	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/semantic"
)

// ResolveCall implements semantic.CallResolver. Positional arguments bind
// to parameters in order and keywords by name. Positional binding stops at
// the first unpacked argument since its length is unknown.
func (c *Context) ResolveCall(call *ast.Expr) (*semantic.Callee, bool) {
	if call == nil || call.Kind != ast.ExprCall || call.Callee == nil {
		return nil, false
	}
	callee := &semantic.Callee{
		QualifiedName: call.Callee.QualifiedName,
		Params:        call.Callee.Params,
	}

	next := 0
	positional := true
	for i := range call.Args {
		arg := &call.Args[i]
		switch {
		case arg.Star != "":
			positional = false
		case arg.Name != "":
			if slices.Contains(callee.Params, arg.Name) {
				callee.Bindings = append(callee.Bindings, semantic.Binding{Arg: &arg.Value, Param: arg.Name})
			}
		case positional && next < len(callee.Params):
			callee.Bindings = append(callee.Bindings, semantic.Binding{Arg: &arg.Value, Param: callee.Params[next]})
			next++
		}
	}
	return callee, true
}
