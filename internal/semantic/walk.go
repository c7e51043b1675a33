package semantic

import "github.com/foundry-zero/dccheck/internal/ast"

// Visitor holds the callbacks of one traversal. Nil callbacks are skipped.
type Visitor struct {
	Class  func(cls *ast.Class)
	Target func(target *ast.Expr) // attribute assignment targets
	Read   func(ref *ast.Expr)    // qualified attribute reads
	Binary func(bin *ast.Expr)
	Call   func(call *ast.Expr)
}

// Merge combines visitors into one whose callbacks run the originals in
// argument order.
func Merge(visitors ...Visitor) Visitor {
	var classes []func(*ast.Class)
	var targets, reads, binaries, calls []func(*ast.Expr)
	for _, v := range visitors {
		if v.Class != nil {
			classes = append(classes, v.Class)
		}
		targets = appendCallback(targets, v.Target)
		reads = appendCallback(reads, v.Read)
		binaries = appendCallback(binaries, v.Binary)
		calls = appendCallback(calls, v.Call)
	}

	var m Visitor
	if len(classes) > 0 {
		m.Class = func(cls *ast.Class) {
			for _, fn := range classes {
				fn(cls)
			}
		}
	}
	m.Target = chain(targets)
	m.Read = chain(reads)
	m.Binary = chain(binaries)
	m.Call = chain(calls)
	return m
}

func appendCallback(list []func(*ast.Expr), fn func(*ast.Expr)) []func(*ast.Expr) {
	if fn == nil {
		return list
	}
	return append(list, fn)
}

func chain(fns []func(*ast.Expr)) func(*ast.Expr) {
	switch len(fns) {
	case 0:
		return nil
	case 1:
		return fns[0]
	}
	return func(e *ast.Expr) {
		for _, fn := range fns {
			fn(e)
		}
	}
}

// Walk traverses mod depth-first in source order, invoking v on each node
// before its children.
func Walk(mod *ast.Module, v Visitor) {
	if mod == nil {
		return
	}
	w := walker{v: v}
	w.stmts(mod.Body)
}

type walker struct {
	v Visitor
}

func (w walker) stmts(list []ast.Stmt) {
	for i := range list {
		w.stmt(&list[i])
	}
}

func (w walker) stmt(s *ast.Stmt) {
	switch s.Kind {
	case ast.StmtClass:
		if s.Class == nil {
			return
		}
		if w.v.Class != nil {
			w.v.Class(s.Class)
		}
		w.exprs(s.Class.Decorators)
		w.exprs(s.Class.Bases)
		w.stmts(s.Class.Body)

	case ast.StmtFunction:
		if s.Function == nil {
			return
		}
		w.exprs(s.Function.Decorators)
		w.params(s.Function.Params)
		w.stmts(s.Function.Body)

	case ast.StmtAssign:
		for i := range s.Targets {
			w.target(&s.Targets[i])
		}
		w.expr(s.Annotation)
		w.expr(s.Value)

	// Augmented assignment and del name their targets by reference, so an
	// attribute there is a read.
	case ast.StmtAugAssign, ast.StmtDelete:
		w.exprs(s.Targets)
		w.expr(s.Value)

	case ast.StmtExpr, ast.StmtReturn:
		w.expr(s.Value)

	case ast.StmtIf, ast.StmtWhile:
		w.expr(s.Test)
		w.stmts(s.Body)
		w.stmts(s.Else)

	case ast.StmtFor:
		for i := range s.Targets {
			w.target(&s.Targets[i])
		}
		w.expr(s.Value)
		w.stmts(s.Body)
		w.stmts(s.Else)

	case ast.StmtWith:
		for i := range s.Items {
			w.expr(&s.Items[i].Context)
			if s.Items[i].Target != nil {
				w.target(s.Items[i].Target)
			}
		}
		w.stmts(s.Body)

	case ast.StmtTry:
		w.stmts(s.Body)
		for i := range s.Handlers {
			w.expr(s.Handlers[i].Type)
			w.stmts(s.Handlers[i].Body)
		}
		w.stmts(s.Else)
		w.stmts(s.Finally)

	case ast.StmtOther:
		w.exprs(s.Children)
		w.stmts(s.Body)
		w.stmts(s.Else)
	}
}

func (w walker) params(list []ast.Param) {
	for i := range list {
		w.expr(list[i].Default)
	}
}

// target visits an assignment target. Attribute targets are writes, so only
// their qualifier is visited as a read.
func (w walker) target(t *ast.Expr) {
	switch t.Kind {
	case ast.ExprAttribute:
		if w.v.Target != nil {
			w.v.Target(t)
		}
		w.expr(t.Object)
	case ast.ExprTuple, ast.ExprList:
		for i := range t.Elements {
			w.target(&t.Elements[i])
		}
	case ast.ExprSubscript:
		w.expr(t.Object)
		w.expr(t.Index)
	case ast.ExprOther:
		for i := range t.Children {
			w.target(&t.Children[i])
		}
	}
}

func (w walker) exprs(list []ast.Expr) {
	for i := range list {
		w.expr(&list[i])
	}
}

func (w walker) expr(e *ast.Expr) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprAttribute:
		if w.v.Read != nil {
			w.v.Read(e)
		}
		w.expr(e.Object)

	case ast.ExprCall:
		if w.v.Call != nil {
			w.v.Call(e)
		}
		w.expr(e.Func)
		for i := range e.Args {
			w.expr(&e.Args[i].Value)
		}

	case ast.ExprBinary:
		if w.v.Binary != nil {
			w.v.Binary(e)
		}
		w.expr(e.Left)
		w.expr(e.Right)

	case ast.ExprList, ast.ExprSet, ast.ExprTuple:
		w.exprs(e.Elements)

	case ast.ExprDict:
		for i := range e.Entries {
			w.expr(&e.Entries[i].Key)
			w.expr(&e.Entries[i].Value)
		}

	case ast.ExprSubscript:
		w.expr(e.Object)
		w.expr(e.Index)

	case ast.ExprBoolOp:
		w.exprs(e.Operands)

	case ast.ExprUnary:
		w.expr(e.Operand)

	case ast.ExprIf:
		w.expr(e.Then)
		w.expr(e.Test)
		w.expr(e.OrElse)

	case ast.ExprLambda:
		w.params(e.Params)
		w.expr(e.Result)

	case ast.ExprComprehension:
		w.expr(e.Element)
		w.expr(e.ElementValue)
		for i := range e.Generators {
			g := &e.Generators[i]
			w.target(&g.Target)
			w.expr(&g.Iter)
			w.exprs(g.Ifs)
		}

	case ast.ExprOther:
		w.exprs(e.Children)
	}
}
