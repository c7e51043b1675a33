package ast

// Field is a class-level name binding: a simple name target of an
// assignment (annotated or not) directly in a class body.
type Field struct {
	Target *Expr
	Stmt   *Stmt
	Index  int
}

// Name returns the bound name.
func (f Field) Name() string {
	return f.Target.ID
}

// Value returns the assigned value, or nil for a bare annotation.
func (f Field) Value() *Expr {
	return f.Stmt.Value
}

// Annotated reports whether the declaration carries a type annotation.
func (f Field) Annotated() bool {
	return f.Stmt.Annotation != nil
}

// Fields returns the class-level declarations of c in source order.
// Chained assignments (a = b = 1) yield one field per name.
func (c *Class) Fields() []Field {
	var fields []Field
	for i := range c.Body {
		s := &c.Body[i]
		if s.Kind != StmtAssign {
			continue
		}
		for j := range s.Targets {
			t := &s.Targets[j]
			if t.Kind != ExprName {
				continue
			}
			fields = append(fields, Field{Target: t, Stmt: s, Index: len(fields)})
		}
	}
	return fields
}

// Method returns the first function named name declared directly in the
// class body. Inherited methods are not considered.
func (c *Class) Method(name string) *Function {
	for i := range c.Body {
		s := &c.Body[i]
		if s.Kind == StmtFunction && s.Function != nil && s.Function.Name == name {
			return s.Function
		}
	}
	return nil
}

// Argument returns the keyword argument named name, or nil.
func (e *Expr) Argument(name string) *Arg {
	for i := range e.Args {
		if e.Args[i].Name == name && e.Args[i].Star == "" {
			return &e.Args[i]
		}
	}
	return nil
}
