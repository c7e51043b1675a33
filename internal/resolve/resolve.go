// Package resolve answers the rule engine's collaborator queries from the
// inference results recorded in a resolved-module document.
package resolve

import (
	"strings"

	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/semantic"
	"github.com/foundry-zero/dccheck/internal/types"
)

// Qualified names of the declarations the adapters recognise.
const (
	DataclassDecorator = "dataclasses.dataclass"
	FieldFunction      = "dataclasses.field"
	ClassVarType       = "typing.ClassVar"
)

// Context resolves queries for a single module. It memoizes class lookups
// and dataclass parameters so repeated queries return identical results.
// A Context is not safe for concurrent use; create one per module.
type Context struct {
	mod     *ast.Module
	classes map[string]*ast.Class
	stubs   map[string]*ast.Class
	params  map[*ast.Class]*semantic.Params
}

var (
	_ semantic.ParameterExtractor = (*Context)(nil)
	_ semantic.TypeResolver       = (*Context)(nil)
	_ semantic.CallResolver       = (*Context)(nil)
)

// New indexes the classes declared in mod, including external classes.
func New(mod *ast.Module) *Context {
	c := &Context{
		mod:     mod,
		classes: make(map[string]*ast.Class),
		stubs:   make(map[string]*ast.Class),
		params:  make(map[*ast.Class]*semantic.Params),
	}
	for i := range mod.ExternalClasses {
		c.index(&mod.ExternalClasses[i])
	}
	c.indexStmts(mod.Body)
	return c
}

// Bind returns a semantic.Context that reports to sink.
func (c *Context) Bind(file string, sink semantic.Sink) *semantic.Context {
	return &semantic.Context{
		File:   file,
		Params: c,
		Types:  c,
		Calls:  c,
		Sink:   sink,
	}
}

func (c *Context) indexStmts(stmts []ast.Stmt) {
	for i := range stmts {
		s := &stmts[i]
		switch s.Kind {
		case ast.StmtClass:
			if s.Class != nil {
				c.index(s.Class)
				c.indexStmts(s.Class.Body)
			}
		case ast.StmtFunction:
			if s.Function != nil {
				c.indexStmts(s.Function.Body)
			}
		case ast.StmtIf, ast.StmtWhile, ast.StmtFor:
			c.indexStmts(s.Body)
			c.indexStmts(s.Else)
		}
	}
}

func (c *Context) index(cls *ast.Class) {
	key := cls.QualifiedName
	if key == "" {
		key = cls.Name
	}
	// The first declaration of a name wins, matching the exporter's
	// resolution of redefinitions to the earliest binding.
	if _, ok := c.classes[key]; !ok {
		c.classes[key] = cls
	}
}

// Class returns the class with the given qualified name. Names that are not
// declared in the module resolve to a memoized stub.
func (c *Context) Class(qname string) *ast.Class {
	if cls, ok := c.classes[qname]; ok {
		return cls
	}
	if cls, ok := c.stubs[qname]; ok {
		return cls
	}
	name := qname
	if i := strings.LastIndexByte(qname, '.'); i >= 0 {
		name = qname[i+1:]
	}
	stub := &ast.Class{Name: name, QualifiedName: qname}
	c.stubs[qname] = stub
	return stub
}

// TypeOf implements semantic.TypeResolver.
func (c *Context) TypeOf(e *ast.Expr) types.Type {
	if e == nil || e.Type == nil {
		return types.Unknown
	}
	return c.convert(e.Type)
}

func (c *Context) convert(ref *ast.TypeRef) types.Type {
	switch ref.Kind {
	case ast.TypeClass:
		if ref.Class == "" {
			return types.Unknown
		}
		return &types.ClassType{Class: c.Class(ref.Class), Definition: ref.Definition}
	case ast.TypeUnion:
		members := make([]types.Type, len(ref.Members))
		for i := range ref.Members {
			members[i] = c.convert(&ref.Members[i])
		}
		return &types.UnionType{Members: members}
	case ast.TypeStructural:
		return &types.StructuralType{}
	case ast.TypeOther:
		return &types.OtherType{Name: ref.Name}
	default:
		return types.Unknown
	}
}

// IsBuiltin implements semantic.TypeResolver.
func (c *Context) IsBuiltin(cls *ast.Class, name string) bool {
	return cls != nil && cls == c.Class("builtins."+name)
}
