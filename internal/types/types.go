// Package types models the results of type inference that the dataclass
// rules consume. The set of variants is closed.
package types

import (
	"strings"

	"github.com/foundry-zero/dccheck/internal/ast"
)

// Type is an inferred type: *ClassType, *UnionType, *StructuralType,
// *UnknownType or *OtherType.
type Type interface {
	String() string
	isType()
}

// ClassType is a class reference. Definition is true for the class object
// itself (Point) and false for an instance of it (Point()).
type ClassType struct {
	Class      *ast.Class
	Definition bool
}

// UnionType is "one of" its members.
type UnionType struct {
	Members []Type
}

// StructuralType is an unnamed, shape-based type inferred from usage.
type StructuralType struct{}

// UnknownType is the result of an inference that could not conclude.
type UnknownType struct{}

// OtherType covers every other inferred type (functions, modules, ...).
type OtherType struct {
	Name string
}

// Unknown is the shared unknown type.
var Unknown Type = &UnknownType{}

func (*ClassType) isType()      {}
func (*UnionType) isType()      {}
func (*StructuralType) isType() {}
func (*UnknownType) isType()    {}
func (*OtherType) isType()      {}

func (t *ClassType) String() string {
	if t.Definition {
		return "type[" + t.Class.QualifiedName + "]"
	}
	return t.Class.QualifiedName
}

func (t *UnionType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (*StructuralType) String() string { return "structural" }
func (*UnknownType) String() string    { return "unknown" }

func (t *OtherType) String() string {
	if t.Name == "" {
		return "other"
	}
	return t.Name
}

// IsUnknown reports whether t is nil or the unknown type.
func IsUnknown(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(*UnknownType)
	return ok
}

// InstanceClass returns the class of t when t is an instance class type,
// and nil otherwise.
func InstanceClass(t Type) *ast.Class {
	ct, ok := t.(*ClassType)
	if !ok || ct.Definition || ct.Class == nil {
		return nil
	}
	return ct.Class
}
