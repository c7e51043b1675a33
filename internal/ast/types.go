// Package ast defines the Go types for deserializing resolved Python module
// documents (.pyast.json): a syntax tree already annotated with the results
// of type inference and call resolution.
package ast

import "github.com/goccy/go-json"

// Module is the top-level representation of a resolved-module document.
type Module struct {
	Version         string  `json:"version"`
	File            string  `json:"file"`
	ExternalClasses []Class `json:"external_classes,omitempty"`
	Body            []Stmt  `json:"body"`
}

// Span locates a node in the Python source. Lines and columns are 1-based;
// the end position is optional.
type Span struct {
	Line      int `json:"line"`
	Column    int `json:"column"`
	EndLine   int `json:"end_line,omitempty"`
	EndColumn int `json:"end_column,omitempty"`
}

// IsZero reports whether the span carries no position.
func (s Span) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// Statement kinds.
const (
	StmtClass     = "class"
	StmtFunction  = "function"
	StmtAssign    = "assign"
	StmtExpr      = "expr"
	StmtReturn    = "return"
	StmtIf        = "if"
	StmtWhile     = "while"
	StmtFor       = "for"
	StmtTry       = "try"
	StmtWith      = "with"
	StmtAugAssign = "aug_assign"
	StmtDelete    = "delete"

	// StmtOther carries any statement without a dedicated kind. Its
	// expressions and nested blocks are still traversed.
	StmtOther = "other"
)

// Stmt is a statement node, discriminated by Kind.
type Stmt struct {
	Kind string `json:"kind"`
	Span Span   `json:"span"`

	// class
	Class *Class `json:"class,omitempty"`

	// function
	Function *Function `json:"function,omitempty"`

	// assign, aug_assign, delete, for (loop targets)
	Targets    []Expr `json:"targets,omitempty"`
	Annotation *Expr  `json:"annotation,omitempty"`
	ClassVar   bool   `json:"class_var,omitempty"`

	// aug_assign
	Op string `json:"op,omitempty"`

	// assign, aug_assign, expr, return, for (iterable)
	Value *Expr `json:"value,omitempty"`

	// if, while
	Test *Expr `json:"test,omitempty"`

	// with
	Items []WithItem `json:"items,omitempty"`

	// try
	Handlers []Handler `json:"handlers,omitempty"`
	Finally  []Stmt    `json:"finally,omitempty"`

	// other
	Children []Expr `json:"children,omitempty"`

	// if, while, for, with, try, other
	Body []Stmt `json:"body,omitempty"`
	Else []Stmt `json:"else,omitempty"`
}

// WithItem is one context manager of a with statement.
type WithItem struct {
	Context Expr  `json:"context"`
	Target  *Expr `json:"target,omitempty"`
}

// Handler is an except clause.
type Handler struct {
	Span Span   `json:"span"`
	Type *Expr  `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
	Body []Stmt `json:"body,omitempty"`
}

// Class is a class declaration.
type Class struct {
	Name          string           `json:"name"`
	QualifiedName string           `json:"qualified_name"`
	NameSpan      Span             `json:"name_span"`
	Decorators    []Expr           `json:"decorators,omitempty"`
	Bases         []Expr           `json:"bases,omitempty"`
	Dataclass     *DataclassRecord `json:"dataclass,omitempty"`
	Body          []Stmt           `json:"body"`
}

// DataclassRecord is the exporter's pre-parsed view of a class's @dataclass
// arguments. Nil flags take the decorator's defaults.
type DataclassRecord struct {
	Init       *bool `json:"init,omitempty"`
	Eq         *bool `json:"eq,omitempty"`
	Order      *bool `json:"order,omitempty"`
	Frozen     *bool `json:"frozen,omitempty"`
	EqArgument *Span `json:"eq_argument,omitempty"`
}

// Function is a function or method declaration.
type Function struct {
	Name       string  `json:"name"`
	NameSpan   Span    `json:"name_span"`
	Params     []Param `json:"params"`
	ParamsSpan Span    `json:"params_span"`
	Decorators []Expr  `json:"decorators,omitempty"`
	Body       []Stmt  `json:"body,omitempty"`
}

// Param is a declared function parameter.
type Param struct {
	Name    string `json:"name"`
	Span    Span   `json:"span"`
	Default *Expr  `json:"default,omitempty"`
}

// Expression kinds.
const (
	ExprName          = "name"
	ExprLiteral       = "literal"
	ExprList          = "list"
	ExprSet           = "set"
	ExprTuple         = "tuple"
	ExprDict          = "dict"
	ExprAttribute     = "attribute"
	ExprCall          = "call"
	ExprBinary        = "binary"
	ExprSubscript     = "subscript"
	ExprBoolOp        = "boolop"
	ExprUnary         = "unary"
	ExprIf            = "ifexp"
	ExprLambda        = "lambda"
	ExprComprehension = "comprehension"

	// ExprOther carries any expression without a dedicated kind (await,
	// yield, starred, f-strings, slices). Its children are still traversed.
	ExprOther = "other"
)

// Expr is an expression node, discriminated by Kind. Type holds the result
// of type inference; a nil Type means the type is unknown.
type Expr struct {
	Kind string   `json:"kind"`
	Span Span     `json:"span"`
	Type *TypeRef `json:"type,omitempty"`

	// name, attribute: qualified name of the referenced declaration, when resolved
	Ref string `json:"ref,omitempty"`

	// name
	ID string `json:"id,omitempty"`

	// literal
	Value json.RawMessage `json:"value,omitempty"`

	// list, set, tuple
	Elements []Expr `json:"elements,omitempty"`

	// dict
	Entries []DictEntry `json:"entries,omitempty"`

	// attribute, subscript
	Object   *Expr  `json:"object,omitempty"`
	Attr     string `json:"attr,omitempty"`
	AttrSpan Span   `json:"attr_span,omitempty"`
	Index    *Expr  `json:"index,omitempty"`

	// call
	Func     *Expr   `json:"func,omitempty"`
	Args     []Arg   `json:"args,omitempty"`
	ArgsSpan Span    `json:"args_span,omitempty"`
	Callee   *Callee `json:"callee,omitempty"`

	// binary, boolop, unary
	Op     string `json:"op,omitempty"`
	OpSpan Span   `json:"op_span,omitempty"`
	Left   *Expr  `json:"left,omitempty"`
	Right  *Expr  `json:"right,omitempty"`

	// boolop
	Operands []Expr `json:"operands,omitempty"`

	// unary
	Operand *Expr `json:"operand,omitempty"`

	// ifexp: <then> if <test> else <orelse>
	Test   *Expr `json:"test,omitempty"`
	Then   *Expr `json:"then,omitempty"`
	OrElse *Expr `json:"orelse,omitempty"`

	// lambda
	Params []Param `json:"params,omitempty"`
	Result *Expr   `json:"result,omitempty"`

	// comprehension: Comp is list, set, dict or generator. Dict
	// comprehensions put the key in Element and the value in ElementValue.
	Comp         string      `json:"comp,omitempty"`
	Element      *Expr       `json:"element,omitempty"`
	ElementValue *Expr       `json:"element_value,omitempty"`
	Generators   []Generator `json:"generators,omitempty"`

	// other
	Children []Expr `json:"children,omitempty"`
}

// Generator is one for clause of a comprehension.
type Generator struct {
	Target Expr   `json:"target"`
	Iter   Expr   `json:"iter"`
	Ifs    []Expr `json:"ifs,omitempty"`
}

// DictEntry is one key/value pair of a dict display.
type DictEntry struct {
	Key   Expr `json:"key"`
	Value Expr `json:"value"`
}

// Arg is a call argument. Name is set for keyword arguments; Star is "*" or
// "**" for unpacked arguments.
type Arg struct {
	Name  string `json:"name,omitempty"`
	Star  string `json:"star,omitempty"`
	Value Expr   `json:"value"`
}

// Callee is the declaration a call resolved to.
type Callee struct {
	QualifiedName string   `json:"qualified_name"`
	Params        []string `json:"params,omitempty"`
}

// Type kinds.
const (
	TypeClass      = "class"
	TypeUnion      = "union"
	TypeStructural = "structural"
	TypeUnknown    = "unknown"
	TypeOther      = "other"
)

// TypeRef is a serialized inferred type. Class types refer to classes by
// qualified name; Definition distinguishes the class object itself from an
// instance of it.
type TypeRef struct {
	Kind       string    `json:"kind"`
	Class      string    `json:"class,omitempty"`
	Definition bool      `json:"definition,omitempty"`
	Members    []TypeRef `json:"members,omitempty"`
	Name       string    `json:"name,omitempty"`
}
