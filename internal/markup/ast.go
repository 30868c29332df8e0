package markup

import "slices"

// Node is the base interface implemented by markup tree nodes: [*Element],
// [*Text] and [*Container].
type Node interface {
	Pos() int
	End() int
	isNode()
}

// Expr is the base interface implemented by expressions embedded into markup.
// Kind reports the variant tag the detection logic switches on.
type Expr interface {
	Pos() int
	End() int
	Kind() Kind
	isExpr()
}

// span is a [Pos, End) byte range of a node within its source.
type span struct {
	pos int
	end int
}

// Pos returns the offset of the first byte of the node.
func (s span) Pos() int { return s.pos }

// End returns the offset right past the last byte of the node.
func (s span) End() int { return s.end }

// Element is a markup element. Fragments <>…</> are elements with an empty Name.
// Elements are expressions as well: they may appear as operands, call
// arguments, etc.
type Element struct {
	span
	Name        string
	Attrs       []*Attr
	Children    []Node
	SelfClosing bool
}

func (*Element) isNode() {}
func (*Element) isExpr() {}

// Kind returns [KindJSXFragment] for fragments and [KindJSXElement] otherwise.
func (e *Element) Kind() Kind {
	if e.Name == "" {
		return KindJSXFragment
	}
	return KindJSXElement
}

// IsFragment checks if the element is a fragment.
func (e *Element) IsFragment() bool {
	return e.Name == ""
}

// Attr is an element attribute.
type Attr struct {
	span

	// Name is empty for spread attributes {...props}.
	Name string

	// Value is one of nil (bare attribute), *Text (quoted string),
	// *Container or *Element.
	Value Node

	// Spread is the argument of a spread attribute.
	Spread Expr
}

// TextSource tells where a text node came from.
type TextSource int

const (
	// TextJSX is raw markup text between tags.
	TextJSX TextSource = iota

	// TextLiteral is a string literal used as a child or an attribute value.
	TextLiteral
)

// Text is a text node. Both sources are treated identically by the analysis.
type Text struct {
	span

	// Value has character references like &nbsp; or &#32; decoded. The raw
	// text is the source between Pos and End.
	Value  string
	Source TextSource
}

func (*Text) isNode() {}

// Container is an expression container {expr}, rendered in place of the
// evaluated expression.
type Container struct {
	span
	Expr Expr
}

func (*Container) isNode() {}

// Ident is an identifier reference.
type Ident struct {
	span
	Name string
}

func (*Ident) isExpr()    {}
func (*Ident) Kind() Kind { return KindIdentifier }

// This is the this keyword.
type This struct {
	span
}

func (*This) isExpr()    {}
func (*This) Kind() Kind { return KindThis }

// Member is a property access: obj.prop, obj?.prop or obj[prop].
type Member struct {
	span
	Object   Expr
	Property Expr
	Computed bool
	Optional bool
}

func (*Member) isExpr()    {}
func (*Member) Kind() Kind { return KindMemberExpression }

// Literal is a string, number, boolean, null or regular expression literal.
// Value is one of string, float64, bool, nil or *Regexp.
type Literal struct {
	span
	Raw   string
	Value any
}

// Regexp is the value of a /pattern/flags literal.
type Regexp struct {
	Pattern string
	Flags   string
}

func (*Literal) isExpr()    {}
func (*Literal) Kind() Kind { return KindLiteral }

// Logical is a short-circuit expression: &&, || or ??.
type Logical struct {
	span
	Op    string
	Left  Expr
	Right Expr
}

func (*Logical) isExpr()    {}
func (*Logical) Kind() Kind { return KindLogicalExpression }

// Binary is an arithmetic, comparison or assignment expression.
type Binary struct {
	span
	Op    string
	Left  Expr
	Right Expr
}

func (*Binary) isExpr() {}

// Kind returns [KindAssignmentExpression] for assignments.
func (b *Binary) Kind() Kind {
	if slices.Contains(assignOps, b.Op) {
		return KindAssignmentExpression
	}
	return KindBinaryExpression
}

// Unary is a prefix expression: !x, -x, typeof x, etc.
type Unary struct {
	span
	Op  string
	Arg Expr
}

func (*Unary) isExpr()    {}
func (*Unary) Kind() Kind { return KindUnaryExpression }

// Conditional is a ternary expression.
type Conditional struct {
	span
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (*Conditional) isExpr()    {}
func (*Conditional) Kind() Kind { return KindConditionalExpression }

// Call is a function call, new X(…) included.
type Call struct {
	span
	Callee   Expr
	Args     []Expr
	New      bool
	Optional bool
}

func (*Call) isExpr() {}

// Kind returns [KindNewExpression] for constructor calls.
func (c *Call) Kind() Kind {
	if c.New {
		return KindNewExpression
	}
	return KindCallExpression
}

// Template is a template literal `a${b}c`.
type Template struct {
	span
	Quasis []string
	Exprs  []Expr
}

func (*Template) isExpr()    {}
func (*Template) Kind() Kind { return KindTemplateLiteral }

// Func is an arrow function or a function expression. Expression bodies are
// parsed into Body. Block bodies are not parsed, markup found inside them is
// collected into Markup.
type Func struct {
	span
	Arrow  bool
	Params string
	Body   Expr
	Markup []*Element
}

func (*Func) isExpr() {}

// Kind returns [KindArrowFunctionExpression] or [KindFunctionExpression].
func (f *Func) Kind() Kind {
	if f.Arrow {
		return KindArrowFunctionExpression
	}
	return KindFunctionExpression
}

// Array is an array literal.
type Array struct {
	span
	Elems []Expr
}

func (*Array) isExpr()    {}
func (*Array) Kind() Kind { return KindArrayExpression }

// Object is an object literal.
type Object struct {
	span
	Props []*Prop
}

func (*Object) isExpr()    {}
func (*Object) Kind() Kind { return KindObjectExpression }

// Prop is an object literal property. Key is empty for spreads.
type Prop struct {
	Key   string
	Value Expr
}

// Sequence is a comma expression a, b. It evaluates to its last expression.
type Sequence struct {
	span
	Exprs []Expr
}

func (*Sequence) isExpr()    {}
func (*Sequence) Kind() Kind { return KindSequenceExpression }

// Spread is a ...x element of arrays, objects and call arguments.
type Spread struct {
	span
	Arg Expr
}

func (*Spread) isExpr()    {}
func (*Spread) Kind() Kind { return KindSpreadElement }

// Empty is the content of {} or {/* comment */}.
type Empty struct {
	span
	Comment string
}

func (*Empty) isExpr()    {}
func (*Empty) Kind() Kind { return KindJSXEmptyExpression }
