package detect

import (
	"strings"
	"unicode"

	"github.com/sirkon/jsxtext/internal/jsxrules"
	"github.com/sirkon/jsxtext/internal/markup"
)

// Reporter receives rule violations.
type Reporter interface {
	Report(node markup.Node, id jsxrules.MessageID)
}

// ReporterFunc is a function adapter for [Reporter].
type ReporterFunc func(node markup.Node, id jsxrules.MessageID)

// Report calls f(node, id).
func (f ReporterFunc) Report(node markup.Node, id jsxrules.MessageID) {
	f(node, id)
}

// Siblings is a partition of an element's children that matters for the check.
type Siblings struct {
	// Text are children with non-blank text.
	Text []*markup.Text

	// Interpolations are containers holding an identifier or a member access.
	Interpolations []*markup.Container
}

// Len returns the total number of eligible siblings.
func (s Siblings) Len() int {
	return len(s.Text) + len(s.Interpolations)
}

// Classify partitions parent's children. A nil parent has no children.
func Classify(parent *markup.Element) Siblings {
	var res Siblings
	if parent == nil {
		return res
	}

	for _, child := range parent.Children {
		switch child := child.(type) {
		case *markup.Text:
			if strings.TrimFunc(child.Value, isSpace) != "" {
				res.Text = append(res.Text, child)
			}
		case *markup.Container:
			if child.Expr == nil {
				continue
			}
			switch child.Expr.Kind() {
			case markup.KindIdentifier, markup.KindMemberExpression:
				res.Interpolations = append(res.Interpolations, child)
			}
		case *markup.Element:
		}
	}

	return res
}

// isSpace reports white space the way JavaScript String.prototype.trim
// sees it: U+FEFF is space, U+0085 is not.
func isSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

// HasLiteralOperand checks if either immediate operand of e is a literal.
func HasLiteralOperand(e *markup.Logical) bool {
	for _, op := range [...]markup.Expr{e.Left, e.Right} {
		if op != nil && op.Kind() == markup.KindLiteral {
			return true
		}
	}

	return false
}

// Check reports node if it is a conditional text interpolation with siblings
// it may merge with when rendered.
func Check(node *markup.Container, parent *markup.Element, r Reporter) {
	if Violates(node, parent) {
		r.Report(node, jsxrules.NoUnwrappedJSX)
	}
}

// Violates is the verdict of [Check] without reporting.
func Violates(node *markup.Container, parent *markup.Element) bool {
	logical, ok := node.Expr.(*markup.Logical)
	if !ok {
		return false
	}

	return Classify(parent).Len() > 0 && HasLiteralOperand(logical)
}
