package markup

// Visitor is called for every markup node along with the element holding it
// among its children. parent is nil for roots, for attribute values and for
// markup nested in expressions. Returning false skips the node's descendants.
type Visitor func(n Node, parent *Element) bool

// Walk traverses a markup tree depth-first. It descends into attribute values
// and expressions, so markup embedded in them is visited too.
func Walk(n Node, parent *Element, v Visitor) {
	if n == nil || !v(n, parent) {
		return
	}

	switch n := n.(type) {
	case *Element:
		for _, a := range n.Attrs {
			if a.Value != nil {
				Walk(a.Value, nil, v)
			}
			if a.Spread != nil {
				walkExpr(a.Spread, v)
			}
		}
		for _, c := range n.Children {
			Walk(c, n, v)
		}

	case *Container:
		walkExpr(n.Expr, v)

	case *Text:
	}
}

// WalkFile walks every root of the file.
func WalkFile(f *File, v Visitor) {
	for _, root := range f.Roots {
		Walk(root, nil, v)
	}
}

func walkExpr(e Expr, v Visitor) {
	switch e := e.(type) {
	case nil:
	case *Element:
		Walk(e, nil, v)
	case *Member:
		walkExpr(e.Object, v)
		if e.Computed {
			walkExpr(e.Property, v)
		}
	case *Logical:
		walkExpr(e.Left, v)
		walkExpr(e.Right, v)
	case *Binary:
		walkExpr(e.Left, v)
		walkExpr(e.Right, v)
	case *Unary:
		walkExpr(e.Arg, v)
	case *Conditional:
		walkExpr(e.Test, v)
		walkExpr(e.Consequent, v)
		walkExpr(e.Alternate, v)
	case *Call:
		walkExpr(e.Callee, v)
		for _, a := range e.Args {
			walkExpr(a, v)
		}
	case *Template:
		for _, x := range e.Exprs {
			walkExpr(x, v)
		}
	case *Func:
		walkExpr(e.Body, v)
		for _, el := range e.Markup {
			Walk(el, nil, v)
		}
	case *Array:
		for _, x := range e.Elems {
			walkExpr(x, v)
		}
	case *Object:
		for _, p := range e.Props {
			walkExpr(p.Value, v)
		}
	case *Spread:
		walkExpr(e.Arg, v)
	case *Sequence:
		for _, x := range e.Exprs {
			walkExpr(x, v)
		}
	case *Ident, *This, *Literal, *Empty:
	}
}
