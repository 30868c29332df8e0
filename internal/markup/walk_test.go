package markup

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"
)

func TestWalk(t *testing.T) {
	src := `const App = () => (
  <main title={<b>t</b>}>
    intro
    {items.map(i => <li>{i}</li>)}
    <p>{ok && 'done'}</p>
  </main>
)`
	f := Parse("app.jsx", []byte(src))
	if len(f.Errors) > 0 {
		t.Fatalf("unexpected syntax errors: %v", f.Errors)
	}

	var got []string
	WalkFile(f, func(n Node, parent *Element) bool {
		got = append(got, fmt.Sprintf("%s in %s", describe(n), describe(parent)))
		return true
	})

	want := []string{
		"<main> in -",
		"{JSXElement} in -",
		"<b> in -",
		"text(t) in <b>",
		"text(intro) in <main>",
		"{CallExpression} in <main>",
		"<li> in -",
		"{Identifier} in <li>",
		"text() in <main>",
		"<p> in <main>",
		"{LogicalExpression} in <p>",
		"text() in <main>",
	}
	if !reflect.DeepEqual(got, want) {
		deepequal.SideBySide(t, "visits", want, got)
	}
}

func TestWalkSkipsDescendants(t *testing.T) {
	f := Parse("app.jsx", []byte(`x = <div><p>{a}</p><span>{b}</span></div>`))

	var got []string
	WalkFile(f, func(n Node, parent *Element) bool {
		got = append(got, describe(n))
		el, ok := n.(*Element)
		return !ok || el.Name != "p"
	})

	want := []string{"<div>", "<p>", "<span>", "{Identifier}"}
	if !reflect.DeepEqual(got, want) {
		deepequal.SideBySide(t, "visits", want, got)
	}
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Element:
		if n == nil {
			return "-"
		}
		return "<" + n.Name + ">"
	case *Text:
		return fmt.Sprintf("text(%s)", trimSpace(n.Value))
	case *Container:
		return "{" + n.Expr.Kind().String() + "}"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func trimSpace(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\n') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\n') {
		s = s[:len(s)-1]
	}
	return s
}
