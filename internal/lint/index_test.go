package lint

import (
	"strings"
	"testing"

	"github.com/sirkon/jsxtext/internal/markup"
)

func TestIndexInnermostNode(t *testing.T) {
	src := `const a = 1
const b = <main>
  head {user.name}
  <p title={cond && 'x'}>{ok && 'y'} tail</p>
</main>
const c = <b/>
`
	f := markup.Parse("a.jsx", []byte(src))
	if len(f.Errors) > 0 {
		t.Fatalf("unexpected syntax errors: %v", f.Errors)
	}
	idx := NewIndex(f)

	type test struct {
		name   string
		at     string
		delta  int
		want   string
		parent string
	}
	tests := []test{
		{
			name: "host code",
			at:   "const a",
		},
		{
			name: "root start",
			at:   "<main>",
			want: "<main>",
		},
		{
			name:   "text",
			at:     "head",
			delta:  2,
			want:   "text",
			parent: "main",
		},
		{
			name:   "container",
			at:     "{user.name}",
			delta:  3,
			want:   "{user.name}",
			parent: "main",
		},
		{
			name:   "element",
			at:     "<p title",
			delta:  3,
			want:   "<p>",
			parent: "main",
		},
		{
			name:  "attribute container",
			at:    "{cond",
			delta: 1,
			want:  "{cond && 'x'}",
		},
		{
			name:   "nested container",
			at:     "{ok",
			want:   "{ok && 'y'}",
			parent: "p",
		},
		{
			name:   "last char of container",
			at:     "'y'}",
			delta:  3,
			want:   "{ok && 'y'}",
			parent: "p",
		},
		{
			name:   "text right after container",
			at:     "} tail",
			delta:  1,
			want:   "text",
			parent: "p",
		},
		{
			name:  "closing tag",
			at:    "</main>",
			delta: 2,
			want:  "<main>",
		},
		{
			name: "between roots",
			at:   "const c",
		},
		{
			name: "second root",
			at:   "<b/>",
			want: "<b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := strings.Index(src, tt.at)
			if offset < 0 {
				t.Fatalf("%q is not in the source", tt.at)
			}

			n := idx.At(offset + tt.delta)
			if got := describeNode(src, n); got != tt.want {
				t.Fatalf("got %q at %d, want %q", got, offset+tt.delta, tt.want)
			}
			if n == nil {
				return
			}

			var parent string
			if p := idx.Parent(n); p != nil {
				parent = p.Name
			}
			if parent != tt.parent {
				t.Errorf("got parent %q, want %q", parent, tt.parent)
			}
		})
	}

	if n := idx.At(-1); n != nil {
		t.Errorf("unexpected node at -1: %s", describeNode(src, n))
	}
	if n := idx.At(len(src) + 10); n != nil {
		t.Errorf("unexpected node past the end: %s", describeNode(src, n))
	}
}

func TestIndexSuperspanAddedLater(t *testing.T) {
	e, err := markup.ParseExpr(`<div><i/></div>`)
	if err != nil {
		t.Fatal(err)
	}
	div := e.(*markup.Element)
	i := div.Children[0]

	idx := NewIndex(&markup.File{})
	idx.Add(i)
	idx.Add(div)

	if got := idx.At(i.Pos() + 1); got != i {
		t.Errorf("got %T at the inner element", got)
	}
	if got := idx.At(0); got != div {
		t.Errorf("got %T at the outer element", got)
	}
}

func describeNode(src string, n markup.Node) string {
	switch n := n.(type) {
	case nil:
		return ""
	case *markup.Element:
		return "<" + n.Name + ">"
	case *markup.Text:
		return "text"
	case *markup.Container:
		return src[n.Pos():n.End()]
	default:
		return "?"
	}
}
