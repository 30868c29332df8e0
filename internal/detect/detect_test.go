package detect

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sirkon/deepequal"

	"github.com/sirkon/jsxtext/internal/jsxrules"
	"github.com/sirkon/jsxtext/internal/markup"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "text sibling",
			src:  `<div>text {cond && 'str'}</div>`,
			want: []string{`{cond && 'str'}`},
		},
		{
			name: "no siblings",
			src:  `<div>{cond && 'str'}</div>`,
		},
		{
			name: "identifier sibling",
			src:  `<div>{a} {cond && 'str'}</div>`,
			want: []string{`{cond && 'str'}`},
		},
		{
			name: "element operand",
			src:  `<div>{cond && <span>str</span>}</div>`,
		},
		{
			name: "whitespace only text",
			src:  `<div>   {cond && 'str'}</div>`,
		},
		{
			name: "whitespace with newlines",
			src: `<div>
    {cond && 'str'}
  </div>`,
		},
		{
			name: "member sibling after",
			src:  `<div>{ok || 'n/a'}{user.name}</div>`,
			want: []string{`{ok || 'n/a'}`},
		},
		{
			name: "text and member siblings report once",
			src:  `<div>{user.name}: {ok || 'n/a'}</div>`,
			want: []string{`{ok || 'n/a'}`},
		},
		{
			name: "literal on the left",
			src:  `<div>{'a' && b}text</div>`,
			want: []string{`{'a' && b}`},
		},
		{
			name: "nullish coalescing",
			src:  `<p>label: {title ?? 'none'}</p>`,
			want: []string{`{title ?? 'none'}`},
		},
		{
			name: "number literal operand",
			src:  `<p>count {n || 0}</p>`,
			want: []string{`{n || 0}`},
		},
		{
			name: "element siblings do not count",
			src:  `<div><b>x</b>{cond && 'str'}<br/></div>`,
		},
		{
			name: "logical siblings do not count",
			src:  `<div>{cond && 'str'}{other && 'x'}</div>`,
		},
		{
			name: "call sibling does not count",
			src:  `<div>{format(x)}{cond && 'str'}</div>`,
		},
		{
			name: "ternary is not a candidate",
			src:  `<p>text {cond ? 'a' : 'b'}</p>`,
		},
		{
			name: "call is not a candidate",
			src:  `<p>text {format(x)}</p>`,
		},
		{
			name: "identifier is not a candidate",
			src:  `<p>text {x}</p>`,
		},
		{
			name: "template operand is not a literal",
			src:  "<p>text {cond && `str`}</p>",
		},
		{
			name: "chain checks outer operands",
			src:  `<p>text {a && b && 'x'}</p>`,
			want: []string{`{a && b && 'x'}`},
		},
		{
			name: "nested literal is not inspected",
			src:  `<p>text {a && ('x' || b)}</p>`,
		},
		{
			name: "attribute container has no siblings",
			src:  `<p title={cond && 'x'}>text</p>`,
		},
		{
			name: "fragment parent",
			src:  `<>{name} {cond && 'str'}</>`,
			want: []string{`{cond && 'str'}`},
		},
		{
			name: "markup nested in expressions",
			src:  `<ul>{items.map(i => <li>{i.name} {i.done && 'done'}</li>)}</ul>`,
			want: []string{`{i.done && 'done'}`},
		},
		{
			name: "non-breaking space reference is blank",
			src:  `<div>&nbsp;{cond && 'str'}</div>`,
		},
		{
			name: "numeric space reference is blank",
			src:  `<div>&#32;{cond && 'str'}</div>`,
		},
		{
			name: "byte order mark reference is blank",
			src:  `<div>&#xFEFF;{cond && 'str'}</div>`,
		},
		{
			name: "visible character reference is text",
			src:  `<div>&amp;{cond && 'str'}</div>`,
			want: []string{`{cond && 'str'}`},
		},
		{
			name: "regular expression operand is a literal",
			src:  `<p>text {cond && /re/g} <b/></p>`,
			want: []string{`{cond && /re/g}`},
		},
		{
			name: "regular expression does not break sibling checks",
			src:  `<p>{pattern || /x/}{a} {cond && 'str'}</p>`,
			want: []string{`{pattern || /x/}`, `{cond && 'str'}`},
		},
		{
			name: "sequence operand is not a literal",
			src:  `<p>text {cond && (log(), 'x')}</p>`,
		},
		{
			name: "sequence is not a candidate",
			src:  `<p>text {a, 'x'}</p>`,
		},
		{
			name: "several violations",
			src:  `<p>a {x && 'b'} c {y && 'd'}</p>`,
			want: []string{`{x && 'b'}`, `{y && 'd'}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseElement(t, tt.src)

			var got []string
			r := ReporterFunc(func(node markup.Node, id jsxrules.MessageID) {
				if id != jsxrules.NoUnwrappedJSX {
					t.Errorf("unexpected message id %s", id)
				}
				got = append(got, tt.src[node.Pos():node.End()])
			})
			checkTree(root, r)

			if !reflect.DeepEqual(got, tt.want) {
				deepequal.SideBySide(t, "reports", tt.want, got)
			}
		})
	}
}

func TestCheckHandBuiltTree(t *testing.T) {
	cond := &markup.Container{
		Expr: &markup.Logical{
			Op:    "&&",
			Left:  &markup.Ident{Name: "cond"},
			Right: &markup.Literal{Raw: `"str"`, Value: "str"},
		},
	}

	tests := []struct {
		name     string
		children []markup.Node
		want     int
	}{
		{
			name:     "string literal child",
			children: []markup.Node{&markup.Text{Value: "text", Source: markup.TextLiteral}, cond},
			want:     1,
		},
		{
			name:     "blank string literal child",
			children: []markup.Node{&markup.Text{Value: " \n\t", Source: markup.TextLiteral}, cond},
		},
		{
			name:     "container without expression",
			children: []markup.Node{&markup.Container{}, cond},
		},
		{
			name: "member sibling",
			children: []markup.Node{
				&markup.Container{Expr: &markup.Member{
					Object:   &markup.This{},
					Property: &markup.Ident{Name: "label"},
				}},
				cond,
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := &markup.Element{Name: "div", Children: tt.children}

			var got int
			Check(cond, parent, ReporterFunc(func(node markup.Node, id jsxrules.MessageID) {
				if node != cond {
					t.Errorf("report is attached to %T, want the triggering container", node)
				}
				got++
			}))
			if got != tt.want {
				t.Errorf("got %d reports, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckNilParent(t *testing.T) {
	node := &markup.Container{Expr: &markup.Logical{
		Op:    "&&",
		Left:  &markup.Ident{Name: "a"},
		Right: &markup.Literal{Raw: "'b'", Value: "b"},
	}}

	Check(node, nil, ReporterFunc(func(markup.Node, jsxrules.MessageID) {
		t.Error("unexpected report for a container without parent")
	}))
	Check(node, &markup.Element{Name: "div"}, ReporterFunc(func(markup.Node, jsxrules.MessageID) {
		t.Error("unexpected report for a parent without children")
	}))
}

// Inserting or removing blank text never changes the verdict.
func TestCheckIgnoresBlankText(t *testing.T) {
	bases := []string{
		`<div>{cond && 'str'}</div>`,
		`<div>text{cond && 'str'}</div>`,
		`<div>{a}{cond && 'str'}</div>`,
		`<div><b/>{cond && <i/>}</div>`,
	}
	blanks := []string{" ", "\n  ", "\t\n", "&nbsp;", "&#32;", "\u00a0", " &#160;\n"}

	for _, base := range bases {
		want := countReports(t, base)
		for _, blank := range blanks {
			padded := strings.ReplaceAll(base, "{cond", blank+"{cond")
			padded = strings.Replace(padded, "</div>", blank+"</div>", 1)
			if got := countReports(t, padded); got != want {
				t.Errorf("%q: got %d reports, want %d as for %q", padded, got, want, base)
			}
		}
	}
}

func TestReportedMessageIsInCatalog(t *testing.T) {
	root := parseElement(t, `<div>text {cond && 'str'}</div>`)

	var ids []jsxrules.MessageID
	checkTree(root, ReporterFunc(func(_ markup.Node, id jsxrules.MessageID) {
		ids = append(ids, id)
	}))
	if len(ids) != 1 {
		t.Fatalf("got %d reports, want 1", len(ids))
	}

	msg, ok := jsxrules.Message(ids[0])
	if !ok {
		t.Fatalf("reported message id %s is missing in the rule catalog", ids[0])
	}
	if msg != "No unwrapped JSX text" {
		t.Errorf("got message %q", msg)
	}
}

func TestClassify(t *testing.T) {
	root := parseElement(t, `<div>
  intro
  {a}{b.c}{d()}{e && 'f'}<g/>{/* note */}
</div>`)

	s := Classify(root)

	var text []string
	for _, n := range s.Text {
		text = append(text, strings.TrimSpace(n.Value))
	}
	var interp []string
	for _, n := range s.Interpolations {
		interp = append(interp, n.Expr.Kind().String())
	}

	if !reflect.DeepEqual(text, []string{"intro"}) {
		deepequal.SideBySide(t, "text", []string{"intro"}, text)
	}
	wantInterp := []string{"Identifier", "MemberExpression"}
	if !reflect.DeepEqual(interp, wantInterp) {
		deepequal.SideBySide(t, "interpolations", wantInterp, interp)
	}
	if s.Len() != 3 {
		t.Errorf("got %d siblings, want 3", s.Len())
	}

	if got := Classify(nil).Len(); got != 0 {
		t.Errorf("got %d siblings of a nil parent", got)
	}
}

func parseElement(t *testing.T, src string) *markup.Element {
	t.Helper()

	e, err := markup.ParseExpr(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	root, ok := e.(*markup.Element)
	if !ok {
		t.Fatalf("parse %q: got %T, want an element", src, e)
	}

	return root
}

func checkTree(root *markup.Element, r Reporter) {
	markup.Walk(root, nil, func(n markup.Node, parent *markup.Element) bool {
		if c, ok := n.(*markup.Container); ok {
			Check(c, parent, r)
		}
		return true
	})
}

func countReports(t *testing.T, src string) int {
	var n int
	checkTree(parseElement(t, src), ReporterFunc(func(markup.Node, jsxrules.MessageID) { n++ }))
	return n
}
