package markup

import (
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"
)

func TestParseFindsRoots(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		roots  []string
		errors int
	}{
		{
			name: "component returning markup",
			src: `import React from 'react'

export function Badge({ count }) {
  return <span className="badge">{count > 0 && 'new'}</span>
}
`,
			roots: []string{`<span className="badge">{count > 0 && 'new'}</span>`},
		},
		{
			name: "markup in strings and comments is ignored",
			src: `const a = "<div>not markup</div>"
// return <p>nope</p>
/* <b>nope</b> */
const b = '<i>'
const c = (<em>yes</em>)
`,
			roots: []string{`<em>yes</em>`},
		},
		{
			name: "comparisons are not markup",
			src: `if (a <b && c > d) { run() }
const generic = useState<string>('')
const ok = x < y ? <a/> : <b/>
`,
			roots: []string{`<a/>`, `<b/>`},
		},
		{
			name: "template literal holes are scanned",
			src:  "const s = `<p>${render(<Icon />)}</p>`",
			roots: []string{
				`<Icon />`,
			},
		},
		{
			name: "arrow and ternary positions",
			src: `const List = () => <>
  {items.map(i => <Item key={i} />)}
</>
const el = ok && <Ok/>
`,
			roots: []string{
				"<>\n  {items.map(i => <Item key={i} />)}\n</>",
				`<Ok/>`,
			},
		},
		{
			name: "go host with embedded markup",
			src: `package page

func Title(name string) Node {
	return <h1>Hello, {name}{admin && " (admin)"}</h1>
}
`,
			roots: []string{`<h1>Hello, {name}{admin && " (admin)"}</h1>`},
		},
		{
			name: "regular expressions in host code are skipped",
			src: `const s = x.replace(/<br>/g, '')
const t = /a<b>[/]/.test(v) ? <i/> : null
const r = a / b < c ? <em/> : null
`,
			roots: []string{`<i/>`, `<em/>`},
		},
		{
			name: "regular expression after a keyword",
			src: `function strip(s) {
  return /<\/?p>/g.test(s) && <b>{s}</b>
}
`,
			roots: []string{`<b>{s}</b>`},
		},
		{
			name: "broken root is reported and scanning continues",
			src: `const a = <div><span></div>
const b = <p>ok</p>
`,
			roots:  []string{`<p>ok</p>`},
			errors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Parse("test.jsx", []byte(tt.src))

			var got []string
			for _, root := range f.Roots {
				got = append(got, tt.src[root.Pos():root.End()])
			}
			if !reflect.DeepEqual(got, tt.roots) {
				deepequal.SideBySide(t, "roots", tt.roots, got)
			}

			if len(f.Errors) != tt.errors {
				t.Errorf("got %d syntax errors, want %d: %v", len(f.Errors), tt.errors, f.Errors)
			}
		})
	}
}

func TestParseSyntaxErrorOffset(t *testing.T) {
	src := "const a = 1\nconst b = <div>{a &&}</div>\n"
	f := Parse("broken.jsx", []byte(src))

	if len(f.Errors) != 1 {
		t.Fatalf("got %d syntax errors, want 1", len(f.Errors))
	}
	if len(f.Roots) != 0 {
		t.Fatalf("got %d roots, want none", len(f.Roots))
	}

	err := f.Errors[0]
	if src[err.Offset] != '}' {
		t.Errorf("error offset %d points at %q, want the closing brace", err.Offset, src[err.Offset])
	}
}

func TestParseTypeParameters(t *testing.T) {
	src := `const f = <T,>(x: T) => x
const g = <T extends object>(v: T) => <Box value={v} />
const h = <T>text</T>
const l = <ul>{items.map(<const T,>(i: T) => <li>{i}</li>)}</ul>
`

	f := Parse("generic.tsx", []byte(src))
	if len(f.Errors) > 0 {
		t.Fatalf("unexpected syntax errors: %v", f.Errors)
	}

	var got []string
	for _, root := range f.Roots {
		got = append(got, src[root.Pos():root.End()])
	}
	want := []string{
		`<Box value={v} />`,
		`<T>text</T>`,
		`<ul>{items.map(<const T,>(i: T) => <li>{i}</li>)}</ul>`,
	}
	if !reflect.DeepEqual(got, want) {
		deepequal.SideBySide(t, "roots", want, got)
	}

	if jsx := Parse("generic.jsx", []byte(src)); len(jsx.Errors) == 0 {
		t.Error("type parameters must not be recognized outside .tsx files")
	}
}
