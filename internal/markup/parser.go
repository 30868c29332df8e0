package markup

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// parseElement parses an element or a fragment starting at the current <.
func (p *parser) parseElement() (*Element, error) {
	start := p.pos
	p.pos++ // <

	el := &Element{}
	if p.consume('>') {
		children, err := p.parseChildren("", start)
		if err != nil {
			return nil, err
		}
		el.Children = children
		el.span = span{pos: start, end: p.pos}
		return el, nil
	}

	el.Name = p.readTagName()
	if el.Name == "" {
		return nil, p.errorf(start, "expected tag name after <")
	}

	for {
		p.skipTrivia()
		switch {
		case p.eof():
			return nil, p.errorf(start, "unterminated tag <%s>", el.Name)

		case p.hasPrefix("/>"):
			p.pos += 2
			el.SelfClosing = true
			el.span = span{pos: start, end: p.pos}
			return el, nil

		case p.peek() == '>':
			p.pos++
			children, err := p.parseChildren(el.Name, start)
			if err != nil {
				return nil, err
			}
			el.Children = children
			el.span = span{pos: start, end: p.pos}
			return el, nil

		case p.peek() == '{':
			attr, err := p.parseSpreadAttr()
			if err != nil {
				return nil, err
			}
			el.Attrs = append(el.Attrs, attr)

		default:
			attr, err := p.parseAttr()
			if err != nil {
				return nil, err
			}
			el.Attrs = append(el.Attrs, attr)
		}
	}
}

// parseChildren parses element content up to and including the closing tag </name>.
func (p *parser) parseChildren(name string, open int) ([]Node, error) {
	var children []Node
	for {
		if p.eof() {
			return nil, p.errorf(open, "element <%s> is not closed", name)
		}

		switch p.peek() {
		case '<':
			closed, err := p.parseClosingTag(name)
			if err != nil {
				return nil, err
			}
			if closed {
				return children, nil
			}

			el, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			children = append(children, el)

		case '{':
			c, err := p.parseContainer()
			if err != nil {
				return nil, err
			}
			children = append(children, c)

		default:
			start := p.pos
			for !p.eof() && p.peek() != '<' && p.peek() != '{' {
				p.pos++
			}
			children = append(children, &Text{
				span:   span{pos: start, end: p.pos},
				Value:  html.UnescapeString(string(p.src[start:p.pos])),
				Source: TextJSX,
			})
		}
	}
}

// parseClosingTag consumes </name> when the input continues with a closing tag.
// It fails when the closing tag does not match the expected name.
func (p *parser) parseClosingTag(name string) (bool, error) {
	start := p.pos
	p.pos++ // <
	p.skipSpaces()
	if !p.consume('/') {
		p.pos = start
		return false, nil
	}

	p.skipSpaces()
	got := p.readTagName()
	p.skipSpaces()
	if !p.consume('>') {
		return false, p.errorf(p.pos, "expected > to end closing tag </%s", got)
	}
	if got != name {
		return false, p.errorf(start, "expected </%s>, got </%s>", name, got)
	}

	return true, nil
}

// parseContainer parses an expression container {expr}, {} or {/* comment */}.
func (p *parser) parseContainer() (*Container, error) {
	start := p.pos
	p.pos++ // {

	inner := p.pos
	p.skipTrivia()
	if p.consume('}') {
		return &Container{
			span: span{pos: start, end: p.pos},
			Expr: &Empty{
				span:    span{pos: inner, end: p.pos - 1},
				Comment: string(bytes.TrimSpace(p.src[inner : p.pos-1])),
			},
		}, nil
	}

	expr, err := p.parseSequence()
	if err != nil {
		return nil, err
	}

	p.skipTrivia()
	if !p.consume('}') {
		return nil, p.errorf(p.pos, "expected } to close expression container, got %q", p.peek())
	}

	return &Container{
		span: span{pos: start, end: p.pos},
		Expr: expr,
	}, nil
}

// parseAttr parses name, name="value", name='value', name={expr} or name=<el/>.
func (p *parser) parseAttr() (*Attr, error) {
	start := p.pos
	name := p.readAttrName()
	if name == "" {
		return nil, p.errorf(start, "unexpected %q in tag", p.peek())
	}

	attr := &Attr{
		span: span{pos: start, end: p.pos},
		Name: name,
	}

	save := p.pos
	p.skipTrivia()
	if !p.consume('=') {
		p.pos = save
		return attr, nil
	}
	p.skipTrivia()

	switch q := p.peek(); q {
	case '"', '\'':
		vstart := p.pos
		p.pos++
		i := bytes.IndexByte(p.src[p.pos:], q)
		if i < 0 {
			return nil, p.errorf(vstart, "unterminated value of attribute %s", name)
		}
		value := html.UnescapeString(string(p.src[p.pos : p.pos+i]))
		p.pos += i + 1
		attr.Value = &Text{
			span:   span{pos: vstart, end: p.pos},
			Value:  value,
			Source: TextLiteral,
		}

	case '{':
		c, err := p.parseContainer()
		if err != nil {
			return nil, err
		}
		attr.Value = c

	case '<':
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		attr.Value = el

	default:
		return nil, p.errorf(p.pos, "expected value of attribute %s", name)
	}

	attr.span.end = p.pos
	return attr, nil
}

// parseSpreadAttr parses {...expr} in a tag.
func (p *parser) parseSpreadAttr() (*Attr, error) {
	start := p.pos
	p.pos++ // {
	p.skipTrivia()
	if !p.hasPrefix("...") {
		return nil, p.errorf(p.pos, "expected ... in spread attribute")
	}
	p.pos += 3
	p.skipTrivia()

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipTrivia()
	if !p.consume('}') {
		return nil, p.errorf(p.pos, "expected } to close spread attribute")
	}

	return &Attr{
		span:   span{pos: start, end: p.pos},
		Spread: expr,
	}, nil
}

// readTagName reads names like div, my-element, svg:rect or Foo.Bar.
func (p *parser) readTagName() string {
	return p.readName(true)
}

func (p *parser) readAttrName() string {
	return p.readName(false)
}

func (p *parser) readName(dots bool) string {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRune(p.src[p.pos:])
		if p.pos == start && !isIdentStart(r) {
			break
		}
		if !isIdentPart(r) && r != '-' && r != ':' && !(dots && r == '.') {
			break
		}
		p.pos += size
	}

	return string(p.src[start:p.pos])
}
