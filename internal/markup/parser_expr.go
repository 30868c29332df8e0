package markup

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseExpr parses a standalone expression.
func ParseExpr(src string) (Expr, error) {
	p := &parser{src: []byte(src)}
	p.skipTrivia()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipTrivia()
	if !p.eof() {
		return nil, p.errorf(p.pos, "unexpected %q after expression", p.peek())
	}

	return expr, nil
}

// Parse functions never consume trivia following the expression they parse,
// so node spans end exactly at the last byte of the expression.

func (p *parser) parseExpr() (Expr, error) {
	return p.parseConditional()
}

// parseSequence parses an expression or a comma separated sequence of them.
func (p *parser) parseSequence() (Expr, error) {
	start := p.pos
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	exprs := []Expr{first}
	for {
		save := p.pos
		p.skipTrivia()
		if !p.consume(',') {
			p.pos = save
			break
		}

		p.skipTrivia()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, x)
	}
	if len(exprs) == 1 {
		return first, nil
	}

	return &Sequence{
		span:  span{pos: start, end: p.pos},
		Exprs: exprs,
	}, nil
}

var assignOps = []string{"&&=", "||=", "??=", "**=", "+=", "-=", "*=", "/=", "%=", "="}

func (p *parser) parseConditional() (Expr, error) {
	start := p.pos
	test, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	save := p.pos
	p.skipTrivia()

	if p.peek() == '?' && !p.hasPrefix("??") && !(p.hasPrefix("?.") && !isDigit(p.peekAt(2))) {
		p.pos++
		p.skipTrivia()
		cons, err := p.parseConditional()
		if err != nil {
			return nil, err
		}

		p.skipTrivia()
		if !p.consume(':') {
			return nil, p.errorf(p.pos, "expected : in conditional expression")
		}
		p.skipTrivia()

		alt, err := p.parseConditional()
		if err != nil {
			return nil, err
		}

		return &Conditional{
			span:       span{pos: start, end: p.pos},
			Test:       test,
			Consequent: cons,
			Alternate:  alt,
		}, nil
	}

	for _, op := range assignOps {
		if !p.hasPrefix(op) {
			continue
		}
		if op == "=" && (p.hasPrefix("==") || p.hasPrefix("=>")) {
			break
		}

		p.pos += len(op)
		p.skipTrivia()
		value, err := p.parseConditional()
		if err != nil {
			return nil, err
		}

		return &Binary{
			span:  span{pos: start, end: p.pos},
			Op:    op,
			Left:  test,
			Right: value,
		}, nil
	}

	p.pos = save
	return test, nil
}

func (p *parser) parseLogicalOr() (Expr, error) {
	start := p.pos
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}

	for {
		op := p.logicalOp("||", "??")
		if op == "" {
			return left, nil
		}

		p.skipTrivia()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}

		left = &Logical{
			span:  span{pos: start, end: p.pos},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseLogicalAnd() (Expr, error) {
	start := p.pos
	left, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}

	for {
		op := p.logicalOp("&&")
		if op == "" {
			return left, nil
		}

		p.skipTrivia()
		right, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}

		left = &Logical{
			span:  span{pos: start, end: p.pos},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

// logicalOp consumes one of the given operators unless it is a part of a
// compound assignment.
func (p *parser) logicalOp(ops ...string) string {
	save := p.pos
	p.skipTrivia()
	for _, op := range ops {
		if p.hasPrefix(op) && p.peekAt(len(op)) != '=' {
			p.pos += len(op)
			return op
		}
	}

	p.pos = save
	return ""
}

type binaryOperator struct {
	op   string
	prec int
	word bool
}

// binaryOps are ordered so longer operators are matched first.
var binaryOps = []binaryOperator{
	{op: "===", prec: 1},
	{op: "!==", prec: 1},
	{op: "==", prec: 1},
	{op: "!=", prec: 1},
	{op: "<=", prec: 2},
	{op: ">=", prec: 2},
	{op: "<", prec: 2},
	{op: ">", prec: 2},
	{op: "instanceof", prec: 2, word: true},
	{op: "in", prec: 2, word: true},
	{op: "+", prec: 3},
	{op: "-", prec: 3},
	{op: "**", prec: 5},
	{op: "*", prec: 4},
	{op: "/", prec: 4},
	{op: "%", prec: 4},
}

func (p *parser) parseBinary(minPrec int) (Expr, error) {
	start := p.pos
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		save := p.pos
		op, prec := p.binaryOp()
		if op == "" || prec < minPrec {
			p.pos = save
			return left, nil
		}

		p.skipTrivia()
		next := prec + 1
		if op == "**" {
			// right associative
			next = prec
		}
		right, err := p.parseBinary(next)
		if err != nil {
			return nil, err
		}

		left = &Binary{
			span:  span{pos: start, end: p.pos},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

// binaryOp consumes a binary operator and returns it with its precedence.
func (p *parser) binaryOp() (string, int) {
	p.skipTrivia()
	for _, b := range binaryOps {
		if b.word {
			if p.hasWord(b.op) {
				p.pos += len(b.op)
				return b.op, b.prec
			}
			continue
		}
		if !p.hasPrefix(b.op) {
			continue
		}

		next := p.peekAt(len(b.op))
		switch b.op {
		case "+", "-", "*", "/", "%", "**":
			// compound assignments, updates and comments are not binary operators
			if next == '=' || next == b.op[0] || (b.op == "/" && next == '*') {
				return "", 0
			}
		}

		p.pos += len(b.op)
		return b.op, b.prec
	}

	return "", 0
}

var unaryOps = []string{"++", "--", "!", "-", "+", "~"}

var unaryWords = []string{"typeof", "void", "delete", "await"}

func (p *parser) parseUnary() (Expr, error) {
	start := p.pos

	op := ""
	for _, o := range unaryOps {
		if p.hasPrefix(o) {
			op = o
			break
		}
	}
	if op == "" {
		for _, w := range unaryWords {
			if p.hasWord(w) {
				op = w
				break
			}
		}
	}
	if op == "" {
		return p.parsePostfix()
	}

	p.pos += len(op)
	p.skipTrivia()
	arg, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Unary{
		span: span{pos: start, end: p.pos},
		Op:   op,
		Arg:  arg,
	}, nil
}

func (p *parser) parsePostfix() (Expr, error) {
	start := p.pos
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		save := p.pos
		p.skipTrivia()

		switch {
		case p.hasPrefix("?.("):
			p.pos += 2
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			x = &Call{span: span{pos: start, end: p.pos}, Callee: x, Args: args, Optional: true}

		case p.hasPrefix("?.["):
			p.pos += 2
			prop, err := p.parseComputed()
			if err != nil {
				return nil, err
			}
			x = &Member{span: span{pos: start, end: p.pos}, Object: x, Property: prop, Computed: true, Optional: true}

		case p.hasPrefix("?.") && !isDigit(p.peekAt(2)):
			p.pos += 2
			prop, err := p.parseProperty()
			if err != nil {
				return nil, err
			}
			x = &Member{span: span{pos: start, end: p.pos}, Object: x, Property: prop, Optional: true}

		case p.peek() == '.' && !p.hasPrefix("..."):
			p.pos++
			prop, err := p.parseProperty()
			if err != nil {
				return nil, err
			}
			x = &Member{span: span{pos: start, end: p.pos}, Object: x, Property: prop}

		case p.peek() == '[':
			prop, err := p.parseComputed()
			if err != nil {
				return nil, err
			}
			x = &Member{span: span{pos: start, end: p.pos}, Object: x, Property: prop, Computed: true}

		case p.peek() == '(':
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			x = &Call{span: span{pos: start, end: p.pos}, Callee: x, Args: args}

		case p.hasPrefix("++") || p.hasPrefix("--"):
			op := string(p.src[p.pos : p.pos+2])
			p.pos += 2
			x = &Unary{span: span{pos: start, end: p.pos}, Op: op, Arg: x}

		case p.peek() == '!' && p.peekAt(1) != '=':
			// TypeScript non-null assertion.
			p.pos++

		case p.hasWord("as") || p.hasWord("satisfies"):
			p.readWord()
			p.skipType()

		default:
			p.pos = save
			return x, nil
		}
	}
}

func (p *parser) parseProperty() (Expr, error) {
	p.skipTrivia()
	start := p.pos
	if p.peek() == '#' {
		p.pos++
	}
	name := p.readWord()
	if name == "" {
		return nil, p.errorf(start, "expected property name")
	}

	return &Ident{span: span{pos: start, end: p.pos}, Name: string(p.src[start:p.pos])}, nil
}

// parseComputed parses [expr].
func (p *parser) parseComputed() (Expr, error) {
	p.pos++ // [
	p.skipTrivia()
	prop, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipTrivia()
	if !p.consume(']') {
		return nil, p.errorf(p.pos, "expected ] after computed property")
	}

	return prop, nil
}

// parseArgs parses (a, ...b, c).
func (p *parser) parseArgs() ([]Expr, error) {
	p.pos++ // (
	return p.parseList(')')
}

// parseList parses comma separated expressions and spreads up to the closing bracket.
func (p *parser) parseList(closer byte) ([]Expr, error) {
	var list []Expr
	for {
		p.skipTrivia()
		if p.eof() {
			return nil, p.errorf(p.pos, "expected %q, got end of input", closer)
		}
		if p.consume(closer) {
			return list, nil
		}
		if p.consume(',') {
			// array hole
			continue
		}

		item, err := p.parseListItem()
		if err != nil {
			return nil, err
		}
		list = append(list, item)

		p.skipTrivia()
		if p.consume(',') {
			continue
		}
		if p.peek() != closer {
			return nil, p.errorf(p.pos, "expected , or %q, got %q", closer, p.peek())
		}
	}
}

func (p *parser) parseListItem() (Expr, error) {
	if !p.hasPrefix("...") {
		return p.parseExpr()
	}

	start := p.pos
	p.pos += 3
	p.skipTrivia()
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Spread{span: span{pos: start, end: p.pos}, Arg: arg}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	start := p.pos
	if p.eof() {
		return nil, p.errorf(start, "unexpected end of input, expected expression")
	}

	c := p.peek()
	switch {
	case c == '"' || c == '\'':
		return p.parseString()

	case c == '`':
		return p.parseTemplate()

	case isDigit(c) || (c == '.' && isDigit(p.peekAt(1))):
		return p.parseNumber()

	case c == '(':
		return p.parseParen()

	case c == '[':
		p.pos++
		elems, err := p.parseList(']')
		if err != nil {
			return nil, err
		}
		return &Array{span: span{pos: start, end: p.pos}, Elems: elems}, nil

	case c == '{':
		return p.parseObject()

	case c == '/':
		return p.parseRegexp()

	case c == '<' && p.startsTypeParams():
		p.skipTypeParams()
		p.skipTrivia()
		if p.peek() == '(' {
			if f, ok, err := p.tryArrow(start); ok || err != nil {
				return f, err
			}
		}
		return nil, p.errorf(start, "expected arrow function after type parameters")

	case c == '<':
		if !p.startsMarkup() {
			return nil, p.errorf(start, "unexpected <, expected expression")
		}
		return p.parseElement()
	}

	r, _ := utf8.DecodeRune(p.src[p.pos:])
	if !isIdentStart(r) {
		return nil, p.errorf(start, "unexpected %q, expected expression", c)
	}

	word := p.readWord()
	switch word {
	case "true", "false":
		return &Literal{span: span{pos: start, end: p.pos}, Raw: word, Value: word == "true"}, nil
	case "null":
		return &Literal{span: span{pos: start, end: p.pos}, Raw: word}, nil
	case "this":
		return &This{span: span{pos: start, end: p.pos}}, nil
	case "function":
		return p.parseFunction(start)
	case "new":
		return p.parseNew(start)
	case "async":
		save := p.pos
		p.skipTrivia()
		if p.hasWord("function") {
			p.readWord()
			return p.parseFunction(start)
		}
		if p.peek() == '(' {
			if f, ok, err := p.tryArrow(start); ok || err != nil {
				return f, err
			}
		}
		p.pos = save
	}

	save := p.pos
	p.skipTrivia()
	if p.hasPrefix("=>") {
		p.pos += 2
		return p.parseArrowBody(start, word)
	}
	p.pos = save

	return &Ident{span: span{pos: start, end: p.pos}, Name: word}, nil
}

// parseParen parses a parenthesised expression or an arrow function.
// Parentheses are not kept in the tree.
func (p *parser) parseParen() (Expr, error) {
	start := p.pos
	if f, ok, err := p.tryArrow(start); ok || err != nil {
		return f, err
	}

	p.pos = start + 1
	p.skipTrivia()
	x, err := p.parseSequence()
	if err != nil {
		return nil, err
	}

	p.skipTrivia()
	if !p.consume(')') {
		return nil, p.errorf(p.pos, "expected ) after expression, got %q", p.peek())
	}

	return x, nil
}

// tryArrow parses an arrow function with parenthesised parameters at the
// current position. ok is false when the parentheses are not followed by =>.
func (p *parser) tryArrow(start int) (_ Expr, ok bool, _ error) {
	open := p.pos
	nerrs := len(p.errs)
	p.pos++ // (
	_, closed := p.scan(')')
	p.errs = p.errs[:nerrs]
	if !closed {
		p.pos = open
		return nil, false, nil
	}

	params := strings.TrimSpace(string(p.src[open+1 : p.pos-1]))
	p.skipTrivia()
	if p.peek() == ':' {
		// TypeScript return type annotation.
		p.pos++
		p.skipType()
		p.skipTrivia()
	}
	if !p.hasPrefix("=>") {
		p.pos = open
		return nil, false, nil
	}

	p.pos += 2
	f, err := p.parseArrowBody(start, params)
	return f, true, err
}

func (p *parser) parseArrowBody(start int, params string) (Expr, error) {
	p.skipTrivia()
	if p.consume('{') {
		roots, closed := p.scan('}')
		if !closed {
			return nil, p.errorf(start, "function body is not closed")
		}
		return &Func{
			span:   span{pos: start, end: p.pos},
			Arrow:  true,
			Params: params,
			Markup: roots,
		}, nil
	}

	body, err := p.parseConditional()
	if err != nil {
		return nil, err
	}

	return &Func{
		span:   span{pos: start, end: p.pos},
		Arrow:  true,
		Params: params,
		Body:   body,
	}, nil
}

// parseFunction parses the rest of a function expression after the function keyword.
func (p *parser) parseFunction(start int) (Expr, error) {
	p.skipTrivia()
	p.consume('*')
	p.skipTrivia()
	p.readWord()
	p.skipTrivia()

	if !p.consume('(') {
		return nil, p.errorf(p.pos, "expected ( in function expression")
	}
	params, roots, err := p.parseFuncRest(start)
	if err != nil {
		return nil, err
	}

	return &Func{
		span:   span{pos: start, end: p.pos},
		Params: params,
		Markup: roots,
	}, nil
}

// parseFuncRest parses function parameters right after ( and the block body
// that follows them. Return type annotations between them are skipped.
func (p *parser) parseFuncRest(start int) (string, []*Element, error) {
	open := p.pos
	if _, closed := p.scan(')'); !closed {
		return "", nil, p.errorf(start, "function parameters are not closed")
	}
	params := strings.TrimSpace(string(p.src[open : p.pos-1]))

	for !p.eof() && p.peek() != '{' {
		p.pos++
	}
	if !p.consume('{') {
		return "", nil, p.errorf(start, "expected function body")
	}
	roots, closed := p.scan('}')
	if !closed {
		return "", nil, p.errorf(start, "function body is not closed")
	}

	return params, roots, nil
}

// parseNew parses the rest of new Callee(args) after the new keyword.
func (p *parser) parseNew(start int) (Expr, error) {
	p.skipTrivia()
	cstart := p.pos
	callee, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		save := p.pos
		p.skipTrivia()
		if p.peek() != '.' || p.hasPrefix("...") {
			p.pos = save
			break
		}
		p.pos++
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		callee = &Member{span: span{pos: cstart, end: p.pos}, Object: callee, Property: prop}
	}

	call := &Call{Callee: callee, New: true}
	save := p.pos
	p.skipTrivia()
	if p.peek() == '(' {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		call.Args = args
	} else {
		p.pos = save
	}
	call.span = span{pos: start, end: p.pos}

	return call, nil
}

func (p *parser) parseObject() (Expr, error) {
	start := p.pos
	p.pos++ // {

	obj := &Object{}
	for {
		p.skipTrivia()
		if p.eof() {
			return nil, p.errorf(start, "object literal is not closed")
		}
		if p.consume('}') {
			break
		}

		prop, err := p.parseProp()
		if err != nil {
			return nil, err
		}
		obj.Props = append(obj.Props, prop)

		p.skipTrivia()
		if p.consume(',') {
			continue
		}
		if p.peek() != '}' {
			return nil, p.errorf(p.pos, "expected , or } in object literal, got %q", p.peek())
		}
	}

	obj.span = span{pos: start, end: p.pos}
	return obj, nil
}

func (p *parser) parseProp() (*Prop, error) {
	if p.hasPrefix("...") {
		spread, err := p.parseListItem()
		if err != nil {
			return nil, err
		}
		return &Prop{Value: spread}, nil
	}

	kstart := p.pos
	var key string
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		lit, err := p.parseString()
		if err != nil {
			return nil, err
		}
		key = lit.(*Literal).Value.(string)
	case c == '[':
		if _, err := p.parseComputed(); err != nil {
			return nil, err
		}
		key = string(p.src[kstart:p.pos])
	default:
		key = p.readWord()
		if key == "" {
			return nil, p.errorf(kstart, "unexpected %q in object literal", c)
		}
	}
	kend := p.pos

	p.skipTrivia()
	switch {
	case p.consume(':'):
		p.skipTrivia()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Prop{Key: key, Value: value}, nil

	case p.peek() == '(':
		// method shorthand
		p.pos++
		params, roots, err := p.parseFuncRest(kstart)
		if err != nil {
			return nil, err
		}
		return &Prop{
			Key: key,
			Value: &Func{
				span:   span{pos: kstart, end: p.pos},
				Params: params,
				Markup: roots,
			},
		}, nil

	default:
		p.pos = kend
		return &Prop{
			Key:   key,
			Value: &Ident{span: span{pos: kstart, end: kend}, Name: key},
		}, nil
	}
}

func (p *parser) parseString() (Expr, error) {
	start := p.pos
	q := p.src[p.pos]
	p.pos++

	var b strings.Builder
	for {
		if p.eof() || p.peek() == '\n' {
			return nil, p.errorf(start, "unterminated string literal")
		}

		c := p.src[p.pos]
		switch c {
		case q:
			p.pos++
			return &Literal{
				span:  span{pos: start, end: p.pos},
				Raw:   string(p.src[start:p.pos]),
				Value: b.String(),
			}, nil

		case '\\':
			p.pos++
			if p.eof() {
				return nil, p.errorf(start, "unterminated string literal")
			}
			p.writeEscape(&b)

		default:
			b.WriteByte(c)
			p.pos++
		}
	}
}

// writeEscape decodes the escape sequence following a backslash.
func (p *parser) writeEscape(b *strings.Builder) {
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\n':
		// line continuation
	case 'x', 'u':
		digits := 2
		if c == 'u' {
			digits = 4
			if p.peek() == '{' {
				end := strings.IndexByte(string(p.src[p.pos:]), '}')
				if end > 0 {
					if v, err := strconv.ParseUint(string(p.src[p.pos+1:p.pos+end]), 16, 32); err == nil {
						b.WriteRune(rune(v))
						p.pos += end + 1
						return
					}
				}
			}
		}
		if p.pos+digits <= len(p.src) {
			if v, err := strconv.ParseUint(string(p.src[p.pos:p.pos+digits]), 16, 32); err == nil {
				b.WriteRune(rune(v))
				p.pos += digits
				return
			}
		}
		b.WriteByte(c)
	default:
		b.WriteByte(c)
	}
}

func (p *parser) parseTemplate() (Expr, error) {
	start := p.pos
	p.pos++ // `

	tmpl := &Template{}
	var quasi strings.Builder
	for {
		if p.eof() {
			return nil, p.errorf(start, "unterminated template literal")
		}

		switch {
		case p.peek() == '`':
			p.pos++
			tmpl.Quasis = append(tmpl.Quasis, quasi.String())
			tmpl.span = span{pos: start, end: p.pos}
			return tmpl, nil

		case p.peek() == '\\':
			p.pos++
			if p.eof() {
				return nil, p.errorf(start, "unterminated template literal")
			}
			p.writeEscape(&quasi)

		case p.hasPrefix("${"):
			p.pos += 2
			tmpl.Quasis = append(tmpl.Quasis, quasi.String())
			quasi.Reset()

			p.skipTrivia()
			x, err := p.parseSequence()
			if err != nil {
				return nil, err
			}
			p.skipTrivia()
			if !p.consume('}') {
				return nil, p.errorf(p.pos, "expected } in template literal")
			}
			tmpl.Exprs = append(tmpl.Exprs, x)

		default:
			quasi.WriteByte(p.src[p.pos])
			p.pos++
		}
	}
}

func (p *parser) parseRegexp() (Expr, error) {
	start := p.pos
	if !p.skipRegexp() {
		return nil, p.errorf(start, "unterminated regular expression literal")
	}

	raw := string(p.src[start:p.pos])
	end := strings.LastIndexByte(raw, '/')
	return &Literal{
		span: span{pos: start, end: p.pos},
		Raw:  raw,
		Value: &Regexp{
			Pattern: raw[1:end],
			Flags:   raw[end+1:],
		},
	}, nil
}

func (p *parser) parseNumber() (Expr, error) {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if isDigit(c) || c == '.' || c == '_' || (c|0x20 >= 'a' && c|0x20 <= 'z') {
			if (c == 'e' || c == 'E') && (p.peekAt(1) == '+' || p.peekAt(1) == '-') && !strings.HasPrefix(string(p.src[start:p.pos]), "0x") {
				p.pos += 2
				continue
			}
			p.pos++
			continue
		}
		break
	}

	raw := string(p.src[start:p.pos])
	clean := strings.TrimSuffix(strings.ReplaceAll(raw, "_", ""), "n")

	var value float64
	if v, err := strconv.ParseInt(clean, 0, 64); err == nil {
		value = float64(v)
	} else if v, err := strconv.ParseFloat(clean, 64); err == nil {
		value = v
	} else {
		return nil, p.errorf(start, "malformed number %s", raw)
	}

	return &Literal{
		span:  span{pos: start, end: p.pos},
		Raw:   raw,
		Value: value,
	}, nil
}

// skipType skips a TypeScript type following as or satisfies.
func (p *parser) skipType() {
	depth := 0
	for !p.eof() {
		save := p.pos
		p.skipTrivia()
		if p.eof() {
			p.pos = save
			return
		}

		c := p.peek()
		switch {
		case c == '<' || c == '(' || c == '[' || c == '{':
			depth++
			p.pos++

		case c == '>' || c == ')' || c == ']' || c == '}':
			if depth == 0 {
				p.pos = save
				return
			}
			depth--
			p.pos++

		case depth == 0 && (c == ',' || c == ';' || c == '?' || c == ':' || c == '=' || p.hasPrefix("&&") || p.hasPrefix("||")):
			p.pos = save
			return

		case c == '"' || c == '\'':
			p.skipString(c)

		case isDigit(c):
			p.readWord()

		default:
			r, _ := utf8.DecodeRune(p.src[p.pos:])
			if isIdentStart(r) {
				p.readWord()
				continue
			}
			p.pos++
		}
	}
}
