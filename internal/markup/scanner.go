package markup

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// File holds markup extracted from a single source file.
type File struct {
	Name   string
	Src    []byte
	Roots  []*Element
	Errors []*SyntaxError
}

// Parse extracts every markup root from host source code (JavaScript,
// TypeScript or Go with embedded markup). Host code itself is only scanned
// lexically: strings, template literals and comments are skipped and a < in
// an expression position followed by a tag name or > starts a root.
//
// A root that fails to parse is recorded into Errors and scanning resumes right
// past the offending position.
//
// In .tsx files <T,> and <T extends U> open type parameters of a generic arrow
// function rather than markup.
func Parse(name string, src []byte) *File {
	p := &parser{
		src: src,
		tsx: strings.EqualFold(filepath.Ext(name), ".tsx"),
	}
	roots, _ := p.scan(0)

	return &File{
		Name:   name,
		Src:    src,
		Roots:  roots,
		Errors: p.errs,
	}
}

type parser struct {
	src  []byte
	pos  int
	errs []*SyntaxError
	tsx  bool
}

// hostToken classifies the previous significant token of host code.
type hostToken int

const (
	// hostPunct means an expression may start here.
	hostPunct hostToken = iota

	// hostOperand means an operand was just seen, so < is a comparison.
	hostOperand
)

// keywords after which an expression starts.
var exprKeywords = map[string]struct{}{
	"return":  {},
	"yield":   {},
	"await":   {},
	"default": {},
	"case":    {},
	"else":    {},
	"do":      {},
	"in":      {},
	"of":      {},
	"typeof":  {},
	"void":    {},
	"delete":  {},
}

// scan walks host code until the unbalanced closing bracket until, or till the
// end of input when until is zero, and parses every markup root it meets.
// The closing bracket is consumed, closed reports whether it was met.
func (p *parser) scan(until byte) (_ []*Element, closed bool) {
	var (
		roots  []*Element
		depth  int
		prev   = hostPunct
		lenSrc = len(p.src)
	)

	for p.pos < lenSrc {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++

		case p.hasPrefix("//") || p.hasPrefix("/*"):
			p.skipTrivia()

		case c == '/' && prev == hostPunct:
			if !p.skipRegexp() {
				p.pos++
				continue
			}
			prev = hostOperand

		case c == '"' || c == '\'':
			p.skipString(c)
			prev = hostOperand

		case c == '`':
			roots = append(roots, p.skipTemplate()...)
			prev = hostOperand

		case c == '(' || c == '[' || c == '{':
			depth++
			p.pos++
			prev = hostPunct

		case c == ')' || c == ']' || c == '}':
			p.pos++
			if depth == 0 {
				if c == until {
					return roots, true
				}
				// Stray closer: keep going.
				continue
			}
			depth--
			if c == '}' {
				prev = hostPunct
			} else {
				prev = hostOperand
			}

		case c == '<' && prev == hostPunct && p.startsMarkup():
			start := p.pos
			el, err := p.parseElement()
			if err != nil {
				resume := start
				var se *SyntaxError
				if errors.As(err, &se) {
					p.errs = append(p.errs, se)
					resume = max(resume, se.Offset)
				}
				p.pos = resume + 1
				prev = hostPunct
				continue
			}
			roots = append(roots, el)
			prev = hostOperand

		case c >= '0' && c <= '9':
			p.readWord()
			prev = hostOperand

		default:
			r, _ := utf8.DecodeRune(p.src[p.pos:])
			if isIdentStart(r) {
				word := p.readWord()
				if _, ok := exprKeywords[word]; ok {
					prev = hostPunct
				} else {
					prev = hostOperand
				}
				continue
			}

			p.pos++
			prev = hostPunct
		}
	}

	return roots, until == 0
}

// startsMarkup checks if the < at the current position opens an element or a fragment.
func (p *parser) startsMarkup() bool {
	if p.pos+1 >= len(p.src) {
		return false
	}
	if p.src[p.pos+1] == '>' {
		return true
	}
	r, _ := utf8.DecodeRune(p.src[p.pos+1:])
	return isIdentStart(r) && !p.startsTypeParams()
}

// startsTypeParams checks if the < at the current position opens type
// parameters <T,> or <T extends U> of a generic arrow function in a .tsx file.
func (p *parser) startsTypeParams() bool {
	if !p.tsx {
		return false
	}

	save := p.pos
	defer func() { p.pos = save }()

	p.pos++
	p.skipSpaces()
	word := p.readWord()
	if word == "const" {
		p.skipSpaces()
		word = p.readWord()
	}
	if word == "" {
		return false
	}
	p.skipSpaces()

	return p.peek() == ',' || p.hasWord("extends")
}

// skipTypeParams skips balanced <…> type parameters.
func (p *parser) skipTypeParams() {
	depth := 0
	for !p.eof() {
		switch {
		case p.hasPrefix("=>"):
			p.pos += 2
		case p.peek() == '<':
			depth++
			p.pos++
		case p.peek() == '>':
			depth--
			p.pos++
			if depth == 0 {
				return
			}
		case p.peek() == '"' || p.peek() == '\'':
			p.skipString(p.peek())
		default:
			p.pos++
		}
	}
}

// skipRegexp skips a /pattern/flags literal at the current position. The
// position is kept when the literal is not terminated on its line.
func (p *parser) skipRegexp() bool {
	var class bool
	for i := p.pos + 1; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			i++
		case '\n', '\r':
			return false
		case '[':
			class = true
		case ']':
			class = false
		case '/':
			if class {
				continue
			}
			p.pos = i + 1
			p.readWord()
			return true
		}
	}

	return false
}

// skipString skips a quoted string. Unterminated strings end at the line end.
func (p *parser) skipString(q byte) {
	p.pos++
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
		case q:
			p.pos++
			return
		case '\n':
			return
		default:
			p.pos++
		}
	}
	if p.pos > len(p.src) {
		p.pos = len(p.src)
	}
}

// skipTemplate skips a template literal, scanning its ${…} parts as host code.
func (p *parser) skipTemplate() []*Element {
	var roots []*Element

	p.pos++
	for p.pos < len(p.src) {
		switch {
		case p.src[p.pos] == '\\':
			p.pos += 2
		case p.src[p.pos] == '`':
			p.pos++
			return roots
		case p.hasPrefix("${"):
			p.pos += 2
			nested, _ := p.scan('}')
			roots = append(roots, nested...)
		default:
			p.pos++
		}
	}
	if p.pos > len(p.src) {
		p.pos = len(p.src)
	}

	return roots
}

// skipTrivia skips white space and comments.
func (p *parser) skipTrivia() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case p.hasPrefix("//"):
			if i := bytes.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.src)
			}
		case p.hasPrefix("/*"):
			if i := bytes.Index(p.src[p.pos+2:], []byte("*/")); i >= 0 {
				p.pos += i + 4
			} else {
				p.pos = len(p.src)
			}
		default:
			return
		}
	}
}

// skipSpaces skips white space only.
func (p *parser) skipSpaces() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.src) {
		return 0
	}
	return p.src[p.pos+n]
}

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.src[p.pos:], []byte(s))
}

// hasWord checks if the input continues with the given keyword followed by a non-identifier character.
func (p *parser) hasWord(w string) bool {
	if !p.hasPrefix(w) {
		return false
	}
	if p.pos+len(w) >= len(p.src) {
		return true
	}
	r, _ := utf8.DecodeRune(p.src[p.pos+len(w):])
	return !isIdentPart(r)
}

func (p *parser) consume(c byte) bool {
	if p.peek() != c {
		return false
	}
	p.pos++
	return true
}

// readWord reads an identifier-like word: identifiers, keywords and numbers.
func (p *parser) readWord() string {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRune(p.src[p.pos:])
		if !isIdentPart(r) {
			break
		}
		p.pos += size
	}

	return string(p.src[start:p.pos])
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
