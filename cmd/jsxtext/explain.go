package main

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/sirkon/jsxtext/internal/config"
	"github.com/sirkon/jsxtext/internal/detect"
	"github.com/sirkon/jsxtext/internal/jsxrules"
	"github.com/sirkon/jsxtext/internal/lint"
	"github.com/sirkon/jsxtext/internal/markup"
)

const snippetLimit = 40

type explainConfig struct {
	*cli.Command

	Wrapper string `cli:"name=wrapper aliases=w desc='tag used by the suggested fix'"`
}

func (cfg *explainConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: explain requires a file and a position", cli.ErrUsage)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	conf := config.Default()
	if cfg.Wrapper != "" {
		if err := conf.SetWrapper(cfg.Wrapper); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	return explain(cc.Out, args[0], src, args[1], conf.Wrapper)
}

// explain describes the innermost markup node at the position and the
// verdict of the check for it.
func explain(w io.Writer, name string, src []byte, position, wrapper string) error {
	fset := token.NewFileSet()
	file := fset.AddFile(name, -1, len(src))
	file.SetLinesForContent(src)

	offset, err := parsePosition(file, position)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	tree := markup.Parse(name, src)
	for _, e := range tree.Errors {
		fmt.Fprintf(w, "%s: syntax error: %s\n", fset.Position(file.Pos(e.Offset)), e.Msg)
	}

	idx := lint.NewIndex(tree)
	node := idx.At(offset)
	if node == nil {
		fmt.Fprintf(w, "%s: no markup here\n", fset.Position(file.Pos(offset)))
		return nil
	}

	fmt.Fprintf(w, "%s: %s %s\n", fset.Position(file.Pos(node.Pos())), nodeKind(node), snippet(src, node))

	parent := idx.Parent(node)
	if parent != nil {
		fmt.Fprintf(w, "parent: %s at %s\n", elementName(parent), fset.Position(file.Pos(parent.Pos())))
	} else {
		fmt.Fprintln(w, "parent: none")
	}

	c, ok := node.(*markup.Container)
	if !ok {
		fmt.Fprintln(w, "verdict: only expression containers are checked")
		return nil
	}

	fmt.Fprintf(w, "expression: %s\n", describeExpr(c.Expr))

	sibs := detect.Classify(parent)
	fmt.Fprintf(w, "siblings: %d text, %d interpolations\n", len(sibs.Text), len(sibs.Interpolations))
	for _, t := range sibs.Text {
		fmt.Fprintf(w, "  text %s at %s\n", snippet(src, t), fset.Position(file.Pos(t.Pos())))
	}
	for _, i := range sibs.Interpolations {
		fmt.Fprintf(w, "  interpolation %s at %s\n", snippet(src, i), fset.Position(file.Pos(i.Pos())))
	}

	fmt.Fprintf(w, "verdict: %s\n", verdict(c, parent, sibs))
	if detect.Violates(c, parent) {
		fmt.Fprintf(w, "fix: %s\n", lint.WrapFix(c, wrapper).Message)
	}

	return nil
}

func verdict(c *markup.Container, parent *markup.Element, sibs detect.Siblings) string {
	if detect.Violates(c, parent) {
		msg, _ := jsxrules.Message(jsxrules.NoUnwrappedJSX)
		return fmt.Sprintf("%s (%s/%s)", msg, jsxrules.Meta.Name, jsxrules.NoUnwrappedJSX)
	}

	logical, ok := c.Expr.(*markup.Logical)
	switch {
	case !ok:
		return "ok, not a logical expression"
	case !detect.HasLiteralOperand(logical):
		return "ok, no literal operand"
	case sibs.Len() == 0:
		return "ok, nothing to merge with"
	default:
		return "ok"
	}
}

// parsePosition accepts a byte offset or a 1-based line:col pair with the
// column counted in bytes.
func parsePosition(file *token.File, position string) (int, error) {
	lineText, colText, ok := strings.Cut(position, ":")
	if !ok {
		offset, err := strconv.Atoi(position)
		if err != nil {
			return 0, fmt.Errorf("invalid position %q: %w", position, err)
		}
		if offset < 0 || offset >= file.Size() {
			return 0, fmt.Errorf("offset %d is out of the file", offset)
		}
		return offset, nil
	}

	line, err := strconv.Atoi(lineText)
	if err != nil {
		return 0, fmt.Errorf("invalid line in %q: %w", position, err)
	}
	col, err := strconv.Atoi(colText)
	if err != nil {
		return 0, fmt.Errorf("invalid column in %q: %w", position, err)
	}
	if line < 1 || line > file.LineCount() {
		return 0, fmt.Errorf("line %d is out of the file", line)
	}

	offset := file.Offset(file.LineStart(line)) + col - 1
	if col < 1 || offset >= file.Size() {
		return 0, fmt.Errorf("column %d is out of the file", col)
	}
	if line < file.LineCount() && offset >= file.Offset(file.LineStart(line+1)) {
		return 0, fmt.Errorf("column %d is out of line %d", col, line)
	}

	return offset, nil
}

func nodeKind(n markup.Node) string {
	switch n := n.(type) {
	case *markup.Element:
		if n.IsFragment() {
			return "fragment"
		}
		return "element"
	case *markup.Text:
		return "text"
	case *markup.Container:
		return "container"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func elementName(e *markup.Element) string {
	if e.IsFragment() {
		return "<>"
	}
	return "<" + e.Name + ">"
}

func describeExpr(e markup.Expr) string {
	l, ok := e.(*markup.Logical)
	if !ok {
		if e == nil {
			return "none"
		}
		return e.Kind().String()
	}

	return fmt.Sprintf("%s %s, left %s, right %s", l.Kind(), l.Op, exprKind(l.Left), exprKind(l.Right))
}

func exprKind(e markup.Expr) string {
	if e == nil {
		return "none"
	}
	return e.Kind().String()
}

// snippet quotes the first line of the node source, shortened if needed.
func snippet(src []byte, n markup.Node) string {
	text := string(src[n.Pos():n.End()])
	cut := false
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
		cut = true
	}
	if len(text) > snippetLimit {
		text = text[:snippetLimit]
		cut = true
	}
	if cut {
		text += "..."
	}

	return strconv.Quote(text)
}
