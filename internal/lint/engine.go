package lint

import (
	"go/token"

	"github.com/sirkon/jsxtext/internal/config"
	"github.com/sirkon/jsxtext/internal/detect"
	"github.com/sirkon/jsxtext/internal/jsxrules"
	"github.com/sirkon/jsxtext/internal/markup"
)

// Engine lints markup files and collects reports for all of them.
type Engine struct {
	fset     *token.FileSet
	reports  *ReportEngine
	wrapper  string
	severity config.Severity
}

// Option configures an [Engine].
type Option func(e *Engine)

// WithWrapper sets the tag used by fixes.
func WithWrapper(tag string) Option {
	return func(e *Engine) {
		e.wrapper = tag
	}
}

// WithSeverity sets the severity of rule violations.
func WithSeverity(s config.Severity) Option {
	return func(e *Engine) {
		e.severity = s
	}
}

// WithConfig applies the wrapper and the severity of the configuration.
func WithConfig(c *config.Config) Option {
	return func(e *Engine) {
		e.wrapper = c.Wrapper
		e.severity = c.Severity
	}
}

// NewEngine creates an engine registering files in fset.
func NewEngine(fset *token.FileSet, opts ...Option) *Engine {
	e := &Engine{
		fset:     fset,
		reports:  &ReportEngine{},
		wrapper:  config.DefaultWrapper,
		severity: config.SeverityError,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Linted is the result of linting a single file.
type Linted struct {
	Tree    *markup.File
	File    *token.File
	Reports []Report
}

// Offset returns the byte offset of pos in the file.
func (l *Linted) Offset(pos token.Pos) int {
	return l.File.Offset(pos)
}

// Fixed returns the file source with all fixes applied.
func (l *Linted) Fixed() ([]byte, error) {
	return ApplyFixes(l.Tree.Src, l.Reports)
}

// Lint parses the source, checks every expression container and records
// problems. Syntax errors do not stop the check of roots parsed successfully.
func (e *Engine) Lint(name string, src []byte) *Linted {
	file := e.fset.AddFile(name, -1, len(src))
	file.SetLinesForContent(src)

	return e.lintFile(file, src)
}

// LintFile is like [Engine.Lint] for a file already registered in the
// engine's file set.
func (e *Engine) LintFile(file *token.File, src []byte) *Linted {
	return e.lintFile(file, src)
}

func (e *Engine) lintFile(file *token.File, src []byte) *Linted {
	tree := markup.Parse(file.Name(), src)
	local := &ReportEngine{}

	parse := local.Phase(ReportParse)
	for _, err := range tree.Errors {
		parse.Report(Report{
			Severity: config.SeverityError,
			Text:     err.Msg,
			Pos:      file.Pos(err.Offset),
			End:      file.Pos(err.Offset),
		})
	}

	r := &fileReporter{
		phase:    local.Phase(ReportCheck),
		file:     file,
		wrapper:  e.wrapper,
		severity: e.severity,
	}
	markup.WalkFile(tree, func(n markup.Node, parent *markup.Element) bool {
		if c, ok := n.(*markup.Container); ok {
			detect.Check(c, parent, r)
		}
		return true
	})

	reports := local.Sorted()
	for _, rep := range reports {
		e.reports.Report(rep)
	}

	return &Linted{
		Tree:    tree,
		File:    file,
		Reports: reports,
	}
}

// Reports returns reports of all linted files.
func (e *Engine) Reports() *ReportEngine {
	return e.reports
}

// FileSet returns the file set of linted files.
func (e *Engine) FileSet() *token.FileSet {
	return e.fset
}

// fileReporter turns rule violations into reports of a file.
type fileReporter struct {
	phase    *ReporterPhase
	file     *token.File
	wrapper  string
	severity config.Severity
}

func (r *fileReporter) Report(node markup.Node, id jsxrules.MessageID) {
	r.phase.Report(Report{
		Severity: r.severity,
		Message:  id,
		Pos:      r.file.Pos(node.Pos()),
		End:      r.file.Pos(node.End()),
		Fix:      WrapFix(node, r.wrapper),
	})
}
