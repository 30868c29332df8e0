package lint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/sirkon/jsxtext/internal/config"
	"github.com/sirkon/jsxtext/internal/jsxrules"
)

// Printer renders reports of linted files.
type Printer interface {
	Print(w io.Writer, files []*Linted) error
}

// NewPrinter creates a printer for the format.
func NewPrinter(format config.Format, colored bool) (Printer, error) {
	switch format {
	case config.FormatText:
		p := &TextPrinter{}
		if colored {
			p.Colors = NewColors()
		}
		return p, nil
	case config.FormatJSON:
		return JSONPrinter{}, nil
	case config.FormatLSP:
		return LSPPrinter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %s", format)
	}
}

// IsTerminal checks if w is a terminal, colored output makes sense then.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Colors of the text output.
type Colors struct {
	Location func(string, ...any) string
	Severity map[config.Severity]func(string, ...any) string
	Rule     func(string, ...any) string
	Marker   func(string, ...any) string
}

// NewColors returns the default palette. Colors are enabled regardless of
// the terminal detection done by fatih/color.
func NewColors() *Colors {
	mk := func(c *color.Color) func(string, ...any) string {
		c.EnableColor()
		return c.SprintfFunc()
	}

	return &Colors{
		Location: mk(color.New(color.Bold)),
		Severity: map[config.Severity]func(string, ...any) string{
			config.SeverityError:   mk(color.RGB(230, 60, 60)),
			config.SeverityWarning: mk(color.RGB(230, 180, 40)),
			config.SeverityInfo:    mk(color.RGB(74, 92, 138)),
			config.SeverityHint:    mk(color.RGB(128, 216, 236)),
		},
		Rule:   mk(color.New(color.FgBlue)),
		Marker: mk(color.RGB(255, 0, 196)),
	}
}

// TextPrinter prints reports in the file:line:col: severity: message form
// followed by the source line with the problem underlined.
type TextPrinter struct {
	// Colors is nil for plain output.
	Colors *Colors
}

func (p *TextPrinter) Print(w io.Writer, files []*Linted) error {
	for _, f := range files {
		for _, rep := range f.Reports {
			if err := p.printReport(w, f, rep); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *TextPrinter) printReport(w io.Writer, f *Linted, rep Report) error {
	var (
		location = plain
		severity = plain
		rule     = plain
		marker   = plain
	)
	if p.Colors != nil {
		location = p.Colors.Location
		rule = p.Colors.Rule
		marker = p.Colors.Marker
		if c, ok := p.Colors.Severity[rep.Severity]; ok {
			severity = c
		}
	}

	pos := f.File.Position(rep.Pos)
	id := "syntax"
	if rep.Phase == ReportCheck {
		id = jsxrules.Meta.Name + "/" + rep.Message.String()
	}
	if _, err := fmt.Fprintf(w, "%s %s %s %s\n",
		location("%s:%d:%d:", pos.Filename, pos.Line, pos.Column),
		severity("%s:", rep.Severity),
		rep.Text,
		rule("(%s)", id),
	); err != nil {
		return fmt.Errorf("print report: %w", err)
	}

	line, col, width := sourceLine(f, rep)
	if line == "" {
		return nil
	}
	pad := strings.Map(func(r rune) rune {
		if r == '\t' {
			return '\t'
		}
		return ' '
	}, line[:col])
	if _, err := fmt.Fprintf(w, "\t%s\n\t%s%s\n", line, pad, marker("%s", "^"+strings.Repeat("~", max(width-1, 0)))); err != nil {
		return fmt.Errorf("print source line: %w", err)
	}

	return nil
}

// sourceLine returns the line the report starts at, the byte column of the
// report in it and the width of the report span on that line in runes.
func sourceLine(f *Linted, rep Report) (line string, col int, width int) {
	src := f.Tree.Src
	start := f.Offset(rep.Pos)
	end := f.Offset(rep.End)

	lineStart := bytes.LastIndexByte(src[:start], '\n') + 1
	lineEnd := len(src)
	if i := bytes.IndexByte(src[start:], '\n'); i >= 0 {
		lineEnd = start + i
	}
	end = min(max(end, start+1), lineEnd)

	line = strings.TrimRight(string(src[lineStart:lineEnd]), "\r")
	col = min(start-lineStart, len(line))
	width = utf8.RuneCount(src[start:max(end, start)])
	return line, col, max(width, 1)
}

func plain(format string, a ...any) string {
	return fmt.Sprintf(format, a...)
}

// JSONPrinter prints all reports as a JSON array.
type JSONPrinter struct{}

type jsonReport struct {
	File      string   `json:"file"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	EndLine   int      `json:"endLine"`
	EndColumn int      `json:"endColumn"`
	Phase     string   `json:"phase"`
	Severity  string   `json:"severity"`
	RuleID    string   `json:"ruleId,omitempty"`
	MessageID string   `json:"messageId,omitempty"`
	Message   string   `json:"message"`
	Fix       *jsonFix `json:"fix,omitempty"`
}

type jsonFix struct {
	Message string     `json:"message"`
	Edits   []TextEdit `json:"edits"`
}

func (JSONPrinter) Print(w io.Writer, files []*Linted) error {
	out := []jsonReport{}
	for _, f := range files {
		for _, rep := range f.Reports {
			pos := f.File.Position(rep.Pos)
			end := f.File.Position(rep.End)
			jr := jsonReport{
				File:      pos.Filename,
				Line:      pos.Line,
				Column:    pos.Column,
				EndLine:   end.Line,
				EndColumn: end.Column,
				Phase:     rep.Phase.String(),
				Severity:  rep.Severity.String(),
				Message:   rep.Text,
			}
			if rep.Phase == ReportCheck {
				jr.RuleID = jsxrules.Meta.Name
				jr.MessageID = rep.Message.String()
			}
			if rep.Fix != nil {
				jr.Fix = &jsonFix{
					Message: rep.Fix.Message,
					Edits:   rep.Fix.Edits,
				}
			}
			out = append(out, jr)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	return nil
}

// LSPPrinter prints a textDocument/publishDiagnostics parameters object per
// file, one JSON document per line. Files without reports are published with
// an empty list to clear stale diagnostics.
type LSPPrinter struct{}

func (LSPPrinter) Print(w io.Writer, files []*Linted) error {
	enc := json.NewEncoder(w)
	for _, f := range files {
		if err := enc.Encode(PublishDiagnostics(f)); err != nil {
			return fmt.Errorf("encode diagnostics of %s: %w", f.File.Name(), err)
		}
	}

	return nil
}

// PublishDiagnostics converts reports of the file into LSP diagnostics.
func PublishDiagnostics(f *Linted) *protocol.PublishDiagnosticsParams {
	diags := []protocol.Diagnostic{}
	for _, rep := range f.Reports {
		d := protocol.Diagnostic{
			Range: protocol.Range{
				Start: lspPosition(f, rep.Pos),
				End:   lspPosition(f, rep.End),
			},
			Severity: lspSeverity(rep.Severity),
			Source:   "jsxtext",
			Message:  rep.Text,
		}
		if rep.Phase == ReportCheck {
			d.Code = rep.Message.String()
			d.CodeDescription = &protocol.CodeDescription{
				Href: protocol.URI(jsxrules.Meta.Docs.URL),
			}
		}
		diags = append(diags, d)
	}

	path := f.File.Name()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri.File(path)),
		Diagnostics: diags,
	}
}

// lspPosition converts pos into a zero based line and a UTF-16 character offset.
func lspPosition(f *Linted, pos token.Pos) protocol.Position {
	p := f.File.Position(pos)
	offset := f.Offset(pos)
	lineStart := f.Offset(f.File.LineStart(p.Line))

	var char int
	for _, r := range string(f.Tree.Src[lineStart:offset]) {
		char += utf16.RuneLen(r)
	}

	return protocol.Position{
		Line:      uint32(p.Line - 1),
		Character: uint32(char),
	}
}

func lspSeverity(s config.Severity) protocol.DiagnosticSeverity {
	switch s {
	case config.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case config.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case config.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}
