package main

import (
	"embed"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/sirkon/deepequal"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/jsxtext/internal/lint"
)

//go:embed testdata
var testCases embed.FS

type diagLine struct {
	File     string
	Line     int
	Category string
	Message  string
}

func TestAnalyzer(t *testing.T) {
	dir := filepath.Join("testdata", "src", "app")
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filepath.Join(dir, "app.go"), nil, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	files := []*ast.File{f}

	var diags []analysis.Diagnostic
	pass := &analysis.Pass{
		Analyzer: Analyzer,
		Fset:     fset,
		Files:    files,
		Pkg:      types.NewPackage("example.com/app", "app"),
		ResultOf: map[*analysis.Analyzer]any{
			inspect.Analyzer: inspector.New(files),
		},
		Report: func(d analysis.Diagnostic) {
			diags = append(diags, d)
		},
	}

	if _, err := Analyzer.Run(pass); err != nil {
		t.Fatal(err)
	}

	var got []diagLine
	for _, d := range diags {
		pos := fset.Position(d.Pos)
		got = append(got, diagLine{
			File:     filepath.ToSlash(pos.Filename),
			Line:     pos.Line,
			Category: d.Category,
			Message:  d.Message,
		})
	}
	want := []diagLine{
		{File: "testdata/src/app/page.jsx", Line: 1, Category: "check", Message: "No unwrapped JSX text"},
		{File: "testdata/src/app/ui/widget.tsx", Line: 2, Category: "check", Message: "No unwrapped JSX text"},
	}
	if !reflect.DeepEqual(got, want) {
		deepequal.SideBySide(t, "diagnostics", want, got)
	}

	for _, d := range diags {
		pos := fset.Position(d.Pos)
		name := filepath.Base(pos.Filename)
		t.Run(name, func(t *testing.T) {
			if len(d.SuggestedFixes) != 1 {
				t.Fatalf("got %d suggested fixes, want 1", len(d.SuggestedFixes))
			}

			src, err := testCases.ReadFile(filepath.ToSlash(pos.Filename))
			if err != nil {
				t.Fatal(err)
			}
			fixed, err := applyFix(fset, src, d.SuggestedFixes[0])
			if err != nil {
				t.Fatal(err)
			}

			golden, err := testCases.ReadFile("testdata/src/app/golden/" + name)
			if err != nil {
				t.Fatal(err)
			}
			if string(fixed) != string(golden) {
				t.Errorf("unexpected fix result:\n%s\nwant:\n%s", fixed, golden)
			}
		})
	}
}

func TestAnalyzerSkipsTestVariant(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filepath.Join("testdata", "src", "app", "app_test.go"), "package app\n", 0)
	if err != nil {
		t.Fatal(err)
	}

	pass := &analysis.Pass{
		Analyzer: Analyzer,
		Fset:     fset,
		Files:    []*ast.File{f},
		ResultOf: map[*analysis.Analyzer]any{
			inspect.Analyzer: inspector.New([]*ast.File{f}),
		},
		Report: func(d analysis.Diagnostic) {
			t.Errorf("unexpected diagnostic %s", d.Message)
		},
	}
	if _, err := Analyzer.Run(pass); err != nil {
		t.Fatal(err)
	}
}

func TestEmbedPatterns(t *testing.T) {
	src := `package x

import "embed"

//go:embed ui/*.jsx "with space.tsx" ` + "`raw.jsx`" + `
//go:embed all:static
var a embed.FS

var (
	//go:embed b.gsx
	b string

	//go:embedded nothing
	c string
)
`
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "x.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, decl := range f.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.VAR {
			got = append(got, embedPatterns(gd)...)
		}
	}

	want := []string{"ui/*.jsx", "with space.tsx", "raw.jsx", "all:static", "b.gsx"}
	if !slices.Equal(got, want) {
		deepequal.SideBySide(t, "patterns", want, got)
	}
}

func TestFlagValues(t *testing.T) {
	var exts extensionsValue
	if err := exts.Set("mdx, .vue,,"); err != nil {
		t.Fatal(err)
	}
	if err := exts.Set(".svelte"); err != nil {
		t.Fatal(err)
	}
	if got := exts.String(); got != ".mdx,.vue,.svelte" {
		t.Errorf("got extensions %q", got)
	}

	var sev severityValue
	if sev.String() != "" {
		t.Errorf("got %q for unset severity", sev.String())
	}
	if err := sev.Set("warning"); err != nil {
		t.Fatal(err)
	}
	if !sev.set || sev.String() != "warning" {
		t.Errorf("got %q", sev.String())
	}
	if err := sev.Set("loud"); err == nil {
		t.Error("unknown severity must fail")
	}
}

func TestLoadConfigWrapper(t *testing.T) {
	t.Cleanup(func() { flagWrapper = "" })

	dir := t.TempDir()
	flagWrapper = "a b"
	if _, err := loadConfig(dir); err == nil {
		t.Error("invalid -wrapper must fail")
	}

	flagWrapper = "em"
	cfg, err := loadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Wrapper != "em" {
		t.Errorf("got wrapper %q, want em", cfg.Wrapper)
	}
}

func applyFix(fset *token.FileSet, src []byte, fix analysis.SuggestedFix) ([]byte, error) {
	var edits []lint.TextEdit
	for _, e := range fix.TextEdits {
		tf := fset.File(e.Pos)
		edits = append(edits, lint.TextEdit{
			Pos:     tf.Offset(e.Pos),
			End:     tf.Offset(e.End),
			NewText: string(e.NewText),
		})
	}

	return lint.ApplyEdits(src, edits)
}
