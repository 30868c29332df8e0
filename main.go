package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/analysis/singlechecker"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/jsxtext/internal/config"
	"github.com/sirkon/jsxtext/internal/jsxrules"
	"github.com/sirkon/jsxtext/internal/lint"
)

const doc = `jsxtext reports conditional text interpolations rendered next to other text without a wrapping element

Markup files (.jsx, .tsx, .gsx and configured extensions) are looked up in
package directories and in //go:embed directives of package files. An
interpolation like {cond && 'text'} placed among text or simple value
interpolations of the same parent is reported with a fix wrapping it into
a <span>.`

// Analyzer is the main entry point for the linter
var Analyzer = &analysis.Analyzer{
	Name:     "jsxtext",
	Doc:      doc,
	URL:      jsxrules.Meta.Docs.URL,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	flagWrapper    string
	flagConfig     string
	flagExtensions extensionsValue
	flagSeverity   severityValue
)

func init() {
	Analyzer.Flags.StringVar(&flagWrapper, "wrapper", "", "tag to wrap conflicting interpolations into, overrides the configuration")
	Analyzer.Flags.StringVar(&flagConfig, "config", "", "path to the configuration file, looked up from package directories if empty")
	Analyzer.Flags.Var(&flagExtensions, "ext", "comma separated list of additional markup file extensions")
	Analyzer.Flags.Var(&flagSeverity, "severity", "severity of reported problems: error, warning, info or hint")
}

func main() {
	singlechecker.Main(Analyzer)
}

func run(pass *analysis.Pass) (any, error) {
	dir, ok := packageDir(pass)
	if !ok {
		return nil, nil
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return nil, err
	}

	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	files, err := collectMarkupFiles(pass, pector, dir, cfg)
	if err != nil {
		return nil, err
	}

	engine := lint.NewEngine(pass.Fset, lint.WithConfig(cfg))
	for _, path := range files {
		if err := lintFile(pass, engine, cfg, path); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// packageDir returns the directory of the package. Test variants of a
// package are skipped, the directory is checked by the package itself.
func packageDir(pass *analysis.Pass) (string, bool) {
	var dir string
	for _, f := range pass.Files {
		name := pass.Fset.File(f.Pos()).Name()
		if strings.HasSuffix(name, "_test.go") {
			return "", false
		}
		if dir == "" {
			dir = filepath.Dir(name)
		}
	}

	return dir, dir != ""
}

func loadConfig(dir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, err = config.Discover(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if flagWrapper != "" {
		if err := cfg.SetWrapper(flagWrapper); err != nil {
			return nil, fmt.Errorf("apply -wrapper: %w", err)
		}
	}
	if flagSeverity.set {
		cfg.Severity = flagSeverity.v
	}
	if err := cfg.AddExtensions(flagExtensions...); err != nil {
		return nil, fmt.Errorf("apply -ext: %w", err)
	}

	return cfg, nil
}

// collectMarkupFiles returns sorted paths of markup files belonging to the
// package: non-Go files of the pass, files of the package directory and
// files matched by //go:embed patterns.
func collectMarkupFiles(pass *analysis.Pass, pector *inspector.Inspector, dir string, cfg *config.Config) ([]string, error) {
	seen := map[string]struct{}{}
	add := func(path string) {
		if cfg.IsMarkupFile(path) {
			seen[filepath.Clean(path)] = struct{}{}
		}
	}

	for _, path := range slices.Concat(pass.OtherFiles, pass.IgnoredFiles) {
		add(path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read package directory: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			add(filepath.Join(dir, e.Name()))
		}
	}

	var embedErr error
	pector.Preorder([]ast.Node{(*ast.GenDecl)(nil)}, func(node ast.Node) {
		decl := node.(*ast.GenDecl)
		if decl.Tok != token.VAR || embedErr != nil {
			return
		}

		for _, pattern := range embedPatterns(decl) {
			paths, err := expandEmbedPattern(dir, pattern, cfg)
			if err != nil {
				embedErr = fmt.Errorf("expand //go:embed %s: %w", pattern, err)
				return
			}
			for _, path := range paths {
				add(path)
			}
		}
	})
	if embedErr != nil {
		return nil, embedErr
	}

	res := make([]string, 0, len(seen))
	for path := range seen {
		res = append(res, path)
	}
	slices.Sort(res)

	return res, nil
}

func lintFile(pass *analysis.Pass, engine *lint.Engine, cfg *config.Config, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read markup file: %w", err)
	}

	skip, err := cfg.SkipFile(path, int64(len(src)))
	if err != nil {
		return err
	}
	if skip {
		return nil
	}

	tf := pass.Fset.AddFile(path, -1, len(src))
	tf.SetLinesForContent(src)

	res := engine.LintFile(tf, src)
	for _, rep := range res.Reports {
		d := analysis.Diagnostic{
			Pos:      rep.Pos,
			End:      rep.End,
			Category: rep.Phase.String(),
			Message:  rep.Text,
			URL:      jsxrules.Meta.Docs.URL,
		}
		if rep.Fix != nil {
			fix := analysis.SuggestedFix{Message: rep.Fix.Message}
			for _, e := range rep.Fix.Edits {
				fix.TextEdits = append(fix.TextEdits, analysis.TextEdit{
					Pos:     tf.Pos(e.Pos),
					End:     tf.Pos(e.End),
					NewText: []byte(e.NewText),
				})
			}
			d.SuggestedFixes = []analysis.SuggestedFix{fix}
		}
		pass.Report(d)
	}

	return nil
}
