package main

import (
	"errors"
	"fmt"
	"go/ast"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirkon/jsxtext/internal/config"
)

const embedDirective = "//go:embed"

// embedPatterns returns patterns of //go:embed directives attached to the
// declaration or its specs.
func embedPatterns(decl *ast.GenDecl) []string {
	groups := []*ast.CommentGroup{decl.Doc}
	for _, spec := range decl.Specs {
		if vs, ok := spec.(*ast.ValueSpec); ok {
			groups = append(groups, vs.Doc)
		}
	}

	var res []string
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			args, ok := strings.CutPrefix(c.Text, embedDirective)
			if !ok || (args != "" && args[0] != ' ' && args[0] != '\t') {
				continue
			}
			res = append(res, splitEmbedArgs(args)...)
		}
	}

	return res
}

// splitEmbedArgs splits directive arguments. Patterns may be quoted with
// double quotes or back quotes.
func splitEmbedArgs(args string) []string {
	var res []string
	for {
		args = strings.TrimLeft(args, " \t")
		if args == "" {
			return res
		}

		switch args[0] {
		case '"', '`':
			end := strings.IndexByte(args[1:], args[0])
			if end < 0 {
				return append(res, args)
			}
			quoted := args[:end+2]
			if v, err := strconv.Unquote(quoted); err == nil {
				res = append(res, v)
			}
			args = args[end+2:]

		default:
			end := strings.IndexAny(args, " \t")
			if end < 0 {
				return append(res, args)
			}
			res = append(res, args[:end])
			args = args[end:]
		}
	}
}

// expandEmbedPattern returns files matched by the pattern. Directories are
// walked recursively, names starting with . or _ are skipped unless the
// pattern has the all: prefix, like the go command does.
func expandEmbedPattern(dir, pattern string, cfg *config.Config) ([]string, error) {
	pattern, all := strings.CutPrefix(pattern, "all:")

	matches, err := filepath.Glob(filepath.Join(dir, filepath.FromSlash(pattern)))
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}

	var res []string
	for _, match := range matches {
		err := filepath.WalkDir(match, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != match {
				name := d.Name()
				if !all && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
				if d.IsDir() && cfg.SkipDir(name) {
					return filepath.SkipDir
				}
			}

			if !d.IsDir() {
				res = append(res, path)
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("walk %s: %w", match, err)
		}
	}

	return res, nil
}
