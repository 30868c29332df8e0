package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/sirkon/jsxtext/internal/config"
)

const recursiveSuffix = "/..."

// collectFiles returns sorted paths of markup files to check. A directory
// contributes its own markup files, dir/... adds files of subdirectories.
// Files given explicitly are checked whatever their extension is.
func collectFiles(conf *config.Config, paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"." + recursiveSuffix}
	}

	seen := map[string]struct{}{}
	add := func(path string) {
		seen[filepath.Clean(path)] = struct{}{}
	}

	for _, path := range paths {
		root, recursive := splitRecursive(path)
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if recursive {
				return nil, fmt.Errorf("%w: %s is not a directory", cli.ErrUsage, root)
			}
			add(root)
			continue
		}

		if err := walkDir(conf, root, recursive, add); err != nil {
			return nil, err
		}
	}

	res := make([]string, 0, len(seen))
	for path := range seen {
		res = append(res, path)
	}
	slices.Sort(res)

	return res, nil
}

func splitRecursive(path string) (string, bool) {
	if path == "..." {
		return ".", true
	}
	root, ok := strings.CutSuffix(filepath.ToSlash(path), recursiveSuffix)
	if !ok {
		return path, false
	}
	if root == "" {
		return "/", true
	}

	return filepath.FromSlash(root), true
}

func walkDir(conf *config.Config, root string, recursive bool, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || conf.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !conf.IsMarkupFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		skip, err := conf.SkipFile(path, info.Size())
		if err != nil {
			return err
		}
		if !skip {
			add(path)
		}

		return nil
	})
}
