package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"

	"github.com/sirkon/jsxtext/internal/config"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func TestCollectFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app.jsx":                  "",
		"util.ts":                  "",
		"ui/button.tsx":            "",
		"ui/button.stories.jsx":    "",
		"ui/deep/icon.gsx":         "",
		"node_modules/lib/lib.jsx": "",
		".cache/old.jsx":           "",
		"dist/bundle.jsx":          "",
	})
	t.Chdir(dir)

	conf, err := config.Parse([]byte("skip-dirs: [dist]\nskip: 'name endsWith \".stories.jsx\"'\n"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "default is recursive from the current directory",
			paths: nil,
			want:  []string{"app.jsx", "ui/button.tsx", "ui/deep/icon.gsx"},
		},
		{
			name:  "directory without suffix is not recursive",
			paths: []string{"ui"},
			want:  []string{"ui/button.tsx"},
		},
		{
			name:  "recursive directory",
			paths: []string{"ui/..."},
			want:  []string{"ui/button.tsx", "ui/deep/icon.gsx"},
		},
		{
			name:  "explicit files are checked whatever the extension",
			paths: []string{"util.ts", "ui/button.stories.jsx", "app.jsx", "./app.jsx"},
			want:  []string{"app.jsx", "ui/button.stories.jsx", "util.ts"},
		},
		{
			name:  "skipped directory given explicitly",
			paths: []string{"dist"},
			want:  []string{"dist/bundle.jsx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectFiles(conf, tt.paths)
			if err != nil {
				t.Fatal(err)
			}

			want := make([]string, len(tt.want))
			for i, p := range tt.want {
				want[i] = filepath.FromSlash(p)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("unexpected files (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectFilesErrors(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.jsx": ""})
	t.Chdir(dir)

	if _, err := collectFiles(config.Default(), []string{"app.jsx/..."}); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("got %v, want usage error for a recursive file path", err)
	}
	if _, err := collectFiles(config.Default(), []string{"missing"}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want not exist error", err)
	}
}

func TestSplitRecursive(t *testing.T) {
	tests := []struct {
		path      string
		root      string
		recursive bool
	}{
		{path: "...", root: ".", recursive: true},
		{path: "./...", root: ".", recursive: true},
		{path: "src/...", root: filepath.FromSlash("src"), recursive: true},
		{path: "/...", root: "/", recursive: true},
		{path: "src", root: "src", recursive: false},
		{path: "a.jsx", root: "a.jsx", recursive: false},
	}

	for _, tt := range tests {
		root, recursive := splitRecursive(tt.path)
		if root != tt.root || recursive != tt.recursive {
			t.Errorf("splitRecursive(%q) = %q, %v, want %q, %v", tt.path, root, recursive, tt.root, tt.recursive)
		}
	}
}
