package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up by [Find].
const FileName = ".jsxtext.yaml"

// DefaultWrapper is the tag the fix wraps conflicting interpolations into.
const DefaultWrapper = "span"

var predefinedExtensions = map[string]struct{}{
	".jsx": {},
	".tsx": {},
	".gsx": {},
}

var predefinedSkipDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
}

// Config is the jsxtext configuration.
type Config struct {
	// Extensions are added to the predefined .jsx, .tsx and .gsx.
	Extensions []string `yaml:"extensions"`

	// SkipDirs are added to node_modules, vendor and directories starting with a dot.
	SkipDirs []string `yaml:"skip-dirs"`

	Wrapper  string   `yaml:"wrapper"`
	Severity Severity `yaml:"severity"`
	Format   Format   `yaml:"format"`

	// Skip is an expression over the file attributes, see [FileEnv].
	Skip string `yaml:"skip"`

	extensions map[string]struct{}
	skipDirs   map[string]struct{}
	skip       *vm.Program
}

// FileEnv is the environment of the skip predicate.
type FileEnv struct {
	Path string `expr:"path"`
	Name string `expr:"name"`
	Dir  string `expr:"dir"`
	Ext  string `expr:"ext"`
	Size int64  `expr:"size"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	if err := c.init(); err != nil {
		panic(fmt.Errorf("default configuration: %w", err))
	}

	return c
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes configuration data. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := c.init(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Find looks for [FileName] in dir and its parents. It returns an empty path
// when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}

	for {
		path := filepath.Join(dir, FileName)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			return path, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("check %s: %w", path, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Discover loads the configuration file found from dir, or returns the
// default configuration if there is none.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

func (c *Config) init() error {
	if c.Wrapper == "" {
		c.Wrapper = DefaultWrapper
	}
	if !isTagName(c.Wrapper) {
		return fmt.Errorf("invalid wrapper tag %q", c.Wrapper)
	}
	if c.Severity == 0 {
		c.Severity = SeverityError
	}
	if c.Format == 0 {
		c.Format = FormatText
	}

	c.extensions = maps.Clone(predefinedExtensions)
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension %q, must start with a dot", ext)
		}
		c.extensions[ext] = struct{}{}
	}

	c.skipDirs = maps.Clone(predefinedSkipDirs)
	for _, dir := range c.SkipDirs {
		c.skipDirs[dir] = struct{}{}
	}

	if c.Skip != "" {
		prog, err := expr.Compile(c.Skip, expr.Env(FileEnv{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("compile skip predicate: %w", err)
		}
		c.skip = prog
	}

	return nil
}

// SetWrapper replaces the wrapper tag used by fixes.
func (c *Config) SetWrapper(tag string) error {
	if !isTagName(tag) {
		return fmt.Errorf("invalid wrapper tag %q", tag)
	}

	c.Wrapper = tag
	return nil
}

// AddExtensions registers more markup file extensions.
func (c *Config) AddExtensions(exts ...string) error {
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension %q, must start with a dot", ext)
		}
		c.extensions[ext] = struct{}{}
	}

	return nil
}

// MarkupExtensions returns all markup file extensions in sorted order.
func (c *Config) MarkupExtensions() []string {
	return slices.Sorted(maps.Keys(c.extensions))
}

// IsMarkupFile checks if the file has one of the markup extensions.
func (c *Config) IsMarkupFile(name string) bool {
	_, ok := c.extensions[filepath.Ext(name)]
	return ok
}

// SkipDir checks if a directory with the given base name must not be visited.
func (c *Config) SkipDir(name string) bool {
	if len(name) > 1 && name[0] == '.' && name != ".." {
		return true
	}
	_, ok := c.skipDirs[name]
	return ok
}

// SkipFile evaluates the skip predicate for the file.
func (c *Config) SkipFile(path string, size int64) (bool, error) {
	if c.skip == nil {
		return false, nil
	}

	env := FileEnv{
		Path: filepath.ToSlash(path),
		Name: filepath.Base(path),
		Dir:  filepath.ToSlash(filepath.Dir(path)),
		Ext:  filepath.Ext(path),
		Size: size,
	}
	res, err := expr.Run(c.skip, env)
	if err != nil {
		return false, fmt.Errorf("evaluate skip predicate for %s: %w", path, err)
	}

	return res.(bool), nil
}

func isTagName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '.' && r != '_' {
			return false
		}
	}
	return true
}
