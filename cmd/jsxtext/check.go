package main

import (
	"fmt"
	"go/token"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"

	"github.com/sirkon/jsxtext/internal/config"
	"github.com/sirkon/jsxtext/internal/lint"
)

type checkConfig struct {
	*cli.Command

	Fix     bool   `cli:"name=fix desc='wrap reported interpolations in place'"`
	Diff    bool   `cli:"name=diff aliases=d desc='print fixes as a unified diff instead of the report'"`
	Color   bool   `cli:"name=color desc='colorize text output (default when writing to a terminal)'"`
	Config  string `cli:"name=config aliases=c desc='configuration file (default .jsxtext.yaml looked up from the current directory)'"`
	Wrapper string `cli:"name=wrapper aliases=w desc='tag to wrap conflicting interpolations into'"`
	Verbose bool   `cli:"name=v desc='print checked files and a summary to stderr'"`
	Workers int    `cli:"name=j desc='number of files checked in parallel'"`

	format   *config.Format
	progress io.Writer
}

func (cfg *checkConfig) formatOpt(_ *cli.Context, v string) (any, error) {
	var f config.Format
	if err := f.UnmarshalText([]byte(v)); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	cfg.format = &f
	return f, nil
}

func (cfg *checkConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Fix && cfg.Diff {
		return fmt.Errorf("%w: -fix and -diff cannot be used together", cli.ErrUsage)
	}

	conf, err := loadConfig(cfg.Config)
	if err != nil {
		return err
	}

	res, err := cfg.check(cc.Out, conf, args, cfg.colored(cc.Out))
	if err != nil {
		return err
	}
	if res.problems > 0 {
		return cli.ExitCodeErr(1)
	}

	return nil
}

// colored checks if text output must be colorized. An explicit -color=false
// wins over terminal detection.
func (cfg *checkConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}

	return lint.IsTerminal(w)
}

type checkResult struct {
	files    int
	problems int
	fixed    int
}

// check lints files found at paths and writes the report, or the diff, to w.
// With -fix only problems left after fixing are reported.
func (cfg *checkConfig) check(w io.Writer, conf *config.Config, paths []string, colored bool) (checkResult, error) {
	var res checkResult

	if cfg.Wrapper != "" {
		if err := conf.SetWrapper(cfg.Wrapper); err != nil {
			return res, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	format := conf.Format
	if cfg.format != nil {
		format = *cfg.format
	}
	printer, err := lint.NewPrinter(format, colored)
	if err != nil {
		return res, err
	}

	files, err := collectFiles(conf, paths)
	if err != nil {
		return res, err
	}
	res.files = len(files)

	fset := token.NewFileSet()
	engine := lint.NewEngine(fset, lint.WithConfig(conf))
	linted, err := lintFiles(engine, files, cfg.Workers)
	if err != nil {
		return res, err
	}

	switch {
	case cfg.Diff:
		for _, l := range linted {
			res.problems += len(l.Reports)
			if err := printDiff(w, l); err != nil {
				return res, err
			}
		}
	case cfg.Fix:
		for i, l := range linted {
			left, fixed, err := fixFile(l)
			if err != nil {
				return res, err
			}
			linted[i] = left
			res.fixed += fixed
			res.problems += len(left.Reports)
		}
		if err := printer.Print(w, linted); err != nil {
			return res, fmt.Errorf("print report: %w", err)
		}
	default:
		for _, l := range linted {
			res.problems += len(l.Reports)
		}
		if err := printer.Print(w, linted); err != nil {
			return res, fmt.Errorf("print report: %w", err)
		}
	}

	if cfg.Verbose && cfg.progress != nil {
		for _, name := range files {
			fmt.Fprintln(cfg.progress, name)
		}
		engine.Reports().PrintSummary(cfg.progress, fset)
		fmt.Fprintf(cfg.progress, "%d files checked, %d problems, %d fixed\n", res.files, res.problems, res.fixed)
	}

	return res, nil
}

// lintFiles lints files in parallel. Results keep the order of files.
func lintFiles(engine *lint.Engine, files []string, workers int) ([]*lint.Linted, error) {
	res := make([]*lint.Linted, len(files))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, name := range files {
		g.Go(func() error {
			src, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}

			res[i] = engine.Lint(name, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

func printDiff(w io.Writer, l *lint.Linted) error {
	fixed, err := l.Fixed()
	if err != nil {
		return fmt.Errorf("fix %s: %w", l.File.Name(), err)
	}

	return lint.Diff(w, l.File.Name(), l.Tree.Src, fixed)
}

// fixFile writes the fixed source back and returns the file with the
// reports no fix exists for.
func fixFile(l *lint.Linted) (*lint.Linted, int, error) {
	left := &lint.Linted{
		Tree: l.Tree,
		File: l.File,
	}
	var fixed int
	for _, rep := range l.Reports {
		if rep.Fix == nil {
			left.Reports = append(left.Reports, rep)
			continue
		}
		fixed++
	}
	if fixed == 0 {
		return left, 0, nil
	}

	name := l.File.Name()
	info, err := os.Stat(name)
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", name, err)
	}
	src, err := l.Fixed()
	if err != nil {
		return nil, 0, fmt.Errorf("fix %s: %w", name, err)
	}
	if err := os.WriteFile(name, src, info.Mode().Perm()); err != nil {
		return nil, 0, fmt.Errorf("write %s: %w", name, err)
	}

	return left, fixed, nil
}
