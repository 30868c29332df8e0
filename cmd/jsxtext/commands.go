package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/scott-cotton/cli"

	"github.com/sirkon/jsxtext/internal/config"
)

const usageText = `jsxtext finds conditional text interpolations like {cond && 'text'}
rendered next to other text of the same element without a wrapping tag and
optionally wraps them.`

// MainCommand returns the root command.
func MainCommand() *cli.Command {
	return cli.NewCommand("jsxtext").
		WithSynopsis("jsxtext command [opts]").
		WithDescription(usageText).
		WithSubs(
			CheckCommand(),
			ExplainCommand(),
			RulesCommand(),
		)
}

// CheckCommand returns the check subcommand.
func CheckCommand() *cli.Command {
	cfg := &checkConfig{
		Workers:  runtime.GOMAXPROCS(0),
		progress: os.Stderr,
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "format",
		Aliases:     []string{"f"},
		Description: "output format: text, json or lsp (default from the configuration)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.formatOpt), "(format)"),
	})

	return cli.NewCommandAt(&cfg.Command, "check").
		WithAliases("c").
		WithSynopsis("check [opts] [paths...]").
		WithDescription("check markup files, dir/... checks a directory recursively, ./... is the default").
		WithOpts(opts...).
		WithRun(cfg.run)
}

// ExplainCommand returns the explain subcommand.
func ExplainCommand() *cli.Command {
	cfg := &explainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Command, "explain").
		WithAliases("x").
		WithSynopsis("explain <file> <offset|line:col>").
		WithDescription("show the markup node at the position and how the check sees it").
		WithOpts(opts...).
		WithRun(cfg.run)
}

// RulesCommand returns the rules subcommand.
func RulesCommand() *cli.Command {
	cfg := &rulesConfig{}
	return cli.NewCommandAt(&cfg.Command, "rules").
		WithSynopsis("rules").
		WithDescription("print the rule metadata and messages").
		WithRun(cfg.run)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	cfg, err := config.Discover(".")
	if err != nil {
		return nil, fmt.Errorf("discover configuration: %w", err)
	}
	return cfg, nil
}
