package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/scott-cotton/cli"

	"github.com/sirkon/jsxtext/internal/jsxrules"
)

type rulesConfig struct {
	*cli.Command
}

func (cfg *rulesConfig) run(cc *cli.Context, args []string) error {
	if _, err := cfg.Parse(cc, args); err != nil {
		return err
	}

	printRule(cc.Out, jsxrules.Meta)
	return nil
}

func printRule(w io.Writer, meta jsxrules.RuleMeta) {
	fmt.Fprintf(w, "%s\n", meta.Name)
	fmt.Fprintf(w, "  type:        %s\n", meta.Type)
	if meta.Fixable != "" {
		fmt.Fprintf(w, "  fixable:     %s\n", meta.Fixable)
	}
	fmt.Fprintf(w, "  category:    %s\n", meta.Docs.Category)
	fmt.Fprintf(w, "  description: %s\n", meta.Docs.Description)
	if meta.Docs.URL != "" {
		fmt.Fprintf(w, "  url:         %s\n", meta.Docs.URL)
	}

	fmt.Fprintln(w, "  messages:")
	ids := make([]string, 0, len(meta.Messages))
	for id := range meta.Messages {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "    %s: %s\n", id, meta.Messages[id])
	}
}
