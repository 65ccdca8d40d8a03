package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
)

// Rules lists the rule names defined by the loaded grammar.
type Rules struct {
	Filter string `arg:"" help:"Fuzzy filter for rule names" optional:""`
}

// Run executes the rules command.
func (r *Rules) Run(ctx context.Context) error {
	gram, err := buildGrammar(ctx, 0)
	if err != nil {
		return err
	}

	names := gram.Rules()
	sort.Strings(names)

	if r.Filter != "" {
		matches := fuzzy.Find(r.Filter, names)

		names = names[:0]
		for _, m := range matches {
			names = append(names, m.Str)
		}
	}

	out := stdout(ctx)
	for _, name := range names {
		fmt.Fprintln(out, name)
	}

	return nil
}
