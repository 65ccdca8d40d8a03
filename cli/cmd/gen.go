package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/caranatar/tracerz/english"
	"github.com/caranatar/tracerz/grammar"
	"github.com/caranatar/tracerz/log"
)

// Gen generates flattened text from a start rule.
type Gen struct {
	Start string `arg:"" help:"Start rule name or raw start text" name:"start" optional:"" default:"origin"`
	Count int    `       help:"Number of outputs to generate"                               default:"1"      short:"n"`
	Seed  uint64 `       help:"Fix the random seed for reproducible output"                                  short:"S"`
}

// placeholderRE matches the visible {{name}} markers produced by undefined
// rule references.
var placeholderRE = regexp.MustCompile(`\{\{([[:alnum:]]+)\}\}`)

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) error {
	gram, err := buildGrammar(ctx, g.Seed)
	if err != nil {
		return err
	}

	start := startText(g.Start)
	out := stdout(ctx)

	for range g.Count {
		output, err := gram.Flatten(start)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, output)

		warnPlaceholders(ctx, output, gram.Rules())
	}

	return nil
}

// buildGrammar constructs a Grammar from the source stored in ctx, with the
// English modifier set loaded and the default logger attached. A nonzero
// seed fixes the randomness source.
func buildGrammar(ctx context.Context, seed uint64) (*grammar.Grammar, error) {
	opts := []grammar.Option{grammar.WithLogger(log.Default())}

	if seed != 0 {
		opts = append(opts, grammar.WithRandomSource(grammar.NewSeededSource(seed)))
	}

	gram, err := grammar.New(sourceFrom(ctx), opts...)
	if err != nil {
		return nil, err
	}

	gram.AddModifiers(english.Modifiers())

	return gram, nil
}

// startText interprets the start argument: a bare rule name is wrapped in
// reference delimiters, anything containing grammar syntax passes through.
func startText(start string) string {
	if strings.ContainsAny(start, "#[") {
		return start
	}

	return "#" + start + "#"
}

// warnPlaceholders reports each undefined-rule placeholder left in the
// output, with fuzzy-matched rule name suggestions for likely typos.
func warnPlaceholders(ctx context.Context, output string, rules []string) {
	for _, m := range placeholderRE.FindAllStringSubmatch(output, -1) {
		name := m[1]

		attrs := []slog.Attr{slog.String("rule", name)}

		if matches := fuzzy.Find(name, rules); len(matches) > 0 {
			attrs = append(attrs, slog.String("did_you_mean", matches[0].Str))
		}

		log.WarnContext(ctx, "undefined rule in output", attrs...)
	}
}
